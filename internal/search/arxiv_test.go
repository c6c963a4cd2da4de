// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const arxivFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.07041v2</id>
    <title>Scaling Laws for
      Language Models</title>
    <link href="http://arxiv.org/abs/2301.07041v2" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/2301.07041v2" rel="related" type="application/pdf"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/1810.04805v1</id>
    <title>BERT Pre-training</title>
  </entry>
</feed>`

func TestArxivSearchParsesFeed(t *testing.T) {
	var capturedReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, arxivFeedXML)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	p := NewArxivProvider(testSearchCfg())
	p.Client = ts.Client()

	candidates, err := p.Search(context.Background(), "language models", 4)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	q := capturedReq.URL.Query()
	if got := q.Get("search_query"); got != "all:language models" {
		t.Errorf("search_query = %q", got)
	}
	if got := q.Get("max_results"); got != "4" {
		t.Errorf("max_results = %q", got)
	}
	if got := q.Get("sortBy"); got != "relevance" {
		t.Errorf("sortBy = %q", got)
	}

	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	if candidates[0].ID != "arXiv:2301.07041" {
		t.Errorf("candidate 0 ID = %q", candidates[0].ID)
	}
	if candidates[0].Title != "Scaling Laws for Language Models" {
		t.Errorf("candidate 0 title = %q", candidates[0].Title)
	}
	if candidates[0].OpenAccessURL != "http://arxiv.org/pdf/2301.07041v2" {
		t.Errorf("candidate 0 PDF link = %q", candidates[0].OpenAccessURL)
	}
	// No <link title="pdf"> entry: document URL is constructed later from
	// the archive ID.
	if candidates[1].OpenAccessURL != "" {
		t.Errorf("candidate 1 PDF link = %q, want empty", candidates[1].OpenAccessURL)
	}
	if candidates[1].ArchiveID != "1810.04805" {
		t.Errorf("candidate 1 archive ID = %q", candidates[1].ArchiveID)
	}
}

func TestExtractArxivID(t *testing.T) {
	tests := []struct {
		name  string
		idURL string
		want  string
	}{
		{"versioned", "http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"unversioned", "http://arxiv.org/abs/2301.07041", "2301.07041"},
		{"old style", "http://arxiv.org/abs/cs/9901002v1", "cs/9901002"},
		{"not an abs URL", "http://arxiv.org/pdf/2301.07041", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractArxivID(tt.idURL); got != tt.want {
				t.Errorf("extractArxivID(%q) = %q, want %q", tt.idURL, got, tt.want)
			}
		})
	}
}
