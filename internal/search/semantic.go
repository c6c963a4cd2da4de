// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/litreview/internal/httputil"
	"github.com/pdiddy/litreview/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,paperId,externalIds,openAccessPdf"

// SemanticScholarProvider queries the Semantic Scholar Graph API.
type SemanticScholarProvider struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
	limiter   *rate.Limiter
}

// NewSemanticScholarProvider builds a provider honoring the configured
// minimum interval between requests. The unauthenticated Semantic Scholar
// tier throttles aggressively, so requests are spaced out client-side.
func NewSemanticScholarProvider(cfg types.SearchConfig) *SemanticScholarProvider {
	interval := cfg.RequestInterval
	if interval <= 0 {
		interval = 1100 * time.Millisecond
	}
	return &SemanticScholarProvider{
		Client:    &http.Client{Timeout: cfg.Timeout},
		APIKey:    cfg.SemanticScholarAPIKey,
		UserAgent: cfg.UserAgent,
		limiter:   rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Name returns the provider identifier.
func (p *SemanticScholarProvider) Name() string { return "semantic_scholar" }

// Search queries the paper search endpoint and maps hits to candidates.
func (p *SemanticScholarProvider) Search(ctx context.Context, topic string, limit int) ([]Candidate, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	params := url.Values{
		"query":  {topic},
		"limit":  {fmt.Sprintf("%d", limit)},
		"fields": {semanticFields},
	}
	reqURL := semanticAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)
	if p.APIKey != "" {
		req.Header.Set("x-api-key", p.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	var candidates []Candidate
	for _, paper := range sr.Data {
		c := Candidate{
			ID:        paper.PaperID,
			Title:     paper.Title,
			ArchiveID: paper.ExternalIDs.ArXiv,
		}
		if paper.OpenAccessPDF != nil {
			c.OpenAccessURL = paper.OpenAccessPDF.URL
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID       string              `json:"paperId"`
	Title         string              `json:"title"`
	ExternalIDs   semanticExternalIDs `json:"externalIds"`
	OpenAccessPDF *semanticPDF        `json:"openAccessPdf"`
}

type semanticPDF struct {
	URL string `json:"url"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}
