// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search discovers papers for a research topic. A primary provider
// (Semantic Scholar) is queried first; when it yields fewer usable papers
// than requested, a secondary provider (arXiv) fills the remainder.
package search

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/litreview/pkg/types"
)

// titlePrefixLen is how many characters of the lowercased title participate
// in cross-provider dedup. Provider IDs live in different namespaces, so
// titles are the only key shared between them.
const titlePrefixLen = 50

// Candidate is a raw search hit before document-link resolution.
type Candidate struct {
	ID            string
	Title         string
	OpenAccessURL string
	ArchiveID     string
}

// Provider searches one paper index. limit is the number of candidates
// wanted; providers may return fewer.
type Provider interface {
	Name() string
	Search(ctx context.Context, topic string, limit int) ([]Candidate, error)
}

// Discoverer runs the paper discovery stage.
type Discoverer struct {
	Primary   Provider
	Secondary Provider
}

// Run populates st.Discovered with up to st.Limit() papers that have a
// resolvable document URL. A failing provider is logged and skipped; the
// stage records an error only when no provider produced any usable paper.
func (d *Discoverer) Run(ctx context.Context, st *types.ResearchState) {
	if st.Failed() {
		return
	}

	limit := st.Limit()
	seenIDs := make(map[string]bool)
	seenTitles := make(map[string]bool)
	var found []types.PaperRef

	// Over-fetch: some candidates have no usable document link.
	candidates, err := d.Primary.Search(ctx, st.Topic, limit*2)
	if err != nil {
		zap.L().Warn("primary provider failed",
			zap.String("provider", d.Primary.Name()),
			zap.Error(err))
	}
	found = collect(candidates, found, limit, seenIDs, seenTitles)

	if len(found) < limit {
		candidates, err = d.Secondary.Search(ctx, st.Topic, (limit-len(found))*2)
		if err != nil {
			zap.L().Warn("secondary provider failed",
				zap.String("provider", d.Secondary.Name()),
				zap.Error(err))
		}
		found = collect(candidates, found, limit, seenIDs, seenTitles)
	}

	if len(found) == 0 {
		st.RecordError("no papers with document links found from any provider")
		return
	}

	st.Discovered = found
	zap.L().Info("discovery complete",
		zap.String("topic", st.Topic),
		zap.Int("papers", len(found)))
}

// collect appends candidates with resolvable document URLs to found,
// skipping duplicates, until limit is reached.
func collect(candidates []Candidate, found []types.PaperRef, limit int, seenIDs, seenTitles map[string]bool) []types.PaperRef {
	for _, c := range candidates {
		if len(found) >= limit {
			break
		}
		if c.ID == "" || seenIDs[c.ID] {
			continue
		}
		key := titleKey(c.Title)
		if key != "" && seenTitles[key] {
			continue
		}
		docURL := resolveDocumentURL(c)
		if docURL == "" {
			continue
		}
		seenIDs[c.ID] = true
		if key != "" {
			seenTitles[key] = true
		}
		found = append(found, types.PaperRef{
			ID:          c.ID,
			Title:       c.Title,
			DocumentURL: docURL,
		})
	}
	return found
}

// resolveDocumentURL picks a fetchable URL for a candidate: the provider's
// open-access link when present, otherwise a URL constructed from the
// archive ID. Candidates with neither are discarded.
func resolveDocumentURL(c Candidate) string {
	if c.OpenAccessURL != "" {
		return c.OpenAccessURL
	}
	if c.ArchiveID != "" {
		return arxivPDFURL(c.ArchiveID)
	}
	return ""
}

func titleKey(title string) string {
	key := strings.ToLower(strings.TrimSpace(title))
	if len(key) > titlePrefixLen {
		key = key[:titlePrefixLen]
	}
	return key
}
