// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads paper documents and extracts their text. Each
// downloaded file lives only as long as one item's processing; the PDF is
// removed on every exit path once extraction has run.
package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/litreview/internal/httputil"
	"github.com/pdiddy/litreview/pkg/types"
)

// Fetcher retrieves the byte stream behind a document URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// HTTPFetcher fetches documents over HTTP with retry on throttling.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
}

// NewHTTPFetcher builds a fetcher with the configured download timeout.
func NewHTTPFetcher(cfg types.AcquisitionConfig) *HTTPFetcher {
	return &HTTPFetcher{
		Client:    &http.Client{Timeout: cfg.Timeout},
		UserAgent: cfg.UserAgent,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, f.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// Acquirer runs the document acquisition stage.
type Acquirer struct {
	Fetcher   Fetcher
	Extractor TextExtractor
	Dir       string
}

// Run downloads each discovered paper, extracts its text, and fills
// st.Extracted with the items that yielded non-empty text. One item's
// failure never aborts the batch; the stage records an error only when
// every item failed and no earlier stage already recorded one.
func (a *Acquirer) Run(ctx context.Context, st *types.ResearchState) {
	if st.Failed() {
		return
	}
	if len(st.Discovered) == 0 {
		st.RecordError("no discovered papers to process")
		return
	}

	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		st.RecordError(fmt.Sprintf("creating download directory: %v", err))
		return
	}

	var extracted []types.ExtractedPaper
	failed := 0
	for i, ref := range st.Discovered {
		text, err := a.acquireOne(ctx, i, ref)
		if err != nil {
			zap.L().Warn("paper acquisition failed",
				zap.String("id", ref.ID),
				zap.String("url", ref.DocumentURL),
				zap.Error(err))
			failed++
			continue
		}
		if strings.TrimSpace(text) == "" {
			zap.L().Warn("paper yielded no text", zap.String("id", ref.ID))
			failed++
			continue
		}
		extracted = append(extracted, types.ExtractedPaper{
			ID:    ref.ID,
			Title: ref.Title,
			Text:  text,
		})
	}

	if len(extracted) == 0 {
		st.RecordError("failed to download or extract text from any paper")
		return
	}

	st.Extracted = extracted
	zap.L().Info("acquisition complete",
		zap.Int("extracted", len(extracted)),
		zap.Int("failed", failed))
}

// acquireOne downloads one paper to a temp file, extracts its text, and
// removes the file. seq keeps temp names stable within a run for logs.
func (a *Acquirer) acquireOne(ctx context.Context, seq int, ref types.PaperRef) (string, error) {
	body, err := a.Fetcher.Fetch(ctx, ref.DocumentURL)
	if err != nil {
		return "", fmt.Errorf("fetching document: %w", err)
	}
	defer body.Close()

	tmp, err := os.CreateTemp(a.Dir, fmt.Sprintf("paper-%03d-*.pdf", seq+1))
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, copyErr := io.Copy(tmp, body)
	closeErr := tmp.Close()
	if copyErr != nil {
		return "", fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	text, err := a.Extractor.Extract(ctx, tmpPath)
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}
	return text, nil
}
