// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze produces a per-paper structured analysis (summary,
// methodology, key findings) from extracted text via the language model.
package analyze

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/litreview/internal/llm"
	"github.com/pdiddy/litreview/internal/sections"
	"github.com/pdiddy/litreview/pkg/types"
)

// Section labels the model is asked to emit. Parsing slices the response
// text between their first occurrences.
const (
	labelSummary     = "Summary:"
	labelMethodology = "Methodology:"
	labelFindings    = "Key Findings:"
)

const (
	defaultMaxChars = 40000
	defaultTimeout  = 180 * time.Second
)

// Analyzer runs the per-item analysis stage.
type Analyzer struct {
	Client   llm.Client
	MaxChars int
	Timeout  time.Duration
}

// NewAnalyzer builds an Analyzer from config, applying defaults.
func NewAnalyzer(client llm.Client, cfg types.AnalysisConfig) *Analyzer {
	a := &Analyzer{Client: client, MaxChars: cfg.MaxChars, Timeout: cfg.Timeout}
	if a.MaxChars <= 0 {
		a.MaxChars = defaultMaxChars
	}
	if a.Timeout <= 0 {
		a.Timeout = defaultTimeout
	}
	return a
}

// Run analyzes each extracted paper independently. A failed or blocked
// model call skips that paper only. The stage records an error when every
// paper failed and no earlier stage already recorded one.
func (a *Analyzer) Run(ctx context.Context, st *types.ResearchState) {
	if st.Failed() {
		return
	}
	if len(st.Extracted) == 0 {
		st.RecordError("no extracted text to analyze")
		return
	}

	// Document URLs travel on the discovery records; join them back by ID
	// so each analysis can cite its source.
	urls := make(map[string]string, len(st.Discovered))
	for _, ref := range st.Discovered {
		urls[ref.ID] = ref.DocumentURL
	}

	var analyses []types.PaperAnalysis
	failed := 0
	for _, paper := range st.Extracted {
		analysis, ok := a.analyzeOne(ctx, paper)
		if !ok {
			failed++
			continue
		}
		analysis.DocumentURL = urls[paper.ID]
		analyses = append(analyses, analysis)
	}

	if len(analyses) == 0 {
		st.RecordError("analysis failed for every extracted paper")
		return
	}

	st.Analyses = analyses
	zap.L().Info("analysis complete",
		zap.Int("analyzed", len(analyses)),
		zap.Int("failed", failed))
}

func (a *Analyzer) analyzeOne(ctx context.Context, paper types.ExtractedPaper) (types.PaperAnalysis, bool) {
	text := truncate(paper.Text, a.MaxChars)

	res, err := a.Client.Generate(ctx, analysisPrompt(text), a.Timeout)
	if err != nil {
		zap.L().Warn("analysis request failed",
			zap.String("title", paper.Title),
			zap.Error(err))
		return types.PaperAnalysis{}, false
	}
	if res.Blocked {
		zap.L().Warn("analysis request blocked",
			zap.String("title", paper.Title),
			zap.String("reason", res.BlockReason))
		return types.PaperAnalysis{}, false
	}
	if res.Empty() {
		zap.L().Warn("analysis returned no content", zap.String("title", paper.Title))
		return types.PaperAnalysis{}, false
	}

	analysis := parseAnalysis(res.Text)
	analysis.Title = paper.Title
	return analysis, true
}

// truncate caps text at max bytes, backing off so a multi-byte rune is never
// split mid-sequence.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}

// parseAnalysis slices the response between the three section labels. When
// no label is present at all, the whole response becomes the summary so the
// content is not lost.
func parseAnalysis(text string) types.PaperAnalysis {
	parsed := sections.Parse(text, []string{labelSummary, labelMethodology, labelFindings})
	analysis := types.PaperAnalysis{
		Summary:     parsed[labelSummary],
		Methodology: parsed[labelMethodology],
		KeyFindings: parsed[labelFindings],
	}
	if analysis.Summary == "" && analysis.Methodology == "" && analysis.KeyFindings == "" {
		analysis.Summary = strings.TrimSpace(text)
	}
	return analysis
}
