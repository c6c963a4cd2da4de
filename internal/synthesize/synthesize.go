// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synthesize produces the cross-paper outputs: a topic overview and
// a comparative analysis, from the per-paper analyses in a single model call.
package synthesize

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/litreview/internal/llm"
	"github.com/pdiddy/litreview/internal/sections"
	"github.com/pdiddy/litreview/pkg/types"
)

const (
	labelOverview   = "Topic Overview:"
	labelComparison = "Detailed Comparative Analysis:"
)

// Placeholder texts for the degenerate cases. These appear verbatim in the
// final report, so they are written for the reader, not the log.
const (
	noDataText           = "N/A - No papers analyzed."
	comparisonSkipped    = "Comparison skipped: Only one paper was successfully analyzed."
	comparisonUnparsable = "Could not parse detailed comparison section."
)

const defaultTimeout = 300 * time.Second

// Synthesizer runs the cross-item synthesis stage.
type Synthesizer struct {
	Client  llm.Client
	Timeout time.Duration
}

// NewSynthesizer builds a Synthesizer from config, applying defaults.
func NewSynthesizer(client llm.Client, cfg types.SynthesisConfig) *Synthesizer {
	s := &Synthesizer{Client: client, Timeout: cfg.Timeout}
	if s.Timeout <= 0 {
		s.Timeout = defaultTimeout
	}
	return s
}

// Run fills st.TopicOverview and st.Comparison. With zero analyses both
// fields get placeholder text and an error is recorded if none exists; with
// one analysis only the overview is generated and the comparison is marked
// skipped; with two or more a single model call produces both sections.
func (s *Synthesizer) Run(ctx context.Context, st *types.ResearchState) {
	if len(st.Analyses) == 0 {
		st.TopicOverview = noDataText
		st.Comparison = noDataText
		st.RecordError("no analyses available to synthesize")
		return
	}

	single := len(st.Analyses) == 1
	var prompt string
	if single {
		prompt = overviewPrompt(st.Topic, st.Analyses)
	} else {
		prompt = synthesisPrompt(st.Topic, st.Analyses)
	}

	res, err := s.Client.Generate(ctx, prompt, s.Timeout)
	switch {
	case err != nil:
		msg := fmt.Sprintf("Synthesis failed: %v", err)
		st.TopicOverview = msg
		st.Comparison = msg
		st.RecordError("synthesis request failed")
		return
	case res.Blocked:
		msg := "Synthesis request blocked: " + res.BlockReason
		st.TopicOverview = msg
		st.Comparison = msg
		st.RecordError("synthesis request blocked by the model")
		return
	case res.Empty():
		st.TopicOverview = "Overview failed: empty model response"
		st.Comparison = "Comparison failed: empty model response"
		st.RecordError("synthesis returned no content")
		return
	}

	overview, comparison := parseSynthesis(res.Text)
	st.TopicOverview = overview
	if single {
		comparison = comparisonSkipped
	}
	st.Comparison = comparison
	zap.L().Info("synthesis complete", zap.Int("analyses", len(st.Analyses)))
}

// parseSynthesis splits the response at the two section labels. A response
// with only the overview label keeps its overview and marks the comparison
// unparsable; a response with neither label is used whole as the overview
// rather than discarded.
func parseSynthesis(text string) (overview, comparison string) {
	parsed := sections.Parse(text, []string{labelOverview, labelComparison})
	overview = parsed[labelOverview]
	comparison = parsed[labelComparison]

	switch {
	case sections.Found(text, labelOverview) && sections.Found(text, labelComparison):
		return overview, comparison
	case sections.Found(text, labelOverview):
		return overview, comparisonUnparsable
	default:
		return text, comparisonUnparsable
	}
}
