// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the litreview pipeline.
// ResearchState is the single value threaded through the five pipeline
// stages; the remaining types describe its collections and the per-stage
// configuration.
package types

// PaperRef is a discovered, not-yet-acquired candidate paper. ID is unique
// within a run across all providers; DocumentURL always resolves to a
// downloadable document (candidates without one are discarded at discovery).
type PaperRef struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	DocumentURL string `json:"document_url" yaml:"document_url"`
}

// ExtractedPaper holds the plain text extracted from one acquired document.
// Only papers that yielded non-empty text appear in the state.
type ExtractedPaper struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}

// PaperAnalysis is the structured result of analyzing one paper's text.
type PaperAnalysis struct {
	Title       string `json:"title" yaml:"title"`
	DocumentURL string `json:"document_url" yaml:"document_url"`
	Summary     string `json:"summary" yaml:"summary"`
	Methodology string `json:"methodology" yaml:"methodology"`
	KeyFindings string `json:"key_findings" yaml:"key_findings"`
}

// DefaultPaperLimit is the target paper count used when a run does not
// specify one.
const DefaultPaperLimit = 3

// ResearchState is threaded through all pipeline stages of one run. Topic
// and PaperLimit are set at creation and never change; each stage appends
// its own collection and may record a terminal error in LastError. Stages
// never widen a previous stage's collection: Extracted is a subset of
// Discovered by ID in discovery order, and Analyses is a subset of
// Extracted by title.
type ResearchState struct {
	Topic      string
	PaperLimit int

	Discovered []PaperRef
	Extracted  []ExtractedPaper
	Analyses   []PaperAnalysis

	TopicOverview string
	Comparison    string

	ReportPath string

	// LastError carries the first terminal error forward through later
	// stages. Per-item failures never land here; only a stage-level
	// "nothing to hand downstream" condition does.
	LastError string
}

// RecordError stores msg as the run's terminal error unless an earlier
// stage already recorded one. The first error wins so the run reports its
// root cause rather than a cascading secondary symptom.
func (s *ResearchState) RecordError(msg string) {
	if s.LastError == "" {
		s.LastError = msg
	}
}

// Failed reports whether a terminal error has been recorded.
func (s *ResearchState) Failed() bool {
	return s.LastError != ""
}

// Limit returns the run's paper limit, falling back to DefaultPaperLimit
// when unset or non-positive.
func (s *ResearchState) Limit() int {
	if s.PaperLimit <= 0 {
		return DefaultPaperLimit
	}
	return s.PaperLimit
}
