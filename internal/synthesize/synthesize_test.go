// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/litreview/internal/llm"
	"github.com/pdiddy/litreview/pkg/types"
)

type stubClient struct {
	result  llm.Result
	err     error
	calls   int
	prompts []string
}

func (c *stubClient) Generate(_ context.Context, prompt string, _ time.Duration) (llm.Result, error) {
	c.calls++
	c.prompts = append(c.prompts, prompt)
	return c.result, c.err
}

func analyses(n int) []types.PaperAnalysis {
	out := make([]types.PaperAnalysis, n)
	for i := range out {
		out[i] = types.PaperAnalysis{
			Title:       "Paper",
			Summary:     "s",
			Methodology: "m",
			KeyFindings: "f",
		}
	}
	return out
}

func TestSynthesizerTwoPapers(t *testing.T) {
	client := &stubClient{result: llm.Result{
		Text: "Topic Overview: The field is active.\nDetailed Comparative Analysis: Paper 1 differs from paper 2.",
	}}
	s := NewSynthesizer(client, types.SynthesisConfig{})

	st := &types.ResearchState{Topic: "t", Analyses: analyses(2)}
	s.Run(context.Background(), st)

	if st.Failed() {
		t.Fatalf("unexpected error: %q", st.LastError)
	}
	if st.TopicOverview != "The field is active." {
		t.Errorf("TopicOverview = %q", st.TopicOverview)
	}
	if st.Comparison != "Paper 1 differs from paper 2." {
		t.Errorf("Comparison = %q", st.Comparison)
	}
	if !strings.Contains(client.prompts[0], "Detailed Comparative Analysis") {
		t.Error("combined prompt should request the comparison section")
	}
}

func TestSynthesizerSinglePaper(t *testing.T) {
	client := &stubClient{result: llm.Result{Text: "Topic Overview: One paper's view."}}
	s := NewSynthesizer(client, types.SynthesisConfig{})

	st := &types.ResearchState{Topic: "t", Analyses: analyses(1)}
	s.Run(context.Background(), st)

	if client.calls != 1 {
		t.Fatalf("model called %d times, want 1", client.calls)
	}
	if strings.Contains(client.prompts[0], "Detailed Comparative Analysis") {
		t.Error("single-paper prompt should not request a comparison")
	}
	if st.TopicOverview != "One paper's view." {
		t.Errorf("TopicOverview = %q", st.TopicOverview)
	}
	if st.Comparison != comparisonSkipped {
		t.Errorf("Comparison = %q", st.Comparison)
	}
}

func TestSynthesizerNoAnalyses(t *testing.T) {
	client := &stubClient{}
	s := NewSynthesizer(client, types.SynthesisConfig{})

	st := &types.ResearchState{Topic: "t"}
	s.Run(context.Background(), st)

	if client.calls != 0 {
		t.Errorf("model called %d times, want 0", client.calls)
	}
	if st.TopicOverview != noDataText || st.Comparison != noDataText {
		t.Errorf("placeholders = %q / %q", st.TopicOverview, st.Comparison)
	}
	if st.LastError != "no analyses available to synthesize" {
		t.Errorf("LastError = %q", st.LastError)
	}
}

func TestSynthesizerNoAnalysesKeepsPriorError(t *testing.T) {
	s := NewSynthesizer(&stubClient{}, types.SynthesisConfig{})

	st := &types.ResearchState{Topic: "t", LastError: "acquisition failed"}
	s.Run(context.Background(), st)

	if st.LastError != "acquisition failed" {
		t.Errorf("LastError = %q, want prior error preserved", st.LastError)
	}
	if st.TopicOverview != noDataText {
		t.Errorf("TopicOverview = %q", st.TopicOverview)
	}
}

func TestSynthesizerBlocked(t *testing.T) {
	client := &stubClient{result: llm.Result{Blocked: true, BlockReason: "refusal"}}
	s := NewSynthesizer(client, types.SynthesisConfig{})

	st := &types.ResearchState{Topic: "t", Analyses: analyses(2)}
	s.Run(context.Background(), st)

	if !strings.Contains(st.TopicOverview, "blocked") || !strings.Contains(st.Comparison, "blocked") {
		t.Errorf("fields = %q / %q", st.TopicOverview, st.Comparison)
	}
	if st.LastError != "synthesis request blocked by the model" {
		t.Errorf("LastError = %q", st.LastError)
	}
}

func TestSynthesizerTransportError(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}
	s := NewSynthesizer(client, types.SynthesisConfig{})

	st := &types.ResearchState{Topic: "t", Analyses: analyses(2)}
	s.Run(context.Background(), st)

	if !strings.Contains(st.TopicOverview, "connection refused") {
		t.Errorf("TopicOverview = %q", st.TopicOverview)
	}
	if st.LastError != "synthesis request failed" {
		t.Errorf("LastError = %q", st.LastError)
	}
}

func TestParseSynthesis(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantOverview   string
		wantComparison string
	}{
		{
			"both labels",
			"Topic Overview: A.\nDetailed Comparative Analysis: B.",
			"A.", "B.",
		},
		{
			"overview only",
			"Topic Overview: A.",
			"A.", comparisonUnparsable,
		},
		{
			"no labels",
			"Free-form response.",
			"Free-form response.", comparisonUnparsable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overview, comparison := parseSynthesis(tt.text)
			if overview != tt.wantOverview {
				t.Errorf("overview = %q, want %q", overview, tt.wantOverview)
			}
			if comparison != tt.wantComparison {
				t.Errorf("comparison = %q, want %q", comparison, tt.wantComparison)
			}
		})
	}
}
