// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm defines the narrow language-model collaborator interface used
// by the analysis and synthesis stages, and its Anthropic API backend.
package llm

import (
	"context"
	"strings"
	"time"
)

// Result is the outcome of one model request. Exactly one of three shapes:
// usable text, a content-safety block with a reason, or an empty response.
type Result struct {
	Text        string
	Blocked     bool
	BlockReason string
}

// Empty reports whether the model returned no usable content without
// blocking. Callers treat this as a per-item failure, not an error.
func (r Result) Empty() bool {
	return !r.Blocked && strings.TrimSpace(r.Text) == ""
}

// Client generates free-form text for a prompt. Implementations return an
// error only for transport or auth failures; refusals and empty responses
// are reported through the Result so stages can degrade instead of abort.
type Client interface {
	Generate(ctx context.Context, prompt string, timeout time.Duration) (Result, error)
}
