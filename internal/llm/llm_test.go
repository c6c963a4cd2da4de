// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import "testing"

func TestResultEmpty(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want bool
	}{
		{"text", Result{Text: "overview of the field"}, false},
		{"whitespace only", Result{Text: "  \n\t"}, true},
		{"no text", Result{}, true},
		{"blocked", Result{Blocked: true, BlockReason: "refusal"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}
