// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sections slices free-form model output into labeled sections.
//
// Model responses are plain text with embedded labels ("Summary:",
// "Topic Overview:", ...) rather than a typed payload. Parse treats this as
// a lenient grammar: it locates each label as a literal substring, orders
// the labels it found by offset, and assigns each label the text between it
// and the next found label. Every requested label maps to a value — absent
// labels map to the empty string, never to a missing key — so callers can
// substitute an explicit sentinel instead of failing.
package sections

import (
	"sort"
	"strings"
)

// Parse splits text into sections keyed by label. Labels may occur in any
// order; the first occurrence of each counts. Text before the earliest
// label is ignored unless no label was found at all, in which case every
// section is empty and the caller decides what to do with the raw text.
func Parse(text string, labels []string) map[string]string {
	type hit struct {
		label      string
		start, end int
	}

	hits := make([]hit, 0, len(labels))
	for _, label := range labels {
		if i := strings.Index(text, label); i >= 0 {
			hits = append(hits, hit{label: label, start: i, end: i + len(label)})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	out := make(map[string]string, len(labels))
	for _, label := range labels {
		out[label] = ""
	}
	for i, h := range hits {
		end := len(text)
		if i+1 < len(hits) {
			end = hits[i+1].start
		}
		out[h.label] = strings.TrimSpace(text[h.end:end])
	}
	return out
}

// Found reports whether label occurs in text as a literal substring.
func Found(text, label string) bool {
	return strings.Contains(text, label)
}
