// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the final research report as a Markdown artifact
// with YAML front matter.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litreview/pkg/types"
)

// listMarker matches lines the model formatted as list items (*, - or
// numbered). They are re-emitted as uniform Markdown bullets.
var listMarker = regexp.MustCompile(`^(\*|-|\d+\.)\s*`)

// nonSlug matches runs of characters that cannot appear in a filename slug.
var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// frontMatter is the metadata block at the top of every report.
type frontMatter struct {
	Topic       string `yaml:"topic"`
	GeneratedAt string `yaml:"generated_at"`
	PaperCount  int    `yaml:"paper_count"`
}

// Renderer writes report artifacts under OutputDir.
type Renderer struct {
	OutputDir string

	// now is stubbed in tests for stable filenames.
	now func() time.Time
}

// NewRenderer builds a Renderer from config.
func NewRenderer(cfg types.ReportConfig) *Renderer {
	dir := cfg.OutputDir
	if dir == "" {
		dir = "reports"
	}
	return &Renderer{OutputDir: dir, now: time.Now}
}

// Run renders the report and records its path on the state. With no
// analyses there is nothing meaningful to render; the stage records an
// error only when no earlier stage already explained the failure.
func (r *Renderer) Run(_ context.Context, st *types.ResearchState) {
	if len(st.Analyses) == 0 {
		st.RecordError("cannot generate report without successful analyses")
		return
	}

	path, err := r.Render(st.Topic, st.Analyses, st.TopicOverview, st.Comparison)
	if err != nil {
		zap.L().Error("report rendering failed", zap.Error(err))
		st.RecordError(fmt.Sprintf("report generation failed: %v", err))
		return
	}
	st.ReportPath = path
	zap.L().Info("report written", zap.String("path", path))
}

// Render writes the Markdown artifact and returns its path.
func (r *Renderer) Render(topic string, analyses []types.PaperAnalysis, overview, comparison string) (string, error) {
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return "", eris.Wrap(err, "report: create output directory")
	}

	now := r.now()
	meta, err := yaml.Marshal(frontMatter{
		Topic:       topic,
		GeneratedAt: now.UTC().Format(time.RFC3339),
		PaperCount:  len(analyses),
	})
	if err != nil {
		return "", eris.Wrap(err, "report: marshal front matter")
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")

	b.WriteString("# AI-Generated Research Report\n\n")
	fmt.Fprintf(&b, "## Topic: %s\n\n", topic)

	b.WriteString("## Topic Overview\n\n")
	writeBody(&b, overview)

	b.WriteString("## Comparative Analysis\n\n")
	writeBody(&b, comparison)

	b.WriteString("## Individual Paper Summaries\n\n")
	for i, a := range analyses {
		fmt.Fprintf(&b, "### Paper %d: %s\n\n", i+1, a.Title)
		b.WriteString("**Summary:**\n\n")
		writeBody(&b, a.Summary)
		b.WriteString("**Methodology:**\n\n")
		writeBody(&b, a.Methodology)
		b.WriteString("**Key Findings:**\n\n")
		writeBody(&b, a.KeyFindings)
	}

	b.WriteString("## Source Paper URLs\n\n")
	for _, a := range analyses {
		url := a.DocumentURL
		if url == "" {
			url = "URL not available"
		}
		fmt.Fprintf(&b, "- *%s*: %s\n", a.Title, url)
	}
	b.WriteString("\n")

	name := fmt.Sprintf("research-report-%s-%s.md", slug(topic), now.Format("20060102-150405"))
	path := filepath.Join(r.OutputDir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", eris.Wrapf(err, "report: write %s", path)
	}
	return path, nil
}

// writeBody emits a text block, normalizing model-produced list markers to
// Markdown bullets and dropping blank lines within the block.
func writeBody(b *strings.Builder, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		b.WriteString("N/A\n\n")
		return
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := listMarker.FindString(line); m != "" {
			fmt.Fprintf(b, "- %s\n", strings.TrimSpace(line[len(m):]))
		} else {
			b.WriteString(line + "\n")
		}
	}
	b.WriteString("\n")
}

// slug reduces a topic to a short filename-safe token.
func slug(topic string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(topic), "-")
	s = strings.Trim(s, "-")
	if len(s) > 40 {
		s = strings.Trim(s[:40], "-")
	}
	if s == "" {
		s = "report"
	}
	return s
}
