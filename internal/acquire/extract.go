// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/pdiddy/litreview/internal/container"
)

// markitdownImage is the container image used by the containerized backend.
const markitdownImage = "markitdown:latest"

// TextExtractor turns a downloaded document into plain text. An empty
// result is not an error; image-only PDFs legitimately yield no text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// PdftotextExtractor shells out to the poppler pdftotext binary.
type PdftotextExtractor struct {
	BinPath string
}

// NewPdftotextExtractor builds the default extractor backend. If binPath is
// empty, "pdftotext" is resolved from PATH.
func NewPdftotextExtractor(binPath string) *PdftotextExtractor {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &PdftotextExtractor{BinPath: binPath}
}

// Extract runs pdftotext -layout on the given PDF and returns stdout.
func (p *PdftotextExtractor) Extract(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, p.BinPath, "-layout", path, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed for %s: %s: %w", path, stderr.String(), err)
	}
	return stdout.String(), nil
}

// MarkitdownExtractor converts PDFs to Markdown text inside a container.
// Useful where poppler is not installed on the host.
type MarkitdownExtractor struct {
	Runtime container.Runtime
	Image   string
}

// NewMarkitdownExtractor detects a container runtime and verifies the
// markitdown image is present.
func NewMarkitdownExtractor() (*MarkitdownExtractor, error) {
	rt, err := container.DetectRuntime()
	if err != nil {
		return nil, err
	}
	if err := rt.ImageExists(markitdownImage); err != nil {
		return nil, err
	}
	return &MarkitdownExtractor{Runtime: rt, Image: markitdownImage}, nil
}

// Extract pipes the PDF through the container and returns its stdout.
func (m *MarkitdownExtractor) Extract(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.Runtime.Run(m.Image, f, &out); err != nil {
		return "", fmt.Errorf("markitdown conversion: %w", err)
	}
	return out.String(), nil
}

// NewExtractor selects the configured backend by name.
func NewExtractor(name, pdftotextPath string) (TextExtractor, error) {
	switch name {
	case "", "pdftotext":
		return NewPdftotextExtractor(pdftotextPath), nil
	case "markitdown":
		return NewMarkitdownExtractor()
	default:
		return nil, fmt.Errorf("unknown extractor backend %q", name)
	}
}
