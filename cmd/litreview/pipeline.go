// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/pdiddy/litreview/internal/acquire"
	"github.com/pdiddy/litreview/internal/analyze"
	"github.com/pdiddy/litreview/internal/llm"
	"github.com/pdiddy/litreview/internal/pipeline"
	"github.com/pdiddy/litreview/internal/report"
	"github.com/pdiddy/litreview/internal/search"
	"github.com/pdiddy/litreview/internal/synthesize"
	"github.com/pdiddy/litreview/pkg/types"
)

// buildPipeline wires the five stages from config.
func buildPipeline(cfg *types.PipelineConfig) (*pipeline.Pipeline, error) {
	extractor, err := acquire.NewExtractor(cfg.Acquisition.Extractor, cfg.Acquisition.PdftotextPath)
	if err != nil {
		return nil, err
	}

	discoverer := &search.Discoverer{
		Primary:   search.NewSemanticScholarProvider(cfg.Search),
		Secondary: search.NewArxivProvider(cfg.Search),
	}
	acquirer := &acquire.Acquirer{
		Fetcher:   acquire.NewHTTPFetcher(cfg.Acquisition),
		Extractor: extractor,
		Dir:       cfg.Acquisition.DownloadDir,
	}
	analyzer := analyze.NewAnalyzer(llm.NewAnthropicClient(cfg.Analysis.ModelConfig), cfg.Analysis)
	synthesizer := synthesize.NewSynthesizer(llm.NewAnthropicClient(cfg.Synthesis.ModelConfig), cfg.Synthesis)
	renderer := report.NewRenderer(cfg.Report)

	stages := pipeline.Stages(
		discoverer.Run,
		acquirer.Run,
		analyzer.Run,
		synthesizer.Run,
		renderer.Run,
	)
	return pipeline.New(stages...), nil
}
