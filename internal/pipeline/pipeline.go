// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the literature-review stages over a shared
// research state. Stages never panic or return errors; every terminal
// failure is a value in the state's error slot, and the first recorded
// error is carried forward unchanged through later stages.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/litreview/pkg/types"
)

// Stage is one pipeline step. Run mutates the state in place; a stage that
// observes a prior error passes it through rather than doing work.
type Stage struct {
	Name string
	Run  func(ctx context.Context, st *types.ResearchState)
}

// Pipeline executes stages in order, synchronously, one at a time.
type Pipeline struct {
	stages []Stage
}

// New builds a pipeline from the given stages.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Stages assembles the standard five-stage review pipeline.
func Stages(discovery, acquisition, analysis, synthesis, assembly func(context.Context, *types.ResearchState)) []Stage {
	return []Stage{
		{Name: "discovery", Run: discovery},
		{Name: "acquisition", Run: acquisition},
		{Name: "analysis", Run: analysis},
		{Name: "synthesis", Run: synthesis},
		{Name: "assembly", Run: assembly},
	}
}

// Run executes all stages for one topic and returns the final state. It
// always returns a state, never an error; callers inspect LastError.
func (p *Pipeline) Run(ctx context.Context, topic string, paperLimit int) *types.ResearchState {
	st := &types.ResearchState{Topic: topic, PaperLimit: paperLimit}
	start := time.Now()
	zap.L().Info("run started",
		zap.String("topic", topic),
		zap.Int("paper_limit", st.Limit()))

	for _, stage := range p.stages {
		stageStart := time.Now()
		stage.Run(ctx, st)
		zap.L().Debug("stage finished",
			zap.String("stage", stage.Name),
			zap.Duration("elapsed", time.Since(stageStart)),
			zap.Bool("failed", st.Failed()))
	}

	if st.Failed() {
		zap.L().Warn("run finished with error",
			zap.String("topic", topic),
			zap.String("error", st.LastError),
			zap.Duration("elapsed", time.Since(start)))
	} else {
		zap.L().Info("run finished",
			zap.String("topic", topic),
			zap.String("report", st.ReportPath),
			zap.Duration("elapsed", time.Since(start)))
	}
	return st
}
