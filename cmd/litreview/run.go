// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/litreview/internal/registry"
	"github.com/pdiddy/litreview/internal/store"
)

var runPapers int

var runCmd = &cobra.Command{
	Use:   "run <topic>",
	Short: "Run a literature review synchronously",
	Long: `Run executes the full review pipeline for a topic and prints the path of
the generated report. The run is recorded in the run-history database.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.TrimSpace(strings.Join(args, " "))
		if topic == "" {
			return eris.New("topic is empty")
		}

		p, err := buildPipeline(cfg)
		if err != nil {
			return err
		}

		reg := registry.New()
		run := reg.Create(topic, runPapers)
		reg.Start(run.ID)

		st := p.Run(cmd.Context(), topic, runPapers)
		run = reg.Finish(run.ID, st)

		if s, err := store.Open(cfg.Store.Path); err != nil {
			zap.L().Warn("run history unavailable", zap.Error(err))
		} else {
			if err := s.RecordRun(run); err != nil {
				zap.L().Warn("recording run failed", zap.Error(err))
			}
			s.Close()
		}

		if st.Failed() {
			fmt.Printf("Run %s failed: %s\n", run.ID, st.LastError)
			return eris.New(st.LastError)
		}
		fmt.Printf("Run %s completed.\n", run.ID)
		fmt.Printf("Papers analyzed: %d\n", len(st.Analyses))
		fmt.Printf("Report: %s\n", st.ReportPath)
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runPapers, "papers", 0, "number of papers to review (default 3)")
	rootCmd.AddCommand(runCmd)
}
