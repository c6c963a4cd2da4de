// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the litreview CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/litreview/internal/config"
	"github.com/pdiddy/litreview/internal/secrets"
	"github.com/pdiddy/litreview/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	cfg     *types.PipelineConfig
)

// rootCmd is the base command for the litreview CLI.
var rootCmd = &cobra.Command{
	Use:   "litreview",
	Short: "Automated literature review pipeline",
	Long: `litreview runs an automated literature review for a research topic: it
discovers papers, downloads and extracts their text, analyzes each paper
with a language model, synthesizes a cross-paper overview and comparison,
and assembles a Markdown report.

Run a review synchronously with "litreview run", or start the HTTP server
with "litreview serve" to submit and poll runs over REST.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		loaded, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		c.Search.SemanticScholarAPIKey = secrets.Fallback(loaded, secrets.KeySemanticScholar, c.Search.SemanticScholarAPIKey)
		c.Analysis.APIKey = secrets.Fallback(loaded, secrets.KeyAnthropic, c.Analysis.APIKey)
		c.Synthesis.APIKey = secrets.Fallback(loaded, secrets.KeyAnthropic, c.Synthesis.APIKey)

		if err := config.InitLogger(c.Log); err != nil {
			return err
		}
		cfg = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./litreview.yaml or ~/.config/litreview/litreview.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
