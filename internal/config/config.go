// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads pipeline configuration from YAML and environment
// variables and initializes the global logger.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/litreview/pkg/types"
)

// Load reads litreview.yaml (from cfgFile if given, otherwise the working
// directory or ~/.config/litreview/) plus LITREVIEW_* environment
// overrides, applies defaults, and decodes into a PipelineConfig. A missing
// config file is not an error; the defaults describe a working pipeline.
func Load(cfgFile string) (*types.PipelineConfig, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("litreview")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "litreview"))
		}
	}

	v.SetEnvPrefix("LITREVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Only a missing file is tolerable; a file that exists but does
		// not parse must not degrade silently to defaults.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, eris.Wrapf(err, "config: reading %s", v.ConfigFileUsed())
		}
	}

	var cfg types.PipelineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: decoding")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("search.timeout", "30s")
	v.SetDefault("search.user_agent", "litreview/0.1")
	// At most one primary-provider request per second.
	v.SetDefault("search.request_interval", "1100ms")

	v.SetDefault("acquisition.timeout", "90s")
	v.SetDefault("acquisition.user_agent", "litreview/0.1")
	v.SetDefault("acquisition.download_dir", "downloads")
	v.SetDefault("acquisition.extractor", "pdftotext")

	v.SetDefault("analysis.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("analysis.max_tokens", 4096)
	v.SetDefault("analysis.timeout", "180s")
	v.SetDefault("analysis.max_chars", 40000)

	v.SetDefault("synthesis.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("synthesis.max_tokens", 8192)
	v.SetDefault("synthesis.timeout", "300s")

	v.SetDefault("report.output_dir", "reports")
	v.SetDefault("store.path", "litreview.db")
	v.SetDefault("server.port", 8080)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// InitLogger builds a zap logger from cfg and installs it as the global
// logger used throughout the pipeline.
func InitLogger(cfg types.LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
