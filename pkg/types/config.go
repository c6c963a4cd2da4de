package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "litreview/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the discovery stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty" mapstructure:"semantic_scholar_api_key"`

	// RequestInterval is the minimum spacing between requests to the
	// primary provider (default 1.1s, at most one request per second).
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval" mapstructure:"request_interval"`
}

// AcquisitionConfig holds settings for the acquisition stage.
type AcquisitionConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// DownloadDir is the directory for transient document downloads. Each
	// file lives only for the duration of one paper's processing.
	DownloadDir string `json:"download_dir" yaml:"download_dir" mapstructure:"download_dir"`

	// Extractor selects the text extraction backend: pdftotext or markitdown.
	Extractor string `json:"extractor" yaml:"extractor" mapstructure:"extractor"`

	// PdftotextPath overrides the pdftotext binary location.
	PdftotextPath string `json:"pdftotext_path,omitempty" yaml:"pdftotext_path,omitempty" mapstructure:"pdftotext_path"`
}

// ModelConfig holds shared settings for stages that call the language model.
type ModelConfig struct {
	// Model is the model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the model API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxTokens caps the response length per request.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// Timeout bounds a single model request.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// AnalysisConfig holds settings for the per-paper analysis stage.
type AnalysisConfig struct {
	ModelConfig `yaml:",inline" mapstructure:",squash"`

	// MaxChars truncates each paper's text before prompting, guarding the
	// model's context window (default 40000).
	MaxChars int `json:"max_chars" yaml:"max_chars" mapstructure:"max_chars"`
}

// SynthesisConfig holds settings for the cross-paper synthesis stage.
type SynthesisConfig struct {
	ModelConfig `yaml:",inline" mapstructure:",squash"`
}

// ReportConfig holds settings for report assembly.
type ReportConfig struct {
	// OutputDir is the directory where report artifacts are written.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
}

// StoreConfig holds settings for the run-history store.
type StoreConfig struct {
	// Path is the SQLite database file (default "litreview.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ServerConfig holds settings for the run-control HTTP surface.
type ServerConfig struct {
	Port int `json:"port" yaml:"port" mapstructure:"port"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format selects the encoder: json or console.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Search      SearchConfig      `json:"search" yaml:"search" mapstructure:"search"`
	Acquisition AcquisitionConfig `json:"acquisition" yaml:"acquisition" mapstructure:"acquisition"`
	Analysis    AnalysisConfig    `json:"analysis" yaml:"analysis" mapstructure:"analysis"`
	Synthesis   SynthesisConfig   `json:"synthesis" yaml:"synthesis" mapstructure:"synthesis"`
	Report      ReportConfig      `json:"report" yaml:"report" mapstructure:"report"`
	Store       StoreConfig       `json:"store" yaml:"store" mapstructure:"store"`
	Server      ServerConfig      `json:"server" yaml:"server" mapstructure:"server"`
	Log         LogConfig         `json:"log" yaml:"log" mapstructure:"log"`
}
