package config

// Config represents the complete configuration for the compliscan application.
// It covers all commands (scan, parse, batch) and supports loading from
// configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Pipeline configuration
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// PipelineConfig contains extraction pipeline settings.
type PipelineConfig struct {
	// Normalization settings
	Normalize NormalizeConfig `mapstructure:"normalize" yaml:"normalize" json:"normalize"`

	// Recognition settings
	Recognizer RecognizerConfig `mapstructure:"recognizer" yaml:"recognizer" json:"recognizer"`

	// PDF rasterization resolution
	PDFRenderDPI int `mapstructure:"pdf_render_dpi" yaml:"pdf_render_dpi" json:"pdf_render_dpi"`
}

// NormalizeConfig contains document normalization settings.
type NormalizeConfig struct {
	OptimalWidth   int     `mapstructure:"optimal_width" yaml:"optimal_width" json:"optimal_width"`
	WidthTolerance float64 `mapstructure:"width_tolerance" yaml:"width_tolerance" json:"width_tolerance"`
}

// RecognizerConfig contains text recognition settings.
type RecognizerConfig struct {
	Language       string   `mapstructure:"language" yaml:"language" json:"language"`
	TessdataPrefix string   `mapstructure:"tessdata_prefix" yaml:"tessdata_prefix" json:"tessdata_prefix"`
	SegModes       []string `mapstructure:"seg_modes" yaml:"seg_modes" json:"seg_modes"`
	MinConfidence  float64  `mapstructure:"min_confidence" yaml:"min_confidence" json:"min_confidence"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format      string `mapstructure:"format" yaml:"format" json:"format"`
	File        string `mapstructure:"file" yaml:"file" json:"file"`
	IncludeText bool   `mapstructure:"include_text" yaml:"include_text" json:"include_text"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers         int  `mapstructure:"workers" yaml:"workers" json:"workers"`
	ContinueOnError bool `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
}
