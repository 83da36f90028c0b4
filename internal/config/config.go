// Package config defines the application configuration and loads it from
// files, environment variables, and flags via viper.
package config

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/compliscan/compliscan/internal/document"
	"github.com/compliscan/compliscan/internal/pdfrender"
	"github.com/compliscan/compliscan/internal/pipeline"
	"github.com/compliscan/compliscan/internal/recognizer"
)

var validFormats = []string{"text", "json"}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	norm := document.DefaultNormalizeConfig()
	eng := recognizer.DefaultConfig()
	modes := make([]string, 0, 3)
	for _, m := range recognizer.DefaultSegModes() {
		modes = append(modes, m.String())
	}
	return &Config{
		LogLevel: "info",
		Pipeline: PipelineConfig{
			Normalize: NormalizeConfig{
				OptimalWidth:   norm.OptimalWidth,
				WidthTolerance: norm.WidthTolerance,
			},
			Recognizer: RecognizerConfig{
				Language:      eng.Language,
				SegModes:      modes,
				MinConfidence: 60,
			},
			PDFRenderDPI: pdfrender.DefaultDPI,
		},
		Output: OutputConfig{Format: "text"},
		Batch: BatchConfig{
			Workers:         runtime.NumCPU(),
			ContinueOnError: true,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Pipeline.Normalize.OptimalWidth <= 0 {
		return fmt.Errorf("pipeline.normalize.optimal_width must be positive, got %d",
			c.Pipeline.Normalize.OptimalWidth)
	}
	if t := c.Pipeline.Normalize.WidthTolerance; t < 0 || t >= 1 {
		return fmt.Errorf("pipeline.normalize.width_tolerance must be in [0,1), got %g", t)
	}
	if c.Pipeline.PDFRenderDPI <= 0 {
		return fmt.Errorf("pipeline.pdf_render_dpi must be positive, got %d", c.Pipeline.PDFRenderDPI)
	}
	if c.Pipeline.Recognizer.Language == "" {
		return fmt.Errorf("pipeline.recognizer.language must not be empty")
	}
	if c.Pipeline.Recognizer.MinConfidence < 0 || c.Pipeline.Recognizer.MinConfidence > 100 {
		return fmt.Errorf("pipeline.recognizer.min_confidence must be in [0,100], got %g",
			c.Pipeline.Recognizer.MinConfidence)
	}
	if len(c.Pipeline.Recognizer.SegModes) == 0 {
		return fmt.Errorf("pipeline.recognizer.seg_modes must not be empty")
	}
	for _, s := range c.Pipeline.Recognizer.SegModes {
		if _, err := recognizer.ParseSegMode(s); err != nil {
			return err
		}
	}
	if !slices.Contains(validFormats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %v, got %q", validFormats, c.Output.Format)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative, got %d", c.Batch.Workers)
	}
	return nil
}

// ToPipelineConfig translates the application configuration into the
// pipeline's own config type.
func (c *Config) ToPipelineConfig() (pipeline.Config, error) {
	if err := c.Validate(); err != nil {
		return pipeline.Config{}, err
	}

	pc := pipeline.DefaultConfig()
	pc.Normalize.OptimalWidth = c.Pipeline.Normalize.OptimalWidth
	pc.Normalize.WidthTolerance = c.Pipeline.Normalize.WidthTolerance
	pc.Engine.Language = c.Pipeline.Recognizer.Language
	pc.Engine.TessdataPrefix = c.Pipeline.Recognizer.TessdataPrefix
	pc.MinConfidence = c.Pipeline.Recognizer.MinConfidence
	pc.PDFRenderDPI = c.Pipeline.PDFRenderDPI
	if c.Batch.Workers > 0 {
		pc.Parallel.MaxWorkers = c.Batch.Workers
	}

	modes := make([]recognizer.SegMode, 0, len(c.Pipeline.Recognizer.SegModes))
	for _, s := range c.Pipeline.Recognizer.SegModes {
		m, err := recognizer.ParseSegMode(s)
		if err != nil {
			return pipeline.Config{}, err
		}
		modes = append(modes, m)
	}
	pc.SegModes = modes

	return pc, nil
}
