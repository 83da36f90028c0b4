package config

import (
	"runtime"
	"strings"
	"testing"

	"github.com/compliscan/compliscan/internal/recognizer"
)

// TestDefaultConfig verifies that DefaultConfig returns expected values.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("Expected log_level 'info', got %s", cfg.LogLevel)
	}
	if cfg.Verbose {
		t.Error("Expected verbose to be false")
	}

	if cfg.Pipeline.Normalize.OptimalWidth != 1000 {
		t.Errorf("Expected optimal_width 1000, got %d", cfg.Pipeline.Normalize.OptimalWidth)
	}
	if cfg.Pipeline.Normalize.WidthTolerance != 0.2 {
		t.Errorf("Expected width_tolerance 0.2, got %g", cfg.Pipeline.Normalize.WidthTolerance)
	}

	if cfg.Pipeline.Recognizer.Language != "eng" {
		t.Errorf("Expected language 'eng', got %s", cfg.Pipeline.Recognizer.Language)
	}
	if cfg.Pipeline.Recognizer.MinConfidence != 60 {
		t.Errorf("Expected min_confidence 60, got %g", cfg.Pipeline.Recognizer.MinConfidence)
	}
	wantModes := []string{"single_block", "auto", "single_column"}
	if len(cfg.Pipeline.Recognizer.SegModes) != len(wantModes) {
		t.Fatalf("Expected %d seg modes, got %d", len(wantModes), len(cfg.Pipeline.Recognizer.SegModes))
	}
	for i, m := range wantModes {
		if cfg.Pipeline.Recognizer.SegModes[i] != m {
			t.Errorf("Expected seg mode %d to be %s, got %s", i, m, cfg.Pipeline.Recognizer.SegModes[i])
		}
	}

	if cfg.Pipeline.PDFRenderDPI != 200 {
		t.Errorf("Expected pdf_render_dpi 200, got %d", cfg.Pipeline.PDFRenderDPI)
	}

	if cfg.Output.Format != "text" {
		t.Errorf("Expected output format 'text', got %s", cfg.Output.Format)
	}

	if cfg.Batch.Workers != runtime.NumCPU() {
		t.Errorf("Expected batch workers %d, got %d", runtime.NumCPU(), cfg.Batch.Workers)
	}
	if !cfg.Batch.ContinueOnError {
		t.Error("Expected continue_on_error to be true")
	}
}

// TestDefaultConfigValidates ensures the defaults pass validation.
func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestValidateRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "zero optimal width",
			mutate: func(c *Config) { c.Pipeline.Normalize.OptimalWidth = 0 },
			want:   "optimal_width",
		},
		{
			name:   "negative width tolerance",
			mutate: func(c *Config) { c.Pipeline.Normalize.WidthTolerance = -0.1 },
			want:   "width_tolerance",
		},
		{
			name:   "width tolerance of one",
			mutate: func(c *Config) { c.Pipeline.Normalize.WidthTolerance = 1.0 },
			want:   "width_tolerance",
		},
		{
			name:   "zero render dpi",
			mutate: func(c *Config) { c.Pipeline.PDFRenderDPI = 0 },
			want:   "pdf_render_dpi",
		},
		{
			name:   "empty language",
			mutate: func(c *Config) { c.Pipeline.Recognizer.Language = "" },
			want:   "language",
		},
		{
			name:   "negative min confidence",
			mutate: func(c *Config) { c.Pipeline.Recognizer.MinConfidence = -1 },
			want:   "min_confidence",
		},
		{
			name:   "min confidence above 100",
			mutate: func(c *Config) { c.Pipeline.Recognizer.MinConfidence = 101 },
			want:   "min_confidence",
		},
		{
			name:   "no seg modes",
			mutate: func(c *Config) { c.Pipeline.Recognizer.SegModes = nil },
			want:   "seg_modes",
		},
		{
			name:   "unknown seg mode",
			mutate: func(c *Config) { c.Pipeline.Recognizer.SegModes = []string{"sparse"} },
			want:   "sparse",
		},
		{
			name:   "unknown output format",
			mutate: func(c *Config) { c.Output.Format = "xml" },
			want:   "output.format",
		},
		{
			name:   "negative workers",
			mutate: func(c *Config) { c.Batch.Workers = -1 },
			want:   "batch.workers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got: %v", tt.want, err)
			}
		})
	}
}

// TestToPipelineConfig verifies the translation into the pipeline config.
func TestToPipelineConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pipeline.Normalize.OptimalWidth = 800
	cfg.Pipeline.Normalize.WidthTolerance = 0.1
	cfg.Pipeline.Recognizer.Language = "deu"
	cfg.Pipeline.Recognizer.TessdataPrefix = "/opt/tessdata"
	cfg.Pipeline.Recognizer.MinConfidence = 75
	cfg.Pipeline.Recognizer.SegModes = []string{"auto", "single_block"}
	cfg.Pipeline.PDFRenderDPI = 300
	cfg.Batch.Workers = 2

	pc, err := cfg.ToPipelineConfig()
	if err != nil {
		t.Fatalf("ToPipelineConfig() error: %v", err)
	}

	if pc.Normalize.OptimalWidth != 800 {
		t.Errorf("Expected optimal width 800, got %d", pc.Normalize.OptimalWidth)
	}
	if pc.Normalize.WidthTolerance != 0.1 {
		t.Errorf("Expected width tolerance 0.1, got %g", pc.Normalize.WidthTolerance)
	}
	if pc.Engine.Language != "deu" {
		t.Errorf("Expected language 'deu', got %s", pc.Engine.Language)
	}
	if pc.Engine.TessdataPrefix != "/opt/tessdata" {
		t.Errorf("Expected tessdata prefix '/opt/tessdata', got %s", pc.Engine.TessdataPrefix)
	}
	if pc.MinConfidence != 75 {
		t.Errorf("Expected min confidence 75, got %g", pc.MinConfidence)
	}
	if pc.PDFRenderDPI != 300 {
		t.Errorf("Expected render dpi 300, got %d", pc.PDFRenderDPI)
	}
	if pc.Parallel.MaxWorkers != 2 {
		t.Errorf("Expected 2 workers, got %d", pc.Parallel.MaxWorkers)
	}

	wantModes := []recognizer.SegMode{recognizer.SegAuto, recognizer.SegSingleBlock}
	if len(pc.SegModes) != len(wantModes) {
		t.Fatalf("Expected %d seg modes, got %d", len(wantModes), len(pc.SegModes))
	}
	for i, m := range wantModes {
		if pc.SegModes[i] != m {
			t.Errorf("Expected seg mode %d to be %v, got %v", i, m, pc.SegModes[i])
		}
	}
}

// TestToPipelineConfigRejectsInvalid ensures validation runs before translation.
func TestToPipelineConfigRejectsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = "csv"
	if _, err := cfg.ToPipelineConfig(); err == nil {
		t.Error("ToPipelineConfig() expected error for invalid config")
	}
}
