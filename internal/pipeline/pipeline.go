// Package pipeline orchestrates receipt recognition end to end: input
// normalization, the preprocessing strategy battery, the recognition
// attempt matrix, best-result selection and structured field extraction.
package pipeline

import (
	"errors"

	"github.com/compliscan/compliscan/internal/document"
	"github.com/compliscan/compliscan/internal/pdfrender"
	"github.com/compliscan/compliscan/internal/preprocess"
	"github.com/compliscan/compliscan/internal/recognizer"
	"github.com/compliscan/compliscan/internal/rectify"
)

// Config holds configuration for the extraction pipeline and its components.
// A Config is read-only once the pipeline is built and safe to share across
// concurrent document runs.
type Config struct {
	Normalize document.NormalizeConfig
	Rectify   rectify.Config
	Engine    recognizer.Config

	// SegModes is the ordered list of segmentation configurations tried
	// for every rendering.
	SegModes []recognizer.SegMode

	// MinConfidence flags (but does not discard) results scoring below it.
	MinConfidence float64

	// PDFRenderDPI is the page rasterization resolution for PDF inputs.
	PDFRenderDPI int

	// Parallel controls batch processing.
	Parallel ParallelConfig
}

// DefaultConfig returns a default pipeline config with component defaults.
func DefaultConfig() Config {
	return Config{
		Normalize:     document.DefaultNormalizeConfig(),
		Rectify:       rectify.DefaultConfig(),
		Engine:        recognizer.DefaultConfig(),
		SegModes:      recognizer.DefaultSegModes(),
		MinConfidence: 60,
		PDFRenderDPI:  pdfrender.DefaultDPI,
		Parallel:      DefaultParallelConfig(),
	}
}

// Pipeline runs the document-to-fields extraction. It holds no mutable
// state between calls; one instance serves any number of concurrent
// documents.
type Pipeline struct {
	cfg        Config
	strategies *preprocess.Registry
	corrector  *rectify.Corrector
	engine     recognizer.Engine
	pdf        pdfrender.Backend
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg        Config
	strategies *preprocess.Registry
	engine     recognizer.Engine
	pdf        pdfrender.Backend
}

// NewBuilder creates a new pipeline builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithConfig replaces the entire configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// WithOptimalWidth sets the normalization target width.
func (b *Builder) WithOptimalWidth(w int) *Builder {
	if w > 0 {
		b.cfg.Normalize.OptimalWidth = w
	}
	return b
}

// WithMinConfidence sets the threshold below which results are flagged.
func (b *Builder) WithMinConfidence(c float64) *Builder {
	if c >= 0 {
		b.cfg.MinConfidence = c
	}
	return b
}

// WithPDFRenderDPI sets the PDF page rasterization resolution.
func (b *Builder) WithPDFRenderDPI(dpi int) *Builder {
	if dpi > 0 {
		b.cfg.PDFRenderDPI = dpi
	}
	return b
}

// WithLanguage sets the recognition language.
func (b *Builder) WithLanguage(lang string) *Builder {
	if lang != "" {
		b.cfg.Engine.Language = lang
	}
	return b
}

// WithSegModes overrides the segmentation configuration list.
func (b *Builder) WithSegModes(modes ...recognizer.SegMode) *Builder {
	if len(modes) > 0 {
		b.cfg.SegModes = modes
	}
	return b
}

// WithStrategies overrides the preprocessing strategy registry.
func (b *Builder) WithStrategies(r *preprocess.Registry) *Builder {
	b.strategies = r
	return b
}

// WithEngine overrides the recognition engine (used by tests).
func (b *Builder) WithEngine(e recognizer.Engine) *Builder {
	b.engine = e
	return b
}

// WithPDFBackend overrides the PDF rasterizer (used by tests).
func (b *Builder) WithPDFBackend(backend pdfrender.Backend) *Builder {
	b.pdf = backend
	return b
}

// WithParallelWorkers sets the batch worker count.
func (b *Builder) WithParallelWorkers(n int) *Builder {
	if n > 0 {
		b.cfg.Parallel.MaxWorkers = n
	}
	return b
}

// Build validates the configuration and assembles the pipeline.
func (b *Builder) Build() (*Pipeline, error) {
	if len(b.cfg.SegModes) == 0 {
		return nil, errors.New("pipeline: at least one segmentation mode required")
	}
	corrector := rectify.NewCorrector(b.cfg.Rectify)
	strategies := b.strategies
	if strategies == nil {
		strategies = preprocess.DefaultRegistry(corrector)
	}
	engine := b.engine
	if engine == nil {
		engine = recognizer.NewEngine(b.cfg.Engine)
	}
	pdf := b.pdf
	if pdf == nil {
		pdf = pdfrender.NewBackend()
	}
	return &Pipeline{
		cfg:        b.cfg,
		strategies: strategies,
		corrector:  corrector,
		engine:     engine,
		pdf:        pdf,
	}, nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// PDFSupported reports whether this build can rasterize PDF inputs.
func (p *Pipeline) PDFSupported() bool { return p.pdf.Supported() }
