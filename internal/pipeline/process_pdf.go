package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/compliscan/compliscan/internal/document"
	"github.com/compliscan/compliscan/internal/extract"
	"github.com/compliscan/compliscan/internal/pdfrender"
)

// processPDF rasterizes every page, runs the image pipeline on each, and
// joins the per-page texts under page markers. Pages that recognize to
// nothing are skipped entirely so the combined text carries no empty
// sections. Field extraction runs once over the combined text.
func (p *Pipeline) processPDF(ctx context.Context, data []byte) (*Result, error) {
	start := time.Now()

	if !p.pdf.Supported() {
		return nil, pdfrender.ErrNoBackend
	}

	// Check the document structure up front. The rasterizer is more
	// tolerant than the validator, so a failure here is only a warning;
	// truly broken files still fail hard at render time.
	if pageCount, err := pdfrender.PageCount(data); err != nil {
		slog.Warn("pdf structure validation failed", "error", err)
	} else {
		slog.Debug("rendering pdf", "pages", pageCount, "dpi", p.cfg.PDFRenderDPI)
	}

	pages, err := p.pdf.RenderPages(ctx, data, p.cfg.PDFRenderDPI)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	var (
		sections []string
		attempts []Attempt
		confSum  float64
		confN    int
	)
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img := document.NormalizeDecoded(page, p.cfg.Normalize)
		text, conf, pageAttempts, err := p.recognizeImage(ctx, img)
		attempts = append(attempts, pageAttempts...)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			slog.Debug("skipping blank page", "page", i+1)
			continue
		}
		sections = append(sections, fmt.Sprintf("--- Page %d ---\n%s", i+1, text))
		confSum += conf
		confN++
	}

	combined := strings.Join(sections, "\n\n")
	conf := 0.0
	if confN > 0 {
		conf = confSum / float64(confN)
	}

	res := &Result{
		Kind:       document.KindPDF,
		Text:       combined,
		Confidence: conf,
		Fields:     extract.Parse(combined),
		Attempts:   attempts,
		Pages:      len(pages),
		Duration:   time.Since(start),
	}
	if conf < p.cfg.MinConfidence {
		res.LowConfidence = true
		slog.Warn("recognition confidence below minimum",
			"confidence", conf,
			"min_confidence", p.cfg.MinConfidence)
	}
	return res, nil
}
