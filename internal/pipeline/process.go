package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/compliscan/compliscan/internal/common"
	"github.com/compliscan/compliscan/internal/document"
	"github.com/compliscan/compliscan/internal/extract"
	"github.com/compliscan/compliscan/internal/recognizer"
	"github.com/compliscan/compliscan/internal/rectify"
	"github.com/compliscan/compliscan/internal/utils"
)

// Result is the outcome of processing one document.
type Result struct {
	Kind       document.Kind  `json:"kind"`
	Text       string         `json:"text"`
	Confidence float64        `json:"confidence"`
	Fields     extract.Fields `json:"fields"`

	// Attempts is the full recognition matrix in trial order, including
	// failed combinations.
	Attempts []Attempt `json:"attempts,omitempty"`

	// LowConfidence is set when the winning attempt scored below the
	// configured minimum. The result is still returned.
	LowConfidence bool `json:"low_confidence,omitempty"`

	Pages    int           `json:"pages,omitempty"`
	Duration time.Duration `json:"duration"`
}

// ProcessBytes routes raw document bytes to the image or PDF path based
// on content sniffing.
func (p *Pipeline) ProcessBytes(ctx context.Context, data []byte, name string) (*Result, error) {
	switch document.SniffKind(data, name) {
	case document.KindPDF:
		return p.processPDF(ctx, data)
	default:
		return p.processImageBytes(ctx, data)
	}
}

// ProcessFile reads and processes a document from disk.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p.ProcessBytes(ctx, data, path)
}

func (p *Pipeline) processImageBytes(ctx context.Context, data []byte) (*Result, error) {
	img, err := document.FromBytes(data, p.cfg.Normalize)
	if err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}
	return p.ProcessImage(ctx, img)
}

// ProcessImage runs the full recognition matrix on a normalized image and
// extracts structured fields from the winning text.
func (p *Pipeline) ProcessImage(ctx context.Context, img image.Image) (*Result, error) {
	start := time.Now()

	text, conf, attempts, err := p.recognizeImage(ctx, img)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Kind:       document.KindImage,
		Text:       text,
		Confidence: conf,
		Fields:     extract.Parse(text),
		Attempts:   attempts,
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

// recognizeImage builds the attempt matrix for one image and returns the
// selected text and confidence. A document that defeats every variant and
// the raw-grayscale fallback yields empty text with zero confidence, not
// an error.
func (p *Pipeline) recognizeImage(ctx context.Context, img image.Image) (string, float64, []Attempt, error) {
	renderings := p.renderVariants(img)

	var attempts []Attempt
	for _, r := range renderings {
		for _, mode := range p.cfg.SegModes {
			if err := ctx.Err(); err != nil {
				return "", 0, attempts, err
			}
			attempts = append(attempts, p.attempt(r.name, r.img, mode))
		}
	}

	if best, ok := SelectBest(attempts); ok {
		return strings.TrimSpace(best.Text), best.Confidence, attempts, nil
	}

	// Every variant failed or came back blank. Try the untouched
	// grayscale once with the first segmentation mode before giving up.
	slog.Warn("all preprocessing variants failed, falling back to raw grayscale")
	fallback := p.attempt("raw", utils.ToGray(img), p.cfg.SegModes[0])
	attempts = append(attempts, fallback)
	if fallback.OK() {
		return strings.TrimSpace(fallback.Text), fallback.Confidence, attempts, nil
	}
	return "", 0, attempts, nil
}

type rendering struct {
	name string
	img  *image.Gray
}

// renderVariants applies every registered preprocessing strategy and
// deskews each rendering before it reaches the engine, so a tilted
// document is leveled under every binarization. Strategy failures are
// logged and skipped rather than aborting the document.
func (p *Pipeline) renderVariants(img image.Image) []rendering {
	var out []rendering
	for _, s := range p.strategies.Strategies() {
		g, err := s.Apply(img)
		if err != nil {
			slog.Warn("preprocessing strategy failed", "strategy", s.Name(), "error", err)
			continue
		}
		out = append(out, rendering{name: s.Name(), img: rectify.Deskew(g)})
	}
	return out
}

func (p *Pipeline) attempt(variant string, img *image.Gray, mode recognizer.SegMode) Attempt {
	a := Attempt{Variant: variant, Mode: mode}
	timer := common.NewNamedTimer(variant)
	res, err := p.engine.Recognize(img, mode)
	elapsed := timer.Stop()
	if err != nil {
		a.Err = err
		slog.Debug("recognition attempt failed",
			"variant", variant, "mode", mode.String(), "error", err)
		return a
	}
	a.Text = res.Text
	a.Confidence = res.Confidence
	a.LengthProxy = res.LengthProxy
	slog.Debug("recognition attempt",
		"variant", variant,
		"mode", mode.String(),
		"confidence", res.Confidence,
		"chars", len(strings.TrimSpace(res.Text)),
		"duration", elapsed)
	return a
}
