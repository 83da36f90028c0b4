//go:build !notesseract

package recognizer

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	"github.com/otiai10/gosseract/v2"
)

func newDefaultEngine(cfg Config) Engine { return &tesseractEngine{cfg: cfg} }

// tesseractEngine recognizes text with Tesseract via gosseract. A fresh
// client is created per call, so the engine carries no mutable state and is
// safe for concurrent use.
type tesseractEngine struct {
	cfg Config
}

func (e *tesseractEngine) Recognize(img image.Image, mode SegMode) (Result, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Result{}, fmt.Errorf("recognizer: encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if e.cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.cfg.TessdataPrefix); err != nil {
			return Result{}, fmt.Errorf("recognizer: tessdata prefix: %w", err)
		}
	}
	if e.cfg.Language != "" {
		if err := client.SetLanguage(e.cfg.Language); err != nil {
			return Result{}, fmt.Errorf("recognizer: language: %w", err)
		}
	}
	if err := client.SetPageSegMode(pageSegMode(mode)); err != nil {
		return Result{}, fmt.Errorf("recognizer: segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return Result{}, fmt.Errorf("recognizer: set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognizer: recognize: %w", err)
	}

	confidence, proxy := Score(text, wordConfidences(client))
	if proxy {
		slog.Debug("engine reported no confidences, using length proxy",
			"mode", mode.String(), "score", confidence)
	}
	return Result{Text: text, Confidence: confidence, LengthProxy: proxy}, nil
}

// wordConfidences collects per-word confidence values, or nil when the
// engine cannot report them.
func wordConfidences(client *gosseract.Client) []float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil
	}
	confs := make([]float64, 0, len(boxes))
	for _, b := range boxes {
		confs = append(confs, b.Confidence)
	}
	return confs
}

func pageSegMode(mode SegMode) gosseract.PageSegMode {
	switch mode {
	case SegAuto:
		return gosseract.PSM_AUTO
	case SegSingleColumn:
		return gosseract.PSM_SINGLE_COLUMN
	default:
		return gosseract.PSM_SINGLE_BLOCK
	}
}
