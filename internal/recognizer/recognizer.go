// Package recognizer adapts a text-recognition engine and scores its output.
//
// The engine is pluggable: the default build links Tesseract via gosseract,
// while the "notesseract" tag yields a capability-absent engine returning
// ErrNoBackend. Engines are stateless per call and safe for concurrent use.
package recognizer

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// ErrNoBackend is returned when the build carries no recognition engine.
var ErrNoBackend = errors.New("recognizer: no engine linked; rebuild without the notesseract tag")

// SegMode selects how the engine assumes text is laid out on the page.
type SegMode int

const (
	// SegSingleBlock treats the page as a single uniform block of text.
	SegSingleBlock SegMode = iota
	// SegAuto lets the engine segment the page fully automatically.
	SegAuto
	// SegSingleColumn treats the page as one column of variable-size text.
	SegSingleColumn
)

func (m SegMode) String() string {
	switch m {
	case SegSingleBlock:
		return "single_block"
	case SegAuto:
		return "auto"
	case SegSingleColumn:
		return "single_column"
	}
	return "unknown"
}

// ParseSegMode parses a segmentation mode name as produced by String.
func ParseSegMode(s string) (SegMode, error) {
	switch s {
	case "single_block":
		return SegSingleBlock, nil
	case "auto":
		return SegAuto, nil
	case "single_column":
		return SegSingleColumn, nil
	}
	return 0, fmt.Errorf("recognizer: unknown segmentation mode %q", s)
}

// DefaultSegModes is the ordered configuration set tried for every
// rendering. No single mode reliably wins across receipt photos.
func DefaultSegModes() []SegMode {
	return []SegMode{SegSingleBlock, SegAuto, SegSingleColumn}
}

// Config holds engine settings shared by all recognition calls.
type Config struct {
	// Language is the traineddata language passed to the engine.
	Language string
	// TessdataPrefix optionally overrides the engine's data directory,
	// mirroring the TESSDATA_PREFIX environment hook.
	TessdataPrefix string
}

// DefaultConfig returns the default engine settings.
func DefaultConfig() Config {
	return Config{Language: "eng"}
}

// Result is one recognition outcome with its confidence score.
type Result struct {
	// Text is the raw recognized text.
	Text string
	// Confidence is in [0,100]: the mean of positive per-token engine
	// confidences, or the text length proxy when LengthProxy is set.
	Confidence float64
	// LengthProxy marks that the engine reported no usable confidences
	// and the score fell back to the character-length proxy.
	LengthProxy bool
}

// Engine runs text recognition on a bitmap under one segmentation mode.
type Engine interface {
	Recognize(img image.Image, mode SegMode) (Result, error)
}

// NewEngine returns the recognition engine for the current build.
func NewEngine(cfg Config) Engine { return newDefaultEngine(cfg) }

// Score computes the confidence for recognized text. Positive per-token
// confidences are averaged; without any, the trimmed text length serves as
// a weak but monotonic proxy so every attempt stays comparably rankable.
func Score(text string, tokenConfidences []float64) (float64, bool) {
	var sum float64
	n := 0
	for _, c := range tokenConfidences {
		if c > 0 {
			sum += c
			n++
		}
	}
	if n > 0 {
		return sum / float64(n), false
	}
	return float64(len(strings.TrimSpace(text))), true
}
