// Package pdfrender rasterizes PDF pages into bitmaps for recognition.
//
// Rendering requires a native rasterizer; builds without one (tag "nopdf")
// still compile, and callers can detect the missing capability through
// Backend.Supported or ErrNoBackend instead of crashing at call time.
package pdfrender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// DefaultDPI is the default page rendering resolution.
const DefaultDPI = 200

// ErrNoBackend is returned when the build carries no PDF rasterizer.
var ErrNoBackend = errors.New("pdfrender: no rasterizer linked; rebuild without the nopdf tag")

// Backend is a pluggable PDF page rasterizer.
type Backend interface {
	// RenderPages rasterizes every page of the PDF at the given DPI,
	// in page order. A malformed PDF is a hard error.
	RenderPages(ctx context.Context, data []byte, dpi int) ([]image.Image, error)

	// Supported reports whether this backend can actually rasterize.
	Supported() bool
}

// NewBackend returns the rasterizer for the current build.
func NewBackend() Backend { return newDefaultBackend() }

// PageCount validates the document structure and returns the number of pages
// using pdfcpu. It needs no rasterizer and works in every build.
func PageCount(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, fmt.Errorf("pdfrender: page count: %w", err)
	}
	return n, nil
}
