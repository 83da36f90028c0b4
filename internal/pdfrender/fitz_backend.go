//go:build !nopdf

package pdfrender

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/gen2brain/go-fitz"
)

func newDefaultBackend() Backend { return &fitzBackend{} }

// fitzBackend rasterizes pages with MuPDF via go-fitz.
type fitzBackend struct{}

func (b *fitzBackend) Supported() bool { return true }

func (b *fitzBackend) RenderPages(ctx context.Context, data []byte, dpi int) ([]image.Image, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("pdfrender: open document: %w", err)
	}
	defer func() { _ = doc.Close() }()

	n := doc.NumPage()
	if n == 0 {
		return nil, nil
	}
	pages := make([]image.Image, 0, n)
	for i := range n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.ImageDPI(i, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("pdfrender: rasterize page %d: %w", i+1, err)
		}
		pages = append(pages, img)
	}
	slog.Debug("rasterized PDF", "pages", n, "dpi", dpi)
	return pages, nil
}
