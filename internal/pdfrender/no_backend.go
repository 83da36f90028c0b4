//go:build nopdf

package pdfrender

import (
	"context"
	"image"
)

func newDefaultBackend() Backend { return &noBackend{} }

type noBackend struct{}

func (n *noBackend) Supported() bool { return false }

func (n *noBackend) RenderPages(_ context.Context, _ []byte, _ int) ([]image.Image, error) {
	return nil, ErrNoBackend
}
