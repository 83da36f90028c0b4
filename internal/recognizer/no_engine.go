//go:build notesseract

package recognizer

import "image"

func newDefaultEngine(_ Config) Engine { return noEngine{} }

type noEngine struct{}

func (noEngine) Recognize(_ image.Image, _ SegMode) (Result, error) {
	return Result{}, ErrNoBackend
}
