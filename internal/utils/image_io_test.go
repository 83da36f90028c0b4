package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImagePNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 6))
	src.Set(3, 2, color.RGBA{R: 255, A: 255})

	img, format, err := DecodeImage(encodePNG(t, src))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
}

func TestDecodeImageInvalid(t *testing.T) {
	_, _, err := DecodeImage([]byte("not an image"))
	assert.Error(t, err)
}

func TestDecodeImageEmpty(t *testing.T) {
	_, _, err := DecodeImage(nil)
	assert.Error(t, err)
}

func TestIsSupportedImage(t *testing.T) {
	assert.True(t, IsSupportedImage("a.JPG"))
	assert.True(t, IsSupportedImage("b.webp"))
	assert.True(t, IsSupportedImage("c.heic"))
	assert.False(t, IsSupportedImage("d.pdf"))
	assert.False(t, IsSupportedImage("e.txt"))
}
