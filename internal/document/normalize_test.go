package document

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestResizeWithinToleranceUnchanged(t *testing.T) {
	cfg := DefaultNormalizeConfig()
	for _, w := range []int{801, 900, 1000, 1100, 1199} {
		img := image.NewRGBA(image.Rect(0, 0, w, 500))
		out := ResizeToOptimalWidth(img, cfg)
		assert.Equal(t, w, out.Bounds().Dx(), "width %d should stay untouched", w)
	}
}

func TestResizeShrinksLargeImage(t *testing.T) {
	cfg := DefaultNormalizeConfig()
	img := image.NewRGBA(image.Rect(0, 0, 2000, 1500))
	out := ResizeToOptimalWidth(img, cfg)
	assert.Equal(t, 1000, out.Bounds().Dx())
	assert.Equal(t, 750, out.Bounds().Dy())
}

func TestResizeEnlargesSmallImage(t *testing.T) {
	cfg := DefaultNormalizeConfig()
	img := image.NewRGBA(image.Rect(0, 0, 400, 600))
	out := ResizeToOptimalWidth(img, cfg)
	assert.Equal(t, 1000, out.Bounds().Dx())
	assert.Equal(t, 1500, out.Bounds().Dy())
}

func TestResizeBoundaryWidthsAreResized(t *testing.T) {
	// The tolerance band is open: exactly 0.8x and 1.2x still resize.
	cfg := DefaultNormalizeConfig()
	for _, w := range []int{800, 1200} {
		img := image.NewRGBA(image.Rect(0, 0, w, 500))
		out := ResizeToOptimalWidth(img, cfg)
		assert.Equal(t, 1000, out.Bounds().Dx(), "width %d should be resized", w)
	}
}

func TestResizeDisabled(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2000, 1000))
	out := ResizeToOptimalWidth(img, NormalizeConfig{OptimalWidth: 0})
	assert.Equal(t, 2000, out.Bounds().Dx())
}

func TestFromBytesDecodesAndResizes(t *testing.T) {
	cfg := DefaultNormalizeConfig()
	img, err := FromBytes(pngBytes(t, 2000, 1000), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1000, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())
}

func TestFromBytesRejectsGarbage(t *testing.T) {
	_, err := FromBytes([]byte("definitely not an image"), DefaultNormalizeConfig())
	assert.Error(t, err)
}

func TestAutoOrientWithoutEXIF(t *testing.T) {
	data := pngBytes(t, 30, 20)
	img, _, err := decodeForTest(data)
	require.NoError(t, err)
	out := AutoOrient(img, data)
	assert.Equal(t, img.Bounds(), out.Bounds())
}

func decodeForTest(data []byte) (image.Image, string, error) {
	img, err := png.Decode(bytes.NewReader(data))
	return img, "png", err
}

func TestNormalizeDecoded(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3000, 1500))
	out := NormalizeDecoded(img, DefaultNormalizeConfig())
	assert.Equal(t, 1000, out.Bounds().Dx())
}
