package document

import (
	"bytes"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"

	"github.com/compliscan/compliscan/internal/utils"
)

// NormalizeConfig controls the resize rule applied to decoded documents.
type NormalizeConfig struct {
	// OptimalWidth is the width recognition works best at.
	OptimalWidth int
	// WidthTolerance is the relative band around OptimalWidth inside which
	// no resize happens, to avoid needless interpolation loss.
	WidthTolerance float64
}

// DefaultNormalizeConfig returns the default normalization settings.
func DefaultNormalizeConfig() NormalizeConfig {
	return NormalizeConfig{
		OptimalWidth:   1000,
		WidthTolerance: 0.2,
	}
}

// FromBytes decodes raw image bytes into an orientation-corrected, resized
// color bitmap. Decoding failure is a hard error.
func FromBytes(data []byte, cfg NormalizeConfig) (image.Image, error) {
	img, format, err := utils.DecodeImage(data)
	if err != nil {
		return nil, err
	}
	img = AutoOrient(img, data)
	slog.Debug("decoded document image", "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return ResizeToOptimalWidth(img, cfg), nil
}

// NormalizeDecoded applies only the resize rule to an already-decoded bitmap
// (e.g. a rasterized PDF page, which carries no EXIF orientation).
func NormalizeDecoded(img image.Image, cfg NormalizeConfig) image.Image {
	return ResizeToOptimalWidth(img, cfg)
}

// AutoOrient applies the rotation indicated by the EXIF orientation tag in
// the original encoded bytes. Unreadable or absent EXIF data leaves the
// image untouched.
func AutoOrient(img image.Image, data []byte) image.Image {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return img
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return img
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return img
	}
	switch orientation {
	case 3:
		slog.Debug("applying EXIF rotation", "orientation", orientation)
		return imaging.Rotate180(img)
	case 6:
		slog.Debug("applying EXIF rotation", "orientation", orientation)
		return imaging.Rotate270(img)
	case 8:
		slog.Debug("applying EXIF rotation", "orientation", orientation)
		return imaging.Rotate90(img)
	}
	return img
}

// ResizeToOptimalWidth rescales img toward cfg.OptimalWidth preserving aspect
// ratio. Images already within the tolerance band are returned unchanged. An
// area filter is used when shrinking, a smooth interpolation when enlarging.
func ResizeToOptimalWidth(img image.Image, cfg NormalizeConfig) image.Image {
	if cfg.OptimalWidth <= 0 {
		return img
	}
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w == 0 || h == 0 {
		return img
	}
	lo := float64(cfg.OptimalWidth) * (1 - cfg.WidthTolerance)
	hi := float64(cfg.OptimalWidth) * (1 + cfg.WidthTolerance)
	if float64(w) > lo && float64(w) < hi {
		return img
	}
	scale := float64(cfg.OptimalWidth) / float64(w)
	newW := cfg.OptimalWidth
	newH := int(float64(h) * scale)
	filter := imaging.CatmullRom
	if scale < 1.0 {
		filter = imaging.Box
	}
	resized := imaging.Resize(img, newW, newH, filter)
	slog.Debug("resized document image", "from_width", w, "from_height", h,
		"to_width", newW, "to_height", newH)
	return resized
}
