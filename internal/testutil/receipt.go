package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ReceiptConfig holds configuration for rendering synthetic receipts.
type ReceiptConfig struct {
	Lines      []string
	Width      int
	Background color.Color
	Foreground color.Color
	FontFace   font.Face
	Rotation   float64 // rotation in degrees
	Margin     int
}

// DefaultReceiptConfig returns a default synthetic receipt configuration.
func DefaultReceiptConfig() ReceiptConfig {
	return ReceiptConfig{
		Lines:      SampleReceiptLines(),
		Width:      640,
		Background: color.White,
		Foreground: color.Black,
		FontFace:   basicfont.Face7x13,
		Margin:     24,
	}
}

// SampleReceiptLines returns the text of a typical tax invoice used across
// extraction tests.
func SampleReceiptLines() []string {
	return []string{
		"Tech Solutions Pvt. Ltd.",
		"12 MG Road, Bengaluru",
		"GSTIN: 29AAFCT6192H1ZV",
		"Invoice No: INV-2025-00123",
		"Date: 15/09/2025",
		"",
		"Consulting services  HSN 9983",
		"Subtotal: 15,000.00",
		"CGST @ 9%: 1,350.00",
		"SGST @ 9%: 1,350.00",
		"Grand Total: 17,700.00",
		"",
		"Thank you for your business",
	}
}

// GenerateReceiptImage renders receipt text lines onto a white background.
func GenerateReceiptImage(config ReceiptConfig) *image.RGBA {
	lineHeight := config.FontFace.Metrics().Height.Ceil() + 4
	height := 2*config.Margin + lineHeight*len(config.Lines)

	img := image.NewRGBA(image.Rect(0, 0, config.Width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{config.Background}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{config.Foreground},
		Face: config.FontFace,
	}
	for i, line := range config.Lines {
		if line == "" {
			continue
		}
		drawer.Dot = fixed.P(config.Margin, config.Margin+(i+1)*lineHeight)
		drawer.DrawString(line)
	}

	if config.Rotation != 0 {
		rotated := imaging.Rotate(img, config.Rotation, color.White)
		rgba := image.NewRGBA(rotated.Bounds())
		draw.Draw(rgba, rgba.Bounds(), rotated, rotated.Bounds().Min, draw.Src)
		return rgba
	}

	return img
}

// SampleReceiptText returns the sample receipt joined as recognized text.
func SampleReceiptText() string {
	text := ""
	for i, line := range SampleReceiptLines() {
		if i > 0 {
			text += "\n"
		}
		text += line
	}
	return text
}

// SaveImage saves an image as PNG to the specified path.
func SaveImage(t *testing.T, img image.Image, path string) {
	t.Helper()

	file, err := os.Create(path) //nolint:gosec // G304: Test file creation with controlled path
	require.NoError(t, err, "Failed to create file %s", path)
	defer func() {
		require.NoError(t, file.Close())
	}()

	require.NoError(t, png.Encode(file, img), "Failed to encode PNG image")
}

// SolidImage creates a uniform image with the given dimensions and color.
func SolidImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}
