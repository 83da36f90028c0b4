// Package document normalizes raw receipt inputs (image bytes, file paths,
// multi-page PDFs) into color bitmaps sized for recognition.
package document

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Kind classifies a raw document payload.
type Kind int

const (
	KindImage Kind = iota
	KindPDF
)

func (k Kind) String() string {
	if k == KindPDF {
		return "pdf"
	}
	return "image"
}

// pdfMagic is the byte prefix every PDF file starts with.
var pdfMagic = []byte("%PDF-")

// SniffKind determines whether a payload is a PDF or an image. Magic-byte
// sniffing takes precedence over a mismatched extension hint.
func SniffKind(data []byte, pathHint string) Kind {
	if bytes.HasPrefix(data, pdfMagic) {
		return KindPDF
	}
	if len(data) == 0 && strings.EqualFold(filepath.Ext(pathHint), ".pdf") {
		return KindPDF
	}
	return KindImage
}

// IsPDFBytes reports whether data starts with the PDF magic prefix.
func IsPDFBytes(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}
