package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSniffKindMagicBytes(t *testing.T) {
	assert.Equal(t, KindPDF, SniffKind([]byte("%PDF-1.7\n..."), "whatever.jpg"))
	assert.Equal(t, KindImage, SniffKind([]byte{0x89, 'P', 'N', 'G'}, "scan.pdf"))
}

func TestSniffKindExtensionFallback(t *testing.T) {
	// Only an empty payload falls back to the extension hint.
	assert.Equal(t, KindPDF, SniffKind(nil, "invoice.PDF"))
	assert.Equal(t, KindImage, SniffKind(nil, "photo.jpg"))
	assert.Equal(t, KindImage, SniffKind([]byte("random bytes"), "invoice.pdf"))
}

func TestIsPDFBytes(t *testing.T) {
	assert.True(t, IsPDFBytes([]byte("%PDF-1.4")))
	assert.False(t, IsPDFBytes([]byte("PDF-1.4")))
	assert.False(t, IsPDFBytes(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "image", KindImage.String())
	assert.Equal(t, "pdf", KindPDF.String())
}
