package pipeline

import (
	"context"
	"errors"
	"image"
	"strings"
	"sync"
	"testing"

	"github.com/compliscan/compliscan/internal/document"
	"github.com/compliscan/compliscan/internal/pdfrender"
	"github.com/compliscan/compliscan/internal/preprocess"
	"github.com/compliscan/compliscan/internal/recognizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePDFBackend returns prepared page bitmaps.
type fakePDFBackend struct {
	pages     []image.Image
	err       error
	supported bool
}

func (b fakePDFBackend) RenderPages(_ context.Context, _ []byte, _ int) ([]image.Image, error) {
	return b.pages, b.err
}

func (b fakePDFBackend) Supported() bool { return b.supported }

// pageEngine returns one canned text per page, in render order.
type pageEngine struct {
	mu    sync.Mutex
	texts []string
	calls int
}

func (e *pageEngine) Recognize(_ image.Image, _ recognizer.SegMode) (recognizer.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	text := e.texts[e.calls%len(e.texts)]
	e.calls++
	conf := 80.0
	if strings.TrimSpace(text) == "" {
		conf = 0
	}
	return recognizer.Result{Text: text, Confidence: conf}, nil
}

func buildPDFPipeline(t *testing.T, engine recognizer.Engine, backend pdfrender.Backend) *Pipeline {
	t.Helper()
	p, err := NewBuilder().
		WithEngine(engine).
		WithPDFBackend(backend).
		WithStrategies(preprocess.NewRegistry(fakeStrategy{name: "only"})).
		WithSegModes(recognizer.SegSingleBlock).
		Build()
	require.NoError(t, err)
	return p
}

func pdfBytes() []byte { return []byte("%PDF-1.4 fake") }

func TestProcessPDFJoinsPagesWithMarkers(t *testing.T) {
	pages := []image.Image{
		image.NewRGBA(image.Rect(0, 0, 40, 40)),
		image.NewRGBA(image.Rect(0, 0, 40, 40)),
	}
	// One rendering per page and one seg mode, so one call per page.
	engine := &pageEngine{texts: []string{"page one text", "page two text"}}
	p := buildPDFPipeline(t, engine, fakePDFBackend{pages: pages, supported: true})

	res, err := p.ProcessBytes(context.Background(), pdfBytes(), "doc.pdf")
	require.NoError(t, err)

	assert.Equal(t, document.KindPDF, res.Kind)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "--- Page 1 ---\npage one text\n\n--- Page 2 ---\npage two text", res.Text)
	assert.InDelta(t, 80.0, res.Confidence, 1e-9)
}

func TestProcessPDFSkipsBlankPages(t *testing.T) {
	pages := []image.Image{
		image.NewRGBA(image.Rect(0, 0, 40, 40)),
		image.NewRGBA(image.Rect(0, 0, 40, 40)),
		image.NewRGBA(image.Rect(0, 0, 40, 40)),
	}
	engine := &pageEngine{texts: []string{
		"first",
		"", "", // blank middle page defeats the strategy and the fallback
		"third",
	}}
	p := buildPDFPipeline(t, engine, fakePDFBackend{pages: pages, supported: true})

	res, err := p.ProcessBytes(context.Background(), pdfBytes(), "doc.pdf")
	require.NoError(t, err)

	assert.Equal(t, 3, res.Pages)
	assert.NotContains(t, res.Text, "Page 2")
	assert.Contains(t, res.Text, "--- Page 1 ---\nfirst")
	assert.Contains(t, res.Text, "--- Page 3 ---\nthird")
}

func TestProcessPDFNoBackend(t *testing.T) {
	engine := &pageEngine{texts: []string{"x"}}
	p := buildPDFPipeline(t, engine, fakePDFBackend{supported: false})

	_, err := p.ProcessBytes(context.Background(), pdfBytes(), "doc.pdf")
	assert.ErrorIs(t, err, pdfrender.ErrNoBackend)
}

func TestProcessPDFMalformedDocument(t *testing.T) {
	engine := &pageEngine{texts: []string{"x"}}
	backend := fakePDFBackend{supported: true, err: errors.New("corrupt xref table")}
	p := buildPDFPipeline(t, engine, backend)

	_, err := p.ProcessBytes(context.Background(), pdfBytes(), "doc.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render pdf")
}

func TestProcessBytesRoutesByContent(t *testing.T) {
	// PDF magic routes to the PDF path even with an image extension.
	engine := &pageEngine{texts: []string{"x"}}
	p := buildPDFPipeline(t, engine, fakePDFBackend{supported: false})

	_, err := p.ProcessBytes(context.Background(), []byte("%PDF-1.7"), "misnamed.jpg")
	assert.ErrorIs(t, err, pdfrender.ErrNoBackend)
}
