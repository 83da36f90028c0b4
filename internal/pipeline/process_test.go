package pipeline

import (
	"context"
	"errors"
	"image"
	"math"
	"sync"
	"testing"

	"github.com/compliscan/compliscan/internal/preprocess"
	"github.com/compliscan/compliscan/internal/recognizer"
	"github.com/compliscan/compliscan/internal/rectify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStrategy returns a fixed gray rendering, or an error.
type fakeStrategy struct {
	name string
	img  *image.Gray
	err  error
}

func (s fakeStrategy) Name() string { return s.name }

func (s fakeStrategy) Apply(img image.Image) (*image.Gray, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.img != nil {
		return s.img, nil
	}
	return image.NewGray(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy())), nil
}

// scriptedEngine returns canned results in call order, cycling when
// exhausted. Safe for concurrent use.
type scriptedEngine struct {
	mu      sync.Mutex
	results []recognizer.Result
	errs    []error
	calls   int
}

func (e *scriptedEngine) Recognize(_ image.Image, _ recognizer.SegMode) (recognizer.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.calls % len(e.results)
	e.calls++
	var err error
	if len(e.errs) > 0 {
		err = e.errs[i]
	}
	return e.results[i], err
}

func buildTestPipeline(t *testing.T, engine recognizer.Engine, strategies *preprocess.Registry) *Pipeline {
	t.Helper()
	b := NewBuilder().
		WithEngine(engine).
		WithSegModes(recognizer.SegSingleBlock)
	if strategies != nil {
		b = b.WithStrategies(strategies)
	}
	p, err := b.Build()
	require.NoError(t, err)
	return p
}

func TestProcessImagePicksBestAttempt(t *testing.T) {
	engine := &scriptedEngine{results: []recognizer.Result{
		{Text: "weak", Confidence: 30},
		{Text: "strong", Confidence: 90},
	}}
	strategies := preprocess.NewRegistry(
		fakeStrategy{name: "a"},
		fakeStrategy{name: "b"},
	)

	p := buildTestPipeline(t, engine, strategies)
	res, err := p.ProcessImage(context.Background(), image.NewRGBA(image.Rect(0, 0, 40, 40)))
	require.NoError(t, err)

	assert.Equal(t, "strong", res.Text)
	assert.InDelta(t, 90.0, res.Confidence, 1e-9)
	// Two strategy renderings, one seg mode each.
	assert.Len(t, res.Attempts, 2)
	assert.NotNil(t, res.Fields)
}

func TestProcessImageStrategyFailureAbsorbed(t *testing.T) {
	engine := &scriptedEngine{results: []recognizer.Result{
		{Text: "from working strategy", Confidence: 80},
	}}
	strategies := preprocess.NewRegistry(
		fakeStrategy{name: "broken", err: errors.New("filter blew up")},
		fakeStrategy{name: "working"},
	)

	p := buildTestPipeline(t, engine, strategies)
	res, err := p.ProcessImage(context.Background(), image.NewRGBA(image.Rect(0, 0, 40, 40)))
	require.NoError(t, err)
	assert.Equal(t, "from working strategy", res.Text)
}

// recordingEngine captures every image handed to it.
type recordingEngine struct {
	mu   sync.Mutex
	seen []*image.Gray
	res  recognizer.Result
}

func (e *recordingEngine) Recognize(img image.Image, _ recognizer.SegMode) (recognizer.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if g, ok := img.(*image.Gray); ok {
		e.seen = append(e.seen, g)
	}
	return e.res, nil
}

// skewedBar renders a dark bar tilted by the given angle on white.
func skewedBar(w, h int, angleDeg float64) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = 255
	}
	rad := angleDeg * math.Pi / 180
	cx, cy := float64(w)/2, float64(h)/2
	for y := range h {
		for x := range w {
			dx, dy := float64(x)-cx, float64(y)-cy
			u := dx*math.Cos(rad) + dy*math.Sin(rad)
			v := -dx*math.Sin(rad) + dy*math.Cos(rad)
			if math.Abs(v) < 6 && math.Abs(u) < 40 {
				g.Pix[y*g.Stride+x] = 0
			}
		}
	}
	return g
}

func samePixels(a, b *image.Gray) bool {
	if !a.Bounds().Eq(b.Bounds()) {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

func TestEveryRenderingDeskewedBeforeRecognition(t *testing.T) {
	skewed := skewedBar(120, 120, 10)
	leveled := rectify.Deskew(skewed)
	require.False(t, samePixels(leveled, skewed), "test image must actually need deskewing")

	engine := &recordingEngine{res: recognizer.Result{Text: "ok", Confidence: 80}}
	strategies := preprocess.NewRegistry(
		fakeStrategy{name: "a", img: skewed},
		fakeStrategy{name: "b", img: skewed},
	)

	p := buildTestPipeline(t, engine, strategies)
	_, err := p.ProcessImage(context.Background(), image.NewRGBA(image.Rect(0, 0, 120, 120)))
	require.NoError(t, err)

	require.Len(t, engine.seen, 2)
	for i, got := range engine.seen {
		assert.False(t, samePixels(got, skewed), "rendering %d reached the engine tilted", i)
		assert.True(t, samePixels(got, leveled), "rendering %d was not the deskewed copy", i)
	}
}

func TestProcessImageTrimsSelectedText(t *testing.T) {
	engine := &scriptedEngine{results: []recognizer.Result{
		{Text: "Grand Total: 17,700.00\n\x0c\n", Confidence: 85},
	}}
	strategies := preprocess.NewRegistry(fakeStrategy{name: "only"})

	p := buildTestPipeline(t, engine, strategies)
	res, err := p.ProcessImage(context.Background(), image.NewRGBA(image.Rect(0, 0, 40, 40)))
	require.NoError(t, err)

	assert.Equal(t, "Grand Total: 17,700.00", res.Text)
}

func TestProcessImageFallbackToRawGrayscale(t *testing.T) {
	engine := &scriptedEngine{
		results: []recognizer.Result{
			{}, // strategy attempt fails
			{Text: "raw rescue", Confidence: 15},
		},
		errs: []error{
			errors.New("fail"),
			nil,
		},
	}
	strategies := preprocess.NewRegistry(fakeStrategy{name: "only"})

	p := buildTestPipeline(t, engine, strategies)
	res, err := p.ProcessImage(context.Background(), image.NewRGBA(image.Rect(0, 0, 40, 40)))
	require.NoError(t, err)

	assert.Equal(t, "raw rescue", res.Text)
	assert.InDelta(t, 15.0, res.Confidence, 1e-9)
	// Strategy + fallback attempts both recorded.
	assert.Len(t, res.Attempts, 2)
}

func TestProcessImageEverythingFailsYieldsEmpty(t *testing.T) {
	engine := &scriptedEngine{
		results: []recognizer.Result{{}},
		errs:    []error{errors.New("always broken")},
	}
	strategies := preprocess.NewRegistry(fakeStrategy{name: "only"})

	p := buildTestPipeline(t, engine, strategies)
	res, err := p.ProcessImage(context.Background(), image.NewRGBA(image.Rect(0, 0, 40, 40)))
	require.NoError(t, err)

	assert.Empty(t, res.Text)
	assert.Zero(t, res.Confidence)
	assert.True(t, res.LowConfidence)
	// Empty text extracts to an all-null record, not an error.
	assert.Nil(t, res.Fields.Total)
}

func TestProcessImageLowConfidenceFlagged(t *testing.T) {
	engine := &scriptedEngine{results: []recognizer.Result{{Text: "faint", Confidence: 20}}}
	strategies := preprocess.NewRegistry(fakeStrategy{name: "only"})

	p := buildTestPipeline(t, engine, strategies)
	res, err := p.ProcessImage(context.Background(), image.NewRGBA(image.Rect(0, 0, 40, 40)))
	require.NoError(t, err)

	// The result is returned anyway, only flagged.
	assert.Equal(t, "faint", res.Text)
	assert.True(t, res.LowConfidence)
}

func TestProcessImageContextCancellation(t *testing.T) {
	engine := &scriptedEngine{results: []recognizer.Result{{Text: "x", Confidence: 50}}}
	strategies := preprocess.NewRegistry(fakeStrategy{name: "only"})

	p := buildTestPipeline(t, engine, strategies)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ProcessImage(ctx, image.NewRGBA(image.Rect(0, 0, 40, 40)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessImageExtractsFields(t *testing.T) {
	text := "Tech Solutions Pvt. Ltd.\nGSTIN: 29AAFCT6192H1ZV\nGrand Total: 17,700.00"
	engine := &scriptedEngine{results: []recognizer.Result{{Text: text, Confidence: 88}}}
	strategies := preprocess.NewRegistry(fakeStrategy{name: "only"})

	p := buildTestPipeline(t, engine, strategies)
	res, err := p.ProcessImage(context.Background(), image.NewRGBA(image.Rect(0, 0, 40, 40)))
	require.NoError(t, err)

	require.NotNil(t, res.Fields.Total)
	assert.Equal(t, "17700.00", *res.Fields.Total)
	require.NotNil(t, res.Fields.GSTIN)
	assert.Equal(t, "29AAFCT6192H1ZV", *res.Fields.GSTIN)
}

func TestBuildRequiresSegModes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SegModes = nil
	_, err := NewBuilder().WithConfig(cfg).Build()
	assert.Error(t, err)
}

func TestBuilderDefaults(t *testing.T) {
	p, err := NewBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, 60.0, p.Config().MinConfidence)
	assert.Equal(t, 200, p.Config().PDFRenderDPI)
	assert.Len(t, p.Config().SegModes, 3)
}

func TestBuilderOverrides(t *testing.T) {
	p, err := NewBuilder().
		WithOptimalWidth(800).
		WithMinConfidence(75).
		WithPDFRenderDPI(300).
		WithLanguage("deu").
		Build()
	require.NoError(t, err)

	cfg := p.Config()
	assert.Equal(t, 800, cfg.Normalize.OptimalWidth)
	assert.Equal(t, 75.0, cfg.MinConfidence)
	assert.Equal(t, 300, cfg.PDFRenderDPI)
	assert.Equal(t, "deu", cfg.Engine.Language)
}
