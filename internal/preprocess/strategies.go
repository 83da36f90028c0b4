// Package preprocess produces alternative binarized renderings of a
// normalized receipt image. No single enhancement wins across real-world
// photos, so every registered strategy is attempted and the recognition
// stage ranks the results.
package preprocess

import (
	"image"

	"github.com/compliscan/compliscan/internal/utils"
)

// Strategy is a named, pure bitmap transform producing a single-channel
// rendering. Strategies never mutate their input.
type Strategy interface {
	Name() string
	Apply(img image.Image) (*image.Gray, error)
}

// PerspectiveCorrector rectifies a photographed document into an
// axis-aligned rectangle. Implementations are best-effort: on any failure
// they return the input unchanged.
type PerspectiveCorrector interface {
	Correct(img image.Image) image.Image
}

// Registry is an ordered collection of strategies. Order is significant:
// the selector keeps the earliest attempt on confidence ties.
type Registry struct {
	strategies []Strategy
}

// NewRegistry creates a registry with the given strategies in order.
func NewRegistry(strategies ...Strategy) *Registry {
	return &Registry{strategies: strategies}
}

// Register appends a strategy to the registry.
func (r *Registry) Register(s Strategy) {
	r.strategies = append(r.strategies, s)
}

// Strategies returns the registered strategies in order.
func (r *Registry) Strategies() []Strategy {
	return r.strategies
}

// DefaultRegistry returns the standard strategy set: binarize, otsu, clahe
// and clahe_pro. The corrector is only used by clahe_pro; a nil corrector
// disables its perspective step.
func DefaultRegistry(corrector PerspectiveCorrector) *Registry {
	return NewRegistry(
		Binarize{},
		Otsu{},
		CLAHEStrategy{},
		CLAHEPro{Corrector: corrector},
	)
}

// Binarize converts to grayscale, blurs and applies adaptive local
// thresholding. Works well on evenly lit receipts with sharp text.
type Binarize struct{}

func (Binarize) Name() string { return "binarize" }

func (Binarize) Apply(img image.Image) (*image.Gray, error) {
	gray := utils.ToGray(img)
	blurred := BlurGray(gray, 1.0)
	return AdaptiveThreshold(blurred, 11, 2), nil
}

// Otsu converts to grayscale, blurs and applies a global Otsu threshold.
type Otsu struct{}

func (Otsu) Name() string { return "otsu" }

func (Otsu) Apply(img image.Image) (*image.Gray, error) {
	gray := utils.ToGray(img)
	blurred := BlurGray(gray, 1.0)
	return OtsuThreshold(blurred), nil
}

// CLAHEStrategy boosts local contrast before blurring and Otsu
// thresholding. Helps with unevenly lit photographs.
type CLAHEStrategy struct{}

func (CLAHEStrategy) Name() string { return "clahe" }

func (CLAHEStrategy) Apply(img image.Image) (*image.Gray, error) {
	gray := utils.ToGray(img)
	enhanced := CLAHE(gray, DefaultCLAHEConfig())
	blurred := BlurGray(enhanced, 1.0)
	return OtsuThreshold(blurred), nil
}

// CLAHEPro is the most aggressive rendering for heavily degraded photos:
// perspective correction, non-local-means denoising, strong contrast
// enhancement, sharpening and an Otsu threshold.
type CLAHEPro struct {
	Corrector PerspectiveCorrector
}

func (CLAHEPro) Name() string { return "clahe_pro" }

func (s CLAHEPro) Apply(img image.Image) (*image.Gray, error) {
	working := img
	if s.Corrector != nil {
		working = s.Corrector.Correct(img)
	}
	gray := utils.ToGray(working)
	denoised := DenoiseNLM(gray, DefaultDenoiseConfig())
	enhanced := CLAHE(denoised, CLAHEConfig{ClipLimit: 3.0, TilesX: 10, TilesY: 10})
	sharpened := Sharpen3x3(enhanced)
	return OtsuThreshold(sharpened), nil
}
