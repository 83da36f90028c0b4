package pipeline

import (
	"strings"

	"github.com/compliscan/compliscan/internal/recognizer"
)

// Attempt records one cell of the recognition matrix: a preprocessing
// variant paired with a segmentation configuration. Failed attempts stay
// in the matrix with Err set so callers can see exactly which combinations
// were tried and why they produced nothing.
type Attempt struct {
	Variant    string             `json:"variant"`
	Mode       recognizer.SegMode `json:"mode"`
	Text       string             `json:"text"`
	Confidence float64            `json:"confidence"`

	// LengthProxy marks confidences derived from text length because the
	// engine returned no per-token scores.
	LengthProxy bool `json:"length_proxy,omitempty"`

	Err error `json:"-"`
}

// OK reports whether the attempt produced usable text.
func (a Attempt) OK() bool {
	return a.Err == nil && strings.TrimSpace(a.Text) != ""
}

// SelectBest picks the attempt with the highest confidence among those
// that produced non-empty text. Ranking is by strictly greater confidence,
// so on ties the earliest attempt in matrix order wins. The second return
// is false when no attempt qualifies.
func SelectBest(attempts []Attempt) (Attempt, bool) {
	best := Attempt{Confidence: -1}
	found := false
	for _, a := range attempts {
		if !a.OK() {
			continue
		}
		if a.Confidence > best.Confidence {
			best = a
			found = true
		}
	}
	return best, found
}
