// Package scoring contains the likelihood-based score types used to
// evaluate probabilistic forecasts against observed ground truth.
package scoring

import "gonum.org/v1/gonum/mat"

// Descriptor is the immutable metadata of a score type. It is fixed at
// scorer construction and safe to read from concurrent calls.
type Descriptor struct {
	Name             string
	Precision        int // display decimal places
	IsLowerTheBetter bool
	Minimum          float64
	Maximum          float64
}

// ScoreType evaluates a prediction array against a ground truth array and
// returns a single scalar score. Implementations hold no per-call state.
type ScoreType interface {
	Score(yTrue, yPred *mat.Dense) (float64, error)
	Describe() Descriptor
}

// SingleDim normalizes a one-dimensional ground truth series into the
// samples-by-dimensions matrix every scorer consumes.
func SingleDim(y []float64) *mat.Dense {
	data := make([]float64, len(y))
	copy(data, y)
	return mat.NewDense(len(y), 1, data)
}
