// Package prediction implements the prediction types consumed by the
// benchmark: probability arrays over a fixed label vocabulary, with a
// rank-based ensemble combiner for ranking predictions.
package prediction

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Kind selects a concrete prediction behavior from the factory.
type Kind int

const (
	// KindMulticlass predicts a probability per label.
	KindMulticlass Kind = iota
	// KindRanking predicts a two-column ranking criterion pair.
	KindRanking
)

// Predictions is the fixed contract every prediction variant satisfies.
// The label vocabulary and column count are explicit constructor inputs,
// never baked into a generated type.
type Predictions interface {
	// Array returns the underlying samples-by-columns prediction matrix.
	Array() *mat.Dense
	// LabelIndex returns the arg-max column per sample.
	LabelIndex() []int
	// Label maps a sample's predicted index through the vocabulary.
	Label(sample int) string
	// Validate checks the matrix against the declared column count.
	Validate() error
}

// Maker builds prediction instances for one label vocabulary.
type Maker struct {
	kind   Kind
	labels []string
}

// NewMaker returns a factory for the given prediction kind. Ranking
// predictions carry exactly two columns: an ascending scoring criterion
// and a criterion to be rank-reversed.
func NewMaker(kind Kind, labels []string) (*Maker, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("prediction: empty label vocabulary")
	}
	if kind == KindRanking && len(labels) != rankingColumns {
		return nil, fmt.Errorf("prediction: ranking requires %d labels, got %d", rankingColumns, len(labels))
	}
	return &Maker{kind: kind, labels: labels}, nil
}

// FromArray wraps an explicit prediction matrix.
func (m *Maker) FromArray(yPred *mat.Dense) (Predictions, error) {
	p := m.wrap(yPred)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// FromLabels initializes predictions from ground-truth labels: each
// sample's positive labels share uniform probability 1/k, every other
// column stays 0.
func (m *Maker) FromLabels(yTrueLabels [][]string) (Predictions, error) {
	yPred := mat.NewDense(len(yTrueLabels), len(m.labels), nil)
	for s, positives := range yTrueLabels {
		if len(positives) == 0 {
			return nil, fmt.Errorf("prediction: sample %d has no labels", s)
		}
		p := 1.0 / float64(len(positives))
		for _, label := range positives {
			j := m.labelIndex(label)
			if j < 0 {
				return nil, fmt.Errorf("prediction: sample %d has unknown label %q", s, label)
			}
			yPred.Set(s, j, p)
		}
	}
	return m.wrap(yPred), nil
}

// Empty returns a NaN-filled prediction of the declared column count, to
// be filled in later (e.g. fold by fold during cross validation).
func (m *Maker) Empty(nSamples int) Predictions {
	yPred := mat.NewDense(nSamples, len(m.labels), nil)
	for s := range nSamples {
		for j := range len(m.labels) {
			yPred.Set(s, j, math.NaN())
		}
	}
	return m.wrap(yPred)
}

func (m *Maker) wrap(yPred *mat.Dense) Predictions {
	base := base{labels: m.labels, yPred: yPred}
	if m.kind == KindRanking {
		return &Ranking{base}
	}
	return &Multiclass{base}
}

func (m *Maker) labelIndex(label string) int {
	for j, l := range m.labels {
		if l == label {
			return j
		}
	}
	return -1
}
