package prediction

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// base carries the state shared by every prediction variant.
type base struct {
	labels []string
	yPred  *mat.Dense
}

// Multiclass predicts one probability per vocabulary label.
type Multiclass struct {
	base
}

func (b *base) Array() *mat.Dense { return b.yPred }

// LabelIndex returns the arg-max column of every sample row.
func (b *base) LabelIndex() []int {
	nSamples, _ := b.yPred.Dims()
	indices := make([]int, nSamples)
	for s := range nSamples {
		indices[s] = floats.MaxIdx(b.yPred.RawRowView(s))
	}
	return indices
}

func (b *base) Label(sample int) string {
	return b.labels[floats.MaxIdx(b.yPred.RawRowView(sample))]
}

// Validate checks that the prediction matrix has one column per
// vocabulary label.
func (b *base) Validate() error {
	_, cols := b.yPred.Dims()
	if cols != len(b.labels) {
		return fmt.Errorf("prediction: %d column(s), want %d (one per label)", cols, len(b.labels))
	}
	return nil
}
