package scoring

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// outOfRange marks a ground-truth value falling before the first or
// at/after the last bin edge, which carries zero predicted density.
const outOfRange = -1

// NegLogLikelihoodBinned scores forecasts expressed as per-sample
// piecewise-constant (binned) density histograms. The score is the mean
// negative log-likelihood of the ground truth under each predicted
// histogram, with every per-sample log-likelihood floored so one
// out-of-support observation cannot dominate the aggregate.
type NegLogLikelihoodBinned struct {
	nBins int
	floor float64
	desc  Descriptor
}

// NewNegLogLikelihoodBinned builds a binned likelihood scorer for
// histograms of nBins bins.
func NewNegLogLikelihoodBinned(nBins int, opts ...Option) *NegLogLikelihoodBinned {
	o := defaultScorerOptions("logLK")
	for _, opt := range opts {
		opt(&o)
	}
	return &NegLogLikelihoodBinned{
		nBins: nBins,
		floor: o.floor,
		desc: Descriptor{
			Name:             o.name,
			Precision:        o.precision,
			IsLowerTheBetter: true,
			// bins may be infinitesimally small, so the per-sample
			// log density is unbounded in both directions
			Minimum: math.Inf(-1),
			Maximum: math.Inf(1),
		},
	}
}

func (n *NegLogLikelihoodBinned) Describe() Descriptor { return n.desc }

// Score computes the floored mean negative log-likelihood over every
// (dimension, sample) cell.
func (n *NegLogLikelihoodBinned) Score(yTrue, yPred *mat.Dense) (float64, error) {
	nSamples, nDims := yTrue.Dims()
	if predSamples, _ := yPred.Dims(); predSamples != nSamples {
		return 0, &MalformedPredictionError{
			Layout: binnedLayout,
			Dim:    -1,
			Sample: -1,
			Detail: fmt.Sprintf("prediction has %d sample(s), ground truth has %d", predSamples, nSamples),
		}
	}

	cells, err := decodeBinned(yPred, n.nBins, nDims)
	if err != nil {
		return 0, err
	}

	var total float64
	for d := range nDims {
		for s := range nSamples {
			cell := cells[d][s]
			truth := yTrue.At(s, d)

			density := 0.0
			if b := locateBin(cell.edges, truth); b != outOfRange {
				density = cell.probs[b] / (cell.edges[b+1] - cell.edges[b])
			}

			ll := math.Log(density)
			if ll < n.floor {
				ll = n.floor
			}
			total -= ll
		}
	}
	return total / float64(nDims*nSamples), nil
}

// locateBin returns the index b with edges[b] <= t < edges[b+1], or
// outOfRange when t falls before the first or at/after the last edge.
func locateBin(edges []float64, t float64) int {
	if t < edges[0] || t >= edges[len(edges)-1] {
		return outOfRange
	}
	for b := 1; b < len(edges); b++ {
		if edges[b] > t {
			return b - 1
		}
	}
	return outOfRange
}
