package scoring

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// NegLogLikelihoodMixture scores forecasts expressed as per-sample
// Gaussian mixtures. Each dimension declares its component count once;
// the score is the mean negative log-likelihood of the ground truth under
// the per-sample mixture densities, floored identically to the binned
// scorer.
type NegLogLikelihoodMixture struct {
	maxGauss  int
	floor     float64
	weightTol float64
	desc      Descriptor
}

// NewNegLogLikelihoodMixture builds a mixture likelihood scorer allowing
// at most maxGauss components per dimension.
func NewNegLogLikelihoodMixture(maxGauss int, opts ...Option) *NegLogLikelihoodMixture {
	o := defaultScorerOptions("logLKGauss")
	for _, opt := range opts {
		opt(&o)
	}
	return &NegLogLikelihoodMixture{
		maxGauss:  maxGauss,
		floor:     o.floor,
		weightTol: o.weightTol,
		desc: Descriptor{
			Name:             o.name,
			Precision:        o.precision,
			IsLowerTheBetter: true,
			Minimum:          0,
			Maximum:          math.Inf(1),
		},
	}
}

func (n *NegLogLikelihoodMixture) Describe() Descriptor { return n.desc }

// Score computes the floored mean negative log-likelihood over every
// (dimension, sample) cell, with the mixture density evaluated as the
// weighted sum of per-component Gaussian densities at the true value.
func (n *NegLogLikelihoodMixture) Score(yTrue, yPred *mat.Dense) (float64, error) {
	nSamples, nDims := yTrue.Dims()
	if predSamples, _ := yPred.Dims(); predSamples != nSamples {
		return 0, &MalformedPredictionError{
			Layout: mixtureLayout,
			Dim:    -1,
			Sample: -1,
			Detail: fmt.Sprintf("prediction has %d sample(s), ground truth has %d", predSamples, nSamples),
		}
	}

	dims, err := decodeMixture(yPred, nDims, n.maxGauss, n.weightTol)
	if err != nil {
		return 0, err
	}

	var total float64
	for d, md := range dims {
		for s := range nSamples {
			truth := yTrue.At(s, d)

			var density float64
			for i := range md.count {
				component := distuv.Normal{Mu: md.means[s][i], Sigma: md.sigmas[s][i]}
				density += md.weights[s][i] * component.Prob(truth)
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
