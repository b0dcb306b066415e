package scoring

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// LikelihoodRatio wraps a likelihood scorer and reports the candidate
// distribution's average likelihood relative to a per-dimension Gaussian
// baseline fitted from the ground truth. A value near 1 means the
// candidate is no better than an i.i.d. Gaussian fit of the marginal;
// values well above 1 indicate a materially sharper predictive
// distribution.
type LikelihoodRatio struct {
	wrapped ScoreType
	desc    Descriptor
}

// NewLikelihoodRatioBinned builds a likelihood ratio score around the
// binned likelihood scorer.
func NewLikelihoodRatioBinned(nBins int, opts ...Option) *LikelihoodRatio {
	o := defaultScorerOptions("ll_ratio")
	for _, opt := range opts {
		opt(&o)
	}
	return newLikelihoodRatio(NewNegLogLikelihoodBinned(nBins, WithFloor(o.floor)), o)
}

// NewLikelihoodRatioMixture builds a likelihood ratio score around the
// Gaussian mixture likelihood scorer.
func NewLikelihoodRatioMixture(maxGauss int, opts ...Option) *LikelihoodRatio {
	o := defaultScorerOptions("ll_ratio")
	for _, opt := range opts {
		opt(&o)
	}
	return newLikelihoodRatio(
		NewNegLogLikelihoodMixture(maxGauss, WithFloor(o.floor), WithWeightTolerance(o.weightTol)), o)
}

func newLikelihoodRatio(wrapped ScoreType, o scorerOptions) *LikelihoodRatio {
	return &LikelihoodRatio{
		wrapped: wrapped,
		desc: Descriptor{
			Name:             o.name,
			Precision:        o.precision,
			IsLowerTheBetter: false,
			Minimum:          0,
			Maximum:          math.Inf(1),
		},
	}
}

func (r *LikelihoodRatio) Describe() Descriptor { return r.desc }

// Score computes exp(meanCandidateLL - meanBaselineLL): the geometric
// ratio of the candidate's average likelihood to that of the fitted
// baseline Gaussians. The wrapped scorer returns the negated mean
// candidate log-likelihood, so the ratio is exp(-nll - meanBaselineLL).
func (r *LikelihoodRatio) Score(yTrue, yPred *mat.Dense) (float64, error) {
	nll, err := r.wrapped.Score(yTrue, yPred)
	if err != nil {
		return 0, err
	}

	nSamples, nDims := yTrue.Dims()
	col := make([]float64, nSamples)
	var baselineSum float64
	for d := range nDims {
		mat.Col(col, d, yTrue)
		mean := stat.Mean(col, nil)
		// population standard deviation: the baseline is a plain moment
		// fit of the observed marginal, not an unbiased estimator
		std := math.Sqrt(stat.MomentAbout(2, col, mean, nil))
		baseline := distuv.Normal{Mu: mean, Sigma: std}
		for _, v := range col {
			baselineSum += baseline.LogProb(v)
		}
	}

	return math.Exp(-nll - baselineSum/float64(nDims*nSamples)), nil
}
