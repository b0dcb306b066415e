package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestLikelihoodRatioCalibration(t *testing.T) {
	// when the candidate equals the fitted baseline Gaussian exactly,
	// the ratio is 1
	truths := []float64{0.1, 0.9, 0.4, 0.6}
	yTrue := SingleDim(truths)

	mean := stat.Mean(truths, nil)
	std := math.Sqrt(stat.MomentAbout(2, truths, mean, nil))
	yPred := encodeMixtureRows(len(truths), []float64{mean}, []float64{std}, []float64{1})

	score, err := NewLikelihoodRatioMixture(DefaultMaxGauss).Score(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestLikelihoodRatioSharperThanBaseline(t *testing.T) {
	// a tight Gaussian on the true value region beats the marginal fit
	truths := []float64{0.48, 0.52, 0.5, 0.49, 0.51, 5.0, -4.0}
	yTrue := SingleDim(truths)
	yPred := encodeMixtureRows(len(truths), []float64{0.5, 0.5}, []float64{0.05, 5}, []float64{0.7, 0.3})

	score, err := NewLikelihoodRatioMixture(DefaultMaxGauss).Score(yTrue, yPred)
	require.NoError(t, err)
	assert.Greater(t, score, 1.0)
}

func TestLikelihoodRatioBinned(t *testing.T) {
	// a uniform histogram over [0,1) is sharper on uniform-ish truths
	// than the wide Gaussian fitted to them, and direction is declared
	truths := []float64{0.1, 0.9, 0.4, 0.6}
	yTrue := SingleDim(truths)
	yPred := encodeBinnedRows(len(truths),
		[]float64{0, 0.25, 0.5, 0.75, 1},
		[]float64{0.25, 0.25, 0.25, 0.25})

	scorer := NewLikelihoodRatioBinned(4)
	score, err := scorer.Score(yTrue, yPred)
	require.NoError(t, err)
	assert.Greater(t, score, 0.0)

	desc := scorer.Describe()
	assert.Equal(t, "ll_ratio", desc.Name)
	assert.False(t, desc.IsLowerTheBetter)
	assert.Equal(t, 0.0, desc.Minimum)
	assert.True(t, math.IsInf(desc.Maximum, 1))
}

func TestLikelihoodRatioPropagatesDecodeErrors(t *testing.T) {
	yTrue := SingleDim([]float64{5})
	yPred := encodeBinnedRows(1, []float64{0, 4, 2, 6, 8}, []float64{0.1, 0.2, 0.3, 0.4})

	_, err := NewLikelihoodRatioBinned(4).Score(yTrue, yPred)
	var malformed *MalformedPredictionError
	require.ErrorAs(t, err, &malformed)
}
