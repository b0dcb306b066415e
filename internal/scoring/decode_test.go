package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDecodeBinnedRoundTrip(t *testing.T) {
	// decoding then re-encoding recovers the original layout when the
	// probabilities already sum to 1
	edges := []float64{-1, 0, 1.5, 2, 10}
	probs := []float64{0.25, 0.25, 0.25, 0.25}
	yPred := encodeBinnedRows(2, edges, probs)

	cells, err := decodeBinned(yPred, 4, 1)
	require.NoError(t, err)

	reencoded := mat.NewDense(2, 9, nil)
	for s := range 2 {
		row := append(append([]float64{}, cells[0][s].edges...), cells[0][s].probs...)
		reencoded.SetRow(s, row)
	}
	assert.True(t, mat.Equal(yPred, reencoded))
}

func TestDecodeBinnedRenormalizesSilently(t *testing.T) {
	yPred := encodeBinnedRows(1, []float64{0, 1, 2, 3, 4}, []float64{2, 2, 2, 2})

	cells, err := decodeBinned(yPred, 4, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.25, 0.25, 0.25, 0.25}, cells[0][0].probs, 1e-12)
}

func TestDecodeBinnedRejectsNarrowRows(t *testing.T) {
	yPred := mat.NewDense(1, 5, []float64{0, 1, 2, 0.5, 0.5})

	_, err := decodeBinned(yPred, 4, 1)
	var malformed *MalformedPredictionError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Error(), "row width")
}

func TestDecodeMixtureRoundTrip(t *testing.T) {
	means := []float64{0.5, 2}
	sigmas := []float64{1, 0.5}
	weights := []float64{0.4, 0.6}
	yPred := encodeMixtureRows(3, means, sigmas, weights)

	dims, err := decodeMixture(yPred, 1, DefaultMaxGauss, DefaultWeightTolerance)
	require.NoError(t, err)
	require.Len(t, dims, 1)
	assert.Equal(t, 2, dims[0].count)
	assert.Equal(t, 0, dims[0].offset)

	reencoded := mat.NewDense(3, 7, nil)
	for s := range 3 {
		row := []float64{float64(dims[0].count)}
		row = append(row, dims[0].means[s]...)
		row = append(row, dims[0].sigmas[s]...)
		row = append(row, dims[0].weights[s]...)
		reencoded.SetRow(s, row)
	}
	assert.True(t, mat.Equal(yPred, reencoded))
}

func TestDecodeMixtureOffsets(t *testing.T) {
	// successive dimensions' blocks sit at increasing offsets driven by
	// their declared component counts
	row := []float64{
		2, 0, 1, 1, 1, 0.5, 0.5, // dim 0: k=2, width 7
		1, 4, 2, 1, // dim 1: k=1, width 4
	}
	yPred := mat.NewDense(1, len(row), row)

	dims, err := decodeMixture(yPred, 2, DefaultMaxGauss, DefaultWeightTolerance)
	require.NoError(t, err)
	assert.Equal(t, 0, dims[0].offset)
	assert.Equal(t, 2, dims[0].count)
	assert.Equal(t, 7, dims[1].offset)
	assert.Equal(t, 1, dims[1].count)
	assert.Equal(t, []float64{4}, dims[1].means[0])
}

func TestDecodeMixtureRejectsTruncatedRow(t *testing.T) {
	// declared count of 3 cannot fit the row
	yPred := mat.NewDense(1, 5, []float64{3, 0, 1, 2, 1})

	_, err := decodeMixture(yPred, 1, DefaultMaxGauss, DefaultWeightTolerance)
	var malformed *MalformedPredictionError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Error(), "component count")
}
