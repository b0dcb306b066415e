package scoring

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// binnedCell holds the decoded histogram of one (dimension, sample) cell:
// nBins+1 strictly increasing edges and nBins renormalized probabilities.
type binnedCell struct {
	edges []float64
	probs []float64
}

// decodeBinned splits a binned prediction matrix into per-(dimension,
// sample) edge and probability vectors. Each sample row carries, per
// dimension, a block of 2*nBins+1 values: the edges followed by the
// probabilities. Probabilities are silently renormalized when their sum
// has drifted from 1; non-increasing edges and NaNs are structural
// defects and fail decoding.
func decodeBinned(yPred *mat.Dense, nBins, nDims int) ([][]binnedCell, error) {
	nSamples, cols := yPred.Dims()
	stride := 2*nBins + 1
	if cols < nDims*stride {
		return nil, &MalformedPredictionError{
			Layout: binnedLayout,
			Dim:    -1,
			Sample: -1,
			Detail: fmt.Sprintf("row width %d cannot hold %d dimension(s) of %d bins", cols, nDims, nBins),
		}
	}
	if hasNaN(yPred) {
		return nil, &MalformedPredictionError{
			Layout: binnedLayout,
			Dim:    -1,
			Sample: -1,
			Detail: "prediction contains NaN",
		}
	}

	cells := make([][]binnedCell, nDims)
	for d := range nDims {
		cells[d] = make([]binnedCell, nSamples)
		base := d * stride
		for s := range nSamples {
			row := yPred.RawRowView(s)

			edges := make([]float64, nBins+1)
			copy(edges, row[base:base+nBins+1])
			for i := 0; i < nBins; i++ {
				if edges[i] >= edges[i+1] {
					return nil, &MalformedPredictionError{
						Layout: binnedLayout,
						Dim:    d,
						Sample: s,
						Detail: "bin edges must be strictly increasing",
					}
				}
			}

			probs := make([]float64, nBins)
			copy(probs, row[base+nBins+1:base+stride])
			if sum := floats.Sum(probs); sum != 1 && sum > 0 {
				floats.Scale(1/sum, probs)
			}

			cells[d][s] = binnedCell{edges: edges, probs: probs}
		}
	}
	return cells, nil
}

// mixtureDim holds the decoded Gaussian mixture of one dimension: the
// shared component count and, per sample, the component parameter rows.
type mixtureDim struct {
	offset  int // column at which this dimension's block starts
	count   int
	means   [][]float64
	sigmas  [][]float64
	weights [][]float64
}

// decodeMixture splits a mixture prediction matrix into per-dimension
// component blocks. The component count of each dimension is read once
// from sample row 0 and drives an offset table computed up front, so
// every later read is a direct index. Counts above maxGauss, negative
// sigmas and weight sums off 1 beyond weightTol fail decoding.
func decodeMixture(yPred *mat.Dense, nDims, maxGauss int, weightTol float64) ([]mixtureDim, error) {
	nSamples, cols := yPred.Dims()
	if hasNaN(yPred) {
		return nil, &MalformedPredictionError{
			Layout: mixtureLayout,
			Dim:    -1,
			Sample: -1,
			Detail: "prediction contains NaN",
		}
	}

	dims := make([]mixtureDim, nDims)
	offset := 0
	for d := range nDims {
		if offset >= cols {
			return nil, &MalformedPredictionError{
				Layout: mixtureLayout,
				Dim:    d,
				Sample: -1,
				Detail: fmt.Sprintf("row width %d exhausted before dimension %d", cols, d),
			}
		}
		k := int(yPred.At(0, offset))
		if k > maxGauss {
			return nil, &PreconditionViolationError{
				Dim:    d,
				Sample: -1,
				Detail: fmt.Sprintf("%d mixture components exceed the configured ceiling of %d", k, maxGauss),
			}
		}
		if k < 1 || offset+1+3*k > cols {
			return nil, &MalformedPredictionError{
				Layout: mixtureLayout,
				Dim:    d,
				Sample: -1,
				Detail: fmt.Sprintf("declared component count %d does not fit row width %d", k, cols),
			}
		}

		md := mixtureDim{
			offset:  offset,
			count:   k,
			means:   make([][]float64, nSamples),
			sigmas:  make([][]float64, nSamples),
			weights: make([][]float64, nSamples),
		}
		for s := range nSamples {
			row := yPred.RawRowView(s)

			sigmas := make([]float64, k)
			copy(sigmas, row[offset+1+k:offset+1+2*k])
			for _, sigma := range sigmas {
				if sigma < 0 {
					return nil, &PreconditionViolationError{
						Dim:    d,
						Sample: s,
						Detail: fmt.Sprintf("negative standard deviation %g", sigma),
					}
				}
			}

			weights := make([]float64, k)
			copy(weights, row[offset+1+2*k:offset+1+3*k])
			if sum := floats.Sum(weights); math.Abs(sum-1) > weightTol {
				return nil, &PreconditionViolationError{
					Dim:    d,
					Sample: s,
					Detail: fmt.Sprintf("mixture weights sum to %g, want 1 within %g", sum, weightTol),
				}
			}

			means := make([]float64, k)
			copy(means, row[offset+1:offset+1+k])

			md.means[s] = means
			md.sigmas[s] = sigmas
			md.weights[s] = weights
		}

		dims[d] = md
		offset += 1 + 3*k
	}
	return dims, nil
}

func hasNaN(m *mat.Dense) bool {
	rows, _ := m.Dims()
	for i := range rows {
		for _, v := range m.RawRowView(i) {
			if math.IsNaN(v) {
				return true
			}
		}
	}
	return false
}
