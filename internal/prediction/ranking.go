package prediction

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// rankingColumns is the fixed shape of a ranking prediction: column 0 is
// an ascending scoring criterion, column 1 a criterion to be
// rank-reversed. Rows are independent samples with no ordering invariant.
const rankingColumns = 2

// Ranking predicts a two-column criterion pair per sample and supports
// rank-based ensemble combination.
type Ranking struct {
	base
}

// Combine rank-transforms and averages the selected predictions into one
// ensemble prediction: per model, column 0 becomes rank(col0) and column
// 1 becomes nSamples - rank(col1), then each cell is averaged across
// models ignoring NaN. Cells missing in every model stay NaN
// deliberately. The output is itself a Ranking, so combining nests.
// A nil indices slice selects the full prediction list.
func Combine(predictions []*Ranking, indices []int) (*Ranking, error) {
	if len(predictions) == 0 {
		return nil, fmt.Errorf("prediction: combine of empty prediction list")
	}
	if indices == nil {
		indices = make([]int, len(predictions))
		for i := range indices {
			indices[i] = i
		}
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("prediction: combine of empty index subset")
	}
	for _, i := range indices {
		if i < 0 || i >= len(predictions) {
			return nil, fmt.Errorf("prediction: combine index %d out of range [0, %d)", i, len(predictions))
		}
	}

	nSamples, _ := predictions[indices[0]].yPred.Dims()
	sums := make([]float64, nSamples*rankingColumns)
	counts := make([]int, nSamples*rankingColumns)

	for _, i := range indices {
		p := predictions[i]
		if rows, _ := p.yPred.Dims(); rows != nSamples {
			return nil, fmt.Errorf("prediction: combine over mismatched sample counts %d and %d", rows, nSamples)
		}

		ranked := rankColumns(p.yPred, nSamples)
		for c, v := range ranked {
			if math.IsNaN(v) {
				continue
			}
			sums[c] += v
			counts[c]++
		}
	}

	combined := make([]float64, nSamples*rankingColumns)
	for c := range combined {
		if counts[c] == 0 {
			combined[c] = math.NaN()
			continue
		}
		combined[c] = sums[c] / float64(counts[c])
	}

	return &Ranking{base{
		labels: predictions[indices[0]].labels,
		yPred:  mat.NewDense(nSamples, rankingColumns, combined),
	}}, nil
}

// rankColumns returns the flattened rank-space view of one prediction:
// rank(col0) and nSamples - rank(col1), row major.
func rankColumns(yPred *mat.Dense, nSamples int) []float64 {
	col0 := rankData(mat.Col(nil, 0, yPred))
	col1 := rankData(mat.Col(nil, 1, yPred))

	out := make([]float64, nSamples*rankingColumns)
	for s := range nSamples {
		out[s*rankingColumns] = col0[s]
		out[s*rankingColumns+1] = float64(nSamples) - col1[s]
	}
	return out
}

// rankData assigns 1-based ranks to v, averaging the ranks of tied
// values. NaN entries keep NaN ranks and do not consume rank numbers.
func rankData(v []float64) []float64 {
	ranks := make([]float64, len(v))
	order := make([]int, 0, len(v))
	for i, x := range v {
		if math.IsNaN(x) {
			ranks[i] = math.NaN()
			continue
		}
		order = append(order, i)
	}
	sort.Slice(order, func(a, b int) bool { return v[order[a]] < v[order[b]] })

	for i := 0; i < len(order); {
		j := i
		for j+1 < len(order) && v[order[j+1]] == v[order[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		i = j + 1
	}
	return ranks
}
