package prediction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newRanking(t *testing.T, rows int, data []float64) *Ranking {
	t.Helper()
	maker, err := NewMaker(KindRanking, []string{"score", "rest"})
	require.NoError(t, err)
	p, err := maker.FromArray(mat.NewDense(rows, 2, data))
	require.NoError(t, err)
	return p.(*Ranking)
}

func TestRankData(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"distinct", []float64{10, 30, 20}, []float64{1, 3, 2}},
		{"ties average", []float64{5, 5, 1, 9}, []float64{2.5, 2.5, 1, 4}},
		{"all tied", []float64{7, 7, 7}, []float64{2, 2, 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rankData(tc.in))
		})
	}
}

func TestRankDataKeepsNaN(t *testing.T) {
	ranks := rankData([]float64{3, math.NaN(), 1})
	assert.Equal(t, 2.0, ranks[0])
	assert.True(t, math.IsNaN(ranks[1]))
	assert.Equal(t, 1.0, ranks[2])
}

func TestCombineSingleIsRankTransform(t *testing.T) {
	p := newRanking(t, 3, []float64{
		0.1, 0.9,
		0.5, 0.3,
		0.2, 0.8,
	})

	combined, err := Combine([]*Ranking{p}, nil)
	require.NoError(t, err)

	// col0 becomes rank(col0); col1 becomes n - rank(col1)
	want := mat.NewDense(3, 2, []float64{
		1, 3 - 3,
		3, 3 - 1,
		2, 3 - 2,
	})
	assert.True(t, mat.EqualApprox(want, combined.Array(), 1e-12))
}

func TestCombineOrderInvariance(t *testing.T) {
	a := newRanking(t, 3, []float64{0.1, 0.9, 0.5, 0.3, 0.2, 0.8})
	b := newRanking(t, 3, []float64{0.3, 0.1, 0.2, 0.6, 0.9, 0.2})
	c := newRanking(t, 3, []float64{0.7, 0.4, 0.1, 0.5, 0.6, 0.6})

	forward, err := Combine([]*Ranking{a, b, c}, nil)
	require.NoError(t, err)
	backward, err := Combine([]*Ranking{c, a, b}, nil)
	require.NoError(t, err)

	assert.True(t, mat.EqualApprox(forward.Array(), backward.Array(), 1e-12))
}

func TestCombineSubsetting(t *testing.T) {
	a := newRanking(t, 3, []float64{0.1, 0.9, 0.5, 0.3, 0.2, 0.8})
	b := newRanking(t, 3, []float64{0.3, 0.1, 0.2, 0.6, 0.9, 0.2})
	c := newRanking(t, 3, []float64{0.7, 0.4, 0.1, 0.5, 0.6, 0.6})

	subset, err := Combine([]*Ranking{a, b, c}, []int{0, 2})
	require.NoError(t, err)
	direct, err := Combine([]*Ranking{a, c}, nil)
	require.NoError(t, err)

	assert.True(t, mat.EqualApprox(subset.Array(), direct.Array(), 1e-12))
}

func TestCombineRecursive(t *testing.T) {
	a := newRanking(t, 3, []float64{0.1, 0.9, 0.5, 0.3, 0.2, 0.8})
	b := newRanking(t, 3, []float64{0.3, 0.1, 0.2, 0.6, 0.9, 0.2})

	combined, err := Combine([]*Ranking{a, b}, nil)
	require.NoError(t, err)

	// the ensemble feeds back into the combiner as a regular prediction
	again, err := Combine([]*Ranking{combined}, nil)
	require.NoError(t, err)
	rows, cols := again.Array().Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
}

func TestCombineSkipsAllMissingCells(t *testing.T) {
	maker, err := NewMaker(KindRanking, []string{"score", "rest"})
	require.NoError(t, err)
	empty := maker.Empty(2).(*Ranking)

	combined, err := Combine([]*Ranking{empty, empty}, nil)
	require.NoError(t, err)

	arr := combined.Array()
	for s := range 2 {
		assert.True(t, math.IsNaN(arr.At(s, 0)))
		assert.True(t, math.IsNaN(arr.At(s, 1)))
	}
}

func TestCombinePartialMissing(t *testing.T) {
	a := newRanking(t, 2, []float64{0.1, 0.9, 0.5, 0.3})
	maker, err := NewMaker(KindRanking, []string{"score", "rest"})
	require.NoError(t, err)
	empty := maker.Empty(2).(*Ranking)

	combined, err := Combine([]*Ranking{a, empty}, nil)
	require.NoError(t, err)

	// the empty model contributes nothing; the mean is a's rank view
	only, err := Combine([]*Ranking{a}, nil)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(only.Array(), combined.Array(), 1e-12))
}

func TestCombineErrors(t *testing.T) {
	a := newRanking(t, 2, []float64{0.1, 0.9, 0.5, 0.3})
	short := newRanking(t, 1, []float64{0.1, 0.9})

	_, err := Combine(nil, nil)
	assert.Error(t, err)

	_, err = Combine([]*Ranking{a}, []int{})
	assert.Error(t, err)

	_, err = Combine([]*Ranking{a}, []int{4})
	assert.Error(t, err)

	_, err = Combine([]*Ranking{a, short}, nil)
	assert.Error(t, err)
}
