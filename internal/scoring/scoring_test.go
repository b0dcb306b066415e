package scoring

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// Benchmark the binned likelihood scorer end to end
func BenchmarkNegLogLikelihoodBinned(b *testing.B) {
	nSamples := 250
	nBins := 10

	yTrue := SingleDim(randomTruths(nSamples))
	yPred := randomBinnedPredictions(nSamples, nBins)
	scorer := NewNegLogLikelihoodBinned(nBins)

	b.ResetTimer()

	for b.Loop() {
		_, _ = scorer.Score(yTrue, yPred)
	}
}

// Benchmark with different mixture sizes
func BenchmarkNegLogLikelihoodMixture(b *testing.B) {
	sizes := []struct {
		samples    int
		components int
	}{
		{250, 1},
		{250, 4},
		{250, 10},
	}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Samples%d_Components%d", size.samples, size.components), func(b *testing.B) {
			yTrue := SingleDim(randomTruths(size.samples))
			yPred := randomMixturePredictions(size.samples, size.components)
			scorer := NewNegLogLikelihoodMixture(size.components)

			b.ResetTimer()
			for b.Loop() {
				_, _ = scorer.Score(yTrue, yPred)
			}
		})
	}
}

func randomTruths(nSamples int) []float64 {
	truths := make([]float64, nSamples)
	for i := range truths {
		truths[i] = rand.Float64() * 100
	}
	return truths
}

func randomBinnedPredictions(nSamples, nBins int) *mat.Dense {
	yPred := mat.NewDense(nSamples, 2*nBins+1, nil)
	width := 100.0 / float64(nBins)
	for s := range nSamples {
		for e := 0; e <= nBins; e++ {
			yPred.Set(s, e, float64(e)*width)
		}
		for p := 0; p < nBins; p++ {
			yPred.Set(s, nBins+1+p, rand.Float64())
		}
	}
	return yPred
}

func randomMixturePredictions(nSamples, nComponents int) *mat.Dense {
	yPred := mat.NewDense(nSamples, 1+3*nComponents, nil)
	weight := 1.0 / float64(nComponents)
	for s := range nSamples {
		yPred.Set(s, 0, float64(nComponents))
		for i := range nComponents {
			yPred.Set(s, 1+i, rand.Float64()*100)
			yPred.Set(s, 1+nComponents+i, 1+rand.Float64()*10)
			yPred.Set(s, 1+2*nComponents+i, weight)
		}
	}
	return yPred
}
