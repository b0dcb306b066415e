package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/tensorplex-labs/rampart/internal/benchmark"
	"github.com/tensorplex-labs/rampart/internal/config"
	"github.com/tensorplex-labs/rampart/internal/prediction"
	"github.com/tensorplex-labs/rampart/internal/scoring"
	"github.com/tensorplex-labs/rampart/internal/utils/logger"
)

func main() {
	logger.Init()

	cfg, err := config.LoadScoringEnv(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load scoring config")
	}

	runBinned(cfg)
	runMixture(cfg)
	runRatio(cfg)
	runCombine()
}

func runBinned(cfg *config.ScoringEnvConfig) {
	log.Info().Msg("--- Binned negative log-likelihood ---")

	// 4 bins over [0, 8), one dimension, three samples
	yTrue := scoring.SingleDim([]float64{1, 5, 7})
	row := []float64{0, 2, 4, 6, 8, 0.1, 0.2, 0.3, 0.4}
	yPred := mat.NewDense(3, len(row), append(append(append([]float64{}, row...), row...), row...))

	scorer := scoring.NewNegLogLikelihoodBinned(4, scoring.WithFloor(cfg.WorstLogLikelihood))
	score, err := scorer.Score(yTrue, yPred)
	if err != nil {
		log.Fatal().Err(err).Msg("binned scoring failed")
	}
	log.Info().Str("score", scorer.Describe().Name).Float64("value", score).Msgf("scored %f", score)
}

func runMixture(cfg *config.ScoringEnvConfig) {
	log.Info().Msg("--- Mixture negative log-likelihood ---")

	yTrue := scoring.SingleDim([]float64{0.5, -0.2})
	// two components: means 0 and 1, sigmas 1 and 2, weights 0.6/0.4
	row := []float64{2, 0, 1, 1, 2, 0.6, 0.4}
	yPred := mat.NewDense(2, len(row), append(append([]float64{}, row...), row...))

	scorer := scoring.NewNegLogLikelihoodMixture(cfg.MaxGauss, scoring.WithFloor(cfg.WorstLogLikelihood))
	score, err := scorer.Score(yTrue, yPred)
	if err != nil {
		log.Fatal().Err(err).Msg("mixture scoring failed")
	}
	log.Info().Str("score", scorer.Describe().Name).Float64("value", score).Msgf("scored %f", score)
}

func runRatio(cfg *config.ScoringEnvConfig) {
	log.Info().Msg("--- Likelihood ratio vs Gaussian baseline ---")

	yTrue := scoring.SingleDim([]float64{0.1, 0.9, 0.4, 0.6})
	row := []float64{0, 0.25, 0.5, 0.75, 1, 0.25, 0.25, 0.25, 0.25}
	data := make([]float64, 0, 4*len(row))
	for range 4 {
		data = append(data, row...)
	}
	yPred := mat.NewDense(4, len(row), data)

	runner := benchmark.NewRunner(scoring.NewLikelihoodRatioBinned(4, scoring.WithFloor(cfg.WorstLogLikelihood)))
	entries, err := runner.Evaluate(yTrue, []benchmark.Submission{{Name: "uniform", Prediction: yPred}})
	if err != nil {
		log.Fatal().Err(err).Msg("ratio scoring failed")
	}
	for _, entry := range entries {
		log.Info().Str("submission", entry.Name).Float64("score", entry.Score).Msgf("%s scored %f", entry.Name, entry.Score)
	}
}

func runCombine() {
	log.Info().Msg("--- Rank ensemble combination ---")

	maker, err := prediction.NewMaker(prediction.KindRanking, []string{"score", "rest"})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build ranking maker")
	}

	a, _ := maker.FromArray(mat.NewDense(3, 2, []float64{0.1, 0.9, 0.5, 0.3, 0.2, 0.8}))
	b, _ := maker.FromArray(mat.NewDense(3, 2, []float64{0.3, 0.1, 0.2, 0.6, 0.9, 0.2}))

	combined, err := prediction.Combine([]*prediction.Ranking{
		a.(*prediction.Ranking), b.(*prediction.Ranking),
	}, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("combine failed")
	}
	log.Info().Msgf("combined ensemble prediction: %v", mat.Formatted(combined.Array()))
}
