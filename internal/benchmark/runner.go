// Package benchmark evaluates named submissions against ground truth and
// assembles leaderboards from their scores.
package benchmark

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/tensorplex-labs/rampart/internal/scoring"
	"github.com/tensorplex-labs/rampart/internal/utils/logger"
)

// Submission is one model's prediction array for a task.
type Submission struct {
	Name       string
	Prediction *mat.Dense
}

// Entry is one leaderboard row.
type Entry struct {
	Name  string
	Score float64
}

// Runner scores submissions with one score type. It holds no mutable
// state and may be shared across concurrent calls.
type Runner struct {
	scorer scoring.ScoreType
}

func NewRunner(scorer scoring.ScoreType) *Runner {
	return &Runner{scorer: scorer}
}

// Evaluate scores every submission against yTrue and returns the
// leaderboard sorted per the score's direction, each score rounded to
// the descriptor's display precision. A failing submission aborts the
// whole evaluation; there is no partial leaderboard.
func (r *Runner) Evaluate(yTrue *mat.Dense, submissions []Submission) ([]Entry, error) {
	desc := r.scorer.Describe()
	logger.Sugar().Infow("Evaluating submissions", "score", desc.Name, "submissions", len(submissions))

	entries := make([]Entry, 0, len(submissions))
	for _, sub := range submissions {
		score, err := r.scorer.Score(yTrue, sub.Prediction)
		if err != nil {
			return nil, fmt.Errorf("score submission %s: %w", sub.Name, err)
		}
		log.Debug().Str("submission", sub.Name).Float64("score", score).Msgf("submission %s scored %f", sub.Name, score)
		entries = append(entries, Entry{Name: sub.Name, Score: roundTo(score, desc.Precision)})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if desc.IsLowerTheBetter {
			return entries[i].Score < entries[j].Score
		}
		return entries[i].Score > entries[j].Score
	})
	return entries, nil
}

// AggregateByName sums per-task scores into one slice ordered by the
// given submission names. Scores for unknown names are skipped.
func AggregateByName(allTaskScores map[string]map[string]float64, names []string) []float64 {
	nameToIdx := make(map[string]int, len(names))
	for i, name := range names {
		nameToIdx[name] = i
	}
	totals := make([]float64, len(names))

	for taskID, taskScores := range allTaskScores {
		for name, score := range taskScores {
			idx, exists := nameToIdx[name]
			if !exists {
				log.Debug().Str("submission", name).Str("taskID", taskID).
					Msg("submission not found in roster")
				continue
			}
			totals[idx] += score
			log.Debug().Str("submission", name).Str("taskID", taskID).Float64("score", score).
				Msgf("submission %s scored %f for task %s", name, score, taskID)
		}
	}

	return totals
}

func roundTo(v float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	return math.Round(v*scale) / scale
}
