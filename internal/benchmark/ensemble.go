package benchmark

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/rampart/internal/prediction"
)

// EnsembleTopK combines the ranking predictions at the given leaderboard
// positions into one ensemble prediction. positions index into the
// predictions slice in leaderboard order; passing nil combines the full
// list. The combined prediction feeds back into the same representation,
// so ensembles can themselves be ensembled.
func EnsembleTopK(predictions []*prediction.Ranking, positions []int) (*prediction.Ranking, error) {
	combined, err := prediction.Combine(predictions, positions)
	if err != nil {
		return nil, fmt.Errorf("combine ranking predictions: %w", err)
	}
	log.Debug().Int("models", len(predictions)).Msgf("combined %d ranking prediction(s) into ensemble", len(predictions))
	return combined, nil
}
