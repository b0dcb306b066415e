package scoring

const (
	// DefaultWorstLogLikelihood bounds every per-sample log-likelihood
	// from below, so a single observation outside a prediction's support
	// cannot produce an unbounded loss.
	DefaultWorstLogLikelihood = -50.0

	// DefaultMaxGauss caps the number of components a mixture prediction
	// may declare per dimension.
	DefaultMaxGauss = 10

	// DefaultWeightTolerance is the allowed deviation of a mixture row's
	// weight sum from 1.
	DefaultWeightTolerance = 1e-5
)
