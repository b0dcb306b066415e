package scoring

// Option overrides a scorer policy constant at construction time.
type Option func(*scorerOptions)

type scorerOptions struct {
	name      string
	precision int
	floor     float64
	weightTol float64
}

func defaultScorerOptions(name string) scorerOptions {
	return scorerOptions{
		name:      name,
		precision: 2,
		floor:     DefaultWorstLogLikelihood,
		weightTol: DefaultWeightTolerance,
	}
}

// WithName overrides the display name of the score.
func WithName(name string) Option {
	return func(o *scorerOptions) {
		o.name = name
	}
}

// WithPrecision overrides the display precision of the score.
func WithPrecision(precision int) Option {
	return func(o *scorerOptions) {
		o.precision = precision
	}
}

// WithFloor overrides the per-sample log-likelihood floor.
func WithFloor(floor float64) Option {
	return func(o *scorerOptions) {
		o.floor = floor
	}
}

// WithWeightTolerance overrides the allowed deviation of a mixture row's
// weight sum from 1.
func WithWeightTolerance(tol float64) Option {
	return func(o *scorerOptions) {
		o.weightTol = tol
	}
}
