package scoring

import "fmt"

const (
	binnedLayout  = "time_step x dim_step x (bins+probabilities)"
	mixtureLayout = "time_step x (count, means, sigmas, weights) per dim_step"
)

// MalformedPredictionError reports a prediction array the decoder cannot
// interpret: NaNs, a wrong shape, or bin edges out of order. It indicates
// a broken upstream producer and is never retried.
type MalformedPredictionError struct {
	Layout string
	Dim    int // -1 when the defect is not tied to one dimension
	Sample int // -1 when the defect is not tied to one sample
	Detail string
}

func (e *MalformedPredictionError) Error() string {
	if e.Dim >= 0 && e.Sample >= 0 {
		return fmt.Sprintf("malformed prediction at dim %d, sample %d: %s (expected layout: %s)",
			e.Dim, e.Sample, e.Detail, e.Layout)
	}
	return fmt.Sprintf("malformed prediction: %s (expected layout: %s)", e.Detail, e.Layout)
}

// PreconditionViolationError reports a mixture prediction that violates a
// configured statistical precondition: too many components, a negative
// standard deviation, or weights that do not sum to 1 within tolerance.
// These are configuration bugs in the prediction producer, not data
// conditions the scorer can recover from.
type PreconditionViolationError struct {
	Dim    int
	Sample int // -1 when the defect applies to the whole dimension
	Detail string
}

func (e *PreconditionViolationError) Error() string {
	if e.Sample >= 0 {
		return fmt.Sprintf("precondition violated at dim %d, sample %d: %s", e.Dim, e.Sample, e.Detail)
	}
	return fmt.Sprintf("precondition violated at dim %d: %s", e.Dim, e.Detail)
}
