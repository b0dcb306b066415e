// Package benchapi exposes the scorers and the ensemble combiner over
// HTTP, and provides a client for the benchmark submission store.
package benchapi

// Response represents a generic API response structure.
type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// ScoreRequest carries one scoring call: ground truth rows are samples,
// prediction rows are samples in the positional encoding of the chosen
// scorer.
type ScoreRequest struct {
	GroundTruth [][]float64 `json:"ground_truth"`
	Prediction  [][]float64 `json:"prediction"`
}

// ScoreResult is the scalar score together with the score descriptor
// consumed by downstream leaderboards. Infinite bounds are omitted, JSON
// has no encoding for them.
type ScoreResult struct {
	Name             string   `json:"name"`
	Score            float64  `json:"score"`
	Precision        int      `json:"precision"`
	IsLowerTheBetter bool     `json:"is_lower_the_better"`
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
}

// CombineRequest carries the ranking predictions to ensemble and an
// optional subset of indices into that list.
type CombineRequest struct {
	Predictions [][][]float64 `json:"predictions"`
	Indices     []int         `json:"indices,omitempty"`
}

// CombineResult is the combined two-column ensemble prediction.
type CombineResult struct {
	Prediction [][]float64 `json:"prediction"`
}

// SubmissionRecord is one stored submission as returned by the benchmark
// store.
type SubmissionRecord struct {
	Name       string      `json:"name"`
	TaskID     string      `json:"task_id"`
	Prediction [][]float64 `json:"prediction"`
}

// SubmissionsResponse is the store's listing payload.
type SubmissionsResponse struct {
	Submissions []SubmissionRecord `json:"submissions"`
	Total       int                `json:"total"`
}

// PostScoresRequest reports scored submissions back to the store.
type PostScoresRequest struct {
	TaskID string             `json:"task_id"`
	Scores map[string]float64 `json:"scores"`
}

// PostScoresResponse acknowledges a score report.
type PostScoresResponse struct {
	Recorded int `json:"recorded"`
}
