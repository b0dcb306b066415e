package benchapi

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/rampart/internal/config"
)

// StoreClient is a REST client for the benchmark submission store.
type StoreClient struct {
	cfg    *config.ClientEnvConfig
	client *resty.Client
}

// NewStoreClient constructs a store client with retrying transport.
func NewStoreClient(cfg *config.ClientEnvConfig) (*StoreClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("client env configuration cannot be nil")
	}

	retrying := retryablehttp.NewClient()
	retrying.RetryMax = cfg.RetryMax
	retrying.HTTPClient.Timeout = cfg.ClientTimeout
	retrying.RetryWaitMin = 500 * time.Millisecond
	retrying.RetryWaitMax = 20 * time.Second
	retrying.Logger = nil

	client := resty.NewWithClient(retrying.StandardClient()).
		SetBaseURL(cfg.StoreURL).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)

	log.Info().
		Str("base_url", cfg.StoreURL).
		Int("retry_max", cfg.RetryMax).
		Str("timeout", cfg.ClientTimeout.String()).
		Msg("store client initialized")

	return &StoreClient{cfg: cfg, client: client}, nil
}

// GetSubmissions lists the submissions awaiting scoring for a task.
func (s *StoreClient) GetSubmissions(taskID string) (Response[SubmissionsResponse], error) {
	var out Response[SubmissionsResponse]
	resp, err := s.client.R().
		SetQueryParam("task_id", taskID).
		SetResult(&out).
		Get("/submissions")
	if err != nil {
		return Response[SubmissionsResponse]{}, fmt.Errorf("get submissions: %w", err)
	}
	if resp.IsError() {
		return Response[SubmissionsResponse]{}, fmt.Errorf("get submissions returned status %d: %s",
			resp.StatusCode(), resp.String())
	}
	if !out.Success {
		return Response[SubmissionsResponse]{}, fmt.Errorf("get submissions returned success=false: %s", out.Error)
	}
	return out, nil
}

// PostScores reports a task's scored submissions back to the store.
func (s *StoreClient) PostScores(taskID string, scores map[string]float64) (Response[PostScoresResponse], error) {
	var out Response[PostScoresResponse]
	resp, err := s.client.R().
		SetBody(PostScoresRequest{TaskID: taskID, Scores: scores}).
		SetResult(&out).
		Post("/scores")
	if err != nil {
		return Response[PostScoresResponse]{}, fmt.Errorf("post scores: %w", err)
	}
	if resp.IsError() {
		return Response[PostScoresResponse]{}, fmt.Errorf("post scores returned status %d: %s",
			resp.StatusCode(), resp.String())
	}
	return out, nil
}
