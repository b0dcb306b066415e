// Package config defines environment configuration structs and loaders.
package config

import "time"

type AppConfig struct {
	ScoringEnvConfig
	ServerEnvConfig
	ClientEnvConfig
}

// ScoringEnvConfig holds the policy knobs of the likelihood scorers.
// WorstLogLikelihood and MaxGauss default to the reference behavior but
// stay overridable for callers with different robustness trade-offs.
type ScoringEnvConfig struct {
	NBins              int     `env:"SCORING_N_BINS, default=10"`
	MaxGauss           int     `env:"SCORING_MAX_GAUSS, default=10"`
	WorstLogLikelihood float64 `env:"SCORING_WORST_LOG_LIKELIHOOD, default=-50"`
	WeightTolerance    float64 `env:"SCORING_WEIGHT_TOLERANCE, default=0.00001"`
}

// ServerEnvConfig configures the scoring API server.
type ServerEnvConfig struct {
	Address       string `env:"SERVER_ADDRESS, default=127.0.0.1"`
	Port          int    `env:"SERVER_PORT, default=8080"`
	BodySizeLimit int    `env:"SERVER_BODY_LIMIT, default=16777216"`
}

// ClientEnvConfig configures the submission store client.
type ClientEnvConfig struct {
	StoreURL      string        `env:"STORE_URL, default=http://localhost:5004"`
	ClientTimeout time.Duration `env:"CLIENT_TIMEOUT, default=30s"`
	RetryMax      int           `env:"CLIENT_RETRY_MAX, default=5"`
}
