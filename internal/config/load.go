package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// LoadConfig reads the full application configuration from the process
// environment.
func LoadConfig(ctx context.Context) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return cfg, nil
}

// LoadScoringEnv reads only the scorer policy knobs.
func LoadScoringEnv(ctx context.Context) (*ScoringEnvConfig, error) {
	cfg := &ScoringEnvConfig{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, fmt.Errorf("process scoring environment: %w", err)
	}
	return cfg, nil
}

// LoadServerEnv reads only the API server configuration.
func LoadServerEnv(ctx context.Context) (*ServerEnvConfig, error) {
	cfg := &ServerEnvConfig{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, fmt.Errorf("process server environment: %w", err)
	}
	return cfg, nil
}

// LoadClientEnv reads only the submission store client configuration.
func LoadClientEnv(ctx context.Context) (*ClientEnvConfig, error) {
	cfg := &ClientEnvConfig{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, fmt.Errorf("process client environment: %w", err)
	}
	return cfg, nil
}
