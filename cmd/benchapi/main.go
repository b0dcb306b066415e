package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/rampart/internal/benchapi"
	"github.com/tensorplex-labs/rampart/internal/config"
	"github.com/tensorplex-labs/rampart/internal/utils/logger"
)

func main() {
	logger.Init()

	cfg, err := config.LoadConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	server, err := benchapi.NewServer(&cfg.ServerEnvConfig, &cfg.ScoringEnvConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	if err := server.Listen(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
