package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/yigit/prereqplanner/internal/pkg/logger"
	"github.com/yigit/prereqplanner/internal/server"
)

// @title Prerequisite Planner API
// @version 1.0
// @description Course prerequisite parsing and degree plan validation

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for catalog administration

func main() {
	configPath := flag.String("config", filepath.Join("configs", "config.yaml"), "path to the YAML config file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
