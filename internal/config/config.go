package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Artifact backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	Server   ServerConfig
	Artifact ArtifactConfig
	Train    TrainConfig
}

type ServerConfig struct {
	Port string `env:"SERVER_PORT" envDefault:"8080"`
}

type ArtifactConfig struct {
	Backend    string `env:"ARTIFACT_BACKEND" envDefault:"file"`
	Dir        string `env:"ARTIFACT_DIR" envDefault:"."`
	SQLitePath string `env:"ARTIFACT_SQLITE_PATH" envDefault:"artifacts.db"`
}

type TrainConfig struct {
	DatasetPath string `env:"DATASET_PATH" envDefault:"car_data.csv"`
	PlotPath    string `env:"TRAIN_PLOT_PATH"`
}

// ReadConfig loads an optional .env file and then parses the environment.
func ReadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse .env file: %w", err)
	}
	switch config.Artifact.Backend {
	case BackendFile, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown ARTIFACT_BACKEND %q", config.Artifact.Backend)
	}

	return config, nil
}
