package main

import (
	"fmt"
	"hybrid-guard/repositories"
	"hybrid-guard/services"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

type Config struct {
	BadgerFilepath string  `envconfig:"BADGER_FILEPATH" required:"true"`
	TestRatio      float64 `envconfig:"TEST_RATIO" default:"0.2"`
	Seed           int64   `envconfig:"SEED" default:"42"`
	Epochs         int     `envconfig:"EPOCHS" default:"200"`
	LearningRate   float64 `envconfig:"LEARNING_RATE" default:"0.1"`
	LogLevel       string  `envconfig:"LOG_LEVEL" default:"INFO"`
	// TRAINER_COLOURS toggles the coloured report
	Colours bool `envconfig:"TRAINER_COLOURS" default:"true"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Trainer terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if config.TestRatio <= 0 || config.TestRatio >= 1 {
		return exitConfig, fmt.Errorf("TEST_RATIO must be in (0, 1), got %v", config.TestRatio)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() { _ = db.Close() }()

	training := services.DefaultTrainingConfig()
	training.TestRatio = config.TestRatio
	training.Seed = config.Seed
	training.Options.Epochs = config.Epochs
	training.Options.LearningRate = config.LearningRate
	training.Options.Seed = config.Seed

	report, err := services.NewTrainingService(repositories.NewArtifactRepository(db, logger), logger).Train(training)
	if err != nil {
		return exitRuntime, err
	}
	RenderReport(os.Stdout, report, config.Colours)
	return exitOK, nil
}
