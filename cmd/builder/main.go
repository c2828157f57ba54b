package main

import (
	"fmt"
	"hybrid-guard/ai"
	"hybrid-guard/dataset"
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
	TextCorpus     string `envconfig:"TEXT_CORPUS" default:"enron_spam_data.csv"`
	URLCorpus      string `envconfig:"URL_CORPUS" default:"phishing_dataset.csv"`
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" required:"true"`
	MaxFeatures    int    `envconfig:"MAX_FEATURES" default:"1000"`
	ColumnMapPath  string `envconfig:"COLUMN_MAP"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"INFO"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Builder terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if config.MaxFeatures <= 0 {
		config.MaxFeatures = ai.DefaultMaxFeatures
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	columnMap := dataset.DefaultColumnMap()
	if config.ColumnMapPath != "" {
		m, err := dataset.LoadColumnMap(config.ColumnMapPath)
		if err != nil {
			return exitConfig, err
		}
		columnMap = m
	}

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() { _ = db.Close() }()

	artifacts := repositories.NewArtifactRepository(db, logger)
	builder := dataset.NewBuilder(logger, config.MaxFeatures, columnMap)
	report, err := services.NewBuildService(artifacts, builder, logger).BuildFromFiles(config.TextCorpus, config.URLCorpus)
	if err != nil {
		return exitRuntime, err
	}

	fmt.Printf("Hybrid dataset %s: shape (%d, %d), vocabulary %d, malicious %d\n",
		report.Meta.BuildID, report.Meta.Rows, len(report.Meta.Columns), report.Vocabulary, report.Malicious)
	return exitOK, nil
}
