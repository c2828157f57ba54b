package services

import (
	"fmt"
	"hybrid-guard/dataset"
	"hybrid-guard/repositories"
	"log/slog"
	"time"

	"github.com/samber/lo"
)

// BuildReport summarises one offline build.
type BuildReport struct {
	Meta       repositories.TableMeta
	Vocabulary int
	Malicious  int
	Duration   time.Duration
}

// BuildService runs the dataset builder over both corpora and persists the
// fitted vectorizer together with the hybrid table.
type BuildService struct {
	artifacts repositories.IArtifactRepository
	builder   *dataset.Builder
	log       *slog.Logger
}

func NewBuildService(artifacts repositories.IArtifactRepository, builder *dataset.Builder, log *slog.Logger) *BuildService {
	return &BuildService{artifacts: artifacts, builder: builder, log: log}
}

func (s *BuildService) BuildFromFiles(textPath, urlPath string) (BuildReport, error) {
	text, err := dataset.ReadCSV(textPath)
	if err != nil {
		return BuildReport{}, fmt.Errorf("reading %s: %w", textPath, err)
	}
	urls, err := dataset.ReadCSV(urlPath)
	if err != nil {
		return BuildReport{}, fmt.Errorf("reading %s: %w", urlPath, err)
	}
	return s.Build(text, urls)
}

// Build persists nothing unless the whole table was assembled.
func (s *BuildService) Build(text, urls []dataset.Record) (BuildReport, error) {
	start := time.Now()
	table, err := s.builder.Build(text, urls)
	if err != nil {
		return BuildReport{}, err
	}
	vectorizer, err := s.builder.Vectorizer()
	if err != nil {
		return BuildReport{}, err
	}

	if err := s.artifacts.SaveVectorizer(vectorizer.Snapshot()); err != nil {
		return BuildReport{}, fmt.Errorf("saving vectorizer: %w", err)
	}
	meta, err := s.artifacts.SaveTable(table)
	if err != nil {
		return BuildReport{}, fmt.Errorf("saving table: %w", err)
	}

	malicious := lo.CountBy(table.Rows, func(row []float64) bool { return row[len(row)-1] == 1 })
	report := BuildReport{
		Meta:       meta,
		Vocabulary: vectorizer.Width(),
		Malicious:  malicious,
		Duration:   time.Since(start),
	}
	s.log.Info("Build completed",
		"build_id", meta.BuildID,
		"shape", fmt.Sprintf("(%d, %d)", meta.Rows, len(meta.Columns)),
		"duration", report.Duration)
	s.log.Warn("Vectorizer replaced, the stored model no longer pairs with it until the trainer runs",
		"vocabulary", report.Vocabulary)
	return report, nil
}
