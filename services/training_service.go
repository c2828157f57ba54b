package services

import (
	"fmt"
	"hybrid-guard/ai"
	"hybrid-guard/errors"
	"hybrid-guard/repositories"
	"hybrid-guard/schema"
	"log/slog"
)

// TrainingReport is what the trainer prints once the model is stored.
type TrainingReport struct {
	Table      repositories.TableMeta
	Model      repositories.ModelRecord
	TrainRows  int
	TestRows   int
	Evaluation ai.Evaluation
}

type TrainingConfig struct {
	TestRatio float64
	Seed      int64
	Options   ai.TrainOptions
}

func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{TestRatio: 0.2, Seed: 42, Options: ai.DefaultTrainOptions()}
}

// TrainingService fits the reference classifier on the latest hybrid table.
type TrainingService struct {
	artifacts repositories.IArtifactRepository
	log       *slog.Logger
}

func NewTrainingService(artifacts repositories.IArtifactRepository, log *slog.Logger) *TrainingService {
	return &TrainingService{artifacts: artifacts, log: log}
}

// Train splits the table, fits, evaluates on the held-out rows, then stores the
// model. The stored vectorizer must match the table, or the server would refuse the pair.
func (s *TrainingService) Train(config TrainingConfig) (TrainingReport, error) {
	meta, table, err := s.artifacts.LoadLatestTable()
	if err != nil {
		return TrainingReport{}, fmt.Errorf("loading table: %w", err)
	}
	vectorizer, err := s.artifacts.LoadVectorizer()
	if err != nil {
		return TrainingReport{}, fmt.Errorf("loading vectorizer: %w", err)
	}
	hybrid, err := schema.New(vectorizer.Vocabulary)
	if err != nil {
		return TrainingReport{}, err
	}
	if width := hybrid.Width() + 1; width != len(table.Columns) {
		return TrainingReport{}, fmt.Errorf("%w: vectorizer implies %d columns, table %s has %d",
			errors.ErrWidthMismatch, width, meta.BuildID, len(table.Columns))
	}
	features, label := table.Columns[:hybrid.Width()], table.Columns[hybrid.Width()]
	if i := hybrid.FirstMismatch(features); i >= 0 || label != schema.LabelColumn {
		return TrainingReport{}, fmt.Errorf("%w: table %s was not built with the stored vectorizer",
			errors.ErrVectorizerMismatch, meta.BuildID)
	}

	rows, labels, err := table.FeaturesAndLabels()
	if err != nil {
		return TrainingReport{}, err
	}
	trainIdx, testIdx := ai.Split(len(rows), config.TestRatio, config.Seed)
	if len(trainIdx) == 0 || len(testIdx) == 0 {
		return TrainingReport{}, fmt.Errorf("%w: %d rows at test ratio %.2f",
			errors.ErrTableTooSmall, len(rows), config.TestRatio)
	}
	trainRows, trainLabels := pick(rows, labels, trainIdx)
	testRows, testLabels := pick(rows, labels, testIdx)

	s.log.Info("Training classifier", "build_id", meta.BuildID, "train", len(trainRows), "test", len(testRows))
	model, err := ai.TrainLogistic(trainRows, trainLabels, config.Options)
	if err != nil {
		return TrainingReport{}, fmt.Errorf("training: %w", err)
	}
	evaluation, err := ai.Evaluate(model, testRows, testLabels)
	if err != nil {
		return TrainingReport{}, fmt.Errorf("evaluating: %w", err)
	}
	record, err := s.artifacts.SaveModel(model, hybrid.Columns())
	if err != nil {
		return TrainingReport{}, fmt.Errorf("saving model: %w", err)
	}
	s.log.Info("Model trained", "version", record.Version, "accuracy", evaluation.Accuracy)

	return TrainingReport{
		Table:      meta,
		Model:      record,
		TrainRows:  len(trainRows),
		TestRows:   len(testRows),
		Evaluation: evaluation,
	}, nil
}

func pick(rows [][]float64, labels []int, idx []int) ([][]float64, []int) {
	outRows := make([][]float64, len(idx))
	outLabels := make([]int, len(idx))
	for i, j := range idx {
		outRows[i], outLabels[i] = rows[j], labels[j]
	}
	return outRows, outLabels
}
