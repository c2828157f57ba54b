//go:generate go run go.uber.org/mock/mockgen -source=scorer_service.go -destination=../mocks/mock_scorer_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"hybrid-guard/domain"
	"hybrid-guard/errors"
	"hybrid-guard/features"
	"hybrid-guard/runtime"
	"log/slog"
	"math"
	"time"

	stderrors "errors"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"
)

type IScorerService interface {
	Score(ctx context.Context, sample domain.Sample) domain.ScoreResult
}

// SnapshotProvider hands out the active model snapshot, nil when nothing is loaded.
type SnapshotProvider interface {
	Current() *runtime.ModelSnapshot
}

type ScorerService struct {
	models SnapshotProvider
	log    *slog.Logger
}

func NewScorerService(models SnapshotProvider, log *slog.Logger) *ScorerService {
	return &ScorerService{models: models, log: log}
}

// Score never fails the caller: every problem ends up in ScoreResult.Error.
func (s ScorerService) Score(ctx context.Context, sample domain.Sample) (result domain.ScoreResult) {
	requestID := uuid.New()
	start := time.Now()
	log := s.log.With("request_id", requestID, "kind", sample.Kind)

	defer func() {
		if r := recover(); r != nil {
			log.Error("Scoring panicked", "panic", r)
			result = domain.ErrorResult(fmt.Errorf("scoring failed: %v", r))
		}
	}()

	snapshot := s.models.Current()
	if snapshot == nil {
		log.Warn("Scoring requested before a model was loaded")
		return domain.ErrorResult(errors.ErrModelNotLoaded)
	}

	vector, err := AssembleVector(snapshot, sample)
	if err != nil {
		return s.fail(log, err)
	}
	probability, err := snapshot.Classifier.PredictProbability(vector)
	if err != nil {
		return s.fail(log, err)
	}
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return s.fail(log, fmt.Errorf("%w: %v", errors.ErrInvalidProbability, probability))
	}

	result = domain.NewScoreResult(probability)
	attrs := []any{
		"model_version", snapshot.Version,
		"probability", probability,
		"threat_level", result.ThreatLevel,
		"latency_us", time.Since(start).Microseconds(),
	}
	if sample.Kind == domain.Text {
		attrs = append(attrs, "lang", whatlanggo.Detect(sample.Content).Lang.Iso6391())
	}
	if result.IsMalicious {
		log.WarnContext(ctx, "Malicious input detected", attrs...)
	} else {
		log.DebugContext(ctx, "Input scored", attrs...)
	}
	return result
}

func (s ScorerService) fail(log *slog.Logger, err error) domain.ScoreResult {
	if stderrors.Is(err, errors.ErrSchemaMismatch) {
		// builders and scorer share one schema, so this is a defect, not bad input
		log.Error("Hybrid schema violated at inference", "err", err)
	} else {
		log.Warn("Scoring failed", "err", err)
	}
	return domain.ErrorResult(err)
}

// AssembleVector builds the inference vector in schema order. The family that
// does not apply to the sample is zero-filled to keep the width at V+6.
func AssembleVector(snapshot *runtime.ModelSnapshot, sample domain.Sample) ([]float64, error) {
	switch sample.Kind {
	case domain.Text:
		return snapshot.Schema.Assemble(snapshot.Vectorizer.Transform(sample.Content), domain.URLFeatureSet{})
	case domain.UrlLike:
		return snapshot.Schema.Assemble(snapshot.Vectorizer.Zero(), features.ExtractURLFeatures(sample.Content))
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownInputType, sample.Kind)
	}
}
