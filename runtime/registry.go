package runtime

import (
	"context"
	"fmt"
	"hybrid-guard/ai"
	"hybrid-guard/repositories"
	"log/slog"
	"sync/atomic"
)

// ModelRegistry publishes the active ModelSnapshot. Readers take one snapshot
// per call and never observe a half-swapped vectorizer/classifier pair.
type ModelRegistry struct {
	current    atomic.Pointer[ModelSnapshot]
	repository repositories.IArtifactRepository
	log        *slog.Logger
}

func NewModelRegistry(repository repositories.IArtifactRepository, log *slog.Logger) *ModelRegistry {
	return &ModelRegistry{repository: repository, log: log}
}

// Current returns the active snapshot, or nil before the first load.
func (r *ModelRegistry) Current() *ModelSnapshot {
	return r.current.Load()
}

// Swap publishes s as a unit and returns the previous snapshot.
func (r *ModelRegistry) Swap(s *ModelSnapshot) *ModelSnapshot {
	return r.current.Swap(s)
}

// Reload reads the stored vectorizer and model in one read, validates the pair and
// swaps it in. On any failure the active snapshot is left untouched.
func (r *ModelRegistry) Reload(ctx context.Context) (*ModelSnapshot, error) {
	vectorizerSnapshot, record, err := r.repository.LoadPair()
	if err != nil {
		return nil, fmt.Errorf("loading model pair: %w", err)
	}
	vectorizer, err := ai.Restore(vectorizerSnapshot)
	if err != nil {
		return nil, fmt.Errorf("restoring vectorizer: %w", err)
	}
	snapshot, err := NewSnapshot(vectorizer, record.Model, record.Columns, record.Version)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	previous := r.Swap(snapshot)
	attrs := []any{"version", snapshot.Version, "vocabulary", vectorizer.Width(), "trained_at", record.TrainedAt}
	if previous != nil {
		attrs = append(attrs, "previous", previous.Version)
	}
	r.log.Info("Model snapshot loaded", attrs...)
	return snapshot, nil
}
