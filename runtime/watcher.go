package runtime

import (
	"context"
	"hybrid-guard/repositories"
	"log/slog"
	"time"
)

// ModelWatcher reloads the registry when the trainer stores a model under a new version.
type ModelWatcher struct {
	registry   *ModelRegistry
	repository repositories.IArtifactRepository
	interval   time.Duration
	log        *slog.Logger
}

func NewModelWatcher(registry *ModelRegistry, repository repositories.IArtifactRepository, interval time.Duration, log *slog.Logger) *ModelWatcher {
	return &ModelWatcher{registry: registry, repository: repository, interval: interval, log: log}
}

func (w *ModelWatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

// check never fails the loop: a broken artifact keeps the current snapshot in place.
func (w *ModelWatcher) check(ctx context.Context) {
	record, err := w.repository.LoadModel()
	if err != nil {
		w.log.Debug("No model to watch", "err", err)
		return
	}
	if current := w.registry.Current(); current != nil && current.Version == record.Version {
		return
	}
	if _, err := w.registry.Reload(ctx); err != nil {
		w.log.Warn("New model version rejected", "version", record.Version, "err", err)
	}
}
