package runtime_test

import (
	"context"
	"hybrid-guard/ai"
	"hybrid-guard/errors"
	"hybrid-guard/mocks"
	"hybrid-guard/repositories"
	"hybrid-guard/runtime"
	"hybrid-guard/schema"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func fittedVectorizer(t *testing.T) *ai.Vectorizer {
	v, err := ai.Fit([]string{"free money now", "quarterly meeting agenda"}, 0)
	require.NoError(t, err)
	return v
}

func columnsOf(v *ai.Vectorizer) []string {
	return schema.FeatureColumns(v.Vocabulary())
}

func TestNewSnapshot_WidthCheck(t *testing.T) {
	req := require.New(t)
	v := fittedVectorizer(t)

	_, err := runtime.NewSnapshot(v, &ai.LogisticModel{Weights: make([]float64, v.Width())}, columnsOf(v), uuid.New())
	req.ErrorIs(err, errors.ErrWidthMismatch)

	s, err := runtime.NewSnapshot(v, &ai.LogisticModel{Weights: make([]float64, v.Width()+6)}, columnsOf(v), uuid.New())
	req.NoError(err)
	req.Equal(v.Width()+6, s.Schema.Width())

	_, err = runtime.NewSnapshot(nil, nil, nil, uuid.New())
	req.ErrorIs(err, errors.ErrModelNotLoaded)
}

func TestNewSnapshot_RejectsOtherVocabulary(t *testing.T) {
	req := require.New(t)
	trained, err := ai.Fit([]string{"free money", "free money prize"}, 2)
	req.NoError(err)
	rebuilt, err := ai.Fit([]string{"meeting agenda", "meeting agenda notes"}, 2)
	req.NoError(err)
	req.Equal(trained.Width(), rebuilt.Width())
	model := &ai.LogisticModel{Weights: make([]float64, trained.Width()+6)}

	tests := []struct {
		name    string
		columns []string
	}{
		{"Same width, other vocabulary", columnsOf(trained)},
		{"No training columns recorded", nil},
		{"Reordered columns", append([]string{rebuilt.Vocabulary()[1], rebuilt.Vocabulary()[0]}, schema.URLColumns...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runtime.NewSnapshot(rebuilt, model, tt.columns, uuid.New())
			require.ErrorIs(t, err, errors.ErrVectorizerMismatch)
		})
	}

	s, err := runtime.NewSnapshot(rebuilt, model, columnsOf(rebuilt), uuid.New())
	req.NoError(err)
	req.Equal(columnsOf(rebuilt), s.Schema.Columns())
}

func TestModelRegistry_Reload(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIArtifactRepository(ctrl)
	registry := runtime.NewModelRegistry(repository, logs.GetLoggerFromLevel(slog.LevelDebug))
	v := fittedVectorizer(t)
	version := uuid.New()

	req.Nil(registry.Current())

	repository.EXPECT().LoadPair().Return(v.Snapshot(), repositories.ModelRecord{
		Version:   version,
		TrainedAt: time.Now(),
		Columns:   columnsOf(v),
		Model:     &ai.LogisticModel{Weights: make([]float64, v.Width()+6)},
	}, nil)

	snapshot, err := registry.Reload(context.Background())
	req.NoError(err)
	req.Equal(version, snapshot.Version)
	req.Same(snapshot, registry.Current())
}

func TestModelRegistry_ReloadKeepsCurrentOnFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIArtifactRepository(ctrl)
	registry := runtime.NewModelRegistry(repository, logs.GetLoggerFromLevel(slog.LevelDebug))
	v := fittedVectorizer(t)

	active, err := runtime.NewSnapshot(v, &ai.LogisticModel{Weights: make([]float64, v.Width()+6)}, columnsOf(v), uuid.New())
	req.NoError(err)
	registry.Swap(active)

	// model of another width
	repository.EXPECT().LoadPair().Return(v.Snapshot(), repositories.ModelRecord{
		Version: uuid.New(),
		Columns: []string{"a", "b", "c"},
		Model:   &ai.LogisticModel{Weights: make([]float64, 3)},
	}, nil)
	_, err = registry.Reload(context.Background())
	req.ErrorIs(err, errors.ErrWidthMismatch)
	req.Same(active, registry.Current())

	// same width, trained on another vocabulary
	other := append(lo.Map(v.Vocabulary(), func(term string, _ int) string { return "x" + term }), schema.URLColumns...)
	repository.EXPECT().LoadPair().Return(v.Snapshot(), repositories.ModelRecord{
		Version: uuid.New(),
		Columns: other,
		Model:   &ai.LogisticModel{Weights: make([]float64, v.Width()+6)},
	}, nil)
	_, err = registry.Reload(context.Background())
	req.ErrorIs(err, errors.ErrVectorizerMismatch)
	req.Same(active, registry.Current())

	repository.EXPECT().LoadPair().Return(ai.VectorizerSnapshot{}, repositories.ModelRecord{}, errors.ErrArtifactNotFound)
	_, err = registry.Reload(context.Background())
	req.ErrorIs(err, errors.ErrArtifactNotFound)
	req.Same(active, registry.Current())
}

func TestModelRegistry_ConcurrentSwap(t *testing.T) {
	req := require.New(t)
	registry := runtime.NewModelRegistry(nil, logs.GetLoggerFromLevel(slog.LevelDebug))
	v := fittedVectorizer(t)

	snapshots := make([]*runtime.ModelSnapshot, 4)
	for i := range snapshots {
		s, err := runtime.NewSnapshot(v, &ai.LogisticModel{Weights: make([]float64, v.Width()+6)}, columnsOf(v), uuid.New())
		req.NoError(err)
		snapshots[i] = s
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				registry.Swap(snapshots[(i+j)%len(snapshots)])
				current := registry.Current()
				// a reader always sees a consistent pair
				req.Equal(current.Vectorizer.Width()+6, current.Classifier.InputWidth())
			}
		}(i)
	}
	wg.Wait()
	req.Contains(snapshots, registry.Current())
}
