package repositories

import (
	"hybrid-guard/ai"
	"hybrid-guard/dataset"
	"hybrid-guard/errors"
	"hybrid-guard/schema"
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) *ArtifactRepository {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewArtifactRepository(db, logs.GetLoggerFromLevel(slog.LevelDebug))
}

func TestArtifactRepository_Vectorizer(t *testing.T) {
	req := require.New(t)
	repo := setupRepository(t)

	_, err := repo.LoadVectorizer()
	req.ErrorIs(err, errors.ErrArtifactNotFound)

	v, err := ai.Fit([]string{"free money now", "meeting agenda monday"}, 0)
	req.NoError(err)
	req.NoError(repo.SaveVectorizer(v.Snapshot()))

	snapshot, err := repo.LoadVectorizer()
	req.NoError(err)
	req.Equal(v.Snapshot(), snapshot)

	restored, err := ai.Restore(snapshot)
	req.NoError(err)
	req.Equal(v.Transform("free agenda"), restored.Transform("free agenda"))
}

func TestArtifactRepository_Model(t *testing.T) {
	req := require.New(t)
	repo := setupRepository(t)

	_, err := repo.LoadModel()
	req.ErrorIs(err, errors.ErrArtifactNotFound)

	model := &ai.LogisticModel{Weights: []float64{0.5, -1.25, 3}, Bias: -0.75}
	columns := []string{"free", "money", "URL_Length"}
	first, err := repo.SaveModel(model, columns)
	req.NoError(err)

	loaded, err := repo.LoadModel()
	req.NoError(err)
	req.Equal(first.Version, loaded.Version)
	req.True(first.TrainedAt.Equal(loaded.TrainedAt))
	req.Equal(columns, loaded.Columns)
	req.Equal(model, loaded.Model)

	// a new save publishes a new version
	second, err := repo.SaveModel(model, columns)
	req.NoError(err)
	req.NotEqual(first.Version, second.Version)
	loaded, err = repo.LoadModel()
	req.NoError(err)
	req.Equal(second.Version, loaded.Version)
}

func TestArtifactRepository_LoadPair(t *testing.T) {
	req := require.New(t)
	repo := setupRepository(t)

	v, err := ai.Fit([]string{"free money now", "meeting agenda monday"}, 0)
	req.NoError(err)
	req.NoError(repo.SaveVectorizer(v.Snapshot()))

	_, _, err = repo.LoadPair()
	req.ErrorIs(err, errors.ErrArtifactNotFound, "a vectorizer alone is not a pair")

	columns := schema.FeatureColumns(v.Vocabulary())
	record, err := repo.SaveModel(&ai.LogisticModel{Weights: make([]float64, len(columns))}, columns)
	req.NoError(err)

	snapshot, loaded, err := repo.LoadPair()
	req.NoError(err)
	req.Equal(v.Snapshot(), snapshot)
	req.Equal(record.Version, loaded.Version)
	req.Equal(columns, loaded.Columns)
}

func TestArtifactRepository_Table(t *testing.T) {
	req := require.New(t)
	repo := setupRepository(t)

	_, _, err := repo.LoadLatestTable()
	req.ErrorIs(err, errors.ErrArtifactNotFound)

	table := dataset.Table{
		Columns: []string{"free", "URL_Length", "label"},
		Rows:    make([][]float64, 0, 25),
	}
	for i := 0; i < 25; i++ {
		table.Rows = append(table.Rows, []float64{float64(i) / 10, -1, float64(i % 2)})
	}

	meta, err := repo.SaveTable(table)
	req.NoError(err)
	req.Equal(25, meta.Rows)

	loadedMeta, loaded, err := repo.LoadLatestTable()
	req.NoError(err)
	req.Equal(meta.BuildID, loadedMeta.BuildID)
	req.Equal(table.Columns, loaded.Columns)
	req.Equal(table.Rows, loaded.Rows, "rows keep their insertion order")

	// the latest pointer follows the most recent build
	next, err := repo.SaveTable(dataset.Table{Columns: []string{"label"}, Rows: [][]float64{{1}}})
	req.NoError(err)
	loadedMeta, loaded, err = repo.LoadLatestTable()
	req.NoError(err)
	req.Equal(next.BuildID, loadedMeta.BuildID)
	req.Equal(1, loaded.Len())
}
