package services

import (
	"context"
	"hybrid-guard/ai"
	"hybrid-guard/dataset"
	"hybrid-guard/domain"
	"hybrid-guard/errors"
	"hybrid-guard/repositories"
	"hybrid-guard/runtime"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const textCSV = `Subject,Message,Spam/Ham
Free money,claim your free prize now,spam
Agenda,meeting moved to monday,ham
Prize,prize money waiting for you,spam
Lunch,team lunch on friday,ham
Winner,you are a winner claim now,spam
Report,quarterly report attached,ham
`

const otherTextCSV = `Subject,Message,Spam/Ham
Budget,budget review budget,ham
Review,review the budget,spam
Budget,budget review,ham
`

const urlCSV = `having_IPhaving_IP_Address,URLURL_Length,having_At_Symbol,double_slash_redirecting,Prefix_Suffix,having_Sub_Domain,Result
1,1,1,1,1,1,-1
-1,-1,-1,-1,-1,-1,1
1,0,1,1,1,1,-1
-1,-1,-1,-1,-1,0,1
`

func setupArtifacts(t *testing.T) *repositories.ArtifactRepository {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repositories.NewArtifactRepository(db, logs.GetLoggerFromLevel(slog.LevelDebug))
}

func writeCorpora(t *testing.T) (string, string) {
	return writeCorporaWith(t, textCSV)
}

func writeCorporaWith(t *testing.T, text string) (string, string) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "enron_spam_data.csv")
	urlPath := filepath.Join(dir, "phishing_dataset.csv")
	require.NoError(t, os.WriteFile(textPath, []byte(text), 0o600))
	require.NoError(t, os.WriteFile(urlPath, []byte(urlCSV), 0o600))
	return textPath, urlPath
}

func TestPipeline_BuildTrainServe(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	artifacts := setupArtifacts(t)
	textPath, urlPath := writeCorpora(t)

	builder := dataset.NewBuilder(log, 0, dataset.DefaultColumnMap())
	built, err := NewBuildService(artifacts, builder, log).BuildFromFiles(textPath, urlPath)
	req.NoError(err)
	req.Equal(10, built.Meta.Rows)
	req.Equal(built.Vocabulary+7, len(built.Meta.Columns))
	req.Equal(5, built.Malicious)

	config := DefaultTrainingConfig()
	trained, err := NewTrainingService(artifacts, log).Train(config)
	req.NoError(err)
	req.Equal(2, trained.TestRows)
	req.Equal(8, trained.TrainRows)
	req.Equal(built.Meta.BuildID, trained.Table.BuildID)
	req.Equal(built.Vocabulary+6, trained.Model.Model.InputWidth())

	registry := runtime.NewModelRegistry(artifacts, log)
	snapshot, err := registry.Reload(context.Background())
	req.NoError(err)
	req.Equal(trained.Model.Version, snapshot.Version)

	scorer := NewScorerService(registry, log)
	for _, sample := range []domain.Sample{
		{Content: "claim your free prize", Kind: domain.Text},
		{Content: "http://192.168.0.1/login@bank", Kind: domain.UrlLike},
	} {
		result := scorer.Score(context.Background(), sample)
		req.Empty(result.Error)
		req.GreaterOrEqual(result.SecurityScore, 0.0)
		req.LessOrEqual(result.SecurityScore, 100.0)
	}
}

func TestBuildService_NothingStoredOnFailure(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	artifacts := setupArtifacts(t)
	service := NewBuildService(artifacts, dataset.NewBuilder(log, 0, dataset.DefaultColumnMap()), log)

	text, err := dataset.ParseCSV(strings.NewReader(textCSV))
	req.NoError(err)
	badURLs := []dataset.Record{{"having_IPhaving_IP_Address": "1", "Result": "-1"}}

	_, err = service.Build(text, badURLs)
	req.ErrorIs(err, errors.ErrMissingColumn)

	_, err = artifacts.LoadVectorizer()
	req.ErrorIs(err, errors.ErrArtifactNotFound)
	_, _, err = artifacts.LoadLatestTable()
	req.ErrorIs(err, errors.ErrArtifactNotFound)
}

func TestTrainingService_RequiresTable(t *testing.T) {
	req := require.New(t)
	_, err := NewTrainingService(setupArtifacts(t), logs.GetLoggerFromLevel(slog.LevelDebug)).Train(DefaultTrainingConfig())
	req.ErrorIs(err, errors.ErrArtifactNotFound)
}

func TestPipeline_RebuildWithoutRetrainIsRefused(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	artifacts := setupArtifacts(t)
	service := NewBuildService(artifacts, dataset.NewBuilder(log, 2, dataset.DefaultColumnMap()), log)

	first, err := service.BuildFromFiles(writeCorpora(t))
	req.NoError(err)
	_, err = NewTrainingService(artifacts, log).Train(DefaultTrainingConfig())
	req.NoError(err)
	registry := runtime.NewModelRegistry(artifacts, log)
	active, err := registry.Reload(context.Background())
	req.NoError(err)

	// same max features, so the same width over another vocabulary
	second, err := service.BuildFromFiles(writeCorporaWith(t, otherTextCSV))
	req.NoError(err)
	req.Equal(first.Vocabulary, second.Vocabulary)
	stored, err := artifacts.LoadVectorizer()
	req.NoError(err)
	req.Equal([]string{"budget", "review"}, stored.Vocabulary)

	_, err = registry.Reload(context.Background())
	req.ErrorIs(err, errors.ErrVectorizerMismatch)
	req.Same(active, registry.Current())

	retrained, err := NewTrainingService(artifacts, log).Train(DefaultTrainingConfig())
	req.NoError(err)
	snapshot, err := registry.Reload(context.Background())
	req.NoError(err)
	req.Equal(retrained.Model.Version, snapshot.Version)
	req.Equal(stored.Vocabulary, snapshot.Vectorizer.Vocabulary())
}

func TestTrainingService_RefusesTableOfAnotherVectorizer(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	artifacts := setupArtifacts(t)
	built, err := NewBuildService(artifacts, dataset.NewBuilder(log, 2, dataset.DefaultColumnMap()), log).
		BuildFromFiles(writeCorpora(t))
	req.NoError(err)

	other, err := ai.Fit([]string{"budget review", "budget review"}, 2)
	req.NoError(err)
	req.Equal(built.Vocabulary, other.Width())
	req.NoError(artifacts.SaveVectorizer(other.Snapshot()))

	_, err = NewTrainingService(artifacts, log).Train(DefaultTrainingConfig())
	req.ErrorIs(err, errors.ErrVectorizerMismatch)
	_, err = artifacts.LoadModel()
	req.ErrorIs(err, errors.ErrArtifactNotFound)
}

func TestTrainingService_TableTooSmall(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	artifacts := setupArtifacts(t)
	_, err := NewBuildService(artifacts, dataset.NewBuilder(log, 0, dataset.DefaultColumnMap()), log).
		BuildFromFiles(writeCorpora(t))
	req.NoError(err)

	config := DefaultTrainingConfig()
	config.TestRatio = 0
	_, err = NewTrainingService(artifacts, log).Train(config)
	req.ErrorIs(err, errors.ErrTableTooSmall)
}
