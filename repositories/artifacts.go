//go:generate go run go.uber.org/mock/mockgen -source=artifacts.go -destination=../mocks/mock_artifact_repository.go -package=mocks
package repositories

import (
	"fmt"
	"hybrid-guard/ai"
	"hybrid-guard/dataset"
	"hybrid-guard/errors"
	"log/slog"
	"time"

	stderrors "errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	vectorizerKey   = "artifact:vectorizer"
	modelKey        = "artifact:model"
	latestTableKey  = "table:latest"
	tableMetaFormat = "table:%s:meta"
	tableRowFormat  = "table:%s:row:%09d"
	tableRowsPrefix = "table:%s:row:"
)

// IArtifactRepository persists what the offline tools produce and the server loads.
type IArtifactRepository interface {
	SaveVectorizer(snapshot ai.VectorizerSnapshot) error
	LoadVectorizer() (ai.VectorizerSnapshot, error)
	SaveModel(model *ai.LogisticModel, columns []string) (ModelRecord, error)
	LoadModel() (ModelRecord, error)
	LoadPair() (ai.VectorizerSnapshot, ModelRecord, error)
	SaveTable(table dataset.Table) (TableMeta, error)
	LoadLatestTable() (TableMeta, dataset.Table, error)
}

// ModelRecord is a stored classifier with the version it was published under
// and the feature columns, in order, it was trained on.
type ModelRecord struct {
	Version   uuid.UUID
	TrainedAt time.Time
	Columns   []string
	Model     *ai.LogisticModel
}

// TableMeta describes one persisted hybrid table.
type TableMeta struct {
	BuildID   uuid.UUID
	Columns   []string
	Rows      int
	CreatedAt time.Time
}

type ArtifactRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewArtifactRepository(db *badger.DB, log *slog.Logger) *ArtifactRepository {
	return &ArtifactRepository{db: db, log: log}
}

func (a ArtifactRepository) SaveVectorizer(snapshot ai.VectorizerSnapshot) error {
	value := &structpb.Struct{Fields: map[string]*structpb.Value{
		"vocabulary": stringList(snapshot.Vocabulary),
		"idf":        numberList(snapshot.IDF),
	}}
	return a.put(vectorizerKey, value)
}

func (a ArtifactRepository) LoadVectorizer() (ai.VectorizerSnapshot, error) {
	var value structpb.Struct
	if err := a.get(vectorizerKey, &value); err != nil {
		return ai.VectorizerSnapshot{}, err
	}
	return decodeVectorizer(&value), nil
}

// SaveModel stores the classifier under a fresh version, together with the
// feature columns it was trained on.
func (a ArtifactRepository) SaveModel(model *ai.LogisticModel, columns []string) (ModelRecord, error) {
	record := ModelRecord{Version: uuid.New(), TrainedAt: time.Now().UTC(), Columns: columns, Model: model}
	value := &structpb.Struct{Fields: map[string]*structpb.Value{
		"version":    structpb.NewStringValue(record.Version.String()),
		"trained_at": structpb.NewStringValue(record.TrainedAt.Format(time.RFC3339Nano)),
		"columns":    stringList(columns),
		"bias":       structpb.NewNumberValue(model.Bias),
		"weights":    numberList(model.Weights),
	}}
	if err := a.put(modelKey, value); err != nil {
		return ModelRecord{}, err
	}
	a.log.Info("Model stored", "version", record.Version, "width", model.InputWidth(), "columns", len(columns))
	return record, nil
}

func (a ArtifactRepository) LoadModel() (ModelRecord, error) {
	var value structpb.Struct
	if err := a.get(modelKey, &value); err != nil {
		return ModelRecord{}, err
	}
	return decodeModel(&value)
}

// LoadPair reads the vectorizer and the model in the same transaction, so a
// builder or trainer writing in between cannot hand out a torn pair.
func (a ArtifactRepository) LoadPair() (ai.VectorizerSnapshot, ModelRecord, error) {
	var vectorizer ai.VectorizerSnapshot
	var record ModelRecord
	err := a.db.View(func(txn *badger.Txn) error {
		var vectorizerValue, modelValue structpb.Struct
		if err := unmarshalFrom(txn, vectorizerKey, &vectorizerValue); err != nil {
			return err
		}
		if err := unmarshalFrom(txn, modelKey, &modelValue); err != nil {
			return err
		}
		vectorizer = decodeVectorizer(&vectorizerValue)
		var err error
		record, err = decodeModel(&modelValue)
		return err
	})
	if err != nil {
		return ai.VectorizerSnapshot{}, ModelRecord{}, err
	}
	return vectorizer, record, nil
}

func decodeVectorizer(value *structpb.Struct) ai.VectorizerSnapshot {
	fields := value.GetFields()
	return ai.VectorizerSnapshot{
		Vocabulary: toStrings(fields["vocabulary"]),
		IDF:        toNumbers(fields["idf"]),
	}
}

func decodeModel(value *structpb.Struct) (ModelRecord, error) {
	fields := value.GetFields()
	version, err := uuid.Parse(fields["version"].GetStringValue())
	if err != nil {
		return ModelRecord{}, fmt.Errorf("invalid model version: %w", err)
	}
	trainedAt, err := time.Parse(time.RFC3339Nano, fields["trained_at"].GetStringValue())
	if err != nil {
		return ModelRecord{}, fmt.Errorf("invalid model timestamp: %w", err)
	}
	return ModelRecord{
		Version:   version,
		TrainedAt: trainedAt,
		Columns:   toStrings(fields["columns"]),
		Model: &ai.LogisticModel{
			Weights: toNumbers(fields["weights"]),
			Bias:    fields["bias"].GetNumberValue(),
		},
	}, nil
}

// SaveTable writes every row under its build id, then moves the latest pointer.
// Rows go through a WriteBatch since a full corpus exceeds a single transaction.
func (a ArtifactRepository) SaveTable(table dataset.Table) (TableMeta, error) {
	meta := TableMeta{
		BuildID:   uuid.New(),
		Columns:   table.Columns,
		Rows:      table.Len(),
		CreatedAt: time.Now().UTC(),
	}

	wb := a.db.NewWriteBatch()
	defer wb.Cancel()
	for i, row := range table.Rows {
		bytes, err := proto.Marshal(numberList(row).GetListValue())
		if err != nil {
			return TableMeta{}, err
		}
		if err := wb.Set([]byte(fmt.Sprintf(tableRowFormat, meta.BuildID, i)), bytes); err != nil {
			return TableMeta{}, fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return TableMeta{}, fmt.Errorf("flushing table rows: %w", err)
	}

	metaValue := &structpb.Struct{Fields: map[string]*structpb.Value{
		"columns":    stringList(meta.Columns),
		"rows":       structpb.NewNumberValue(float64(meta.Rows)),
		"created_at": structpb.NewStringValue(meta.CreatedAt.Format(time.RFC3339Nano)),
	}}
	metaBytes, err := proto.Marshal(metaValue)
	if err != nil {
		return TableMeta{}, err
	}
	err = a.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(fmt.Sprintf(tableMetaFormat, meta.BuildID)), metaBytes); err != nil {
			return err
		}
		return txn.Set([]byte(latestTableKey), []byte(meta.BuildID.String()))
	})
	if err != nil {
		return TableMeta{}, err
	}
	a.log.Info("Hybrid table stored", "build_id", meta.BuildID, "rows", meta.Rows, "columns", len(meta.Columns))
	return meta, nil
}

func (a ArtifactRepository) LoadLatestTable() (TableMeta, dataset.Table, error) {
	var meta TableMeta
	var table dataset.Table

	err := a.db.View(func(txn *badger.Txn) error {
		latest, err := valueOf(txn, latestTableKey)
		if err != nil {
			return err
		}
		if meta.BuildID, err = uuid.ParseBytes(latest); err != nil {
			return fmt.Errorf("invalid build id: %w", err)
		}

		metaBytes, err := valueOf(txn, fmt.Sprintf(tableMetaFormat, meta.BuildID))
		if err != nil {
			return err
		}
		var metaValue structpb.Struct
		if err := proto.Unmarshal(metaBytes, &metaValue); err != nil {
			return err
		}
		fields := metaValue.GetFields()
		meta.Columns = toStrings(fields["columns"])
		meta.Rows = int(fields["rows"].GetNumberValue())
		if meta.CreatedAt, err = time.Parse(time.RFC3339Nano, fields["created_at"].GetStringValue()); err != nil {
			return err
		}

		table = dataset.Table{Columns: meta.Columns, Rows: make([][]float64, 0, meta.Rows)}
		prefix := []byte(fmt.Sprintf(tableRowsPrefix, meta.BuildID))
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(v []byte) error {
				var row structpb.ListValue
				if err := proto.Unmarshal(v, &row); err != nil {
					return fmt.Errorf("failed to unmarshal row: %w", err)
				}
				table.Rows = append(table.Rows, toNumbers(structpb.NewListValue(&row)))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return TableMeta{}, dataset.Table{}, err
	}
	if table.Len() != meta.Rows {
		return TableMeta{}, dataset.Table{}, fmt.Errorf("%w: table %s has %d rows, meta says %d",
			errors.ErrSchemaMismatch, meta.BuildID, table.Len(), meta.Rows)
	}
	return meta, table, nil
}

func (a ArtifactRepository) put(key string, value proto.Message) error {
	bytes, err := proto.Marshal(value)
	if err != nil {
		return err
	}
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

func (a ArtifactRepository) get(key string, value proto.Message) error {
	return a.db.View(func(txn *badger.Txn) error {
		return unmarshalFrom(txn, key, value)
	})
}

func unmarshalFrom(txn *badger.Txn, key string, value proto.Message) error {
	bytes, err := valueOf(txn, key)
	if err != nil {
		return err
	}
	return proto.Unmarshal(bytes, value)
}

func valueOf(txn *badger.Txn, key string) ([]byte, error) {
	item, err := txn.Get([]byte(key))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", errors.ErrArtifactNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func stringList(values []string) *structpb.Value {
	return structpb.NewListValue(&structpb.ListValue{
		Values: lo.Map(values, func(v string, _ int) *structpb.Value { return structpb.NewStringValue(v) }),
	})
}

func numberList(values []float64) *structpb.Value {
	return structpb.NewListValue(&structpb.ListValue{
		Values: lo.Map(values, func(v float64, _ int) *structpb.Value { return structpb.NewNumberValue(v) }),
	})
}

func toStrings(value *structpb.Value) []string {
	return lo.Map(value.GetListValue().GetValues(), func(v *structpb.Value, _ int) string { return v.GetStringValue() })
}

func toNumbers(value *structpb.Value) []float64 {
	return lo.Map(value.GetListValue().GetValues(), func(v *structpb.Value, _ int) float64 { return v.GetNumberValue() })
}
