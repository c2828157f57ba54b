package runtime

import (
	"fmt"
	"hybrid-guard/ai"
	"hybrid-guard/errors"
	"hybrid-guard/schema"
	"time"

	"github.com/google/uuid"
)

// ModelSnapshot pairs a vectorizer with the classifier trained against it.
// It is immutable: a reload publishes a new snapshot instead of editing this one.
type ModelSnapshot struct {
	Version    uuid.UUID
	LoadedAt   time.Time
	Vectorizer *ai.Vectorizer
	Classifier ai.Classifier
	Schema     schema.Schema
}

// NewSnapshot refuses a pair that was not trained together. The classifier must
// expect exactly V+6 features, and columns, the feature columns it was trained
// on, must equal the vectorizer's schema name by name. Equal widths are not
// enough: a rebuild with the same max features yields another vocabulary.
func NewSnapshot(vectorizer *ai.Vectorizer, classifier ai.Classifier, columns []string, version uuid.UUID) (*ModelSnapshot, error) {
	if vectorizer == nil || classifier == nil {
		return nil, errors.ErrModelNotLoaded
	}
	s, err := schema.New(vectorizer.Vocabulary())
	if err != nil {
		return nil, err
	}
	if classifier.InputWidth() != s.Width() {
		return nil, fmt.Errorf("%w: classifier expects %d features, vectorizer yields %d",
			errors.ErrWidthMismatch, classifier.InputWidth(), s.Width())
	}
	if i := s.FirstMismatch(columns); i >= 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrVectorizerMismatch, describeMismatch(s.Columns(), columns, i))
	}
	return &ModelSnapshot{
		Version:    version,
		LoadedAt:   time.Now().UTC(),
		Vectorizer: vectorizer,
		Classifier: classifier,
		Schema:     s,
	}, nil
}

func describeMismatch(expected, trained []string, i int) string {
	switch {
	case len(trained) == 0:
		return "model carries no training columns, retrain it"
	case i >= len(trained):
		return fmt.Sprintf("model was trained on %d columns, vectorizer yields %d", len(trained), len(expected))
	case i >= len(expected):
		return fmt.Sprintf("model column %d %q is beyond the vectorizer schema", i, trained[i])
	default:
		return fmt.Sprintf("column %d is %q for the vectorizer, %q for the model", i, expected[i], trained[i])
	}
}
