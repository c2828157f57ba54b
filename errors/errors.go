package errors

import "fmt"

var (
	ErrModelNotLoaded      = fmt.Errorf("model not loaded, please train the model first")
	ErrWidthMismatch       = fmt.Errorf("vectorizer and classifier widths do not match")
	ErrSchemaMismatch      = fmt.Errorf("feature vector does not match the hybrid schema")
	ErrEmptyInput          = fmt.Errorf("No input provided")
	ErrUnknownInputType    = fmt.Errorf("unknown input type")
	ErrVectorizerNotFitted = fmt.Errorf("vectorizer has not been fitted")
	ErrEmptyCorpus         = fmt.Errorf("corpus is empty")
	ErrEmptyVocabulary     = fmt.Errorf("no term survived tokenization")
	ErrMissingColumn       = fmt.Errorf("missing required column")
	ErrInvalidFeature      = fmt.Errorf("invalid url feature value")
	ErrInvalidLabel        = fmt.Errorf("invalid label")
	ErrUnreadableEncoding  = fmt.Errorf("unreadable corpus encoding")
	ErrArtifactNotFound    = fmt.Errorf("artifact not found")
	ErrInvalidProbability  = fmt.Errorf("classifier returned a probability outside [0,1]")
	ErrWorkerPanic         = fmt.Errorf("worker panicked")
	ErrVectorizerMismatch  = fmt.Errorf("vectorizer vocabulary does not match the model training columns")
	ErrTableTooSmall       = fmt.Errorf("table too small to split into train and test sets")
)
