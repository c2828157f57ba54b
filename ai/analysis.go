//go:generate go run go.uber.org/mock/mockgen -source=analysis.go -destination=../mocks/mock_classifier.go -package=mocks
package ai

import (
	"fmt"
	"hybrid-guard/errors"
	"math"
)

// Classifier is the trained model consuming a vector laid out by the hybrid schema.
type Classifier interface {
	// PredictProbability returns the probability of label 1 (malicious).
	PredictProbability(vector []float64) (float64, error)
	// InputWidth is the vector width the model was trained on.
	InputWidth() int
}

// LogisticModel is the reference classifier: a linear model squashed by a sigmoid.
type LogisticModel struct {
	Weights []float64
	Bias    float64
}

func (m *LogisticModel) InputWidth() int {
	return len(m.Weights)
}

func (m *LogisticModel) PredictProbability(vector []float64) (float64, error) {
	if len(vector) != len(m.Weights) {
		return 0, fmt.Errorf("%w: got %d features, model expects %d",
			errors.ErrSchemaMismatch, len(vector), len(m.Weights))
	}
	return sigmoid(m.logit(vector)), nil
}

func (m *LogisticModel) logit(vector []float64) float64 {
	z := m.Bias
	for i, x := range vector {
		z += m.Weights[i] * x
	}
	return z
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
