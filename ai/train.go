package ai

import (
	"fmt"
	"hybrid-guard/errors"
	"math"
	"math/rand"
)

// TrainOptions drives the gradient descent of the reference logistic model.
type TrainOptions struct {
	Epochs       int
	LearningRate float64
	L2           float64
	Seed         int64
}

func DefaultTrainOptions() TrainOptions {
	return TrainOptions{Epochs: 200, LearningRate: 0.1, L2: 1e-4, Seed: 42}
}

// TrainLogistic fits a LogisticModel with stochastic gradient descent.
// Rows are visited in a seeded random order, so training is reproducible.
func TrainLogistic(rows [][]float64, labels []int, opts TrainOptions) (*LogisticModel, error) {
	if len(rows) == 0 {
		return nil, errors.ErrEmptyCorpus
	}
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("%w: %d rows for %d labels", errors.ErrSchemaMismatch, len(rows), len(labels))
	}
	width := len(rows[0])
	for i, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, expected %d", errors.ErrSchemaMismatch, i, len(r), width)
		}
	}

	model := &LogisticModel{Weights: make([]float64, width)}
	rng := rand.New(rand.NewSource(opts.Seed))
	order := rng.Perm(len(rows))

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, i := range order {
			gradient := sigmoid(model.logit(rows[i])) - float64(labels[i])
			for j, x := range rows[i] {
				model.Weights[j] -= opts.LearningRate * (gradient*x + opts.L2*model.Weights[j])
			}
			model.Bias -= opts.LearningRate * gradient
		}
	}
	return model, nil
}

// Split shuffles the indexes [0, n) with the seed and cuts off a test share.
// The test share rounds up, so any positive ratio keeps at least one test row.
func Split(n int, testRatio float64, seed int64) (train, test []int) {
	order := rand.New(rand.NewSource(seed)).Perm(n)
	cut := min(max(int(math.Ceil(float64(n)*testRatio)), 0), n)
	return order[cut:], order[:cut]
}

// ClassReport holds precision, recall and F1 for one label.
type ClassReport struct {
	Label     int
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Evaluation summarises a classifier over a labeled set.
type Evaluation struct {
	Accuracy float64
	// Confusion[actual][predicted]
	Confusion [2][2]int
	Classes   [2]ClassReport
}

// Evaluate predicts every row with a 0.5 decision threshold.
func Evaluate(model Classifier, rows [][]float64, labels []int) (Evaluation, error) {
	var eval Evaluation
	if len(rows) == 0 {
		return eval, errors.ErrEmptyCorpus
	}
	if len(rows) != len(labels) {
		return eval, fmt.Errorf("%w: %d rows for %d labels", errors.ErrSchemaMismatch, len(rows), len(labels))
	}
	for i, row := range rows {
		if labels[i] != 0 && labels[i] != 1 {
			return eval, fmt.Errorf("%w: row %d has label %d", errors.ErrInvalidLabel, i, labels[i])
		}
		p, err := model.PredictProbability(row)
		if err != nil {
			return eval, fmt.Errorf("row %d: %w", i, err)
		}
		predicted := 0
		if p > 0.5 {
			predicted = 1
		}
		eval.Confusion[labels[i]][predicted]++
	}

	correct := eval.Confusion[0][0] + eval.Confusion[1][1]
	eval.Accuracy = float64(correct) / float64(len(rows))
	for label := 0; label < 2; label++ {
		tp := eval.Confusion[label][label]
		support := eval.Confusion[label][0] + eval.Confusion[label][1]
		predicted := eval.Confusion[0][label] + eval.Confusion[1][label]
		report := ClassReport{Label: label, Support: support}
		if predicted > 0 {
			report.Precision = float64(tp) / float64(predicted)
		}
		if support > 0 {
			report.Recall = float64(tp) / float64(support)
		}
		if report.Precision+report.Recall > 0 {
			report.F1 = 2 * report.Precision * report.Recall / (report.Precision + report.Recall)
		}
		eval.Classes[label] = report
	}
	return eval, nil
}
