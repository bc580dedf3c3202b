package ml

import (
	"fmt"
	"math"
)

// LogisticRegression scores sigmoid(w·x + b) and reports LabelDiabetic when
// the probability reaches Threshold.
type LogisticRegression struct {
	coefficients []float64
	intercept    float64
	threshold    float64
}

func NewLogisticRegression(coefficients []float64, intercept, threshold float64) (*LogisticRegression, error) {
	if len(coefficients) == 0 {
		return nil, ErrEmptyModel
	}
	if len(coefficients) != FeatureCount {
		return nil, fmt.Errorf("%w: %d coefficients, want %d", ErrFeatureCount, len(coefficients), FeatureCount)
	}
	if threshold == 0 {
		threshold = 0.5
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("threshold %g outside (0, 1)", threshold)
	}
	for i, c := range coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("coefficient %d is not finite", i)
		}
	}
	return &LogisticRegression{
		coefficients: append([]float64(nil), coefficients...),
		intercept:    intercept,
		threshold:    threshold,
	}, nil
}

func (lr *LogisticRegression) Predict(features []float64) (Label, error) {
	p, err := lr.Probability(features)
	if err != nil {
		return 0, err
	}
	if p >= lr.threshold {
		return LabelDiabetic, nil
	}
	return LabelNonDiabetic, nil
}

// Probability returns the positive-class probability for features.
func (lr *LogisticRegression) Probability(features []float64) (float64, error) {
	if len(features) != len(lr.coefficients) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(features), len(lr.coefficients))
	}
	z := lr.intercept
	for i, x := range features {
		z += lr.coefficients[i] * x
	}
	return 1 / (1 + math.Exp(-z)), nil
}
