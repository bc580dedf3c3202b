package ml

import (
	"math"
	"testing"
)

func TestLogisticRegressionPredict(t *testing.T) {
	// only glucose carries weight: p >= 0.5 once glucose >= 120
	coefficients := []float64{0, 0.05, 0, 0, 0, 0, 0, 0}
	model, err := NewLogisticRegression(coefficients, -6, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	label, err := model.Predict(FeatureVector{Glucose: 90, Age: 30}.Values())
	if err != nil || label != LabelNonDiabetic {
		t.Fatalf("expected non-diabetic, got %v (%v)", label, err)
	}
	label, err = model.Predict(FeatureVector{Glucose: 160, Age: 30}.Values())
	if err != nil || label != LabelDiabetic {
		t.Fatalf("expected diabetic, got %v (%v)", label, err)
	}

	p, err := model.Probability(FeatureVector{Glucose: 120, Age: 21}.Values())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(p-0.5) > 1e-9 {
		t.Fatalf("expected probability 0.5, got %f", p)
	}
}

func TestNewLogisticRegressionValidation(t *testing.T) {
	if _, err := NewLogisticRegression(nil, 0, 0.5); err == nil {
		t.Fatal("expected error for empty coefficients")
	}
	if _, err := NewLogisticRegression([]float64{1, 2, 3}, 0, 0.5); err == nil {
		t.Fatal("expected error for short coefficients")
	}
	if _, err := NewLogisticRegression(make([]float64, FeatureCount), 0, 1.5); err == nil {
		t.Fatal("expected error for threshold outside (0, 1)")
	}
}
