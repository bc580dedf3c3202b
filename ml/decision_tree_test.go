package ml

import (
	"errors"
	"testing"
)

// glucoseTree splits on glucose (index 1) then BMI (index 5).
func glucoseTree() []TreeNode {
	return []TreeNode{
		{FeatureIdx: 1, Threshold: 127.5, LeftChild: 1, RightChild: 2},
		{IsLeaf: true, ClassLabel: LabelNonDiabetic},
		{FeatureIdx: 5, Threshold: 29.9, LeftChild: 3, RightChild: 4},
		{IsLeaf: true, ClassLabel: LabelNonDiabetic},
		{IsLeaf: true, ClassLabel: LabelDiabetic},
	}
}

func TestDecisionTreePredict(t *testing.T) {
	model, err := NewDecisionTree(glucoseTree())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name   string
		vector FeatureVector
		want   Label
	}{
		{"defaults", DefaultFeatureVector(), LabelNonDiabetic},
		{"high glucose low bmi", FeatureVector{Glucose: 150, BMI: 25, Age: 40}, LabelNonDiabetic},
		{"high glucose high bmi", FeatureVector{Glucose: 150, BMI: 33.6, Age: 50}, LabelDiabetic},
		{"threshold goes left", FeatureVector{Glucose: 127.5, BMI: 40, Age: 30}, LabelNonDiabetic},
	}
	for _, tc := range cases {
		label, err := model.Predict(tc.vector.Values())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if label != tc.want {
			t.Fatalf("%s: expected label %v, got %v", tc.name, tc.want, label)
		}
	}
	if depth := model.Depth(); depth != 2 {
		t.Fatalf("expected depth 2, got %d", depth)
	}
}

func TestDecisionTreeRejectsWrongLength(t *testing.T) {
	model, err := NewDecisionTree(glucoseTree())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := model.Predict([]float64{1, 2}); !errors.Is(err, ErrFeatureCount) {
		t.Fatalf("expected ErrFeatureCount, got %v", err)
	}
}

func TestNewDecisionTreeValidation(t *testing.T) {
	cases := map[string][]TreeNode{
		"empty":              nil,
		"bad feature":        {{FeatureIdx: 8, LeftChild: 1, RightChild: 2}, {IsLeaf: true}, {IsLeaf: true}},
		"child before":       {{IsLeaf: true}, {FeatureIdx: 0, LeftChild: 0, RightChild: 0}},
		"child past end":     {{FeatureIdx: 0, LeftChild: 1, RightChild: 5}, {IsLeaf: true}},
		"leaf label not 0/1": {{IsLeaf: true, ClassLabel: 2}},
	}
	for name, nodes := range cases {
		if _, err := NewDecisionTree(nodes); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
