package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

const (
	ModelTypeDecisionTree       = "decision_tree"
	ModelTypeLogisticRegression = "logistic_regression"
)

// DefaultModelPath is where the artifact is looked up when nothing else is configured.
const DefaultModelPath = "Diabetes.pkl"

// artifact is the on-disk envelope shared by every model type.
type artifact struct {
	ModelType    string     `json:"model_type"`
	FeatureNames []string   `json:"feature_names,omitempty"`
	Nodes        []TreeNode `json:"nodes,omitempty"`
	Coefficients []float64  `json:"coefficients,omitempty"`
	Intercept    float64    `json:"intercept,omitempty"`
	Threshold    float64    `json:"threshold,omitempty"`
}

// LoadModel reads the classifier artifact at path. Every failure comes back
// as a *StartupError.
func LoadModel(path string) (Classifier, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &StartupError{Path: path, Missing: errors.Is(err, fs.ErrNotExist), Err: err}
	}
	defer file.Close()

	model, err := DecodeModel(file)
	if err != nil {
		return nil, &StartupError{Path: path, Err: err}
	}
	return model, nil
}

// DecodeModel builds a classifier from an artifact stream.
func DecodeModel(r io.Reader) (Classifier, error) {
	var a artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if err := checkFeatureNames(a.FeatureNames); err != nil {
		return nil, err
	}

	switch a.ModelType {
	case ModelTypeDecisionTree:
		tree, err := NewDecisionTree(a.Nodes)
		if err != nil {
			return nil, err
		}
		return tree, nil
	case ModelTypeLogisticRegression:
		model, err := NewLogisticRegression(a.Coefficients, a.Intercept, a.Threshold)
		if err != nil {
			return nil, err
		}
		return model, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, a.ModelType)
	}
}

// EncodeDecisionTree writes nodes in the artifact format read by DecodeModel.
func EncodeDecisionTree(w io.Writer, nodes []TreeNode) error {
	return json.NewEncoder(w).Encode(artifact{
		ModelType:    ModelTypeDecisionTree,
		FeatureNames: FeatureNames(),
		Nodes:        nodes,
	})
}

func checkFeatureNames(names []string) error {
	if len(names) == 0 {
		return nil
	}
	want := FeatureNames()
	if len(names) != len(want) {
		return fmt.Errorf("%w: artifact lists %d features, want %d", ErrFeatureOrder, len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			return fmt.Errorf("%w: position %d is %q, want %q", ErrFeatureOrder, i, names[i], want[i])
		}
	}
	return nil
}
