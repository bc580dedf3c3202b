package ml

import (
	"errors"
	"fmt"
)

// Label is the classifier's binary output.
type Label int

const (
	LabelNonDiabetic Label = 0
	LabelDiabetic    Label = 1
)

// Valid reports whether l is one of the two labels a classifier may return.
func (l Label) Valid() bool {
	return l == LabelNonDiabetic || l == LabelDiabetic
}

func (l Label) String() string {
	switch l {
	case LabelNonDiabetic:
		return "non_diabetic"
	case LabelDiabetic:
		return "diabetic"
	default:
		return fmt.Sprintf("label(%d)", int(l))
	}
}

// Classifier is a trained, read-only binary decision model.
type Classifier interface {
	Predict(features []float64) (Label, error)
}

var (
	ErrEmptyModel       = errors.New("model has no parameters")
	ErrFeatureCount     = errors.New("feature count mismatch")
	ErrFeatureOrder     = errors.New("artifact feature order does not match the form")
	ErrUnsupportedModel = errors.New("unsupported model type")
)

// StartupError is returned by LoadModel when the artifact cannot be used.
// The process is expected to stop when it sees one.
type StartupError struct {
	Path    string
	Missing bool
	Err     error
}

func (e *StartupError) Error() string {
	if e.Missing {
		return fmt.Sprintf("Model file '%s' not found. Please ensure the file is in the working directory.", e.Path)
	}
	return fmt.Sprintf("Model file '%s' could not be loaded: %v", e.Path, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}
