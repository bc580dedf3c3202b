package ml

import (
	"fmt"
	"math"
)

// FeatureCount is the length of every vector handed to a Classifier.
const FeatureCount = 8

// MaxWholeValue bounds whole-number fields so they convert to int exactly.
const MaxWholeValue = math.MaxInt32

// FeatureField describes one input of the form. FeatureFields lists them in
// the order the model was trained on.
type FeatureField struct {
	Key     string
	Label   string
	Min     float64
	Integer bool
}

var FeatureFields = [FeatureCount]FeatureField{
	{Key: "pregnancies", Label: "Number of times pregnant:", Min: 0, Integer: true},
	{Key: "glucose", Label: "Plasma Glucose Concentration:", Min: 0},
	{Key: "blood_pressure", Label: "Diastolic Blood Pressure (mm Hg):", Min: 0},
	{Key: "skin_fold", Label: "Triceps Skin Fold Thickness (mm):", Min: 0},
	{Key: "insulin", Label: "2-Hour Serum Insulin (mu U/ml):", Min: 0},
	{Key: "bmi", Label: "Body Mass Index (weight in kg/(height in m)^2):", Min: 0},
	{Key: "diabetes_pedigree_function", Label: "Diabetes Pedigree Function:", Min: 0},
	{Key: "age", Label: "Age (years):", Min: 21, Integer: true},
}

// FeatureNames returns the field keys in training order.
func FeatureNames() []string {
	names := make([]string, 0, FeatureCount)
	for _, f := range FeatureFields {
		names = append(names, f.Key)
	}
	return names
}

// FeatureVector is one prediction request.
type FeatureVector struct {
	Pregnancies              int
	Glucose                  float64
	BloodPressure            float64
	SkinFold                 float64
	Insulin                  float64
	BMI                      float64
	DiabetesPedigreeFunction float64
	Age                      int
}

// DefaultFeatureVector has every field at its floor.
func DefaultFeatureVector() FeatureVector {
	return FeatureVector{Age: int(FeatureFields[7].Min)}
}

// Values packs the vector in training order.
func (v FeatureVector) Values() []float64 {
	return []float64{
		float64(v.Pregnancies),
		v.Glucose,
		v.BloodPressure,
		v.SkinFold,
		v.Insulin,
		v.BMI,
		v.DiabetesPedigreeFunction,
		float64(v.Age),
	}
}

// FeatureVectorFromValues is the inverse of Values. Missing entries (nil)
// take the field's floor.
func FeatureVectorFromValues(values [FeatureCount]*float64) (FeatureVector, error) {
	var resolved [FeatureCount]float64
	for i, field := range FeatureFields {
		value := field.Min
		if values[i] != nil {
			value = *values[i]
		}
		if err := field.Check(value); err != nil {
			return FeatureVector{}, err
		}
		resolved[i] = value
	}
	return FeatureVector{
		Pregnancies:              int(resolved[0]),
		Glucose:                  resolved[1],
		BloodPressure:            resolved[2],
		SkinFold:                 resolved[3],
		Insulin:                  resolved[4],
		BMI:                      resolved[5],
		DiabetesPedigreeFunction: resolved[6],
		Age:                      int(resolved[7]),
	}, nil
}

// Check validates value against the field's floor and numeric domain.
func (f FeatureField) Check(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be a finite number", f.Key)
	}
	if value < f.Min {
		return fmt.Errorf("%s must be at least %g", f.Key, f.Min)
	}
	if f.Integer && value != math.Trunc(value) {
		return fmt.Errorf("%s must be a whole number", f.Key)
	}
	if f.Integer && value > MaxWholeValue {
		return fmt.Errorf("%s must be at most %d", f.Key, MaxWholeValue)
	}
	return nil
}
