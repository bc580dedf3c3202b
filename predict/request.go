package predict

import (
	"fmt"
	"strconv"
	"strings"

	"diabetescheck/ml"
)

// Request is one form submission. Nil measurements fall back to their floors.
type Request struct {
	Name                     string   `json:"name"`
	Pregnancies              *float64 `json:"pregnancies,omitempty"`
	Glucose                  *float64 `json:"glucose,omitempty"`
	BloodPressure            *float64 `json:"blood_pressure,omitempty"`
	SkinFold                 *float64 `json:"skin_fold,omitempty"`
	Insulin                  *float64 `json:"insulin,omitempty"`
	BMI                      *float64 `json:"bmi,omitempty"`
	DiabetesPedigreeFunction *float64 `json:"diabetes_pedigree_function,omitempty"`
	Age                      *float64 `json:"age,omitempty"`
}

// values lines the measurements up with ml.FeatureFields.
func (r *Request) values() [ml.FeatureCount]*float64 {
	return [ml.FeatureCount]*float64{
		r.Pregnancies,
		r.Glucose,
		r.BloodPressure,
		r.SkinFold,
		r.Insulin,
		r.BMI,
		r.DiabetesPedigreeFunction,
		r.Age,
	}
}

func (r *Request) slot(key string) (**float64, bool) {
	switch key {
	case "pregnancies":
		return &r.Pregnancies, true
	case "glucose":
		return &r.Glucose, true
	case "blood_pressure":
		return &r.BloodPressure, true
	case "skin_fold":
		return &r.SkinFold, true
	case "insulin":
		return &r.Insulin, true
	case "bmi":
		return &r.BMI, true
	case "diabetes_pedigree_function":
		return &r.DiabetesPedigreeFunction, true
	case "age":
		return &r.Age, true
	default:
		return nil, false
	}
}

// Set assigns the measurement named by key (an ml.FeatureFields key).
func (r *Request) Set(key string, value float64) error {
	slot, ok := r.slot(key)
	if !ok {
		return fmt.Errorf("unknown field %q", key)
	}
	*slot = &value
	return nil
}

// SetString parses raw and assigns it; blank input leaves the field unset.
func (r *Request) SetString(key, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%s must be a number", key)
	}
	return r.Set(key, value)
}
