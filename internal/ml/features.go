package ml

import (
	"errors"
	"fmt"
)

// ErrInvalidFeature marks a feature vector that failed domain validation.
// Use errors.Is to detect it; the concrete error names the offending field.
var ErrInvalidFeature = errors.New("invalid feature")

// FeatureError reports a single out-of-range clinical input.
type FeatureError struct {
	Field    string
	Value    float64
	Min, Max float64
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("invalid feature %q: value %g outside range [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

func (e *FeatureError) Unwrap() error { return ErrInvalidFeature }

// MissingFeatureError reports a clinical input absent from the request.
// Omitted fields must be rejected rather than defaulting to zero, which
// is a legal value for most of the vector.
type MissingFeatureError struct {
	Field string
}

func (e *MissingFeatureError) Error() string {
	return fmt.Sprintf("invalid feature %q: field is required", e.Field)
}

func (e *MissingFeatureError) Unwrap() error { return ErrInvalidFeature }

// FeatureVector holds the 13 ordered clinical inputs of the UCI heart
// disease dataset. Valid domains:
//
//	age       1..120   years
//	sex       0..1     0 female, 1 male
//	cp        0..3     chest pain type
//	trestbps  60..250  resting blood pressure (mm Hg)
//	chol      100..600 serum cholesterol (mg/dl)
//	fbs       0..1     fasting blood sugar > 120 mg/dl
//	restecg   0..2     resting ECG result
//	thalach   60..250  maximum heart rate achieved
//	exang     0..1     exercise induced angina
//	oldpeak   0..10    ST depression induced by exercise
//	slope     0..2     slope of peak exercise ST segment
//	ca        0..3     number of major vessels colored by fluoroscopy
//	thal      0..3     thalassemia
type FeatureVector struct {
	Age      int     `json:"age"`
	Sex      int     `json:"sex"`
	Cp       int     `json:"cp"`
	Trestbps int     `json:"trestbps"`
	Chol     int     `json:"chol"`
	Fbs      int     `json:"fbs"`
	Restecg  int     `json:"restecg"`
	Thalach  int     `json:"thalach"`
	Exang    int     `json:"exang"`
	Oldpeak  float64 `json:"oldpeak"`
	Slope    int     `json:"slope"`
	Ca       int     `json:"ca"`
	Thal     int     `json:"thal"`
}

// NumFeatures is the dimensionality of the model input.
const NumFeatures = 13

type featureRange struct {
	field    string
	value    float64
	min, max float64
}

func (f FeatureVector) ranges() []featureRange {
	return []featureRange{
		{"age", float64(f.Age), 1, 120},
		{"sex", float64(f.Sex), 0, 1},
		{"cp", float64(f.Cp), 0, 3},
		{"trestbps", float64(f.Trestbps), 60, 250},
		{"chol", float64(f.Chol), 100, 600},
		{"fbs", float64(f.Fbs), 0, 1},
		{"restecg", float64(f.Restecg), 0, 2},
		{"thalach", float64(f.Thalach), 60, 250},
		{"exang", float64(f.Exang), 0, 1},
		{"oldpeak", f.Oldpeak, 0, 10},
		{"slope", float64(f.Slope), 0, 2},
		{"ca", float64(f.Ca), 0, 3},
		{"thal", float64(f.Thal), 0, 3},
	}
}

// Validate checks every field against its documented domain and returns the
// first violation. Validation always runs before scoring so the model never
// sees out-of-domain input.
func (f FeatureVector) Validate() error {
	for _, r := range f.ranges() {
		if r.value < r.min || r.value > r.max {
			return &FeatureError{Field: r.field, Value: r.value, Min: r.min, Max: r.max}
		}
	}
	return nil
}

// Slice returns the vector in model input order.
func (f FeatureVector) Slice() []float64 {
	out := make([]float64, 0, NumFeatures)
	for _, r := range f.ranges() {
		out = append(out, r.value)
	}
	return out
}
