package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smart_health/internal/config"
	"smart_health/internal/middleware"
	"smart_health/internal/ml"
	"smart_health/internal/prediction"
)

// predictInput mirrors ml.FeatureVector with optional fields so an omitted
// measurement is rejected instead of silently defaulting to zero.
type predictInput struct {
	Age      *int     `json:"age"`
	Sex      *int     `json:"sex"`
	Cp       *int     `json:"cp"`
	Trestbps *int     `json:"trestbps"`
	Chol     *int     `json:"chol"`
	Fbs      *int     `json:"fbs"`
	Restecg  *int     `json:"restecg"`
	Thalach  *int     `json:"thalach"`
	Exang    *int     `json:"exang"`
	Oldpeak  *float64 `json:"oldpeak"`
	Slope    *int     `json:"slope"`
	Ca       *int     `json:"ca"`
	Thal     *int     `json:"thal"`
}

func (in predictInput) vector() (ml.FeatureVector, error) {
	fields := []struct {
		name string
		set  bool
	}{
		{"age", in.Age != nil},
		{"sex", in.Sex != nil},
		{"cp", in.Cp != nil},
		{"trestbps", in.Trestbps != nil},
		{"chol", in.Chol != nil},
		{"fbs", in.Fbs != nil},
		{"restecg", in.Restecg != nil},
		{"thalach", in.Thalach != nil},
		{"exang", in.Exang != nil},
		{"oldpeak", in.Oldpeak != nil},
		{"slope", in.Slope != nil},
		{"ca", in.Ca != nil},
		{"thal", in.Thal != nil},
	}
	for _, f := range fields {
		if !f.set {
			return ml.FeatureVector{}, &ml.MissingFeatureError{Field: f.name}
		}
	}
	return ml.FeatureVector{
		Age:      *in.Age,
		Sex:      *in.Sex,
		Cp:       *in.Cp,
		Trestbps: *in.Trestbps,
		Chol:     *in.Chol,
		Fbs:      *in.Fbs,
		Restecg:  *in.Restecg,
		Thalach:  *in.Thalach,
		Exang:    *in.Exang,
		Oldpeak:  *in.Oldpeak,
		Slope:    *in.Slope,
		Ca:       *in.Ca,
		Thal:     *in.Thal,
	}, nil
}

// Predict runs the prediction pipeline for the authenticated patient.
func Predict(c *gin.Context) {
	var in predictInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := in.vector()
	if err != nil {
		respondError(c, err)
		return
	}

	id := middleware.CurrentIdentity(c)
	result, err := prediction.Predict(config.DB, ml.Engine(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListPredictions returns the role-scoped prediction history, newest first.
func ListPredictions(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	records, err := prediction.List(config.DB, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}

// DeletePrediction removes a record by reference; owner or admin only.
func DeletePrediction(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	if err := prediction.Delete(config.DB, id, c.Param("ref")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Prediction deleted successfully"})
}
