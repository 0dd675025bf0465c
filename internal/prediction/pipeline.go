// Package prediction validates clinical input, runs the scoring engine and
// enforces role-scoped visibility over the resulting records.
package prediction

import (
	"errors"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"smart_health/internal/authz"
	"smart_health/internal/ml"
	"smart_health/internal/models"
)

// ErrNotFound means no prediction exists under the given reference.
var ErrNotFound = errors.New("prediction not found")

// RecommendedDoctor is an approved doctor suggested alongside a result.
type RecommendedDoctor struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Contact        string `json:"contact"`
	Specialization string `json:"specialization"`
	ImageURL       string `json:"image_url"`
}

// Result is the full pipeline output for one prediction request.
type Result struct {
	Prediction models.Prediction   `json:"prediction"`
	Message    string              `json:"message"`
	Doctors    []RecommendedDoctor `json:"recommended_doctors"`
}

const resultSpecialization = "Cardiologist"

// Predict runs the full pipeline for a patient: gate, validate, score,
// persist, recommend. Validation short-circuits before the engine runs, and
// nothing is persisted on any failure.
func Predict(db *gorm.DB, engine *ml.Model, id authz.Identity, input ml.FeatureVector) (Result, error) {
	if err := authz.Require(id, models.RolePatient); err != nil {
		return Result{}, err
	}
	if err := input.Validate(); err != nil {
		return Result{}, err
	}
	if engine == nil {
		return Result{}, ml.ErrModelUnavailable
	}

	var profile models.PatientProfile
	if err := db.Preload("User").Where("user_id = ?", id.UserID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Result{}, ErrNotFound
		}
		return Result{}, err
	}

	outcome, probability, err := engine.Score(input)
	if err != nil {
		return Result{}, err
	}

	record := models.Prediction{
		PatientID:   profile.ID,
		PatientName: profile.User.FullName(),
		Input:       input,
		Result:      outcome,
		Accuracy:    engine.StatedAccuracy(),
		Probability: probability,
	}
	if err := db.Create(&record).Error; err != nil {
		return Result{}, err
	}

	logrus.WithFields(logrus.Fields{
		"ref":     record.Ref,
		"patient": profile.ID,
		"result":  outcome,
	}).Info("prediction recorded")

	message := "You are healthy"
	if outcome == ml.OutcomeAtRisk {
		message = "You may have heart disease. Please consult a doctor."
	}

	doctors, err := Recommend(db, resultSpecialization)
	if err != nil {
		return Result{}, err
	}

	return Result{Prediction: record, Message: message, Doctors: doctors}, nil
}

// Recommend lists approved doctors in the given specialization. A read-only
// join; pending doctors never appear.
func Recommend(db *gorm.DB, specialization string) ([]RecommendedDoctor, error) {
	var profiles []models.DoctorProfile
	if err := db.Preload("User").
		Where("status = ? AND specialization = ?", models.StatusApproved, specialization).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	doctors := make([]RecommendedDoctor, 0, len(profiles))
	for _, p := range profiles {
		doctors = append(doctors, RecommendedDoctor{
			ID:             p.ID,
			Name:           p.User.FullName(),
			Email:          p.User.Email,
			Contact:        p.User.Contact,
			Specialization: p.Specialization,
			ImageURL:       p.ImageURL,
		})
	}
	return doctors, nil
}

// List returns predictions visible to the identity: patients their own,
// approved doctors and admins everything. Newest first, id as tiebreak.
func List(db *gorm.DB, id authz.Identity) ([]models.Prediction, error) {
	patientID, all, err := authz.PredictionScope(db, id)
	if err != nil {
		return nil, err
	}
	query := db.Order("created_at DESC, id DESC")
	if !all {
		query = query.Where("patient_id = ?", patientID)
	}
	var records []models.Prediction
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes a prediction by its public reference. Only the owning
// patient or an admin may delete; everyone else gets Forbidden.
func Delete(db *gorm.DB, id authz.Identity, ref string) error {
	var record models.Prediction
	if err := db.Where("ref = ?", ref).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := authz.CanDeletePrediction(db, id, record); err != nil {
		return err
	}
	return db.Delete(&record).Error
}
