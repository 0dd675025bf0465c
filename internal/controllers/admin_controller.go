package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smart_health/internal/config"
	"smart_health/internal/ml"
	"smart_health/internal/models"
)

type patientResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Contact     string    `json:"contact"`
	Address     string    `json:"address"`
	DateOfBirth string    `json:"date_of_birth"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListPatients returns every patient profile joined with its user record.
func ListPatients(c *gin.Context) {
	var profiles []models.PatientProfile
	if err := config.DB.Preload("User").Find(&profiles).Error; err != nil {
		respondError(c, err)
		return
	}

	responses := make([]patientResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, patientResponse{
			ID:          p.ID,
			UserID:      p.UserID,
			Username:    p.User.Username,
			FirstName:   p.User.FirstName,
			LastName:    p.User.LastName,
			Email:       p.User.Email,
			Contact:     p.User.Contact,
			Address:     p.User.Address,
			DateOfBirth: p.DateOfBirth,
			ImageURL:    p.ImageURL,
			CreatedAt:   p.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// Stats aggregates the dashboard counters for the admin overview.
func Stats(c *gin.Context) {
	var (
		totalPatients    int64
		totalDoctors     int64
		totalPredictions int64
		totalFeedback    int64
		healthy          int64
		atRisk           int64
	)

	queries := []error{
		config.DB.Model(&models.PatientProfile{}).Count(&totalPatients).Error,
		config.DB.Model(&models.DoctorProfile{}).Count(&totalDoctors).Error,
		config.DB.Model(&models.Prediction{}).Count(&totalPredictions).Error,
		config.DB.Model(&models.Feedback{}).Count(&totalFeedback).Error,
		config.DB.Model(&models.Prediction{}).Where("result = ?", ml.OutcomeHealthy).Count(&healthy).Error,
		config.DB.Model(&models.Prediction{}).Where("result = ?", ml.OutcomeAtRisk).Count(&atRisk).Error,
	}
	for _, err := range queries {
		if err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_patients":      totalPatients,
		"total_doctors":       totalDoctors,
		"total_predictions":   totalPredictions,
		"total_feedback":      totalFeedback,
		"healthy_predictions": healthy,
		"disease_predictions": atRisk,
	})
}
