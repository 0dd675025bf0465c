package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smart_health/internal/config"
	"smart_health/internal/identity"
	"smart_health/internal/models"
)

type createDoctorInput struct {
	Username       string `json:"username" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Contact        string `json:"contact"`
	Address        string `json:"address"`
	Specialization string `json:"specialization" binding:"required"`
	ImageURL       string `json:"image_url"`
}

type doctorResponse struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	Username       string    `json:"username"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Contact        string    `json:"contact"`
	Address        string    `json:"address"`
	Specialization string    `json:"specialization"`
	ImageURL       string    `json:"image_url"`
	Status         int       `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func buildDoctorResponse(profile models.DoctorProfile, user models.User) doctorResponse {
	return doctorResponse{
		ID:             profile.ID,
		UserID:         user.ID,
		Username:       user.Username,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Contact:        user.Contact,
		Address:        user.Address,
		Specialization: profile.Specialization,
		ImageURL:       profile.ImageURL,
		Status:         int(profile.Status),
		CreatedAt:      profile.CreatedAt,
	}
}

// CreateDoctor registers a doctor account on behalf of the admin.
// Admin-created doctors are approved immediately.
func CreateDoctor(c *gin.Context) {
	var input createDoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := identity.Register(config.DB, identity.RegisterInput{
		Username:       input.Username,
		Email:          input.Email,
		Password:       input.Password,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Contact:        input.Contact,
		Address:        input.Address,
		Role:           models.RoleDoctor,
		Specialization: input.Specialization,
		ImageURL:       input.ImageURL,
		Approved:       true,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"doctor": buildDoctorResponse(*user.Doctor, user)})
}

// ListDoctors returns every doctor profile, pending ones included.
func ListDoctors(c *gin.Context) {
	var profiles []models.DoctorProfile
	if err := config.DB.Preload("User").Find(&profiles).Error; err != nil {
		respondError(c, err)
		return
	}

	responses := make([]doctorResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, buildDoctorResponse(p, p.User))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// ListApprovedDoctors is the public directory of approved doctors.
func ListApprovedDoctors(c *gin.Context) {
	var profiles []models.DoctorProfile
	if err := config.DB.Preload("User").
		Where("status = ?", models.StatusApproved).
		Find(&profiles).Error; err != nil {
		respondError(c, err)
		return
	}

	responses := make([]doctorResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, buildDoctorResponse(p, p.User))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// SetDoctorStatus applies an approval transition: approve a pending doctor
// or revoke an approved one. Re-applying the current status is rejected.
func SetDoctorStatus(c *gin.Context) {
	var body struct {
		Status *int `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	var profile models.DoctorProfile
	if err := config.DB.First(&profile, uint(doctorID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		respondError(c, err)
		return
	}

	if err := profile.SetStatus(models.ApprovalStatus(*body.Status)); err != nil {
		respondError(c, err)
		return
	}
	if err := config.DB.Model(&profile).Update("status", profile.Status).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Doctor status updated", "status": int(profile.Status)})
}

// DeleteDoctor removes the doctor profile and its user account. Prediction
// records are untouched; they carry the patient's name independently of
// any doctor.
func DeleteDoctor(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	var profile models.DoctorProfile
	if err := config.DB.First(&profile, uint(doctorID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		respondError(c, err)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&profile).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, profile.UserID).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted successfully"})
}
