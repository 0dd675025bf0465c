package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smart_health/internal/config"
	"smart_health/internal/middleware"
	"smart_health/internal/models"
)

// SubmitFeedback records a free-text message from any signed-in user.
func SubmitFeedback(c *gin.Context) {
	var body struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := middleware.CurrentIdentity(c)
	var user models.User
	if err := config.DB.First(&user, id.UserID).Error; err != nil {
		respondError(c, err)
		return
	}

	feedback := models.Feedback{
		UserID:   user.ID,
		UserName: user.FullName(),
		Email:    user.Email,
		Message:  body.Message,
	}
	if err := config.DB.Create(&feedback).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback submitted successfully"})
}

// ListFeedback returns all feedback, newest first. Admin only.
func ListFeedback(c *gin.Context) {
	var feedback []models.Feedback
	if err := config.DB.Order("created_at DESC, id DESC").Find(&feedback).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": feedback})
}
