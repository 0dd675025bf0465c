package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smart_health/internal/config"
	"smart_health/internal/identity"
	"smart_health/internal/middleware"
	"smart_health/internal/models"
)

type signupInput struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Contact     string `json:"contact"`
	Address     string `json:"address"`
	Role        string `json:"role"`
	DateOfBirth string `json:"date_of_birth"`
	ImageURL    string `json:"image_url"`
}

// Signup registers a patient or a self-registering doctor. Doctors start
// in pending status until an admin approves them. Admin accounts are never
// created through this endpoint.
func Signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := input.Role
	if role == "" {
		role = models.RolePatient
	}
	if role != models.RolePatient && role != models.RoleDoctor {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be patient or doctor"})
		return
	}

	user, err := identity.Register(config.DB, identity.RegisterInput{
		Username:    input.Username,
		Email:       input.Email,
		Password:    input.Password,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Contact:     input.Contact,
		Address:     input.Address,
		Role:        role,
		DateOfBirth: input.DateOfBirth,
		ImageURL:    input.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := identity.IssueToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login authenticates and issues a fresh bearer token. A pending doctor
// may log in; doctor-scoped reads stay gated until approval.
func Login(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := identity.Authenticate(config.DB, body.Username, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user with its role profile.
func Me(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	var user models.User
	if err := config.DB.Preload("Patient").Preload("Doctor").First(&user, id.UserID).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ChangePassword verifies the old password and swaps in the new hash.
func ChangePassword(c *gin.Context) {
	var body struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := middleware.CurrentIdentity(c)
	if err := identity.ChangePassword(config.DB, id.UserID, body.OldPassword, body.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
