// internal/models/PatientProfile.go
package models

import (
	"gorm.io/gorm"
)

// PatientProfile is the 1:1 extension of a patient User. It is created at
// registration and only ever mutated by the owning patient.
type PatientProfile struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"uniqueIndex"` // Foreign key to User
	User        User   `gorm:"foreignKey:UserID" json:"-"`
	DateOfBirth string `json:"date_of_birth"`
	ImageURL    string `json:"image_url"`
	// Email, Password and Role live on the User model, not here.
}
