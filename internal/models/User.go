package models

import "gorm.io/gorm"

// Roles recognised by the system. Role is fixed at registration time and
// never changes afterwards.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	switch role {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Contact      string `json:"contact"`
	Address      string `json:"address"`
	Role         string `json:"role" gorm:"index"` // "patient", "doctor", "admin"
	IsActive     bool   `json:"is_active" gorm:"default:true"`

	// Role-specific relations
	Patient *PatientProfile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient,omitempty"`
	Doctor  *DoctorProfile  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor,omitempty"`
}

// FullName is the display name denormalized onto predictions and feedback.
func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}
