// internal/models/Feedback.go
package models

import (
	"gorm.io/gorm"
)

// Feedback is a free-text message from any signed-in user. Append-only;
// only admins ever read it back.
type Feedback struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"index"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}
