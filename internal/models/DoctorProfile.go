// internal/models/DoctorProfile.go
package models

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ApprovalStatus is the two-state doctor approval machine. Only an admin
// action moves a doctor between states; a transition to the current state
// is rejected.
type ApprovalStatus int

const (
	StatusPending  ApprovalStatus = 0
	StatusApproved ApprovalStatus = 1
)

var ErrInvalidTransition = errors.New("invalid approval status transition")

func (s ApprovalStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved
}

func (s ApprovalStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusApproved:
		return "approved"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// DoctorProfile is the 1:1 extension of a doctor User. Status is mutated
// only through SetStatus, driven by admin endpoints.
type DoctorProfile struct {
	gorm.Model
	UserID         uint           `json:"user_id" gorm:"uniqueIndex"` // Foreign key to User
	User           User           `gorm:"foreignKey:UserID" json:"-"`
	Specialization string         `json:"specialization"`
	ImageURL       string         `json:"image_url"`
	Status         ApprovalStatus `json:"status" gorm:"default:0;index"`
}

// SetStatus applies an approval transition. Pending -> Approved and
// Approved -> Pending (revocation) are the only legal moves.
func (d *DoctorProfile) SetStatus(next ApprovalStatus) error {
	if !next.Valid() {
		return fmt.Errorf("%w: unknown status %d", ErrInvalidTransition, int(next))
	}
	if next == d.Status {
		return fmt.Errorf("%w: doctor already %s", ErrInvalidTransition, d.Status)
	}
	d.Status = next
	return nil
}

func (d *DoctorProfile) Approved() bool {
	return d.Status == StatusApproved
}
