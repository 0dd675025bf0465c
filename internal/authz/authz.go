// Package authz is the single place where role, approval and ownership
// rules are decided. Handlers and services call into the gate instead of
// branching on roles themselves.
package authz

import (
	"errors"

	"gorm.io/gorm"

	"smart_health/internal/models"
)

var (
	// ErrWrongRole means the caller's role is not in the allowed set.
	ErrWrongRole = errors.New("operation not permitted for this role")
	// ErrNotApproved means a doctor is authenticated but still pending
	// admin approval. Distinct from ErrWrongRole on purpose.
	ErrNotApproved = errors.New("doctor account pending approval")
	// ErrForbidden means the caller may not touch this particular record.
	ErrForbidden = errors.New("not authorized for this record")
)

// Identity is a verified token subject: who is calling, and as what.
type Identity struct {
	UserID   uint
	Username string
	Role     string
}

func (id Identity) IsAdmin() bool { return id.Role == models.RoleAdmin }

// Require allows the operation when the identity's role is one of roles.
func Require(id Identity, roles ...string) error {
	for _, role := range roles {
		if id.Role == role {
			return nil
		}
	}
	return ErrWrongRole
}

// RequireApprovedDoctor gates doctor-scoped operations. Admins pass
// implicitly; a doctor passes only once approved. The approval state is
// read live, so an admin flipping the status takes effect without the
// doctor re-authenticating.
func RequireApprovedDoctor(db *gorm.DB, id Identity) error {
	if id.IsAdmin() {
		return nil
	}
	if id.Role != models.RoleDoctor {
		return ErrWrongRole
	}
	var profile models.DoctorProfile
	if err := db.Where("user_id = ?", id.UserID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotApproved
		}
		return err
	}
	if !profile.Approved() {
		return ErrNotApproved
	}
	return nil
}

// PredictionScope resolves what slice of predictions an identity may read.
// Patients see only their own (scoped by profile id), approved doctors and
// admins see everything.
func PredictionScope(db *gorm.DB, id Identity) (patientID uint, all bool, err error) {
	switch id.Role {
	case models.RoleAdmin:
		return 0, true, nil
	case models.RoleDoctor:
		if err := RequireApprovedDoctor(db, id); err != nil {
			return 0, false, err
		}
		return 0, true, nil
	case models.RolePatient:
		profile, err := patientProfile(db, id)
		if err != nil {
			return 0, false, err
		}
		return profile.ID, false, nil
	}
	return 0, false, ErrWrongRole
}

// CanDeletePrediction decides ownership for deletion: the owning patient
// or an admin, nobody else.
func CanDeletePrediction(db *gorm.DB, id Identity, pred models.Prediction) error {
	if id.IsAdmin() {
		return nil
	}
	if id.Role != models.RolePatient {
		return ErrForbidden
	}
	profile, err := patientProfile(db, id)
	if err != nil {
		return err
	}
	if pred.PatientID != profile.ID {
		return ErrForbidden
	}
	return nil
}

func patientProfile(db *gorm.DB, id Identity) (models.PatientProfile, error) {
	var profile models.PatientProfile
	if err := db.Where("user_id = ?", id.UserID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return profile, ErrForbidden
		}
		return profile, err
	}
	return profile, nil
}
