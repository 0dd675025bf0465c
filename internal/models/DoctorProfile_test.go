package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart_health/internal/models"
)

func TestApprovalTransitions(t *testing.T) {
	profile := models.DoctorProfile{Status: models.StatusPending}

	// Pending -> Approved
	require.NoError(t, profile.SetStatus(models.StatusApproved))
	assert.True(t, profile.Approved())

	// Approved -> Approved is a rejected self-transition.
	err := profile.SetStatus(models.StatusApproved)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Equal(t, models.StatusApproved, profile.Status)

	// Approved -> Pending (revocation)
	require.NoError(t, profile.SetStatus(models.StatusPending))
	assert.False(t, profile.Approved())

	// Pending -> Pending rejected too.
	assert.ErrorIs(t, profile.SetStatus(models.StatusPending), models.ErrInvalidTransition)
}

func TestApprovalRejectsUnknownStatus(t *testing.T) {
	profile := models.DoctorProfile{Status: models.StatusPending}
	assert.ErrorIs(t, profile.SetStatus(models.ApprovalStatus(7)), models.ErrInvalidTransition)
	assert.Equal(t, models.StatusPending, profile.Status)
}

func TestApprovalStatusString(t *testing.T) {
	assert.Equal(t, "pending", models.StatusPending.String())
	assert.Equal(t, "approved", models.StatusApproved.String())
	assert.True(t, models.StatusApproved.Valid())
	assert.False(t, models.ApprovalStatus(3).Valid())
}

func TestValidRole(t *testing.T) {
	assert.True(t, models.ValidRole(models.RolePatient))
	assert.True(t, models.ValidRole(models.RoleDoctor))
	assert.True(t, models.ValidRole(models.RoleAdmin))
	assert.False(t, models.ValidRole("superuser"))
	assert.False(t, models.ValidRole(""))
}

func TestUserFullName(t *testing.T) {
	u := models.User{Username: "alice"}
	assert.Equal(t, "alice", u.FullName())

	u.FirstName, u.LastName = "Alice", "Smith"
	assert.Equal(t, "Alice Smith", u.FullName())
}
