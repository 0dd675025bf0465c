package identity_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"smart_health/internal/identity"
	"smart_health/internal/models"
	"smart_health/internal/token"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// In-memory SQLite lives per connection; keep the pool at one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PatientProfile{},
		&models.DoctorProfile{},
		&models.Prediction{},
		&models.Feedback{},
	))
	return db
}

func patientInput(username, email string) identity.RegisterInput {
	return identity.RegisterInput{
		Username:    username,
		Email:       email,
		Password:    "s3curepass",
		FirstName:   "Alice",
		LastName:    "Smith",
		Role:        models.RolePatient,
		DateOfBirth: "1980-04-02",
	}
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	db := testDB(t)

	user, err := identity.Register(db, patientInput("alice", "alice@x.com"))
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.True(t, user.IsActive)

	// Only a salted hash is stored, never the plaintext.
	assert.NotEqual(t, "s3curepass", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3curepass")))

	var profile models.PatientProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "1980-04-02", profile.DateOfBirth)
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	db := testDB(t)

	_, err := identity.Register(db, patientInput("alice", "alice@x.com"))
	require.NoError(t, err)

	// Same username, different email.
	_, err = identity.Register(db, patientInput("alice", "other@x.com"))
	assert.ErrorIs(t, err, identity.ErrDuplicateIdentity)

	// Same email, different username.
	_, err = identity.Register(db, patientInput("alice2", "alice@x.com"))
	assert.ErrorIs(t, err, identity.ErrDuplicateIdentity)

	// The failed attempts must not have left half-created records behind.
	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)
	var profiles int64
	require.NoError(t, db.Model(&models.PatientProfile{}).Count(&profiles).Error)
	assert.EqualValues(t, 1, profiles)
}

func TestRegisterWeakPassword(t *testing.T) {
	db := testDB(t)

	for _, password := range []string{"short1", "lettersonly", "1234567890"} {
		in := patientInput("alice", "alice@x.com")
		in.Password = password
		_, err := identity.Register(db, in)
		assert.ErrorIs(t, err, identity.ErrWeakCredential, "password %q should be rejected", password)
	}

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestRegisterDoctorPendingByDefault(t *testing.T) {
	db := testDB(t)

	in := patientInput("drbob", "bob@x.com")
	in.Role = models.RoleDoctor
	in.Specialization = "Cardiologist"
	user, err := identity.Register(db, in)
	require.NoError(t, err)
	require.NotNil(t, user.Doctor)
	assert.Equal(t, models.StatusPending, user.Doctor.Status)

	// Admin-created doctors start approved.
	in2 := patientInput("drcarol", "carol@x.com")
	in2.Role = models.RoleDoctor
	in2.Approved = true
	user2, err := identity.Register(db, in2)
	require.NoError(t, err)
	require.NotNil(t, user2.Doctor)
	assert.Equal(t, models.StatusApproved, user2.Doctor.Status)
}

func TestAuthenticate(t *testing.T) {
	db := testDB(t)
	_, err := identity.Register(db, patientInput("alice", "alice@x.com"))
	require.NoError(t, err)

	t.Run("success issues a verifiable token", func(t *testing.T) {
		user, tok, err := identity.Authenticate(db, "alice", "s3curepass")
		require.NoError(t, err)
		require.NotEmpty(t, tok)

		id, err := identity.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, user.ID, id.UserID)
		assert.Equal(t, "alice", id.Username)
		assert.Equal(t, models.RolePatient, id.Role)
	})

	t.Run("wrong password and unknown user look identical", func(t *testing.T) {
		_, _, errWrong := identity.Authenticate(db, "alice", "badpassword1")
		_, _, errUnknown := identity.Authenticate(db, "nobody", "s3curepass")
		assert.ErrorIs(t, errWrong, identity.ErrInvalidCredential)
		assert.ErrorIs(t, errUnknown, identity.ErrInvalidCredential)
		assert.Equal(t, errWrong.Error(), errUnknown.Error())
	})

	t.Run("inactive account", func(t *testing.T) {
		require.NoError(t, db.Model(&models.User{}).
			Where("username = ?", "alice").
			Update("is_active", false).Error)
		_, _, err := identity.Authenticate(db, "alice", "s3curepass")
		assert.ErrorIs(t, err, identity.ErrAccountInactive)
	})
}

func TestVerifyTokenErrors(t *testing.T) {
	t.Run("expired", func(t *testing.T) {
		expired, err := token.Generate(1, "alice", models.RolePatient, -time.Minute)
		require.NoError(t, err)
		_, err = identity.Verify(expired)
		assert.ErrorIs(t, err, token.ErrExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := identity.Verify("not.a.token")
		assert.ErrorIs(t, err, token.ErrInvalid)
	})

	t.Run("tampered", func(t *testing.T) {
		good, err := token.Generate(1, "alice", models.RolePatient, time.Hour)
		require.NoError(t, err)
		_, err = identity.Verify(good + "x")
		assert.ErrorIs(t, err, token.ErrInvalid)
	})
}

func TestChangePassword(t *testing.T) {
	db := testDB(t)
	user, err := identity.Register(db, patientInput("alice", "alice@x.com"))
	require.NoError(t, err)

	err = identity.ChangePassword(db, user.ID, "wrongoldpw1", "newpass123")
	assert.ErrorIs(t, err, identity.ErrInvalidCredential)

	err = identity.ChangePassword(db, user.ID, "s3curepass", "weak")
	assert.ErrorIs(t, err, identity.ErrWeakCredential)

	require.NoError(t, identity.ChangePassword(db, user.ID, "s3curepass", "newpass123"))

	_, _, err = identity.Authenticate(db, "alice", "s3curepass")
	assert.ErrorIs(t, err, identity.ErrInvalidCredential)
	_, _, err = identity.Authenticate(db, "alice", "newpass123")
	assert.NoError(t, err)
}
