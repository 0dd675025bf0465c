package prediction_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"smart_health/internal/authz"
	"smart_health/internal/identity"
	"smart_health/internal/ml"
	"smart_health/internal/models"
	"smart_health/internal/prediction"
)

var engine = ml.Train()

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
	))
	return db
}

func registerPatient(t *testing.T, db *gorm.DB, username string) authz.Identity {
	t.Helper()
	user, err := identity.Register(db, identity.RegisterInput{
		Username:  username,
		Email:     username + "@x.com",
		Password:  "s3curepass",
		FirstName: "Alice",
		LastName:  "Smith",
		Role:      models.RolePatient,
	})
	require.NoError(t, err)
	return authz.Identity{UserID: user.ID, Username: user.Username, Role: user.Role}
}

func registerDoctor(t *testing.T, db *gorm.DB, username, specialization string, approved bool) authz.Identity {
	t.Helper()
	user, err := identity.Register(db, identity.RegisterInput{
		Username:       username,
		Email:          username + "@x.com",
		Password:       "s3curepass",
		Role:           models.RoleDoctor,
		Specialization: specialization,
		Approved:       approved,
	})
	require.NoError(t, err)
	return authz.Identity{UserID: user.ID, Username: user.Username, Role: user.Role}
}

func validVector() ml.FeatureVector {
	return ml.FeatureVector{
		Age: 45, Sex: 1, Cp: 0, Trestbps: 120, Chol: 200, Fbs: 0,
		Restecg: 0, Thalach: 150, Exang: 0, Oldpeak: 1.0, Slope: 1, Ca: 0, Thal: 2,
	}
}

func predictionCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Prediction{}).Count(&n).Error)
	return n
}

func TestPredictPersistsOwnedRecord(t *testing.T) {
	db := testDB(t)
	alice := registerPatient(t, db, "alice")
	registerDoctor(t, db, "dr.approved", "Cardiologist", true)
	registerDoctor(t, db, "dr.pending", "Cardiologist", false)

	result, err := prediction.Predict(db, engine, alice, validVector())
	require.NoError(t, err)

	assert.Contains(t, []int{ml.OutcomeHealthy, ml.OutcomeAtRisk}, result.Prediction.Result)
	assert.GreaterOrEqual(t, result.Prediction.Probability, 0.0)
	assert.LessOrEqual(t, result.Prediction.Probability, 1.0)
	assert.Greater(t, result.Prediction.Accuracy, 0.0)
	assert.NotEmpty(t, result.Prediction.Ref)
	assert.Equal(t, "Alice Smith", result.Prediction.PatientName)
	assert.NotEmpty(t, result.Message)

	// Only the approved cardiologist is recommended.
	require.Len(t, result.Doctors, 1)
	assert.Equal(t, "dr.approved@x.com", result.Doctors[0].Email)

	assert.EqualValues(t, 1, predictionCount(t, db))

	var stored models.Prediction
	require.NoError(t, db.Where("ref = ?", result.Prediction.Ref).First(&stored).Error)
	assert.Equal(t, 45, stored.Input.Age)
	assert.Equal(t, result.Prediction.Result, stored.Result)
}

func TestPredictRejectsInvalidFeature(t *testing.T) {
	db := testDB(t)
	alice := registerPatient(t, db, "alice")

	input := validVector()
	input.Age = -5
	_, err := prediction.Predict(db, engine, alice, input)
	assert.ErrorIs(t, err, ml.ErrInvalidFeature)

	// Nothing persisted on a validation failure.
	assert.Zero(t, predictionCount(t, db))
}

func TestPredictFailsClosedWithoutModel(t *testing.T) {
	db := testDB(t)
	alice := registerPatient(t, db, "alice")

	_, err := prediction.Predict(db, nil, alice, validVector())
	assert.ErrorIs(t, err, ml.ErrModelUnavailable)
	assert.Zero(t, predictionCount(t, db))
}

func TestPredictIsPatientOnly(t *testing.T) {
	db := testDB(t)
	doctor := registerDoctor(t, db, "drbob", "Cardiologist", true)

	_, err := prediction.Predict(db, engine, doctor, validVector())
	assert.ErrorIs(t, err, authz.ErrWrongRole)

	admin := authz.Identity{UserID: 99, Username: "root", Role: models.RoleAdmin}
	_, err = prediction.Predict(db, engine, admin, validVector())
	assert.ErrorIs(t, err, authz.ErrWrongRole)
}

func TestListScopesAndOrders(t *testing.T) {
	db := testDB(t)
	alice := registerPatient(t, db, "alice")
	mallory := registerPatient(t, db, "mallory")

	_, err := prediction.Predict(db, engine, alice, validVector())
	require.NoError(t, err)
	_, err = prediction.Predict(db, engine, alice, validVector())
	require.NoError(t, err)
	_, err = prediction.Predict(db, engine, mallory, validVector())
	require.NoError(t, err)

	aliceRecords, err := prediction.List(db, alice)
	require.NoError(t, err)
	require.Len(t, aliceRecords, 2)
	for _, rec := range aliceRecords {
		assert.Equal(t, "Alice Smith", rec.PatientName)
	}

	// Newest first; identical timestamps break ties by id, descending.
	require.False(t, aliceRecords[0].CreatedAt.Before(aliceRecords[1].CreatedAt))
	if aliceRecords[0].CreatedAt.Equal(aliceRecords[1].CreatedAt) {
		assert.Greater(t, aliceRecords[0].ID, aliceRecords[1].ID)
	}

	// A pending doctor is denied; approval opens the full listing.
	pending := registerDoctor(t, db, "dr.pending", "Cardiologist", false)
	_, err = prediction.List(db, pending)
	assert.ErrorIs(t, err, authz.ErrNotApproved)

	require.NoError(t, db.Model(&models.DoctorProfile{}).
		Where("user_id = ?", pending.UserID).
		Update("status", models.StatusApproved).Error)
	all, err := prediction.List(db, pending)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	admin := authz.Identity{UserID: 999, Username: "root", Role: models.RoleAdmin}
	all, err = prediction.List(db, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListOrdersNewestFirst(t *testing.T) {
	db := testDB(t)
	alice := registerPatient(t, db, "alice")

	var profile models.PatientProfile
	require.NoError(t, db.Where("user_id = ?", alice.UserID).First(&profile).Error)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := models.Prediction{PatientID: profile.ID, PatientName: "Alice Smith", Input: validVector()}
		rec.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, db.Create(&rec).Error)
	}

	records, err := prediction.List(db, alice)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.True(t, records[0].CreatedAt.After(records[1].CreatedAt))
	assert.True(t, records[1].CreatedAt.After(records[2].CreatedAt))
}

func TestDelete(t *testing.T) {
	db := testDB(t)
	alice := registerPatient(t, db, "alice")
	mallory := registerPatient(t, db, "mallory")
	admin := authz.Identity{UserID: 999, Username: "root", Role: models.RoleAdmin}

	result, err := prediction.Predict(db, engine, alice, validVector())
	require.NoError(t, err)
	ref := result.Prediction.Ref

	assert.ErrorIs(t, prediction.Delete(db, alice, "no-such-ref"), prediction.ErrNotFound)
	assert.ErrorIs(t, prediction.Delete(db, mallory, ref), authz.ErrForbidden)
	assert.EqualValues(t, 1, predictionCount(t, db))

	require.NoError(t, prediction.Delete(db, alice, ref))
	assert.Zero(t, predictionCount(t, db))

	// Admin may delete any patient's record.
	result, err = prediction.Predict(db, engine, mallory, validVector())
	require.NoError(t, err)
	require.NoError(t, prediction.Delete(db, admin, result.Prediction.Ref))
	assert.Zero(t, predictionCount(t, db))
}

func TestRecommendMatchesSpecialization(t *testing.T) {
	db := testDB(t)
	registerDoctor(t, db, "dr.cardio", "Cardiologist", true)
	registerDoctor(t, db, "dr.surgeon", "Cardiac Surgeon", true)
	registerDoctor(t, db, "dr.pending", "Cardiologist", false)

	doctors, err := prediction.Recommend(db, "Cardiologist")
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Cardiologist", doctors[0].Specialization)
	assert.Equal(t, "dr.cardio@x.com", doctors[0].Email)
}
