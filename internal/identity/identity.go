// Package identity owns the credential lifecycle: registration,
// authentication, token verification and password changes. Plaintext
// passwords never leave this package; only bcrypt hashes are stored.
package identity

import (
	"errors"
	"unicode"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smart_health/internal/authz"
	"smart_health/internal/models"
	"smart_health/internal/token"
)

var (
	// ErrDuplicateIdentity means the username or email is already taken.
	ErrDuplicateIdentity = errors.New("username or email already registered")
	// ErrWeakCredential means the password fails the minimum policy.
	ErrWeakCredential = errors.New("password must be at least 8 characters with a letter and a digit")
	// ErrInvalidCredential is returned for unknown usernames and wrong
	// passwords alike, so login cannot be used to enumerate accounts.
	ErrInvalidCredential = errors.New("invalid username or password")
	// ErrAccountInactive means credentials verified but the account is
	// deactivated.
	ErrAccountInactive = errors.New("account is inactive")
)

const minPasswordLen = 8

// RegisterInput carries everything needed to create a user and its
// role-specific profile in one step.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Contact     string
	Address     string
	Role        string
	DateOfBirth string
	ImageURL    string

	// Doctor-only fields.
	Specialization string
	Approved       bool // admin-created doctors start approved
}

// ValidatePassword enforces the password policy: at least 8 characters,
// containing at least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return ErrWeakCredential
	}
	hasLetter, hasDigit := false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakCredential
	}
	return nil
}

// Register creates the User and, for patients and doctors, the matching
// profile record inside a single transaction: both persist or neither does.
func Register(db *gorm.DB, in RegisterInput) (models.User, error) {
	if !models.ValidRole(in.Role) {
		return models.User{}, errors.New("invalid role")
	}
	if err := ValidatePassword(in.Password); err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", in.Username, in.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateIdentity
		}

		user = models.User{
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: string(hash),
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Contact:      in.Contact,
			Address:      in.Address,
			Role:         in.Role,
			IsActive:     true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return createProfileRecord(tx, &user, in)
	})
	if err != nil {
		return models.User{}, mapIdentityError(err)
	}
	return user, nil
}

// createProfileRecord creates the role-specific extension inside the
// registration transaction. Admins have no extension record.
func createProfileRecord(tx *gorm.DB, user *models.User, in RegisterInput) error {
	switch user.Role {
	case models.RolePatient:
		profile := models.PatientProfile{
			UserID:      user.ID,
			DateOfBirth: in.DateOfBirth,
			ImageURL:    in.ImageURL,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.Patient = &profile
	case models.RoleDoctor:
		specialization := in.Specialization
		if specialization == "" {
			specialization = "Cardiologist"
		}
		status := models.StatusPending
		if in.Approved {
			status = models.StatusApproved
		}
		profile := models.DoctorProfile{
			UserID:         user.ID,
			Specialization: specialization,
			ImageURL:       in.ImageURL,
			Status:         status,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.Doctor = &profile
	}
	return nil
}

// mapIdentityError folds a Postgres unique violation into the same
// DuplicateIdentity the pre-check produces.
func mapIdentityError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateIdentity
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateIdentity
	}
	return err
}

// Authenticate checks the credentials and issues a bearer token bound to
// the user's identity and role.
func Authenticate(db *gorm.DB, username, password string) (models.User, string, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", ErrInvalidCredential
		}
		return models.User{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, "", ErrInvalidCredential
	}
	if !user.IsActive {
		return models.User{}, "", ErrAccountInactive
	}

	tok, err := token.Generate(user.ID, user.Username, user.Role, token.DefaultTTL())
	if err != nil {
		return models.User{}, "", err
	}
	return user, tok, nil
}

// IssueToken signs a token for an already-created user, used right after
// registration.
func IssueToken(user models.User) (string, error) {
	return token.Generate(user.ID, user.Username, user.Role, token.DefaultTTL())
}

// Verify statelessly checks a bearer token and returns the identity it
// asserts. Token errors are token.ErrExpired and token.ErrInvalid.
func Verify(raw string) (authz.Identity, error) {
	claims, err := token.Parse(raw)
	if err != nil {
		return authz.Identity{}, err
	}
	return authz.Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// ChangePassword verifies the old password and atomically replaces the
// stored hash.
func ChangePassword(db *gorm.DB, userID uint, oldPassword, newPassword string) error {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredential
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredential
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Model(&user).Update("password_hash", string(hash)).Error
}
