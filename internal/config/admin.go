package config

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"smart_health/internal/identity"
	"smart_health/internal/models"
)

// EnsureAdmin creates the administrator account on first start. Credentials
// come from env vars so deployments can rotate them; the defaults match the
// development seed.
func EnsureAdmin(db *gorm.DB) {
	in := identity.RegisterInput{
		Username:  getEnv("ADMIN_USERNAME", "admin"),
		Email:     getEnv("ADMIN_EMAIL", "admin@health.com"),
		Password:  getEnv("ADMIN_PASSWORD", "admin123"),
		FirstName: "Admin",
		LastName:  "User",
		Contact:   "1234567890",
		Address:   "Admin Office",
		Role:      models.RoleAdmin,
	}
	if _, err := identity.Register(db, in); err != nil {
		if errors.Is(err, identity.ErrDuplicateIdentity) {
			return
		}
		log.Fatalf("could not create admin user: %v", err)
	}
	log.Println("Admin user created")
}
