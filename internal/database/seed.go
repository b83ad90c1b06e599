package database

import (
	"errors"
	"log"

	"github.com/campuskit/assetdb/internal/config"
	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the initial admin account when no user with the
// configured admin username exists yet. Skipped when ADMIN_PASSWORD is unset.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminPassword == "" {
		log.Printf("ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	var existing models.User
	err := db.Where("username = ?", cfg.AdminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Role:     types.RoleAdmin,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin user %q", cfg.AdminUsername)
	return nil
}
