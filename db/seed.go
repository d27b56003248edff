package db

import (
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

// Seed creates the initial super-admin account if no staff user exists.
// Credentials come from SUPER_ADMIN_EMAIL / SUPER_ADMIN_PASSWORD.
func Seed() {
	log := utils.GetLogger()

	email := os.Getenv("SUPER_ADMIN_EMAIL")
	password := os.Getenv("SUPER_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Warn("SUPER_ADMIN_EMAIL or SUPER_ADMIN_PASSWORD not set, skipping seed")
		return
	}

	var count int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleSuperAdmin).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash super admin password", zap.Error(err))
		return
	}

	admin := models.User{
		Name:     "Super Admin",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Error("failed to seed super admin", zap.Error(err))
		return
	}
	log.Info("seeded super admin account", zap.String("email", email))
}
