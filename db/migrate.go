package db

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

// Migrate runs schema migrations on the connected database.
func Migrate() {
	log := utils.GetLogger()

	err := DB.AutoMigrate(
		&models.User{},
		&models.Branch{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.Appointment{},
		&models.Lead{},
		&models.ContactMessage{},
	)
	if err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	if err := createSlotUniqueIndex(DB); err != nil {
		log.Fatal("failed to create slot unique index", zap.Error(err))
	}

	log.Info("migrations applied")
}

// createSlotUniqueIndex enforces "at most one active appointment per
// (branch, date, slot)" at the database level. The insert itself is the
// source of truth for conflict detection; the application-level check only
// exists to produce a friendly 409 in the common case.
func createSlotUniqueIndex(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
		ON appointments (branch_id, appointment_date, time_slot)
		WHERE status IN ('PENDING', 'CONFIRMED') AND deleted_at IS NULL
	`).Error
}
