package utils

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vivacare/clinic-backend/models"
)

// CheckSlotAvailable reports whether no PENDING or CONFIRMED appointment
// already occupies (branchID, date, slot). excludeID skips the caller's own
// row when rescheduling. Inside a Postgres transaction the matching row is
// locked FOR UPDATE; the partial unique index on active slots remains the
// final arbiter for concurrent inserts.
func CheckSlotAvailable(tx *gorm.DB, branchID uint, date, slot string, excludeID uint) (bool, error) {
	query := tx.Model(&models.Appointment{}).
		Select("id").
		Where("branch_id = ? AND appointment_date = ? AND time_slot = ?", branchID, date, slot).
		Where("status IN ?", models.ActiveStatuses)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var existing models.Appointment
	if err := query.Limit(1).Find(&existing).Error; err != nil {
		return false, err
	}
	return existing.ID == 0, nil
}

// BookedSlots returns the set of occupied "HH:MM" slots for a branch day,
// considering only PENDING and CONFIRMED appointments.
func BookedSlots(db *gorm.DB, branchID uint, date string) (map[string]bool, error) {
	var slots []string
	err := db.Model(&models.Appointment{}).
		Where("branch_id = ? AND appointment_date = ?", branchID, date).
		Where("status IN ?", models.ActiveStatuses).
		Pluck("time_slot", &slots).Error
	if err != nil {
		return nil, err
	}

	booked := make(map[string]bool, len(slots))
	for _, s := range slots {
		booked[s] = true
	}
	return booked, nil
}
