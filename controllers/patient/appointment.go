package patient

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

// GetMyAppointments returns the logged-in patient's appointments, newest
// first, optionally filtered by status or restricted to upcoming dates.
func GetMyAppointments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return utils.Fail(c, fiber.StatusUnauthorized, "User ID not found in context")
	}

	page := 1
	limit := 10
	if parsed := c.QueryInt("page"); parsed > 0 {
		page = parsed
	}
	if parsed := c.QueryInt("limit"); parsed > 0 {
		limit = parsed
	}

	status := c.Query("status")
	if status != "" && !models.ValidStatus(models.AppointmentStatus(status)) {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid appointment status")
	}

	filtered := func() *gorm.DB {
		q := db.DB.Model(&models.Appointment{}).Where("user_id = ?", userID)
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if c.Query("upcoming") == "true" {
			today := time.Now().Format("2006-01-02")
			q = q.Where("appointment_date >= ?", today).
				Where("status IN ?", models.ActiveStatuses)
		}
		return q
	}

	var total int64
	filtered().Count(&total)

	var appointments []models.Appointment
	err := filtered().Preload("Service").Preload("Branch").
		Order("appointment_date desc, time_slot desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to fetch appointments")
	}

	return utils.Success(c, fiber.StatusOK, "Appointments fetched", fiber.Map{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// GetMyAppointment returns one of the patient's own appointments
func GetMyAppointment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return utils.Fail(c, fiber.StatusUnauthorized, "User ID not found in context")
	}

	var appointment models.Appointment
	if err := db.DB.Preload("Service").Preload("Branch").
		Where("user_id = ?", userID).First(&appointment, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Appointment not found")
	}
	return utils.Success(c, fiber.StatusOK, "Appointment fetched", appointment)
}
