package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

// GetAllAppointments returns appointments for the back-office with
// optional branch, status and date filters.
func GetAllAppointments(c *fiber.Ctx) error {
	page := 1
	limit := 20
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
		q := db.DB.Model(&models.Appointment{})
		if branchID := c.Query("branchId"); branchID != "" {
			q = q.Where("branch_id = ?", branchID)
		}
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if date := c.Query("date"); date != "" {
			q = q.Where("appointment_date = ?", date)
		}
		return q
	}

	var total int64
	filtered().Count(&total)

	var appointments []models.Appointment
	err := filtered().Preload("Service").Preload("Branch").Preload("User").
		Order("appointment_date desc, time_slot asc").
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

// GetAppointment returns a single appointment with its relations
func GetAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := db.DB.Preload("Service").Preload("Branch").Preload("User").
		First(&appointment, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Appointment not found")
	}
	return utils.Success(c, fiber.StatusOK, "Appointment fetched", appointment)
}

// UpdateAppointmentStatus lets staff move an appointment to any of the six
// statuses, with optional internal notes.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	type StatusRequest struct {
		Status     models.AppointmentStatus `json:"status"`
		AdminNotes string                   `json:"adminNotes"`
	}

	req := new(StatusRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}
	if !models.ValidStatus(req.Status) {
		return utils.FailValidation(c, map[string]string{"status": "Invalid appointment status"})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Appointment not found")
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.AdminNotes != "" {
		updates["admin_notes"] = req.AdminNotes
	}
	if err := db.DB.Model(&appointment).Updates(updates).Error; err != nil {
		// Reactivating an appointment can collide with a newer booking
		// holding the same slot.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Fail(c, fiber.StatusConflict, "This time slot is already booked")
		}
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update appointment")
	}
	return utils.Success(c, fiber.StatusOK, "Appointment status updated", appointment)
}
