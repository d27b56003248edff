package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

// GetAllBranches returns all active branches
func GetAllBranches(c *fiber.Ctx) error {
	var branches []models.Branch
	if err := db.DB.Where("is_active = ?", true).Order("name asc").Find(&branches).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to fetch branches")
	}
	return utils.Success(c, fiber.StatusOK, "Branches fetched", branches)
}

// GetBranch returns a single active branch with its services
func GetBranch(c *fiber.Ctx) error {
	id := c.Params("id")
	var branch models.Branch
	if err := db.DB.Preload("Services", "is_active = ?", true).
		Where("is_active = ?", true).First(&branch, id).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Branch not found")
	}
	return utils.Success(c, fiber.StatusOK, "Branch fetched", branch)
}

// GetBranchSlots returns available appointment slots for a branch on a
// given date. Availability is recomputed on every request from the branch
// working window minus slots held by PENDING or CONFIRMED appointments.
func GetBranchSlots(c *fiber.Ctx) error {
	id := c.Params("id")

	dateStr := c.Query("date")
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid date format, use YYYY-MM-DD")
	}

	var branch models.Branch
	if err := db.DB.Where("is_active = ?", true).First(&branch, id).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Branch not found")
	}

	// serviceId is optional; when given it must be an active service
	// offered at this branch.
	if serviceID := c.Query("serviceId"); serviceID != "" {
		var count int64
		db.DB.Table("branch_services").
			Joins("JOIN services ON services.id = branch_services.service_id").
			Where("branch_services.branch_id = ? AND branch_services.service_id = ?", branch.ID, serviceID).
			Where("services.is_active = ? AND services.deleted_at IS NULL", true).
			Count(&count)
		if count == 0 {
			return utils.Fail(c, fiber.StatusNotFound, "Service not offered at this branch")
		}
	}

	booked, err := utils.BookedSlots(db.DB, branch.ID, dateStr)
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to fetch appointments")
	}

	available, err := utils.GenerateTimeSlots(branch.OpeningTime, branch.ClosingTime, utils.SlotDurationMinutes, booked)
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Invalid branch working hours")
	}
	all, err := utils.GenerateTimeSlots(branch.OpeningTime, branch.ClosingTime, utils.SlotDurationMinutes, nil)
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Invalid branch working hours")
	}

	return utils.Success(c, fiber.StatusOK, "Slots fetched", fiber.Map{
		"date":           dateStr,
		"availableSlots": available,
		"totalSlots":     len(all),
	})
}
