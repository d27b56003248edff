package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

// CreateLead records an inquiry from the marketing site. An authenticated
// user gets linked; anonymous visitors just leave contact details.
func CreateLead(c *fiber.Ctx) error {
	lead := new(models.Lead)
	if err := c.BodyParser(lead); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	errs := map[string]string{}
	if lead.Name == "" {
		errs["name"] = "Name is required"
	}
	if lead.Phone == "" {
		errs["phone"] = "Phone is required"
	}
	if len(errs) > 0 {
		return utils.FailValidation(c, errs)
	}

	lead.Status = models.LeadNew
	if userID, ok := c.Locals("userID").(uint); ok {
		lead.UserID = &userID
	}

	if err := db.DB.Create(lead).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create lead")
	}
	return utils.Success(c, fiber.StatusCreated, "Thank you, we will contact you shortly", lead)
}
