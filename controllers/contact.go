package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

// CreateContactMessage stores a message from the public contact form
func CreateContactMessage(c *fiber.Ctx) error {
	message := new(models.ContactMessage)
	if err := c.BodyParser(message); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	errs := map[string]string{}
	if message.Name == "" {
		errs["name"] = "Name is required"
	}
	if message.Email == "" {
		errs["email"] = "Email is required"
	}
	if message.Message == "" {
		errs["message"] = "Message is required"
	}
	if len(errs) > 0 {
		return utils.FailValidation(c, errs)
	}

	message.IsRead = false
	if err := db.DB.Create(message).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to save message")
	}
	return utils.Success(c, fiber.StatusCreated, "Message received", message)
}
