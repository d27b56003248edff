package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

// GetContactMessages returns messages from the public contact form,
// unread first.
func GetContactMessages(c *fiber.Ctx) error {
	query := db.DB.Model(&models.ContactMessage{})
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var messages []models.ContactMessage
	if err := query.Order("is_read asc, created_at desc").Find(&messages).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to fetch messages")
	}
	return utils.Success(c, fiber.StatusOK, "Messages fetched", messages)
}

// MarkContactMessageRead flags a message as handled
func MarkContactMessageRead(c *fiber.Ctx) error {
	var message models.ContactMessage
	if err := db.DB.First(&message, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Message not found")
	}
	if err := db.DB.Model(&message).Update("is_read", true).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update message")
	}
	return utils.Success(c, fiber.StatusOK, "Message marked as read", message)
}
