package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

// GetAllServices returns active services, optionally filtered by category
// or branch.
func GetAllServices(c *fiber.Ctx) error {
	query := db.DB.Preload("Category").Where("is_active = ?", true)

	if categoryID := c.Query("categoryId"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if branchID := c.Query("branchId"); branchID != "" {
		query = query.Joins("JOIN branch_services ON branch_services.service_id = services.id").
			Where("branch_services.branch_id = ?", branchID)
	}

	var services []models.Service
	if err := query.Order("name asc").Find(&services).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to fetch services")
	}
	return utils.Success(c, fiber.StatusOK, "Services fetched", services)
}

// GetService returns a single active service with its category and branches
func GetService(c *fiber.Ctx) error {
	id := c.Params("id")
	var service models.Service
	if err := db.DB.Preload("Category").Preload("Branches", "is_active = ?", true).
		Where("is_active = ?", true).First(&service, id).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Service not found")
	}
	return utils.Success(c, fiber.StatusOK, "Service fetched", service)
}

// GetAllCategories returns active service categories with their services
func GetAllCategories(c *fiber.Ctx) error {
	var categories []models.ServiceCategory
	if err := db.DB.Preload("Services", "is_active = ?", true).
		Where("is_active = ?", true).Order("name asc").Find(&categories).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to fetch categories")
	}
	return utils.Success(c, fiber.StatusOK, "Categories fetched", categories)
}
