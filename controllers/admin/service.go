package admin

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

// CreateCategory adds a service category
func CreateCategory(c *fiber.Ctx) error {
	category := new(models.ServiceCategory)
	if err := c.BodyParser(category); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}
	if category.Name == "" {
		return utils.FailValidation(c, map[string]string{"name": "Name is required"})
	}

	category.IsActive = true
	if err := db.DB.Create(category).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create category")
	}
	return utils.Success(c, fiber.StatusCreated, "Category created", category)
}

// UpdateCategory renames or deactivates a category
func UpdateCategory(c *fiber.Ctx) error {
	var category models.ServiceCategory
	if err := db.DB.First(&category, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Category not found")
	}

	type CategoryRequest struct {
		Name     string `json:"name"`
		IsActive *bool  `json:"isActive"`
	}
	req := new(CategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if err := db.DB.Model(&category).Updates(updates).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update category")
	}
	return utils.Success(c, fiber.StatusOK, "Category updated", category)
}

// ServiceRequest is the body for creating or updating a service
type ServiceRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DurationMinutes uint    `json:"durationMinutes"`
	Price           float64 `json:"price"`
	CategoryID      uint    `json:"categoryId"`
	BranchIDs       []uint  `json:"branchIds"`
}

// CreateService adds a service under a category and links it to branches
func CreateService(c *fiber.Ctx) error {
	req := new(ServiceRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	errs := map[string]string{}
	if req.Name == "" {
		errs["name"] = "Name is required"
	}
	if req.CategoryID == 0 {
		errs["categoryId"] = "Category is required"
	}
	if len(errs) > 0 {
		return utils.FailValidation(c, errs)
	}

	var category models.ServiceCategory
	if err := db.DB.First(&category, req.CategoryID).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Category not found")
	}

	service := models.Service{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		CategoryID:      category.ID,
		IsActive:        true,
	}
	if err := db.DB.Create(&service).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create service")
	}

	if len(req.BranchIDs) > 0 {
		var branches []models.Branch
		if err := db.DB.Find(&branches, req.BranchIDs).Error; err == nil {
			db.DB.Model(&service).Association("Branches").Replace(branches)
		}
	}
	return utils.Success(c, fiber.StatusCreated, "Service created", service)
}

// UpdateService edits a service and its branch links
func UpdateService(c *fiber.Ctx) error {
	var service models.Service
	if err := db.DB.First(&service, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Service not found")
	}

	req := new(ServiceRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.DurationMinutes != 0 {
		updates["duration_minutes"] = req.DurationMinutes
	}
	if req.Price != 0 {
		updates["price"] = req.Price
	}
	if req.CategoryID != 0 {
		var category models.ServiceCategory
		if err := db.DB.First(&category, req.CategoryID).Error; err != nil {
			return utils.Fail(c, fiber.StatusNotFound, "Category not found")
		}
		updates["category_id"] = category.ID
	}
	if err := db.DB.Model(&service).Updates(updates).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update service")
	}

	if req.BranchIDs != nil {
		var branches []models.Branch
		if err := db.DB.Find(&branches, req.BranchIDs).Error; err == nil {
			db.DB.Model(&service).Association("Branches").Replace(branches)
		}
	}
	return utils.Success(c, fiber.StatusOK, "Service updated", service)
}

// DeleteService soft-deletes a service by flipping its active flag
func DeleteService(c *fiber.Ctx) error {
	var service models.Service
	if err := db.DB.First(&service, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Service not found")
	}
	if err := db.DB.Model(&service).Update("is_active", false).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to delete service")
	}
	return utils.Success(c, fiber.StatusOK, "Service deleted", nil)
}

// UploadServiceImage stores a service photo in Cloudinary
func UploadServiceImage(c *fiber.Ctx) error {
	var service models.Service
	if err := db.DB.First(&service, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Service not found")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Image file is required")
	}
	src, err := file.Open()
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to read image")
	}
	defer src.Close()

	url, err := utils.UploadToCloudinary(src, fmt.Sprintf("service_%d", service.ID), "services")
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to upload image")
	}

	if err := db.DB.Model(&service).Update("image_url", url).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to save image URL")
	}
	return utils.Success(c, fiber.StatusOK, "Image uploaded", fiber.Map{"imageUrl": url})
}
