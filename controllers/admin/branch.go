package admin

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

// BranchRequest is the body for creating or updating a branch
type BranchRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
	ServiceIDs  []uint `json:"serviceIds"`
}

// validateBranchRequest checks the body and rewrites the working hours in
// canonical zero-padded "HH:MM" so slot strings compare consistently.
func validateBranchRequest(req *BranchRequest) map[string]string {
	errs := map[string]string{}
	if req.Name == "" {
		errs["name"] = "Name is required"
	}
	openMin, err := utils.ParseClock(req.OpeningTime)
	if err != nil {
		errs["openingTime"] = "Invalid time format, use HH:MM"
	}
	closeMin, err := utils.ParseClock(req.ClosingTime)
	if err != nil {
		errs["closingTime"] = "Invalid time format, use HH:MM"
	}
	if len(errs) == 0 {
		req.OpeningTime = utils.FormatClock(openMin)
		req.ClosingTime = utils.FormatClock(closeMin)
	}
	return errs
}

// CreateBranch adds a clinic branch
func CreateBranch(c *fiber.Ctx) error {
	req := new(BranchRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}
	if errs := validateBranchRequest(req); len(errs) > 0 {
		return utils.FailValidation(c, errs)
	}

	branch := models.Branch{
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		OpeningTime: req.OpeningTime,
		ClosingTime: req.ClosingTime,
		IsActive:    true,
	}
	if err := db.DB.Create(&branch).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create branch")
	}

	if len(req.ServiceIDs) > 0 {
		if err := assignServices(&branch, req.ServiceIDs); err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to assign services")
		}
	}
	return utils.Success(c, fiber.StatusCreated, "Branch created", branch)
}

// UpdateBranch edits a branch and its offered services
func UpdateBranch(c *fiber.Ctx) error {
	var branch models.Branch
	if err := db.DB.First(&branch, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Branch not found")
	}

	req := new(BranchRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}
	if errs := validateBranchRequest(req); len(errs) > 0 {
		return utils.FailValidation(c, errs)
	}

	updates := map[string]interface{}{
		"name":         req.Name,
		"address":      req.Address,
		"phone":        req.Phone,
		"opening_time": req.OpeningTime,
		"closing_time": req.ClosingTime,
	}
	if err := db.DB.Model(&branch).Updates(updates).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update branch")
	}

	if req.ServiceIDs != nil {
		if err := assignServices(&branch, req.ServiceIDs); err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to assign services")
		}
	}
	return utils.Success(c, fiber.StatusOK, "Branch updated", branch)
}

// DeleteBranch soft-deletes a branch by flipping its active flag; booked
// history stays intact and the branch disappears from public listings.
func DeleteBranch(c *fiber.Ctx) error {
	var branch models.Branch
	if err := db.DB.First(&branch, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Branch not found")
	}
	if err := db.DB.Model(&branch).Update("is_active", false).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to delete branch")
	}
	return utils.Success(c, fiber.StatusOK, "Branch deleted", nil)
}

// UploadBranchImage stores a branch photo in Cloudinary
func UploadBranchImage(c *fiber.Ctx) error {
	var branch models.Branch
	if err := db.DB.First(&branch, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Branch not found")
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

	url, err := utils.UploadToCloudinary(src, fmt.Sprintf("branch_%d", branch.ID), "branches")
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to upload image")
	}

	if err := db.DB.Model(&branch).Update("image_url", url).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to save image URL")
	}
	return utils.Success(c, fiber.StatusOK, "Image uploaded", fiber.Map{"imageUrl": url})
}

func assignServices(branch *models.Branch, serviceIDs []uint) error {
	var services []models.Service
	if err := db.DB.Find(&services, serviceIDs).Error; err != nil {
		return err
	}
	return db.DB.Model(branch).Association("Services").Replace(services)
}
