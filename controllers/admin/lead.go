package admin

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

var errSlotTaken = errors.New("time slot already booked")

// GetAllLeads returns leads for the back-office, optionally by status
func GetAllLeads(c *fiber.Ctx) error {
	page := 1
	limit := 20
	if parsed := c.QueryInt("page"); parsed > 0 {
		page = parsed
	}
	if parsed := c.QueryInt("limit"); parsed > 0 {
		limit = parsed
	}

	status := c.Query("status")
	if status != "" && !models.ValidLeadStatus(models.LeadStatus(status)) {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid lead status")
	}

	filtered := func() *gorm.DB {
		q := db.DB.Model(&models.Lead{})
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	var total int64
	filtered().Count(&total)

	var leads []models.Lead
	if err := filtered().Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).Find(&leads).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to fetch leads")
	}

	return utils.Success(c, fiber.StatusOK, "Leads fetched", fiber.Map{
		"leads": leads,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// UpdateLeadStatus moves a lead along the pipeline (NEW, CONTACTED,
// INTERESTED, LOST). CONVERTED is only reachable through ConvertLead.
func UpdateLeadStatus(c *fiber.Ctx) error {
	type UpdateRequest struct {
		Status models.LeadStatus `json:"status"`
		Notes  string            `json:"notes"`
	}

	req := new(UpdateRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}
	if !models.ValidLeadStatus(req.Status) {
		return utils.FailValidation(c, map[string]string{"status": "Invalid lead status"})
	}
	if req.Status == models.LeadConverted {
		return utils.Fail(c, fiber.StatusBadRequest, "Use the convert endpoint to convert a lead")
	}

	var lead models.Lead
	if err := db.DB.First(&lead, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Lead not found")
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if err := db.DB.Model(&lead).Updates(updates).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update lead")
	}
	return utils.Success(c, fiber.StatusOK, "Lead updated", lead)
}

// ConvertLead books an appointment from a lead's contact details and marks
// the lead CONVERTED. Both writes happen in one transaction so a failure
// on either side leaves nothing behind. The appointment keeps only a
// free-text note pointing back at the lead.
func ConvertLead(c *fiber.Ctx) error {
	type ConvertRequest struct {
		ServiceID       uint   `json:"serviceId"`
		BranchID        uint   `json:"branchId"`
		AppointmentDate string `json:"appointmentDate"`
		TimeSlot        string `json:"timeSlot"`
	}

	req := new(ConvertRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	errs := map[string]string{}
	if req.ServiceID == 0 {
		errs["serviceId"] = "Service is required"
	}
	if req.BranchID == 0 {
		errs["branchId"] = "Branch is required"
	}
	if _, err := time.Parse("2006-01-02", req.AppointmentDate); err != nil {
		errs["appointmentDate"] = "Invalid date format, use YYYY-MM-DD"
	}
	slotMin, slotErr := utils.ParseClock(req.TimeSlot)
	if slotErr != nil {
		errs["timeSlot"] = "Invalid time format, use HH:MM"
	}
	if len(errs) > 0 {
		return utils.FailValidation(c, errs)
	}
	req.TimeSlot = utils.FormatClock(slotMin)

	var lead models.Lead
	if err := db.DB.First(&lead, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Lead not found")
	}
	if lead.Status == models.LeadConverted {
		return utils.Fail(c, fiber.StatusBadRequest, "Lead is already converted")
	}

	var service models.Service
	if err := db.DB.Where("is_active = ?", true).First(&service, req.ServiceID).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Service not found")
	}
	var branch models.Branch
	if err := db.DB.Where("is_active = ?", true).First(&branch, req.BranchID).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Branch not found")
	}
	if !utils.OnSlotGrid(branch.OpeningTime, branch.ClosingTime, utils.SlotDurationMinutes, req.TimeSlot) {
		return utils.Fail(c, fiber.StatusBadRequest, "Requested time slot is outside branch working hours")
	}

	appointment := models.Appointment{
		AppointmentDate: req.AppointmentDate,
		TimeSlot:        req.TimeSlot,
		Status:          models.StatusPending,
		PatientName:     lead.Name,
		PatientPhone:    lead.Phone,
		PatientEmail:    lead.Email,
		Notes:           fmt.Sprintf("Converted from lead #%d", lead.ID),
		UserID:          lead.UserID,
		ServiceID:       service.ID,
		BranchID:        branch.ID,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		available, err := utils.CheckSlotAvailable(tx, branch.ID, req.AppointmentDate, req.TimeSlot, 0)
		if err != nil {
			return err
		}
		if !available {
			return errSlotTaken
		}
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}
		return tx.Model(&lead).Update("status", models.LeadConverted).Error
	})
	if errors.Is(err, errSlotTaken) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.Fail(c, fiber.StatusConflict, "This time slot is already booked")
	}
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to convert lead")
	}

	utils.SendEmailAsync(lead.Email, "Appointment Confirmation", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Following up on your inquiry, we have booked an appointment for you.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Branch:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>Your Clinic Team</p>
	`, lead.Name, service.Name, branch.Name, req.AppointmentDate, req.TimeSlot))

	return utils.Success(c, fiber.StatusOK, "Lead converted", fiber.Map{
		"lead":        lead,
		"appointment": appointment,
	})
}
