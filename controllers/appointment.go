package controllers

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

// BookAppointmentRequest is the body of POST /appointments
type BookAppointmentRequest struct {
	AppointmentDate string `json:"appointmentDate"`
	TimeSlot        string `json:"timeSlot"`
	PatientName     string `json:"patientName"`
	PatientPhone    string `json:"patientPhone"`
	PatientEmail    string `json:"patientEmail"`
	ServiceID       uint   `json:"serviceId"`
	BranchID        uint   `json:"branchId"`
	Notes           string `json:"notes"`
}

// CreateAppointment books a slot at a branch. Guests may book without an
// account; an authenticated patient gets the appointment linked to them.
func CreateAppointment(c *fiber.Ctx) error {
	req := new(BookAppointmentRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	errs := map[string]string{}
	if req.PatientName == "" {
		errs["patientName"] = "Patient name is required"
	}
	if req.PatientPhone == "" {
		errs["patientPhone"] = "Patient phone is required"
	}
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
	// Canonical "HH:MM": the parser accepts unpadded hours like "9:30",
	// but conflict checks compare raw strings.
	req.TimeSlot = utils.FormatClock(slotMin)

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
		PatientName:     req.PatientName,
		PatientPhone:    req.PatientPhone,
		PatientEmail:    req.PatientEmail,
		Notes:           req.Notes,
		ServiceID:       service.ID,
		BranchID:        branch.ID,
	}
	if userID, ok := c.Locals("userID").(uint); ok {
		appointment.UserID = &userID
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		available, err := utils.CheckSlotAvailable(tx, branch.ID, req.AppointmentDate, req.TimeSlot, 0)
		if err != nil {
			return err
		}
		if !available {
			return errSlotTaken
		}
		return tx.Create(&appointment).Error
	})
	if errors.Is(err, errSlotTaken) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.Fail(c, fiber.StatusConflict, "This time slot is already booked")
	}
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create appointment")
	}

	utils.SendEmailAsync(appointment.PatientEmail, "Appointment Confirmation",
		bookingEmailBody(&appointment, &service, &branch))

	return utils.Success(c, fiber.StatusCreated, "Appointment booked", appointment)
}

// RescheduleAppointment moves an appointment to a new date and slot. The
// conflict check skips the appointment's own row; on success the status
// becomes RESCHEDULED.
func RescheduleAppointment(c *fiber.Ctx) error {
	type RescheduleRequest struct {
		AppointmentDate string `json:"appointmentDate"`
		TimeSlot        string `json:"timeSlot"`
	}

	req := new(RescheduleRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	errs := map[string]string{}
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

	var appointment models.Appointment
	if err := db.DB.Preload("Branch").First(&appointment, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Appointment not found")
	}
	if !canManageAppointment(c, &appointment) {
		return utils.Fail(c, fiber.StatusForbidden, "You can only reschedule your own appointments")
	}
	if !appointment.Status.IsActive() {
		return utils.Fail(c, fiber.StatusBadRequest, "Only pending or confirmed appointments can be rescheduled")
	}
	if !utils.OnSlotGrid(appointment.Branch.OpeningTime, appointment.Branch.ClosingTime,
		utils.SlotDurationMinutes, req.TimeSlot) {
		return utils.Fail(c, fiber.StatusBadRequest, "Requested time slot is outside branch working hours")
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		available, err := utils.CheckSlotAvailable(tx, appointment.BranchID,
			req.AppointmentDate, req.TimeSlot, appointment.ID)
		if err != nil {
			return err
		}
		if !available {
			return errSlotTaken
		}
		return tx.Model(&appointment).Updates(map[string]interface{}{
			"appointment_date": req.AppointmentDate,
			"time_slot":        req.TimeSlot,
			"status":           models.StatusRescheduled,
		}).Error
	})
	if errors.Is(err, errSlotTaken) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.Fail(c, fiber.StatusConflict, "This time slot is already booked")
	}
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to reschedule appointment")
	}

	return utils.Success(c, fiber.StatusOK, "Appointment rescheduled", appointment)
}

// CancelAppointment sets the status to CANCELLED. The slot is never freed
// explicitly: availability only counts PENDING and CONFIRMED rows, so a
// cancelled appointment stops occupying its slot immediately.
func CancelAppointment(c *fiber.Ctx) error {
	type CancelRequest struct {
		CancelReason string `json:"cancelReason"`
	}

	// Body is optional for cancellation.
	req := new(CancelRequest)
	_ = c.BodyParser(req)

	var appointment models.Appointment
	if err := db.DB.First(&appointment, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Appointment not found")
	}
	if !canManageAppointment(c, &appointment) {
		return utils.Fail(c, fiber.StatusForbidden, "You can only cancel your own appointments")
	}
	if appointment.Status == models.StatusCancelled || appointment.Status == models.StatusCompleted {
		return utils.Fail(c, fiber.StatusBadRequest, "Appointment is already cancelled or completed")
	}

	if err := db.DB.Model(&appointment).Updates(map[string]interface{}{
		"status":        models.StatusCancelled,
		"cancel_reason": req.CancelReason,
	}).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to cancel appointment")
	}

	return utils.Success(c, fiber.StatusOK, "Appointment cancelled", appointment)
}

// canManageAppointment allows staff, or the patient the appointment is
// linked to. Guest bookings carry no user link and are staff-managed only.
func canManageAppointment(c *fiber.Ctx, appointment *models.Appointment) bool {
	if role, ok := c.Locals("role").(models.UserRole); ok && role.IsStaff() {
		return true
	}
	userID, ok := c.Locals("userID").(uint)
	return ok && appointment.UserID != nil && *appointment.UserID == userID
}

func bookingEmailBody(a *models.Appointment, s *models.Service, b *models.Branch) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been successfully booked.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Branch:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Thank you for choosing our clinic!</p>
		<p>Best regards,</p>
		<p>Your Clinic Team</p>
	`, a.PatientName, s.Name, b.Name, a.AppointmentDate, a.TimeSlot, a.Status)
}
