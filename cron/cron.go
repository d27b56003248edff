package cron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

// StartCronJobs initializes the scheduler for appointment reminder emails
func StartCronJobs() {
	log := utils.GetLogger()

	c := cron.New()
	// Every morning at 08:00 remind patients booked for that day.
	_, err := c.AddFunc("0 8 * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatal("failed to add cron job", zap.Error(err))
	}
	c.Start()
	log.Info("cron scheduler started for appointment reminders")
}

// sendAppointmentReminders emails every patient with an active appointment
// today who left an email address.
func sendAppointmentReminders() {
	log := utils.GetLogger()
	today := time.Now().Format("2006-01-02")

	var appointments []models.Appointment
	err := db.DB.Preload("Service").Preload("Branch").
		Where("appointment_date = ?", today).
		Where("status IN ?", models.ActiveStatuses).
		Where("patient_email <> ''").
		Find(&appointments).Error
	if err != nil {
		log.Error("failed to fetch appointments for reminders", zap.Error(err))
		return
	}

	log.Info("sending appointment reminders", zap.Int("count", len(appointments)))

	for _, appointment := range appointments {
		if err := sendReminderEmail(&appointment); err != nil {
			log.Warn("failed to send reminder",
				zap.Uint("appointmentID", appointment.ID), zap.Error(err))
			continue
		}
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := fmt.Sprintf("Reminder: Appointment Today at %s", appointment.TimeSlot)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your appointment today.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Branch:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Clinic Team</p>
	`, appointment.PatientName, appointment.Service.Name, appointment.Branch.Name, appointment.TimeSlot)

	return utils.SendEmail(appointment.PatientEmail, subject, body)
}
