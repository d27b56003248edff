package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

// GetDashboardOverview aggregates appointment, lead and revenue numbers
// for the back-office landing page. Optional branchId and date range
// (from / to, YYYY-MM-DD) narrow the window.
func GetDashboardOverview(c *fiber.Ctx) error {
	branchID := c.Query("branchId")
	from := c.Query("from")
	to := c.Query("to")

	newAppointmentQuery := func() *gorm.DB {
		q := db.DB.Model(&models.Appointment{})
		if branchID != "" {
			q = q.Where("branch_id = ?", branchID)
		}
		if from != "" {
			q = q.Where("appointment_date >= ?", from)
		}
		if to != "" {
			q = q.Where("appointment_date <= ?", to)
		}
		return q
	}

	var statistics struct {
		TotalAppointments int64     `json:"totalAppointments"`
		PendingCount      int64     `json:"pendingCount"`
		ConfirmedCount    int64     `json:"confirmedCount"`
		CompletedCount    int64     `json:"completedCount"`
		CancelledCount    int64     `json:"cancelledCount"`
		NoShowCount       int64     `json:"noShowCount"`
		TotalLeads        int64     `json:"totalLeads"`
		NewLeads          int64     `json:"newLeads"`
		ConvertedLeads    int64     `json:"convertedLeads"`
		TotalRevenue      float64   `json:"totalRevenue"`
		LastUpdated       time.Time `json:"lastUpdated"`
	}

	newAppointmentQuery().Count(&statistics.TotalAppointments)
	newAppointmentQuery().Where("status = ?", models.StatusPending).Count(&statistics.PendingCount)
	newAppointmentQuery().Where("status = ?", models.StatusConfirmed).Count(&statistics.ConfirmedCount)
	newAppointmentQuery().Where("status = ?", models.StatusCompleted).Count(&statistics.CompletedCount)
	newAppointmentQuery().Where("status = ?", models.StatusCancelled).Count(&statistics.CancelledCount)
	newAppointmentQuery().Where("status = ?", models.StatusNoShow).Count(&statistics.NoShowCount)

	// Leads carry no appointment date, so the window applies to when the
	// inquiry came in.
	newLeadQuery := func() *gorm.DB {
		q := db.DB.Model(&models.Lead{})
		if t, err := time.Parse("2006-01-02", from); from != "" && err == nil {
			q = q.Where("created_at >= ?", t)
		}
		if t, err := time.Parse("2006-01-02", to); to != "" && err == nil {
			q = q.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
		return q
	}

	newLeadQuery().Count(&statistics.TotalLeads)
	newLeadQuery().Where("status = ?", models.LeadNew).Count(&statistics.NewLeads)
	newLeadQuery().Where("status = ?", models.LeadConverted).Count(&statistics.ConvertedLeads)

	// Revenue comes from completed appointments priced by their service.
	revenueQuery := db.DB.Table("appointments").
		Joins("JOIN services ON appointments.service_id = services.id").
		Where("appointments.status = ?", models.StatusCompleted).
		Where("appointments.deleted_at IS NULL")
	if branchID != "" {
		revenueQuery = revenueQuery.Where("appointments.branch_id = ?", branchID)
	}
	if from != "" {
		revenueQuery = revenueQuery.Where("appointments.appointment_date >= ?", from)
	}
	if to != "" {
		revenueQuery = revenueQuery.Where("appointments.appointment_date <= ?", to)
	}
	revenueQuery.Select("COALESCE(SUM(services.price), 0)").Scan(&statistics.TotalRevenue)

	statistics.LastUpdated = time.Now()
	return utils.Success(c, fiber.StatusOK, "Dashboard fetched", statistics)
}
