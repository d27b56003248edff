package admin_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/routes"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func setupAdminApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.DB = gdb

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Branch{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.Appointment{},
		&models.Lead{},
		&models.ContactMessage{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	app := fiber.New()
	api := app.Group("/api/v1")
	routes.SetupPublicRoutes(api)
	routes.SetupAppointmentRoutes(api)
	routes.SetupAdminRoutes(api)
	return app
}

func seedBranchAndService(t *testing.T) (models.Branch, models.Service) {
	t.Helper()

	category := models.ServiceCategory{Name: "Dental", IsActive: true}
	if err := db.DB.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	service := models.Service{
		Name:            "Cleaning",
		DurationMinutes: 30,
		Price:           80,
		CategoryID:      category.ID,
		IsActive:        true,
	}
	if err := db.DB.Create(&service).Error; err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}
	branch := models.Branch{
		Name:        "Uptown",
		OpeningTime: "09:00",
		ClosingTime: "17:00",
		IsActive:    true,
	}
	if err := db.DB.Create(&branch).Error; err != nil {
		t.Fatalf("failed to seed branch: %v", err)
	}
	return branch, service
}

func staffToken(t *testing.T, role models.UserRole) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":    float64(1),
		"email": "staff@example.com",
		"role":  string(role),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("failed to decode response %q: %v", raw, err)
		}
	}
	return resp.StatusCode, env
}

func TestConvertLead(t *testing.T) {
	app := setupAdminApp(t)
	branch, service := seedBranchAndService(t)
	admin := staffToken(t, models.RoleAdmin)

	lead := models.Lead{Name: "Morgan Diaz", Phone: "555-0200", Email: "morgan@example.com"}
	if err := db.DB.Create(&lead).Error; err != nil {
		t.Fatal(err)
	}

	status, env := request(t, app, "PUT", fmt.Sprintf("/api/v1/leads/%d/convert", lead.ID), admin,
		map[string]interface{}{
			"serviceId":       service.ID,
			"branchId":        branch.ID,
			"appointmentDate": "2026-09-02",
			"timeSlot":        "9:00",
		})
	if status != 200 {
		t.Fatalf("convert returned %d: %s", status, env.Message)
	}

	var appointments []models.Appointment
	db.DB.Find(&appointments)
	if len(appointments) != 1 {
		t.Fatalf("appointment count = %d, want exactly 1", len(appointments))
	}
	got := appointments[0]
	if got.PatientName != lead.Name || got.PatientPhone != lead.Phone || got.PatientEmail != lead.Email {
		t.Errorf("contact fields not copied: %+v", got)
	}
	if got.Status != models.StatusPending {
		t.Errorf("converted appointment status = %q, want %q", got.Status, models.StatusPending)
	}
	if got.TimeSlot != "09:00" {
		t.Errorf("time slot = %q, want canonical 09:00", got.TimeSlot)
	}

	db.DB.First(&lead, lead.ID)
	if lead.Status != models.LeadConverted {
		t.Errorf("lead status = %q, want %q", lead.Status, models.LeadConverted)
	}

	// A converted lead cannot be converted twice.
	status, _ = request(t, app, "PUT", fmt.Sprintf("/api/v1/leads/%d/convert", lead.ID), admin,
		map[string]interface{}{
			"serviceId":       service.ID,
			"branchId":        branch.ID,
			"appointmentDate": "2026-09-03",
			"timeSlot":        "10:00",
		})
	if status != 400 {
		t.Errorf("second convert returned %d, want 400", status)
	}
}

func TestConvertLeadNotFound(t *testing.T) {
	app := setupAdminApp(t)
	branch, service := seedBranchAndService(t)
	admin := staffToken(t, models.RoleAdmin)

	status, _ := request(t, app, "PUT", "/api/v1/leads/9999/convert", admin,
		map[string]interface{}{
			"serviceId":       service.ID,
			"branchId":        branch.ID,
			"appointmentDate": "2026-09-02",
			"timeSlot":        "10:00",
		})
	if status != 404 {
		t.Fatalf("convert of missing lead returned %d, want 404", status)
	}

	var count int64
	db.DB.Model(&models.Appointment{}).Count(&count)
	if count != 0 {
		t.Errorf("appointment count = %d, want 0", count)
	}
}

func TestConvertLeadSlotConflict(t *testing.T) {
	app := setupAdminApp(t)
	branch, service := seedBranchAndService(t)
	admin := staffToken(t, models.RoleAdmin)

	existing := models.Appointment{
		AppointmentDate: "2026-09-02",
		TimeSlot:        "10:00",
		Status:          models.StatusConfirmed,
		PatientName:     "Taken",
		PatientPhone:    "555-0201",
		ServiceID:       service.ID,
		BranchID:        branch.ID,
	}
	if err := db.DB.Create(&existing).Error; err != nil {
		t.Fatal(err)
	}
	lead := models.Lead{Name: "Morgan Diaz", Phone: "555-0200"}
	if err := db.DB.Create(&lead).Error; err != nil {
		t.Fatal(err)
	}

	status, env := request(t, app, "PUT", fmt.Sprintf("/api/v1/leads/%d/convert", lead.ID), admin,
		map[string]interface{}{
			"serviceId":       service.ID,
			"branchId":        branch.ID,
			"appointmentDate": "2026-09-02",
			"timeSlot":        "10:00",
		})
	if status != 409 {
		t.Fatalf("conflicting convert returned %d, want 409: %s", status, env.Message)
	}

	// Nothing was written: the lead is untouched and only the original
	// appointment exists.
	db.DB.First(&lead, lead.ID)
	if lead.Status != models.LeadNew {
		t.Errorf("lead status = %q, want %q", lead.Status, models.LeadNew)
	}
	var count int64
	db.DB.Model(&models.Appointment{}).Count(&count)
	if count != 1 {
		t.Errorf("appointment count = %d, want 1", count)
	}
}

func TestConvertLeadRequiresStaff(t *testing.T) {
	app := setupAdminApp(t)
	branch, service := seedBranchAndService(t)
	patient := staffToken(t, models.RolePatient)

	lead := models.Lead{Name: "Morgan Diaz", Phone: "555-0200"}
	if err := db.DB.Create(&lead).Error; err != nil {
		t.Fatal(err)
	}

	status, _ := request(t, app, "PUT", fmt.Sprintf("/api/v1/leads/%d/convert", lead.ID), patient,
		map[string]interface{}{
			"serviceId":       service.ID,
			"branchId":        branch.ID,
			"appointmentDate": "2026-09-02",
			"timeSlot":        "10:00",
		})
	if status != 403 {
		t.Errorf("patient convert returned %d, want 403", status)
	}
}

func TestUpdateLeadStatus(t *testing.T) {
	app := setupAdminApp(t)
	seedBranchAndService(t)
	admin := staffToken(t, models.RoleAdmin)

	lead := models.Lead{Name: "Morgan Diaz", Phone: "555-0200"}
	if err := db.DB.Create(&lead).Error; err != nil {
		t.Fatal(err)
	}
	path := fmt.Sprintf("/api/v1/admin/leads/%d/status", lead.ID)

	status, env := request(t, app, "PUT", path, admin,
		map[string]string{"status": "CONTACTED", "notes": "called twice"})
	if status != 200 {
		t.Fatalf("status update returned %d: %s", status, env.Message)
	}
	db.DB.First(&lead, lead.ID)
	if lead.Status != models.LeadContacted || lead.Notes != "called twice" {
		t.Errorf("lead = %q / %q, want CONTACTED / called twice", lead.Status, lead.Notes)
	}

	status, _ = request(t, app, "PUT", path, admin, map[string]string{"status": "CONVERTED"})
	if status != 400 {
		t.Errorf("direct CONVERTED returned %d, want 400", status)
	}
	status, _ = request(t, app, "PUT", path, admin, map[string]string{"status": "bogus"})
	if status != 422 {
		t.Errorf("invalid status returned %d, want 422", status)
	}
}

func TestUpdateAppointmentStatus(t *testing.T) {
	app := setupAdminApp(t)
	branch, service := seedBranchAndService(t)
	admin := staffToken(t, models.RoleAdmin)

	appointment := models.Appointment{
		AppointmentDate: "2026-09-02",
		TimeSlot:        "09:00",
		Status:          models.StatusPending,
		PatientName:     "Riley Chen",
		PatientPhone:    "555-0202",
		ServiceID:       service.ID,
		BranchID:        branch.ID,
	}
	if err := db.DB.Create(&appointment).Error; err != nil {
		t.Fatal(err)
	}
	path := fmt.Sprintf("/api/v1/appointments/%d/status", appointment.ID)

	status, env := request(t, app, "PUT", path, admin,
		map[string]string{"status": "CONFIRMED", "adminNotes": "verified by phone"})
	if status != 200 {
		t.Fatalf("status update returned %d: %s", status, env.Message)
	}
	db.DB.First(&appointment, appointment.ID)
	if appointment.Status != models.StatusConfirmed || appointment.AdminNotes != "verified by phone" {
		t.Errorf("appointment = %q / %q", appointment.Status, appointment.AdminNotes)
	}

	status, _ = request(t, app, "PUT", path, admin, map[string]string{"status": "ARCHIVED"})
	if status != 422 {
		t.Errorf("invalid status returned %d, want 422", status)
	}

	// Patients cannot change statuses.
	patient := staffToken(t, models.RolePatient)
	status, _ = request(t, app, "PUT", path, patient, map[string]string{"status": "COMPLETED"})
	if status != 403 {
		t.Errorf("patient status update returned %d, want 403", status)
	}
}

func TestDashboardOverview(t *testing.T) {
	app := setupAdminApp(t)
	branch, service := seedBranchAndService(t)
	admin := staffToken(t, models.RoleAdmin)

	rows := []models.Appointment{
		{AppointmentDate: "2026-09-01", TimeSlot: "09:00", Status: models.StatusCompleted,
			PatientName: "A", PatientPhone: "1", ServiceID: service.ID, BranchID: branch.ID},
		{AppointmentDate: "2026-09-01", TimeSlot: "09:30", Status: models.StatusCompleted,
			PatientName: "B", PatientPhone: "2", ServiceID: service.ID, BranchID: branch.ID},
		{AppointmentDate: "2026-09-02", TimeSlot: "09:00", Status: models.StatusPending,
			PatientName: "C", PatientPhone: "3", ServiceID: service.ID, BranchID: branch.ID},
	}
	for i := range rows {
		if err := db.DB.Create(&rows[i]).Error; err != nil {
			t.Fatal(err)
		}
	}
	db.DB.Create(&models.Lead{Name: "L", Phone: "4", Status: models.LeadNew})

	status, env := request(t, app, "GET", "/api/v1/admin/dashboard", admin, nil)
	if status != 200 {
		t.Fatalf("dashboard returned %d: %s", status, env.Message)
	}

	var stats struct {
		TotalAppointments int64   `json:"totalAppointments"`
		PendingCount      int64   `json:"pendingCount"`
		CompletedCount    int64   `json:"completedCount"`
		TotalLeads        int64   `json:"totalLeads"`
		TotalRevenue      float64 `json:"totalRevenue"`
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("failed to decode dashboard data: %v", err)
	}
	if stats.TotalAppointments != 3 || stats.PendingCount != 1 || stats.CompletedCount != 2 {
		t.Errorf("appointment counts = %+v", stats)
	}
	if stats.TotalLeads != 1 {
		t.Errorf("totalLeads = %d, want 1", stats.TotalLeads)
	}
	if stats.TotalRevenue != 160 {
		t.Errorf("totalRevenue = %v, want 160 (2 completed x 80)", stats.TotalRevenue)
	}
}

func TestDashboardLeadWindow(t *testing.T) {
	app := setupAdminApp(t)
	seedBranchAndService(t)
	admin := staffToken(t, models.RoleAdmin)

	inWindow := models.Lead{Name: "Recent", Phone: "1", Status: models.LeadNew}
	inWindow.CreatedAt = time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	if err := db.DB.Create(&inWindow).Error; err != nil {
		t.Fatal(err)
	}
	stale := models.Lead{Name: "Old", Phone: "2", Status: models.LeadNew}
	stale.CreatedAt = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	if err := db.DB.Create(&stale).Error; err != nil {
		t.Fatal(err)
	}

	status, env := request(t, app, "GET",
		"/api/v1/admin/dashboard?from=2026-09-01&to=2026-09-30", admin, nil)
	if status != 200 {
		t.Fatalf("dashboard returned %d: %s", status, env.Message)
	}

	var stats struct {
		TotalLeads int64 `json:"totalLeads"`
		NewLeads   int64 `json:"newLeads"`
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("failed to decode dashboard data: %v", err)
	}
	if stats.TotalLeads != 1 || stats.NewLeads != 1 {
		t.Errorf("lead counts = %+v, want only the lead created inside the window", stats)
	}
}
