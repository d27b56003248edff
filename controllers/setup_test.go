package controllers_test

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

// setupTestApp wires the real routes against an in-memory database.
func setupTestApp(t *testing.T) *fiber.App {
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
	routes.SetupAuthRoutes(api)
	routes.SetupPublicRoutes(api)
	routes.SetupAppointmentRoutes(api)
	routes.SetupAdminRoutes(api)
	return app
}

// seedClinic creates one branch open 09:00-11:00 offering one 30-minute
// service, the setting used throughout the booking tests.
func seedClinic(t *testing.T) (models.Branch, models.Service) {
	t.Helper()

	category := models.ServiceCategory{Name: "General", IsActive: true}
	if err := db.DB.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	service := models.Service{
		Name:            "Consultation",
		DurationMinutes: 30,
		Price:           50,
		CategoryID:      category.ID,
		IsActive:        true,
	}
	if err := db.DB.Create(&service).Error; err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}
	branch := models.Branch{
		Name:        "Downtown",
		OpeningTime: "09:00",
		ClosingTime: "11:00",
		IsActive:    true,
	}
	if err := db.DB.Create(&branch).Error; err != nil {
		t.Fatalf("failed to seed branch: %v", err)
	}
	if err := db.DB.Model(&branch).Association("Services").Append(&service); err != nil {
		t.Fatalf("failed to link service to branch: %v", err)
	}
	return branch, service
}

func authToken(t *testing.T, userID uint, role models.UserRole) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":    float64(userID),
		"email": fmt.Sprintf("user%d@example.com", userID),
		"role":  string(role),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

// doRequest performs a JSON request against the test app and decodes the
// response envelope.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
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

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("failed to decode data %q: %v", env.Data, err)
	}
}
