package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vivacare/clinic-backend/controllers"
	"github.com/vivacare/clinic-backend/controllers/patient"
	"github.com/vivacare/clinic-backend/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(api fiber.Router) {
	appointments := api.Group("/appointments")

	// Guest booking is allowed, so creation only attaches the user when a
	// token is present.
	appointments.Post("/", middleware.OptionalAuth(), controllers.CreateAppointment)

	// Patient portal
	appointments.Get("/my", middleware.Protected(), patient.GetMyAppointments)
	appointments.Get("/my/:id", middleware.Protected(), patient.GetMyAppointment)

	// Ownership (or staff role) is checked inside the handlers.
	appointments.Put("/:id/reschedule", middleware.Protected(), controllers.RescheduleAppointment)
	appointments.Put("/:id/cancel", middleware.Protected(), controllers.CancelAppointment)
}
