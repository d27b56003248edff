package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vivacare/clinic-backend/controllers/admin"
	"github.com/vivacare/clinic-backend/middleware"
	"github.com/vivacare/clinic-backend/models"
)

// SetupAdminRoutes configures the back-office endpoints. Everything here
// requires a staff role; user provisioning is super-admin only.
func SetupAdminRoutes(api fiber.Router) {
	staff := api.Group("/admin", middleware.Protected(), middleware.RequireStaff())

	// Appointment management
	staff.Get("/appointments", admin.GetAllAppointments)
	staff.Get("/appointments/:id", admin.GetAppointment)

	// Lead pipeline
	staff.Get("/leads", admin.GetAllLeads)
	staff.Put("/leads/:id/status", admin.UpdateLeadStatus)

	// Branch management
	staff.Post("/branches", admin.CreateBranch)
	staff.Put("/branches/:id", admin.UpdateBranch)
	staff.Delete("/branches/:id", admin.DeleteBranch)
	staff.Post("/branches/:id/image", admin.UploadBranchImage)

	// Catalog management
	staff.Post("/categories", admin.CreateCategory)
	staff.Put("/categories/:id", admin.UpdateCategory)
	staff.Post("/services", admin.CreateService)
	staff.Put("/services/:id", admin.UpdateService)
	staff.Delete("/services/:id", admin.DeleteService)
	staff.Post("/services/:id/image", admin.UploadServiceImage)

	// Contact inbox
	staff.Get("/contact-messages", admin.GetContactMessages)
	staff.Put("/contact-messages/:id/read", admin.MarkContactMessageRead)

	// Dashboard
	staff.Get("/dashboard", admin.GetDashboardOverview)

	// Account management
	staff.Get("/users", admin.GetAllUsers)
	users := api.Group("/admin/users", middleware.Protected(), middleware.RequireRole(models.RoleSuperAdmin))
	users.Post("/", admin.CreateStaffUser)
	users.Put("/:id/deactivate", admin.DeactivateUser)

	// Status updates and lead conversion sit on the shared resource paths,
	// staff-gated.
	api.Put("/appointments/:id/status", middleware.Protected(), middleware.RequireStaff(), admin.UpdateAppointmentStatus)
	api.Put("/leads/:id/convert", middleware.Protected(), middleware.RequireStaff(), admin.ConvertLead)
}
