package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vivacare/clinic-backend/controllers"
	"github.com/vivacare/clinic-backend/middleware"
)

// SetupPublicRoutes configures the marketing-site endpoints: branch and
// service discovery, slot availability, inquiries and the contact form.
func SetupPublicRoutes(api fiber.Router) {
	branches := api.Group("/branches")
	branches.Get("/", controllers.GetAllBranches)
	branches.Get("/:id", controllers.GetBranch)
	branches.Get("/:id/slots", controllers.GetBranchSlots)

	services := api.Group("/services")
	services.Get("/", controllers.GetAllServices)
	services.Get("/:id", controllers.GetService)

	api.Get("/categories", controllers.GetAllCategories)

	api.Post("/leads", middleware.OptionalAuth(), controllers.CreateLead)
	api.Post("/contact", controllers.CreateContactMessage)
}
