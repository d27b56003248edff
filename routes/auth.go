package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vivacare/clinic-backend/controllers"
	"github.com/vivacare/clinic-backend/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(api fiber.Router) {
	auth := api.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetMe)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
