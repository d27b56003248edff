package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

// RequireRole allows the request through only when the authenticated user
// holds one of the given roles. Must run after Protected.
func RequireRole(roles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(models.UserRole)
		if !ok {
			return utils.Fail(c, fiber.StatusUnauthorized, "User role not found in context")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return utils.Fail(c, fiber.StatusForbidden, "You don't have permission to perform this action")
	}
}

// RequireStaff is shorthand for admin or super-admin access.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(models.UserRole)
		if !ok {
			return utils.Fail(c, fiber.StatusUnauthorized, "User role not found in context")
		}
		if !role.IsStaff() {
			return utils.Fail(c, fiber.StatusForbidden, "You don't have permission to perform this action")
		}
		return c.Next()
	}
}
