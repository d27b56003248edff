package middleware

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return []byte(secret)
}

// Protected rejects requests without a valid bearer token and stores the
// authenticated user's id and role in the request locals.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtSecret(),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return utils.Fail(c, fiber.StatusUnauthorized, "Invalid token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return utils.Fail(c, fiber.StatusUnauthorized, "Invalid token claims")
			}

			userID, err := extractUserID(claims)
			if err != nil {
				return utils.Fail(c, fiber.StatusUnauthorized, "Invalid user ID in token")
			}
			role, err := extractRole(claims)
			if err != nil {
				return utils.Fail(c, fiber.StatusUnauthorized, "Invalid role in token")
			}

			c.Locals("userID", userID)
			c.Locals("role", role)
			return c.Next()
		},
	})
}

// OptionalAuth attaches the user identity when a valid bearer token is
// present and continues anonymously otherwise. Guest booking depends on
// this: the same endpoint serves logged-in patients and visitors.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Next()
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return jwtSecret(), nil
		})
		if err != nil || !token.Valid {
			return c.Next()
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Next()
		}
		userID, err := extractUserID(claims)
		if err != nil {
			return c.Next()
		}
		role, err := extractRole(claims)
		if err != nil {
			return c.Next()
		}

		c.Locals("userID", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

// extractUserID handles multiple potential formats of user ID in token
func extractUserID(claims jwt.MapClaims) (uint, error) {
	idVal := claims["id"]
	if idVal == nil {
		return 0, fmt.Errorf("no ID found in claims")
	}

	switch v := idVal.(type) {
	case float64:
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse ID string: %v", err)
		}
		return uint(parsed), nil
	default:
		return 0, fmt.Errorf("unsupported ID type: %T", v)
	}
}

// extractRole reads the role claim
func extractRole(claims jwt.MapClaims) (models.UserRole, error) {
	roleVal, ok := claims["role"].(string)
	if !ok || roleVal == "" {
		return "", fmt.Errorf("no role found in claims")
	}
	return models.UserRole(roleVal), nil
}

// jwtError handles JWT errors
func jwtError(c *fiber.Ctx, err error) error {
	return utils.Fail(c, fiber.StatusUnauthorized, "Invalid or expired token")
}
