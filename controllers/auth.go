package controllers

import (
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/redis"
	"github.com/vivacare/clinic-backend/utils"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

func signingSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return []byte(secret)
}

// Register handles patient registration
func Register(c *fiber.Ctx) error {
	user := new(models.User)
	if err := c.BodyParser(user); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	errs := map[string]string{}
	if user.Name == "" {
		errs["name"] = "Name is required"
	}
	if user.Email == "" {
		errs["email"] = "Email is required"
	}
	if user.Password == "" {
		errs["password"] = "Password is required"
	}
	if len(errs) > 0 {
		return utils.FailValidation(c, errs)
	}

	var existing models.User
	if db.DB.Where("email = ?", user.Email).First(&existing).RowsAffected > 0 {
		return utils.Fail(c, fiber.StatusConflict, "User with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	user.Password = string(hashed)

	// Self-registration always creates a patient; staff accounts are
	// provisioned by a super admin.
	user.Role = models.RolePatient
	user.IsActive = true

	if err := db.DB.Create(user).Error; err != nil {
		// Two concurrent registrations can both pass the lookup above;
		// the unique index on email catches the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Fail(c, fiber.StatusConflict, "User with this email already exists")
		}
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	user.Password = ""
	return utils.Success(c, fiber.StatusCreated, "Registration successful", user)
}

// Login handles user authentication
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var user models.User
	if db.DB.Where("email = ? AND is_active = ?", input.Email, true).First(&user).RowsAffected == 0 {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	tokenString, refreshTokenString, err := issueTokens(&user)
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	if err := redis.StoreRefreshToken(user.ID, refreshTokenString, refreshTokenTTL); err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	return utils.Success(c, fiber.StatusOK, "Login successful", fiber.Map{
		"token":        tokenString,
		"refreshToken": refreshTokenString,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func issueTokens(user *models.User) (string, string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(accessTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingSecret())
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(refreshTokenTTL).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(signingSecret())
	if err != nil {
		return "", "", err
	}
	return token, refreshToken, nil
}

// GetMe returns the current user's profile
func GetMe(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return utils.Fail(c, fiber.StatusUnauthorized, "User ID not found in context")
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "User not found")
	}

	user.Password = ""
	return utils.Success(c, fiber.StatusOK, "Profile fetched", user)
}

// Logout revokes the user's refresh token. Access tokens stay valid until
// they expire; only the refresh path is cut off.
func Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return utils.Fail(c, fiber.StatusUnauthorized, "User ID not found in context")
	}
	if err := redis.RevokeRefreshToken(userID); err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to revoke refresh token")
	}
	return utils.Success(c, fiber.StatusOK, "Successfully logged out", nil)
}

// RefreshToken generates a new access token using a refresh token
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	req := new(RefreshRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return signingSecret(), nil
	})
	if err != nil || !token.Valid {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	idVal, ok := claims["id"].(float64)
	if !ok {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	userID := uint(idVal)

	// Only the most recently issued refresh token is accepted.
	if !redis.ValidRefreshToken(userID, req.RefreshToken) {
		return utils.Fail(c, fiber.StatusUnauthorized, "Refresh token revoked")
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "User not found")
	}

	tokenString, refreshTokenString, err := issueTokens(&user)
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to generate token")
	}
	if err := redis.StoreRefreshToken(user.ID, refreshTokenString, refreshTokenTTL); err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	return utils.Success(c, fiber.StatusOK, "Token refreshed", fiber.Map{
		"token":        tokenString,
		"refreshToken": refreshTokenString,
	})
}
