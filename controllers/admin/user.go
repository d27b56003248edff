package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vivacare/clinic-backend/db"
	"github.com/vivacare/clinic-backend/models"
	"github.com/vivacare/clinic-backend/utils"
)

// GetAllUsers lists accounts for the back-office, optionally by role
func GetAllUsers(c *fiber.Ctx) error {
	query := db.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Order("created_at desc").Find(&users).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}
	for i := range users {
		users[i].Password = ""
	}
	return utils.Success(c, fiber.StatusOK, "Users fetched", users)
}

// CreateStaffUser provisions an admin account. Super-admin only; patients
// self-register through /auth/register instead.
func CreateStaffUser(c *fiber.Ctx) error {
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
	user.Role = models.RoleAdmin
	user.IsActive = true

	if err := db.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Fail(c, fiber.StatusConflict, "User with this email already exists")
		}
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	user.Password = ""
	return utils.Success(c, fiber.StatusCreated, "Staff account created", user)
}

// DeactivateUser disables an account without deleting its history
func DeactivateUser(c *fiber.Ctx) error {
	var user models.User
	if err := db.DB.First(&user, c.Params("id")).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "User not found")
	}
	if user.Role == models.RoleSuperAdmin {
		return utils.Fail(c, fiber.StatusForbidden, "Super admin accounts cannot be deactivated")
	}
	if err := db.DB.Model(&user).Update("is_active", false).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to deactivate user")
	}
	return utils.Success(c, fiber.StatusOK, "User deactivated", nil)
}
