package models

import (
	"time"
)

type UserRole string

const (
	RolePatient    UserRole = "PATIENT"
	RoleAdmin      UserRole = "ADMIN"
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
)

type User struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	Name         string        `json:"name"`
	Email        string        `json:"email" gorm:"unique"`
	Password     string        `json:"password,omitempty"`
	Phone        string        `json:"phone"`
	Role         UserRole      `json:"role" gorm:"default:PATIENT"`
	IsActive     bool          `json:"isActive" gorm:"default:true"`
	Appointments []Appointment `json:"appointments,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// IsStaff reports whether the role can access the admin back-office.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
