package models

import (
	"gorm.io/gorm"
)

type ServiceCategory struct {
	gorm.Model
	Name     string    `json:"name"`
	IsActive bool      `json:"isActive" gorm:"default:true"`
	Services []Service `json:"services,omitempty" gorm:"foreignKey:CategoryID"`
}

type Service struct {
	gorm.Model
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	DurationMinutes uint            `json:"durationMinutes"`
	Price           float64         `json:"price"`
	ImageURL        string          `json:"imageUrl"`
	IsActive        bool            `json:"isActive" gorm:"default:true"`
	CategoryID      uint            `json:"categoryId"`
	Category        ServiceCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Branches        []Branch        `json:"branches,omitempty" gorm:"many2many:branch_services;"`
}
