package models

import (
	"gorm.io/gorm"
)

type Branch struct {
	gorm.Model
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	OpeningTime string    `json:"openingTime"` // Format "HH:MM" in 24h
	ClosingTime string    `json:"closingTime"` // Format "HH:MM" in 24h
	ImageURL    string    `json:"imageUrl"`
	IsActive    bool      `json:"isActive" gorm:"default:true"`
	Services    []Service `json:"services,omitempty" gorm:"many2many:branch_services;"`
}
