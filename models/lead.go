package models

import (
	"gorm.io/gorm"
)

type LeadStatus string

const (
	LeadNew        LeadStatus = "NEW"
	LeadContacted  LeadStatus = "CONTACTED"
	LeadInterested LeadStatus = "INTERESTED"
	LeadConverted  LeadStatus = "CONVERTED"
	LeadLost       LeadStatus = "LOST"
)

// ValidLeadStatus reports whether s is one of the five lead statuses.
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadNew, LeadContacted, LeadInterested, LeadConverted, LeadLost:
		return true
	}
	return false
}

// Lead is an unconverted inquiry from the marketing site. Conversion
// creates an Appointment from its contact fields; only a free-text note
// on the appointment points back at the lead.
type Lead struct {
	gorm.Model
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	Email   string     `json:"email"`
	Message string     `json:"message"`
	Status  LeadStatus `json:"status" gorm:"default:NEW"`
	Notes   string     `json:"notes"`
	UserID  *uint      `json:"userId"`
	User    *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.Status == "" {
		l.Status = LeadNew
	}
	return nil
}
