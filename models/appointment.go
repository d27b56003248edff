package models

import (
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending     AppointmentStatus = "PENDING"
	StatusConfirmed   AppointmentStatus = "CONFIRMED"
	StatusCompleted   AppointmentStatus = "COMPLETED"
	StatusCancelled   AppointmentStatus = "CANCELLED"
	StatusRescheduled AppointmentStatus = "RESCHEDULED"
	StatusNoShow      AppointmentStatus = "NO_SHOW"
)

// ActiveStatuses are the statuses that occupy a slot for conflict checking.
// Every other status leaves the slot bookable again.
var ActiveStatuses = []AppointmentStatus{StatusPending, StatusConfirmed}

// ValidStatus reports whether s is one of the six appointment statuses.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted,
		StatusCancelled, StatusRescheduled, StatusNoShow:
		return true
	}
	return false
}

// IsActive reports whether the status occupies its slot.
func (s AppointmentStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

type Appointment struct {
	gorm.Model
	AppointmentDate string            `json:"appointmentDate"` // Format "YYYY-MM-DD"
	TimeSlot        string            `json:"timeSlot"`        // Format "HH:MM" in 24h
	Status          AppointmentStatus `json:"status"`
	PatientName     string            `json:"patientName"`
	PatientPhone    string            `json:"patientPhone"`
	PatientEmail    string            `json:"patientEmail"`
	Notes           string            `json:"notes"`
	AdminNotes      string            `json:"adminNotes"`
	CancelReason    string            `json:"cancelReason"`
	UserID          *uint             `json:"userId"` // nil for guest bookings
	User            *User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ServiceID       uint              `json:"serviceId"`
	Service         Service           `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	BranchID        uint              `json:"branchId"`
	Branch          Branch            `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}
