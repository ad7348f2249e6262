// Package models contains domain entities and business models for the temple management system
package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_appointments_uuid" json:"uuid"`

	// EmpID identifies the requesting account, PriestID the priest being booked
	EmpID      string `gorm:"size:5;not null;index:idx_appointments_emp_id" json:"empId"`
	PriestID   string `gorm:"size:5;not null;index:idx_appointments_priest_id" json:"priestId"`
	PriestName string `gorm:"size:255" json:"priestName"`

	Title     string  `gorm:"size:255;not null" json:"title"`
	FirstName string  `gorm:"size:255;not null" json:"firstName"`
	Email     string  `gorm:"size:255" json:"email"`
	Phone     string  `gorm:"size:15" json:"phone"`
	Address   *string `gorm:"size:255" json:"address,omitempty"`
	Date      string  `gorm:"size:64;not null" json:"date"`

	Status string `gorm:"size:64;not null;default:Pending;index:idx_appointments_status" json:"status"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_appointments_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentStatusPending is the server-side default when no status is supplied
const AppointmentStatusPending = "Pending"

// AppointmentFilter represents filter criteria for appointment queries
type AppointmentFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	EmpID         *string
	PriestID      *string
	Status        *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
