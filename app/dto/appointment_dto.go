// Package dto contains Data Transfer Objects for API request and response structures
package dto

import "time"

// BookAppointmentRequest represents the appointment booking form data
type BookAppointmentRequest struct {
	Title      string  `json:"title" validate:"required,max=255"`
	FirstName  string  `json:"firstName" validate:"required,max=255"`
	PriestID   string  `json:"priestId" validate:"required,len=5,numeric"`
	PriestName string  `json:"priestName,omitempty" validate:"omitempty,max=255"`
	Date       string  `json:"date" validate:"required,max=64"`
	EmpID      string  `json:"empId,omitempty" validate:"omitempty,len=5,numeric"`
	Email      string  `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone      string  `json:"phone,omitempty" validate:"omitempty,max=15"`
	Address    *string `json:"address,omitempty" validate:"omitempty,max=255"`
	Status     string  `json:"status,omitempty" validate:"omitempty,max=64"`
}

// UpdateAppointmentRequest replaces the status of an existing appointment
type UpdateAppointmentRequest struct {
	Status string `json:"status" validate:"required,max=64"`
}

// AppointmentDTO represents appointment data for API responses
type AppointmentDTO struct {
	ID         uint      `json:"id"`
	UUID       string    `json:"uuid"`
	EmpID      string    `json:"empId"`
	PriestID   string    `json:"priestId"`
	PriestName string    `json:"priestName"`
	Title      string    `json:"title"`
	FirstName  string    `json:"firstName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    *string   `json:"address,omitempty"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
