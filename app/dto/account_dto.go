// Package dto contains Data Transfer Objects for API request and response structures
package dto

import "time"

// SignupRequest represents the signup form data
type SignupRequest struct {
	FirstName string  `json:"firstName" validate:"required,max=255,alpha_space"`
	LastName  string  `json:"lastName" validate:"required,max=255,alpha_space"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	Phone     string  `json:"phone" validate:"required,min=10,max=15"`
	Password  string  `json:"password" validate:"required,max=100"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=255"`
}

// CreatePriestRequest represents the form data for registering a priest account
type CreatePriestRequest struct {
	FirstName string  `json:"firstName" validate:"required,max=255,alpha_space"`
	LastName  string  `json:"lastName" validate:"required,max=255,alpha_space"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	Phone     string  `json:"phone" validate:"required,min=10,max=15"`
	Password  string  `json:"password" validate:"required,max=100"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=255"`
}

// GetPriestsRequest selects accounts by role
type GetPriestsRequest struct {
	Role string `json:"role" validate:"required,oneof=devotee priest admin"`
}

// UserDTO represents account data for API responses (never carries the password hash)
type UserDTO struct {
	ID        uint      `json:"id"`
	UUID      string    `json:"uuid"`
	EmpID     string    `json:"empId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   *string   `json:"address,omitempty"`
	Role      string    `json:"role"`
	IsActive  *bool     `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// SignupResponse represents the response after successful account creation
type SignupResponse struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}
