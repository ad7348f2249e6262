// Package dto contains Data Transfer Objects for API request and response structures
package dto

import "time"

// AnnouncementRequest represents the create/update payload for announcements
type AnnouncementRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description" validate:"required"`
	Image       *string `json:"image,omitempty" validate:"omitempty"`
}

// AnnouncementDTO represents announcement data for API responses
type AnnouncementDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Image       *string   `json:"image,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ServiceRequest represents the create/update payload for temple services
type ServiceRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description" validate:"required"`
	Cost        int64   `json:"cost" validate:"required,gt=0"`
	Image       *string `json:"image,omitempty" validate:"omitempty"`
}

// ServiceDTO represents temple service data for API responses
type ServiceDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Image       *string   `json:"image,omitempty"`
	Description string    `json:"description"`
	Cost        int64     `json:"cost"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventRequest represents the create/update payload for temple events
type EventRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description,omitempty" validate:"omitempty"`
	Date        string  `json:"date,omitempty" validate:"omitempty,max=64"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=255"`
}

// EventDTO represents temple event data for API responses
type EventDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Location    *string   `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AddDonationRequest represents the donation form data
type AddDonationRequest struct {
	FullName string `json:"fullName" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Address  string `json:"address,omitempty" validate:"omitempty,max=255"`
	City     string `json:"city,omitempty" validate:"omitempty,max=128"`
	State    string `json:"state,omitempty" validate:"omitempty,max=128"`
	Zip      string `json:"zip,omitempty" validate:"omitempty,max=16"`
	CardName string `json:"cardName,omitempty" validate:"omitempty,max=255"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
}

// DonationDTO represents donation data for API responses
type DonationDTO struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zip       string    `json:"zip"`
	CardName  string    `json:"cardName"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
