// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/templeworks/Gopuram/app/dto"
	"github.com/templeworks/Gopuram/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for audit logging and session tracking
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	SessionID  string            `json:"session_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// SetSessionID sets the session ID
func (cm *ClientMetadata) SetSessionID(sessionID string) {
	cm.SessionID = sessionID
}

// ToUserDTO converts a user model to the sanitized account DTO; the password
// hash never leaves the flow layer
func ToUserDTO(user models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        user.ID,
		UUID:      user.UUID.String(),
		EmpID:     user.EmpID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
		Address:   user.Address,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

// ToAppointmentDTO converts an appointment model to its response DTO
func ToAppointmentDTO(appointment models.Appointment) dto.AppointmentDTO {
	return dto.AppointmentDTO{
		ID:         appointment.ID,
		UUID:       appointment.UUID.String(),
		EmpID:      appointment.EmpID,
		PriestID:   appointment.PriestID,
		PriestName: appointment.PriestName,
		Title:      appointment.Title,
		FirstName:  appointment.FirstName,
		Email:      appointment.Email,
		Phone:      appointment.Phone,
		Address:    appointment.Address,
		Date:       appointment.Date,
		Status:     appointment.Status,
		CreatedAt:  appointment.CreatedAt,
	}
}

// ToAnnouncementDTO converts an announcement model to its response DTO
func ToAnnouncementDTO(announcement models.Announcement) dto.AnnouncementDTO {
	return dto.AnnouncementDTO{
		ID:          announcement.ID,
		Title:       announcement.Title,
		Image:       announcement.Image,
		Description: announcement.Description,
		CreatedAt:   announcement.CreatedAt,
	}
}

// ToServiceDTO converts a temple service model to its response DTO
func ToServiceDTO(service models.Service) dto.ServiceDTO {
	return dto.ServiceDTO{
		ID:          service.ID,
		Title:       service.Title,
		Image:       service.Image,
		Description: service.Description,
		Cost:        service.Cost,
		CreatedAt:   service.CreatedAt,
	}
}

// ToEventDTO converts a temple event model to its response DTO
func ToEventDTO(event models.Event) dto.EventDTO {
	return dto.EventDTO{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Location:    event.Location,
		CreatedAt:   event.CreatedAt,
	}
}

// ToDonationDTO converts a donation model to its response DTO
func ToDonationDTO(donation models.Donation) dto.DonationDTO {
	return dto.DonationDTO{
		ID:        donation.ID,
		FullName:  donation.FullName,
		Email:     donation.Email,
		Address:   donation.Address,
		City:      donation.City,
		State:     donation.State,
		Zip:       donation.Zip,
		CardName:  donation.CardName,
		Amount:    donation.Amount,
		CreatedAt: donation.CreatedAt,
	}
}

// TokenExpiresIn returns the remaining lifetime of a session in whole seconds
func TokenExpiresIn(session models.UserSession) int {
	return int(time.Until(session.ExpiresAt).Seconds())
}
