// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/templeworks/Gopuram/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
	Delete(ctx context.Context, id uint) error
}

// UserRepository defines operations for user accounts
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByEmpID(ctx context.Context, empID string) (*models.User, error)
	ByUUID(ctx context.Context, uuid string) (*models.User, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.User, error)
	ListByRole(ctx context.Context, role string, limit, offset int) ([]*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	UpdateLastLogin(ctx context.Context, userID uint) error
}

// OTPVerificationRepository defines operations for OTP verifications
type OTPVerificationRepository interface {
	Repository[models.OTPVerification, models.OTPVerificationFilter]
	ByUserAndType(ctx context.Context, userID uint, otpType string) ([]*models.OTPVerification, error)
	ActiveByTargetAndCode(ctx context.Context, targetValue, code, otpType string) (*models.OTPVerification, error)
	ListActiveOTPs(ctx context.Context, userID uint) ([]*models.OTPVerification, error)
	ExpireOldOTPs(ctx context.Context, userID uint, otpType string) error
	MarkUsed(ctx context.Context, otp *models.OTPVerification) error
	GetLatestByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*models.OTPVerification, error)
}

// UserSessionRepository defines operations for user sessions
type UserSessionRepository interface {
	Repository[models.UserSession, models.UserSessionFilter]
	BySessionToken(ctx context.Context, token string) (*models.UserSession, error)
	ListActiveSessionsByUser(ctx context.Context, userID uint) ([]*models.UserSession, error)
	DeactivateSession(ctx context.Context, sessionID uint) error
	DeactivateAllUserSessions(ctx context.Context, userID uint) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.AuditLog, error)
	ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error)
	ListFailedActions(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)
}

// AppointmentRepository defines operations for appointments
type AppointmentRepository interface {
	Repository[models.Appointment, models.AppointmentFilter]
	ListAll(ctx context.Context, limit, offset int) ([]*models.Appointment, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Appointment, error)
}

// AnnouncementRepository defines operations for announcements
type AnnouncementRepository interface {
	Repository[models.Announcement, models.AnnouncementFilter]
	ListAll(ctx context.Context, limit, offset int) ([]*models.Announcement, error)
	Update(ctx context.Context, announcement *models.Announcement) error
}

// ServiceRepository defines operations for temple services
type ServiceRepository interface {
	Repository[models.Service, models.ServiceFilter]
	ListAll(ctx context.Context, limit, offset int) ([]*models.Service, error)
	Update(ctx context.Context, service *models.Service) error
}

// EventRepository defines operations for temple events
type EventRepository interface {
	Repository[models.Event, models.EventFilter]
	ListAll(ctx context.Context, limit, offset int) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
}

// DonationRepository defines operations for donations
type DonationRepository interface {
	Repository[models.Donation, models.DonationFilter]
	ListAll(ctx context.Context, limit, offset int) ([]*models.Donation, error)
}
