// Package businessflow contains the core business logic and use cases for the temple management workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Account-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// OTP-related errors
	ErrInvalidOTPOrEmail = errors.New("invalid otp or email")
	ErrOTPDeliveryFailed = errors.New("failed to deliver otp")
	ErrTooManyAttempts   = errors.New("too many attempts")

	// Session-related errors
	ErrSessionNotFound = errors.New("session not found")

	// Appointment-related errors
	ErrAppointmentNotFound      = errors.New("appointment not found")
	ErrAppointmentTitleRequired = errors.New("appointment title is required")
	ErrAppointmentNameRequired  = errors.New("appointment first name is required")
	ErrPriestIDRequired         = errors.New("priest id is required")
	ErrDateRequired             = errors.New("date is required")
	ErrStatusRequired           = errors.New("status is required")

	// Content-related errors
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrServiceNotFound      = errors.New("service not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrAmountTooLow         = errors.New("amount must be positive")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsInvalidOTPOrEmail(err error) bool {
	return errors.Is(err, ErrInvalidOTPOrEmail)
}

func IsOTPDeliveryFailed(err error) bool {
	return errors.Is(err, ErrOTPDeliveryFailed)
}

func IsTooManyAttempts(err error) bool {
	return errors.Is(err, ErrTooManyAttempts)
}

func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

func IsAppointmentNotFound(err error) bool {
	return errors.Is(err, ErrAppointmentNotFound)
}

func IsAppointmentTitleRequired(err error) bool {
	return errors.Is(err, ErrAppointmentTitleRequired)
}

func IsAppointmentNameRequired(err error) bool {
	return errors.Is(err, ErrAppointmentNameRequired)
}

func IsPriestIDRequired(err error) bool {
	return errors.Is(err, ErrPriestIDRequired)
}

func IsDateRequired(err error) bool {
	return errors.Is(err, ErrDateRequired)
}

func IsStatusRequired(err error) bool {
	return errors.Is(err, ErrStatusRequired)
}

func IsAnnouncementNotFound(err error) bool {
	return errors.Is(err, ErrAnnouncementNotFound)
}

func IsServiceNotFound(err error) bool {
	return errors.Is(err, ErrServiceNotFound)
}

func IsEventNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound)
}

func IsAmountTooLow(err error) bool {
	return errors.Is(err, ErrAmountTooLow)
}
