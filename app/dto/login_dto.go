// Package dto contains Data Transfer Objects for API request and response structures
package dto

import (
	"time"
)

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=100"`
}

// LoginData carries the issued token and the authenticated account
type LoginData struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}

// RequestOTPRequest represents the request to initiate password reset
type RequestOTPRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// RequestOTPData represents the data returned after a reset code was sent
type RequestOTPData struct {
	MaskedEmail string `json:"masked_email"`
	ExpiresIn   int    `json:"expires_in"`
}

// ResetPasswordRequest represents the request to reset password with OTP
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Otp         string `json:"otp" validate:"required,len=5,numeric"`
	NewPassword string `json:"newPassword" validate:"required,max=100"`
}

// Common error codes for authentication operations
const (
	ErrorUserNotFound       = "USER_NOT_FOUND"
	ErrorInvalidCredentials = "INVALID_CREDENTIALS"
	ErrorAccountInactive    = "ACCOUNT_INACTIVE"
	ErrorInvalidOTPOrEmail  = "INVALID_OTP_OR_EMAIL"
	ErrorOTPDeliveryFailed  = "OTP_DELIVERY_FAILED"
	ErrorTooManyAttempts    = "TOO_MANY_ATTEMPTS"
)

// MaskEmail hides the bulk of the local part of an email address
func MaskEmail(email string) string {
	at := -1
	for i, c := range email {
		if c == '@' {
			at = i
			break
		}
	}

	if at <= 2 {
		return "***" + email[at+1:]
	}

	return email[:2] + "*****" + email[at:]
}
