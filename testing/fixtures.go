// Package testing provides test utilities and database setup for testing the temple management system
package testing

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	mathrand "math/rand"
	"time"

	"github.com/google/uuid"
	businessflow "github.com/templeworks/Gopuram/business_flow"
	"github.com/templeworks/Gopuram/models"
	"github.com/templeworks/Gopuram/utils"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestUser creates a test user with the specified role
func (tf *TestFixtures) CreateTestUser(role string) (*models.User, error) {
	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	randomDigits := fmt.Sprintf("%09d", mathrand.Intn(900000000)+100000000)

	empID, err := businessflow.GenerateEmpID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate employee ID: %w", err)
	}

	user := &models.User{
		UUID:         uuid.New(),
		EmpID:        empID,
		FirstName:    "John",
		LastName:     "Doe",
		Email:        fmt.Sprintf("john.doe.%s.%s@example.com", role, randomDigits),
		Phone:        fmt.Sprintf("+1%s0", randomDigits),
		PasswordHash: string(hashedPassword),
		Role:         role,
		IsActive:     utils.ToPtr(true),
	}

	err = tf.DB.DB.Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}

	return user, nil
}

// CreateTestOTP creates a test OTP verification record
func (tf *TestFixtures) CreateTestOTP(userID uint, targetEmail, otpCode string) (*models.OTPVerification, error) {
	otp := &models.OTPVerification{
		CorrelationID: uuid.New(),
		UserID:        userID,
		OTPCode:       otpCode,
		OTPType:       models.OTPTypePasswordReset,
		TargetValue:   targetEmail,
		Status:        models.OTPStatusPending,
		AttemptsCount: 0,
		MaxAttempts:   3,
		ExpiresAt:     time.Now().Add(utils.OTPExpiry),
	}

	err := tf.DB.DB.Create(otp).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test OTP: %w", err)
	}

	return otp, nil
}

// CreateExpiredOTP creates an expired OTP for testing
func (tf *TestFixtures) CreateExpiredOTP(userID uint, targetEmail string) (*models.OTPVerification, error) {
	otp := &models.OTPVerification{
		CorrelationID: uuid.New(),
		UserID:        userID,
		OTPCode:       "12345",
		OTPType:       models.OTPTypePasswordReset,
		TargetValue:   targetEmail,
		Status:        models.OTPStatusPending,
		AttemptsCount: 0,
		MaxAttempts:   3,
		ExpiresAt:     time.Now().Add(-1 * time.Hour), // Expired 1 hour ago
	}

	err := tf.DB.DB.Create(otp).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create expired OTP: %w", err)
	}

	return otp, nil
}

func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// CreateTestSession creates a test user session
func (tf *TestFixtures) CreateTestSession(userID uint) (*models.UserSession, error) {
	sessionToken, err := GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate secure session token: %w", err)
	}

	ipAddress := "127.0.0.1"
	userAgent := "Test User Agent"

	session := &models.UserSession{
		CorrelationID:  uuid.New(),
		UserID:         userID,
		SessionToken:   sessionToken,
		ExpiresAt:      time.Now().Add(24 * time.Hour),
		LastAccessedAt: time.Now(),
		IsActive:       utils.ToPtr(true),
		IPAddress:      &ipAddress,
		UserAgent:      &userAgent,
	}

	err = tf.DB.DB.Create(session).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test session: %w", err)
	}

	return session, nil
}

// CreateTestAuditLog creates a test audit log entry
func (tf *TestFixtures) CreateTestAuditLog(userID *uint, action string, success bool) (*models.AuditLog, error) {
	description := fmt.Sprintf("Test %s action", action)
	ipAddress := "127.0.0.1"
	userAgent := "Test User Agent"

	audit := &models.AuditLog{
		UserID:      userID,
		Action:      action,
		Description: &description,
		Success:     &success,
		IPAddress:   &ipAddress,
		UserAgent:   &userAgent,
	}

	if !success {
		errorMessage := "Test failed action"
		audit.ErrorMessage = &errorMessage
	}

	err := tf.DB.DB.Create(audit).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test audit log: %w", err)
	}

	return audit, nil
}

// CreateTestAppointment creates a test appointment for the given priest
func (tf *TestFixtures) CreateTestAppointment(empID, priestID string) (*models.Appointment, error) {
	appointment := &models.Appointment{
		UUID:       uuid.New(),
		EmpID:      empID,
		PriestID:   priestID,
		PriestName: "Test Priest",
		Title:      "Housewarming ceremony",
		FirstName:  "John",
		Email:      "john.doe@example.com",
		Phone:      "+15550100",
		Date:       "2026-09-01T10:00",
		Status:     models.AppointmentStatusPending,
	}

	err := tf.DB.DB.Create(appointment).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test appointment: %w", err)
	}

	return appointment, nil
}

// CreateTestAnnouncement creates a test announcement
func (tf *TestFixtures) CreateTestAnnouncement(title string) (*models.Announcement, error) {
	announcement := &models.Announcement{
		Title:       title,
		Description: "Test announcement description",
	}

	err := tf.DB.DB.Create(announcement).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test announcement: %w", err)
	}

	return announcement, nil
}

// CreateTestService creates a test temple service
func (tf *TestFixtures) CreateTestService(title string, cost int64) (*models.Service, error) {
	service := &models.Service{
		Title:       title,
		Description: "Test service description",
		Cost:        cost,
	}

	err := tf.DB.DB.Create(service).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test service: %w", err)
	}

	return service, nil
}

// CreateTestEvent creates a test temple event
func (tf *TestFixtures) CreateTestEvent(title string) (*models.Event, error) {
	event := &models.Event{
		Title:       title,
		Description: "Test event description",
		Date:        "2026-10-20T18:00",
	}

	err := tf.DB.DB.Create(event).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test event: %w", err)
	}

	return event, nil
}

// CreateTestDonation creates a test donation record
func (tf *TestFixtures) CreateTestDonation(amount int64) (*models.Donation, error) {
	donation := &models.Donation{
		FullName: "Jane Donor",
		Email:    fmt.Sprintf("jane.donor.%d@example.com", mathrand.Intn(10000000)),
		Address:  "123 Temple Street",
		City:     "Springfield",
		State:    "IL",
		Zip:      "62701",
		CardName: "Jane Donor",
		Amount:   amount,
	}

	err := tf.DB.DB.Create(donation).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test donation: %w", err)
	}

	return donation, nil
}
