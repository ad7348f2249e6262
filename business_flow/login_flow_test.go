// Package businessflow_test contains integration tests for authentication and password recovery
package businessflow_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templeworks/Gopuram/app/dto"
	"github.com/templeworks/Gopuram/app/services"
	businessflow "github.com/templeworks/Gopuram/business_flow"
	"github.com/templeworks/Gopuram/models"
	"github.com/templeworks/Gopuram/repository"
	testingutil "github.com/templeworks/Gopuram/testing"
	"github.com/templeworks/Gopuram/utils"
)

// failingEmailProvider simulates an unreachable mail server
type failingEmailProvider struct{}

func (p *failingEmailProvider) SendEmail(email, subject, message string) error {
	return errors.New("smtp connection refused")
}

type loginFlowDeps struct {
	testDB      *testingutil.TestDB
	fixtures    *testingutil.TestFixtures
	userRepo    repository.UserRepository
	sessionRepo repository.UserSessionRepository
	otpRepo     repository.OTPVerificationRepository
	flow        businessflow.LoginFlow
}

func setupLoginFlowTest(t *testing.T, emailProvider services.EmailProvider) *loginFlowDeps {
	t.Helper()

	testDB, err := testingutil.SetupTestDB()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}
	t.Cleanup(func() {
		_ = testDB.TeardownTestDB()
	})

	userRepo := repository.NewUserRepository(testDB.DB)
	sessionRepo := repository.NewUserSessionRepository(testDB.DB)
	otpRepo := repository.NewOTPVerificationRepository(testDB.DB)
	auditRepo := repository.NewAuditLogRepository(testDB.DB)

	tokenService, err := services.NewTokenService(1*time.Hour, "test-issuer", "test-audience", "test-secret-key-for-login-flow")
	require.NoError(t, err)

	if emailProvider == nil {
		emailProvider = services.NewMockEmailProvider()
	}
	notificationService := services.NewNotificationService(emailProvider)

	flow := businessflow.NewLoginFlow(
		userRepo,
		sessionRepo,
		otpRepo,
		auditRepo,
		tokenService,
		notificationService,
		testDB.DB,
	)

	return &loginFlowDeps{
		testDB:      testDB,
		fixtures:    testingutil.NewTestFixtures(testDB),
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		otpRepo:     otpRepo,
		flow:        flow,
	}
}

func TestLoginFlowLogin(t *testing.T) {
	deps := setupLoginFlowTest(t, nil)

	t.Run("SuccessfulLogin", func(t *testing.T) {
		user, err := deps.fixtures.CreateTestUser(models.RoleDevotee)
		require.NoError(t, err)

		result, err := deps.flow.Login(context.Background(), &dto.LoginRequest{
			Email:    user.Email,
			Password: "TestPass123",
		}, testMetadata())
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Greater(t, result.ExpiresIn, 0)
		assert.True(t, result.ExpiresAt.After(time.Now()))
		assert.Equal(t, user.Email, result.User.Email)

		// A session backing the token must exist and be active
		session, err := deps.sessionRepo.BySessionToken(context.Background(), result.AccessToken)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.True(t, session.IsValid())

		// Login stamps last_login_at
		refreshed, err := deps.userRepo.ByID(context.Background(), user.ID)
		require.NoError(t, err)
		require.NotNil(t, refreshed)
		assert.NotNil(t, refreshed.LastLoginAt)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		_, err := deps.flow.Login(context.Background(), &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "TestPass123",
		}, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsUserNotFound(err))
	})

	t.Run("IncorrectPassword", func(t *testing.T) {
		user, err := deps.fixtures.CreateTestUser(models.RoleDevotee)
		require.NoError(t, err)

		_, err = deps.flow.Login(context.Background(), &dto.LoginRequest{
			Email:    user.Email,
			Password: "WrongPass123",
		}, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsIncorrectPassword(err))
	})

	t.Run("InactiveAccount", func(t *testing.T) {
		user, err := deps.fixtures.CreateTestUser(models.RoleDevotee)
		require.NoError(t, err)

		err = deps.testDB.DB.Model(&models.User{}).Where("id = ?", user.ID).
			Update("is_active", false).Error
		require.NoError(t, err)

		_, err = deps.flow.Login(context.Background(), &dto.LoginRequest{
			Email:    user.Email,
			Password: "TestPass123",
		}, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsAccountInactive(err))
	})
}

func TestLoginFlowLogout(t *testing.T) {
	deps := setupLoginFlowTest(t, nil)

	t.Run("SuccessfulLogout", func(t *testing.T) {
		user, err := deps.fixtures.CreateTestUser(models.RoleDevotee)
		require.NoError(t, err)

		result, err := deps.flow.Login(context.Background(), &dto.LoginRequest{
			Email:    user.Email,
			Password: "TestPass123",
		}, testMetadata())
		require.NoError(t, err)

		err = deps.flow.Logout(context.Background(), result.AccessToken, testMetadata())
		require.NoError(t, err)

		// Session is gone for authentication purposes
		session, err := deps.sessionRepo.BySessionToken(context.Background(), result.AccessToken)
		require.NoError(t, err)
		if session != nil {
			assert.False(t, session.IsValid())
		}
	})

	t.Run("UnknownToken", func(t *testing.T) {
		err := deps.flow.Logout(context.Background(), "no-such-token", testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsSessionNotFound(err))
	})
}

func TestLoginFlowRequestOTP(t *testing.T) {
	deps := setupLoginFlowTest(t, nil)

	t.Run("SuccessfulRequest", func(t *testing.T) {
		user, err := deps.fixtures.CreateTestUser(models.RoleDevotee)
		require.NoError(t, err)

		result, err := deps.flow.RequestOTP(context.Background(), &dto.RequestOTPRequest{
			Email: user.Email,
		}, testMetadata())
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, utils.OTPExpirySeconds, result.ExpiresIn)
		assert.NotEqual(t, user.Email, result.MaskedEmail)
		assert.Contains(t, result.MaskedEmail, "@")

		// A pending 5-digit code is persisted for the account
		otps, err := deps.otpRepo.ListActiveOTPs(context.Background(), user.ID)
		require.NoError(t, err)
		require.Len(t, otps, 1)
		assert.Regexp(t, regexp.MustCompile(`^\d{5}$`), otps[0].OTPCode)
		assert.Equal(t, models.OTPTypePasswordReset, otps[0].OTPType)
		assert.Equal(t, user.Email, otps[0].TargetValue)
	})

	t.Run("ReplacesOlderCodes", func(t *testing.T) {
		user, err := deps.fixtures.CreateTestUser(models.RoleDevotee)
		require.NoError(t, err)

		_, err = deps.flow.RequestOTP(context.Background(), &dto.RequestOTPRequest{Email: user.Email}, testMetadata())
		require.NoError(t, err)
		_, err = deps.flow.RequestOTP(context.Background(), &dto.RequestOTPRequest{Email: user.Email}, testMetadata())
		require.NoError(t, err)

		otps, err := deps.otpRepo.ListActiveOTPs(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Len(t, otps, 1)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := deps.flow.RequestOTP(context.Background(), &dto.RequestOTPRequest{
			Email: "nobody@example.com",
		}, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsUserNotFound(err))
	})
}

func TestLoginFlowRequestOTPDeliveryFailure(t *testing.T) {
	deps := setupLoginFlowTest(t, &failingEmailProvider{})

	user, err := deps.fixtures.CreateTestUser(models.RoleDevotee)
	require.NoError(t, err)

	_, err = deps.flow.RequestOTP(context.Background(), &dto.RequestOTPRequest{
		Email: user.Email,
	}, testMetadata())
	require.Error(t, err)
	assert.True(t, businessflow.IsOTPDeliveryFailed(err))

	// The code stays on record even though delivery failed
	otps, err := deps.otpRepo.ListActiveOTPs(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, otps, 1)
}

func TestLoginFlowResetPassword(t *testing.T) {
	deps := setupLoginFlowTest(t, nil)

	t.Run("SuccessfulReset", func(t *testing.T) {
		user, err := deps.fixtures.CreateTestUser(models.RoleDevotee)
		require.NoError(t, err)

		// An active session that must not survive the reset
		loginResult, err := deps.flow.Login(context.Background(), &dto.LoginRequest{
			Email:    user.Email,
			Password: "TestPass123",
		}, testMetadata())
		require.NoError(t, err)

		otp, err := deps.fixtures.CreateTestOTP(user.ID, user.Email, "54321")
		require.NoError(t, err)

		err = deps.flow.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
			Email:       user.Email,
			Otp:         otp.OTPCode,
			NewPassword: "NewStrongPass1",
		}, testMetadata())
		require.NoError(t, err)

		// Old password no longer works, new one does
		_, err = deps.flow.Login(context.Background(), &dto.LoginRequest{
			Email:    user.Email,
			Password: "TestPass123",
		}, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsIncorrectPassword(err))

		_, err = deps.flow.Login(context.Background(), &dto.LoginRequest{
			Email:    user.Email,
			Password: "NewStrongPass1",
		}, testMetadata())
		require.NoError(t, err)

		// The pre-reset session was terminated
		session, err := deps.sessionRepo.BySessionToken(context.Background(), loginResult.AccessToken)
		require.NoError(t, err)
		if session != nil {
			assert.False(t, session.IsValid())
		}

		// The code cannot be replayed
		err = deps.flow.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
			Email:       user.Email,
			Otp:         otp.OTPCode,
			NewPassword: "AnotherPass1",
		}, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidOTPOrEmail(err))
	})

	t.Run("WrongCode", func(t *testing.T) {
		user, err := deps.fixtures.CreateTestUser(models.RoleDevotee)
		require.NoError(t, err)

		_, err = deps.fixtures.CreateTestOTP(user.ID, user.Email, "54321")
		require.NoError(t, err)

		err = deps.flow.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
			Email:       user.Email,
			Otp:         "11111",
			NewPassword: "NewStrongPass1",
		}, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidOTPOrEmail(err))
	})

	t.Run("ExpiredCode", func(t *testing.T) {
		user, err := deps.fixtures.CreateTestUser(models.RoleDevotee)
		require.NoError(t, err)

		otp, err := deps.fixtures.CreateExpiredOTP(user.ID, user.Email)
		require.NoError(t, err)

		err = deps.flow.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
			Email:       user.Email,
			Otp:         otp.OTPCode,
			NewPassword: "NewStrongPass1",
		}, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidOTPOrEmail(err))
	})
}

func TestGenerateOTP(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{5}$`)

	for range 100 {
		code, err := businessflow.GenerateOTP()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}
