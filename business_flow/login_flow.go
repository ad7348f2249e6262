// Package businessflow contains the core business logic and use cases for the temple management workflows
package businessflow

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	"github.com/templeworks/Gopuram/app/dto"
	"github.com/templeworks/Gopuram/app/services"
	"github.com/templeworks/Gopuram/models"
	"github.com/templeworks/Gopuram/repository"
	"github.com/templeworks/Gopuram/utils"
	"gorm.io/gorm"
)

// LoginFlow handles authentication and password recovery
type LoginFlow interface {
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginData, error)
	Logout(ctx context.Context, sessionToken string, metadata *ClientMetadata) error
	RequestOTP(ctx context.Context, req *dto.RequestOTPRequest, metadata *ClientMetadata) (*dto.RequestOTPData, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest, metadata *ClientMetadata) error
}

// LoginFlowImpl implements the login business flow
type LoginFlowImpl struct {
	userRepo            repository.UserRepository
	sessionRepo         repository.UserSessionRepository
	otpRepo             repository.OTPVerificationRepository
	auditRepo           repository.AuditLogRepository
	tokenService        services.TokenService
	notificationService services.NotificationService
	db                  *gorm.DB
}

// NewLoginFlow creates a new login flow instance
func NewLoginFlow(
	userRepo repository.UserRepository,
	sessionRepo repository.UserSessionRepository,
	otpRepo repository.OTPVerificationRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
	notificationService services.NotificationService,
	db *gorm.DB,
) LoginFlow {
	return &LoginFlowImpl{
		userRepo:            userRepo,
		sessionRepo:         sessionRepo,
		otpRepo:             otpRepo,
		auditRepo:           auditRepo,
		tokenService:        tokenService,
		notificationService: notificationService,
		db:                  db,
	}
}

// Login authenticates a user by email and password and issues a token
func (lf *LoginFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginData, error) {
	var user *models.User
	var session *models.UserSession
	var accessToken string

	err := repository.WithTransaction(ctx, lf.db, func(txCtx context.Context) error {
		var err error
		user, err = lf.userRepo.ByEmail(txCtx, req.Email)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		if !utils.IsTrue(user.IsActive) {
			return ErrAccountInactive
		}

		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			return ErrIncorrectPassword
		}

		var expiresAt time.Time
		accessToken, expiresAt, err = lf.tokenService.GenerateToken(user.ID)
		if err != nil {
			return err
		}

		session = &models.UserSession{
			CorrelationID:  uuid.New(),
			UserID:         user.ID,
			SessionToken:   accessToken,
			IPAddress:      &metadata.IPAddress,
			UserAgent:      &metadata.UserAgent,
			IsActive:       utils.ToPtr(true),
			LastAccessedAt: utils.UTCNow(),
			ExpiresAt:      expiresAt,
		}
		if err := lf.sessionRepo.Save(txCtx, session); err != nil {
			return err
		}

		return lf.userRepo.UpdateLastLogin(txCtx, user.ID)
	})

	if err != nil {
		errMsg := fmt.Sprintf("Login failed: %s", err.Error())
		_ = lf.logLoginAttempt(ctx, user, req.Email, false, &errMsg, metadata)

		switch {
		case IsUserNotFound(err):
			return nil, NewBusinessError(dto.ErrorUserNotFound, "User not found", err)
		case IsAccountInactive(err):
			return nil, NewBusinessError(dto.ErrorAccountInactive, "Account is inactive", err)
		case IsIncorrectPassword(err):
			return nil, NewBusinessError(dto.ErrorInvalidCredentials, "Invalid credentials", err)
		default:
			return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
		}
	}

	msg := fmt.Sprintf("Login successful for user: %d", user.ID)
	_ = lf.logLoginAttempt(ctx, user, req.Email, true, &msg, metadata)

	return &dto.LoginData{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   TokenExpiresIn(*session),
		ExpiresAt:   session.ExpiresAt,
		User:        ToUserDTO(*user),
	}, nil
}

// Logout revokes the token and deactivates its session
func (lf *LoginFlowImpl) Logout(ctx context.Context, sessionToken string, metadata *ClientMetadata) error {
	var session *models.UserSession

	err := repository.WithTransaction(ctx, lf.db, func(txCtx context.Context) error {
		var err error
		session, err = lf.sessionRepo.BySessionToken(txCtx, sessionToken)
		if err != nil {
			return err
		}
		if session == nil {
			return ErrSessionNotFound
		}

		if err := lf.sessionRepo.DeactivateSession(txCtx, session.ID); err != nil {
			return err
		}

		return lf.tokenService.RevokeToken(sessionToken)
	})

	if err != nil {
		if IsSessionNotFound(err) {
			return NewBusinessError("SESSION_NOT_FOUND", "Session not found", err)
		}
		return NewBusinessError("LOGOUT_FAILED", "Logout failed", err)
	}

	msg := fmt.Sprintf("Logout successful for user: %d", session.UserID)
	_ = lf.createAuditLog(ctx, &session.UserID, models.AuditActionLogout, msg, true, nil, metadata)

	return nil
}

// RequestOTP generates a password reset code and emails it to the account holder.
// The code is persisted before delivery is attempted; a delivery failure is
// reported to the caller but does not roll the record back.
func (lf *LoginFlowImpl) RequestOTP(ctx context.Context, req *dto.RequestOTPRequest, metadata *ClientMetadata) (*dto.RequestOTPData, error) {
	var user *models.User
	var otpCode string

	err := repository.WithTransaction(ctx, lf.db, func(txCtx context.Context) error {
		var err error
		user, err = lf.userRepo.ByEmail(txCtx, req.Email)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		// Invalidate any previously issued reset codes
		if err := lf.otpRepo.ExpireOldOTPs(txCtx, user.ID, models.OTPTypePasswordReset); err != nil {
			return err
		}

		otpCode, err = GenerateOTP()
		if err != nil {
			return err
		}

		otp := &models.OTPVerification{
			CorrelationID: uuid.New(),
			UserID:        user.ID,
			OTPCode:       otpCode,
			OTPType:       models.OTPTypePasswordReset,
			TargetValue:   user.Email,
			Status:        models.OTPStatusPending,
			MaxAttempts:   3,
			ExpiresAt:     utils.UTCNowAdd(utils.OTPExpiry),
			IPAddress:     &metadata.IPAddress,
			UserAgent:     &metadata.UserAgent,
		}

		return lf.otpRepo.Save(txCtx, otp)
	})

	if err != nil {
		errMsg := fmt.Sprintf("OTP request failed: %s", err.Error())
		_ = lf.logPasswordResetAttempt(ctx, user, models.AuditActionPasswordResetRequested, false, &errMsg, metadata)

		if IsUserNotFound(err) {
			return nil, NewBusinessError(dto.ErrorUserNotFound, "User not found", err)
		}
		return nil, NewBusinessError("OTP_REQUEST_FAILED", "OTP request failed", err)
	}

	subject := "Password Reset OTP"
	body := fmt.Sprintf("Your OTP for password reset is: %s. It expires in %d minutes.", otpCode, int(utils.OTPExpiry.Minutes()))
	if err := lf.notificationService.SendEmail(user.Email, subject, body); err != nil {
		errMsg := fmt.Sprintf("OTP delivery failed: %s", err.Error())
		_ = lf.logPasswordResetAttempt(ctx, user, models.AuditActionOTPFailed, false, &errMsg, metadata)

		return nil, NewBusinessError(dto.ErrorOTPDeliveryFailed, "Failed to send OTP email", ErrOTPDeliveryFailed)
	}

	msg := fmt.Sprintf("Password reset OTP sent to user: %d", user.ID)
	_ = lf.logPasswordResetAttempt(ctx, user, models.AuditActionOTPGenerated, true, &msg, metadata)

	return &dto.RequestOTPData{
		MaskedEmail: dto.MaskEmail(user.Email),
		ExpiresIn:   utils.OTPExpirySeconds,
	}, nil
}

// ResetPassword verifies the email and OTP pair, then replaces the password
// and terminates all existing sessions for the account
func (lf *LoginFlowImpl) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest, metadata *ClientMetadata) error {
	var user *models.User

	err := repository.WithTransaction(ctx, lf.db, func(txCtx context.Context) error {
		otp, err := lf.otpRepo.ActiveByTargetAndCode(txCtx, req.Email, req.Otp, models.OTPTypePasswordReset)
		if err != nil {
			return err
		}
		if otp == nil {
			return ErrInvalidOTPOrEmail
		}
		if !otp.CanAttempt() {
			return ErrTooManyAttempts
		}

		user, err = lf.userRepo.ByID(txCtx, otp.UserID)
		if err != nil {
			return err
		}
		if user == nil || user.Email != req.Email {
			return ErrInvalidOTPOrEmail
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		if err := lf.userRepo.UpdatePassword(txCtx, user.ID, string(hashedPassword)); err != nil {
			return err
		}

		if err := lf.otpRepo.MarkUsed(txCtx, otp); err != nil {
			return err
		}

		// Force re-authentication everywhere after a password change
		return lf.sessionRepo.DeactivateAllUserSessions(txCtx, user.ID)
	})

	if err != nil {
		errMsg := fmt.Sprintf("Password reset failed: %s", err.Error())
		_ = lf.logPasswordResetAttempt(ctx, user, models.AuditActionPasswordResetFailed, false, &errMsg, metadata)

		switch {
		case IsInvalidOTPOrEmail(err):
			return NewBusinessError(dto.ErrorInvalidOTPOrEmail, "Invalid OTP or email", err)
		case IsTooManyAttempts(err):
			return NewBusinessError(dto.ErrorTooManyAttempts, "Too many attempts", err)
		default:
			return NewBusinessError("PASSWORD_RESET_FAILED", "Password reset failed", err)
		}
	}

	msg := fmt.Sprintf("Password reset completed for user: %d", user.ID)
	_ = lf.logPasswordResetAttempt(ctx, user, models.AuditActionPasswordResetCompleted, true, &msg, metadata)

	return nil
}

// GenerateOTP generates a secure 5-digit OTP in [10000, 99999]
func GenerateOTP() (string, error) {
	max := big.NewInt(99999)
	min := big.NewInt(10000)

	n, err := rand.Int(rand.Reader, new(big.Int).Sub(max, min))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%05d", new(big.Int).Add(n, min).Int64()), nil
}

// Private helper methods

func (lf *LoginFlowImpl) logLoginAttempt(ctx context.Context, user *models.User, email string, success bool, details *string, metadata *ClientMetadata) error {
	action := models.AuditActionLoginSuccessful
	if !success {
		action = models.AuditActionLoginFailed
	}

	description := fmt.Sprintf("Login attempt for email: %s", email)
	var userID *uint
	if user != nil {
		userID = &user.ID
	}

	var errorMsg *string
	if !success {
		errorMsg = details
	}

	return lf.createAuditLog(ctx, userID, action, description, success, errorMsg, metadata)
}

func (lf *LoginFlowImpl) logPasswordResetAttempt(ctx context.Context, user *models.User, action string, success bool, details *string, metadata *ClientMetadata) error {
	description := "Password reset attempt"
	if details != nil && success {
		description = *details
	}

	var userID *uint
	if user != nil {
		userID = &user.ID
	}

	var errorMsg *string
	if !success {
		errorMsg = details
	}

	return lf.createAuditLog(ctx, userID, action, description, success, errorMsg, metadata)
}

func (lf *LoginFlowImpl) createAuditLog(ctx context.Context, userID *uint, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) error {
	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errorMsg,
	}

	// Extract request ID from context if available
	requestID := ctx.Value(RequestIDKey)
	if requestID != nil {
		requestIDStr, ok := requestID.(string)
		if ok {
			audit.RequestID = &requestIDStr
		}
	}

	return lf.auditRepo.Save(ctx, audit)
}
