// Package businessflow contains the core business logic and use cases for the temple management workflows
package businessflow

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	"github.com/templeworks/Gopuram/app/dto"
	"github.com/templeworks/Gopuram/models"
	"github.com/templeworks/Gopuram/repository"
	"github.com/templeworks/Gopuram/utils"
	"gorm.io/gorm"
)

// AccountFlow handles account creation and administration
type AccountFlow interface {
	Signup(ctx context.Context, req *dto.SignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error)
	CreatePriest(ctx context.Context, req *dto.CreatePriestRequest, metadata *ClientMetadata) (*dto.SignupResponse, error)
	ListUsers(ctx context.Context, limit, offset int) ([]dto.UserDTO, error)
	ListByRole(ctx context.Context, role string, limit, offset int) ([]dto.UserDTO, error)
	DeleteUser(ctx context.Context, userID uint, metadata *ClientMetadata) error
}

// AccountFlowImpl implements the account business flow
type AccountFlowImpl struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditLogRepository
	db        *gorm.DB
}

// NewAccountFlow creates a new account flow instance
func NewAccountFlow(
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) AccountFlow {
	return &AccountFlowImpl{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		db:        db,
	}
}

// Signup registers a devotee account
func (s *AccountFlowImpl) Signup(ctx context.Context, req *dto.SignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error) {
	user, err := s.createAccount(ctx, accountInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Address:   req.Address,
		Role:      models.RoleDevotee,
	})

	if err != nil {
		errMsg := fmt.Sprintf("Signup failed: %s", err.Error())
		_ = s.createAuditLog(ctx, user, models.AuditActionSignupCompleted, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("SIGNUP_FAILED", "Signup failed", err)
	}

	msg := fmt.Sprintf("Account created successfully: %d", user.ID)
	_ = s.createAuditLog(ctx, user, models.AuditActionSignupCompleted, msg, true, nil, metadata)

	return &dto.SignupResponse{
		Message: "Account created successfully",
		User:    ToUserDTO(*user),
	}, nil
}

// CreatePriest registers a priest account (admin operation)
func (s *AccountFlowImpl) CreatePriest(ctx context.Context, req *dto.CreatePriestRequest, metadata *ClientMetadata) (*dto.SignupResponse, error) {
	user, err := s.createAccount(ctx, accountInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Address:   req.Address,
		Role:      models.RolePriest,
	})

	if err != nil {
		errMsg := fmt.Sprintf("Priest creation failed: %s", err.Error())
		_ = s.createAuditLog(ctx, user, models.AuditActionPriestCreated, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("CREATE_PRIEST_FAILED", "Priest creation failed", err)
	}

	msg := fmt.Sprintf("Priest account created successfully: %d", user.ID)
	_ = s.createAuditLog(ctx, user, models.AuditActionPriestCreated, msg, true, nil, metadata)

	return &dto.SignupResponse{
		Message: "Priest account created successfully",
		User:    ToUserDTO(*user),
	}, nil
}

// ListUsers returns all accounts, sanitized
func (s *AccountFlowImpl) ListUsers(ctx context.Context, limit, offset int) ([]dto.UserDTO, error) {
	users, err := s.userRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, NewBusinessError("LIST_USERS_FAILED", "Failed to list users", err)
	}

	result := make([]dto.UserDTO, 0, len(users))
	for _, user := range users {
		result = append(result, ToUserDTO(*user))
	}

	return result, nil
}

// ListByRole returns accounts with the given role, sanitized
func (s *AccountFlowImpl) ListByRole(ctx context.Context, role string, limit, offset int) ([]dto.UserDTO, error) {
	users, err := s.userRepo.ListByRole(ctx, role, limit, offset)
	if err != nil {
		return nil, NewBusinessError("LIST_USERS_FAILED", "Failed to list users", err)
	}

	result := make([]dto.UserDTO, 0, len(users))
	for _, user := range users {
		result = append(result, ToUserDTO(*user))
	}

	return result, nil
}

// DeleteUser removes an account by its numeric ID
func (s *AccountFlowImpl) DeleteUser(ctx context.Context, userID uint, metadata *ClientMetadata) error {
	var user *models.User

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		user, err = s.userRepo.ByID(txCtx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		return s.userRepo.Delete(txCtx, userID)
	})

	if err != nil {
		if IsUserNotFound(err) {
			return NewBusinessError("USER_NOT_FOUND", "User not found", err)
		}

		errMsg := fmt.Sprintf("User deletion failed: %s", err.Error())
		_ = s.createAuditLog(ctx, user, models.AuditActionAccountDeleted, errMsg, false, &errMsg, metadata)

		return NewBusinessError("DELETE_USER_FAILED", "User deletion failed", err)
	}

	msg := fmt.Sprintf("User deleted successfully: %d", userID)
	_ = s.createAuditLog(ctx, user, models.AuditActionAccountDeleted, msg, true, nil, metadata)

	return nil
}

// Private helper methods

type accountInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Address   *string
	Role      string
}

func (s *AccountFlowImpl) createAccount(ctx context.Context, in accountInput) (*models.User, error) {
	var user *models.User

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		// Check if email already exists
		existing, err := s.userRepo.ByEmail(txCtx, in.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailAlreadyExists
		}

		// Hash password
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		// Allocate a unique employee ID
		empID, err := s.generateUniqueEmpID(txCtx)
		if err != nil {
			return err
		}

		user = &models.User{
			UUID:         uuid.New(),
			EmpID:        empID,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Email:        in.Email,
			Phone:        in.Phone,
			PasswordHash: string(hashedPassword),
			Address:      in.Address,
			Role:         in.Role,
			IsActive:     utils.ToPtr(true),
		}

		return s.userRepo.Save(txCtx, user)
	})

	if err != nil {
		return user, err
	}

	return user, nil
}

// generateUniqueEmpID draws random 5-digit IDs until one is free
func (s *AccountFlowImpl) generateUniqueEmpID(ctx context.Context) (string, error) {
	const maxDraws = 10

	for range maxDraws {
		empID, err := GenerateEmpID()
		if err != nil {
			return "", err
		}

		existing, err := s.userRepo.ByEmpID(ctx, empID)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return empID, nil
		}
	}

	return "", fmt.Errorf("failed to allocate a unique employee ID after %d draws", maxDraws)
}

// GenerateEmpID generates a secure 5-digit employee ID in [10000, 99999]
func GenerateEmpID() (string, error) {
	max := big.NewInt(99999)
	min := big.NewInt(10000)

	n, err := rand.Int(rand.Reader, new(big.Int).Sub(max, min))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%05d", new(big.Int).Add(n, min).Int64()), nil
}

func (s *AccountFlowImpl) createAuditLog(ctx context.Context, user *models.User, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) error {
	var userID *uint
	if user != nil {
		userID = &user.ID
	}

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

	return s.auditRepo.Save(ctx, audit)
}
