// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/templeworks/Gopuram/app/dto"
	businessflow "github.com/templeworks/Gopuram/business_flow"
)

// AccountHandlerInterface defines the contract for account management handlers
type AccountHandlerInterface interface {
	GetUsers(c fiber.Ctx) error
	DeleteUser(c fiber.Ctx) error
	CreatePriest(c fiber.Ctx) error
	GetPriests(c fiber.Ctx) error
}

// AccountHandler handles account administration HTTP requests
type AccountHandler struct {
	accountFlow businessflow.AccountFlow
	validator   *validator.Validate
}

func (h *AccountHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AccountHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewAccountHandler creates a new account management handler
func NewAccountHandler(accountFlow businessflow.AccountFlow) *AccountHandler {
	return &AccountHandler{
		accountFlow: accountFlow,
		validator:   newValidator(),
	}
}

// GetUsers returns all registered accounts
func (h *AccountHandler) GetUsers(c fiber.Ctx) error {
	users, err := h.accountFlow.ListUsers(createRequestContext(c, "/get-users"), 0, 0)
	if err != nil {
		log.Println("List users failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list users", "LIST_USERS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Users retrieved successfully", fiber.Map{
		"users": users,
	})
}

// DeleteUser removes an account by ID
func (h *AccountHandler) DeleteUser(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID", "INVALID_USER_ID", nil)
	}

	ipAddress := c.IP()
	userAgent := c.Get("User-Agent")
	metadata := businessflow.NewClientMetadata(ipAddress, userAgent)

	if err := h.accountFlow.DeleteUser(createRequestContext(c, "/delete-user"), uint(id), metadata); err != nil {
		if businessflow.IsUserNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "User not found", dto.ErrorUserNotFound, nil)
		}

		log.Println("Delete user failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete user", "DELETE_USER_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "User deleted successfully", fiber.Map{
		"id": uint(id),
	})
}

// CreatePriest registers a priest account
func (h *AccountHandler) CreatePriest(c fiber.Ctx) error {
	var req dto.CreatePriestRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	ipAddress := c.IP()
	userAgent := c.Get("User-Agent")
	metadata := businessflow.NewClientMetadata(ipAddress, userAgent)

	result, err := h.accountFlow.CreatePriest(createRequestContext(c, "/create-priest"), &req, metadata)
	if err != nil {
		if businessflow.IsEmailAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Email already exists", "EMAIL_EXISTS", nil)
		}

		log.Println("Create priest failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Priest creation failed", "CREATE_PRIEST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, fiber.Map{
		"user": result.User,
	})
}

// GetPriests returns accounts filtered by role
func (h *AccountHandler) GetPriests(c fiber.Ctx) error {
	var req dto.GetPriestsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	users, err := h.accountFlow.ListByRole(createRequestContext(c, "/get-priests"), req.Role, 0, 0)
	if err != nil {
		log.Println("List priests failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list priests", "LIST_PRIESTS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Priests retrieved successfully", fiber.Map{
		"users": users,
	})
}
