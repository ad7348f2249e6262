// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/templeworks/Gopuram/app/dto"
	businessflow "github.com/templeworks/Gopuram/business_flow"
)

// DonationHandlerInterface defines the contract for donation handlers
type DonationHandlerInterface interface {
	Add(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Export(c fiber.Ctx) error
}

// DonationHandler handles donation-related HTTP requests
type DonationHandler struct {
	donationFlow businessflow.DonationFlow
	validator    *validator.Validate
}

func (h *DonationHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *DonationHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationFlow businessflow.DonationFlow) *DonationHandler {
	return &DonationHandler{
		donationFlow: donationFlow,
		validator:    newValidator(),
	}
}

// Add records a donation
func (h *DonationHandler) Add(c fiber.Ctx) error {
	var req dto.AddDonationRequest
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

	result, err := h.donationFlow.Add(createRequestContext(c, "/add-donation"), &req, metadata)
	if err != nil {
		if businessflow.IsAmountTooLow(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Amount must be positive", "DONATION_VALIDATION_FAILED", nil)
		}

		log.Println("Add donation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record donation", "ADD_DONATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Donation recorded successfully", fiber.Map{
		"donation": result,
	})
}

// List returns all donations
func (h *DonationHandler) List(c fiber.Ctx) error {
	donations, err := h.donationFlow.List(createRequestContext(c, "/get-donations"), 0, 0)
	if err != nil {
		log.Println("List donations failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list donations", "LIST_DONATIONS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Donations retrieved successfully", fiber.Map{
		"donations": donations,
	})
}

// Export streams the donation records as an Excel workbook
func (h *DonationHandler) Export(c fiber.Ctx) error {
	filename, content, err := h.donationFlow.ExportXLSX(createRequestContext(c, "/export-donations"))
	if err != nil {
		log.Println("Export donations failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export donations", "EXPORT_DONATIONS_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	return c.Send(content)
}
