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

// AppointmentHandlerInterface defines the contract for appointment handlers
type AppointmentHandlerInterface interface {
	Book(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// AppointmentHandler handles appointment-related HTTP requests
type AppointmentHandler struct {
	appointmentFlow businessflow.AppointmentFlow
	validator       *validator.Validate
}

func (h *AppointmentHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AppointmentHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentFlow businessflow.AppointmentFlow) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentFlow: appointmentFlow,
		validator:       newValidator(),
	}
}

// Book handles appointment booking
func (h *AppointmentHandler) Book(c fiber.Ctx) error {
	var req dto.BookAppointmentRequest
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

	result, err := h.appointmentFlow.Book(createRequestContext(c, "/book-appointment"), &req, metadata)
	if err != nil {
		switch {
		case businessflow.IsAppointmentTitleRequired(err),
			businessflow.IsAppointmentNameRequired(err),
			businessflow.IsPriestIDRequired(err),
			businessflow.IsDateRequired(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "APPOINTMENT_VALIDATION_FAILED", nil)
		}

		log.Println("Book appointment failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to book appointment", "BOOK_APPOINTMENT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Appointment booked successfully", fiber.Map{
		"appointment": result,
	})
}

// List returns all appointments
func (h *AppointmentHandler) List(c fiber.Ctx) error {
	appointments, err := h.appointmentFlow.List(createRequestContext(c, "/get-appointments"), 0, 0)
	if err != nil {
		log.Println("List appointments failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list appointments", "LIST_APPOINTMENTS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Appointments retrieved successfully", fiber.Map{
		"appointments": appointments,
	})
}

// Update changes the status of an existing appointment
func (h *AppointmentHandler) Update(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid appointment ID", "INVALID_APPOINTMENT_ID", nil)
	}

	var req dto.UpdateAppointmentRequest
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

	result, err := h.appointmentFlow.UpdateStatus(createRequestContext(c, "/update-appointment"), uint(id), &req, metadata)
	if err != nil {
		if businessflow.IsAppointmentNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Appointment not found", "APPOINTMENT_NOT_FOUND", nil)
		}
		if businessflow.IsStatusRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Status is required", "APPOINTMENT_VALIDATION_FAILED", nil)
		}

		log.Println("Update appointment failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update appointment", "UPDATE_APPOINTMENT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Appointment updated successfully", fiber.Map{
		"appointment": result,
	})
}

// Delete removes an appointment
func (h *AppointmentHandler) Delete(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid appointment ID", "INVALID_APPOINTMENT_ID", nil)
	}

	ipAddress := c.IP()
	userAgent := c.Get("User-Agent")
	metadata := businessflow.NewClientMetadata(ipAddress, userAgent)

	if err := h.appointmentFlow.Delete(createRequestContext(c, "/delete-appointment"), uint(id), metadata); err != nil {
		if businessflow.IsAppointmentNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Appointment not found", "APPOINTMENT_NOT_FOUND", nil)
		}

		log.Println("Delete appointment failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete appointment", "DELETE_APPOINTMENT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Appointment deleted successfully", fiber.Map{
		"id": uint(id),
	})
}
