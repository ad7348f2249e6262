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

// EventHandlerInterface defines the contract for event handlers
type EventHandlerInterface interface {
	Create(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	eventFlow businessflow.EventFlow
	validator *validator.Validate
}

func (h *EventHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *EventHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventFlow businessflow.EventFlow) *EventHandler {
	return &EventHandler{
		eventFlow: eventFlow,
		validator: newValidator(),
	}
}

// Create handles event creation
func (h *EventHandler) Create(c fiber.Ctx) error {
	var req dto.EventRequest
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

	result, err := h.eventFlow.Create(createRequestContext(c, "/events"), &req, metadata)
	if err != nil {
		log.Println("Create event failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create event", "CREATE_EVENT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Event created successfully", fiber.Map{
		"event": result,
	})
}

// List returns all events
func (h *EventHandler) List(c fiber.Ctx) error {
	events, err := h.eventFlow.List(createRequestContext(c, "/events"), 0, 0)
	if err != nil {
		log.Println("List events failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list events", "LIST_EVENTS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Events retrieved successfully", fiber.Map{
		"events": events,
	})
}

// Update replaces an existing event
func (h *EventHandler) Update(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid event ID", "INVALID_EVENT_ID", nil)
	}

	var req dto.EventRequest
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

	result, err := h.eventFlow.Update(createRequestContext(c, "/events/:id"), uint(id), &req, metadata)
	if err != nil {
		if businessflow.IsEventNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Event not found", "EVENT_NOT_FOUND", nil)
		}

		log.Println("Update event failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update event", "UPDATE_EVENT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Event updated successfully", fiber.Map{
		"event": result,
	})
}

// Delete removes an event
func (h *EventHandler) Delete(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid event ID", "INVALID_EVENT_ID", nil)
	}

	ipAddress := c.IP()
	userAgent := c.Get("User-Agent")
	metadata := businessflow.NewClientMetadata(ipAddress, userAgent)

	if err := h.eventFlow.Delete(createRequestContext(c, "/events/:id"), uint(id), metadata); err != nil {
		if businessflow.IsEventNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Event not found", "EVENT_NOT_FOUND", nil)
		}

		log.Println("Delete event failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete event", "DELETE_EVENT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Event deleted successfully", fiber.Map{
		"id": uint(id),
	})
}
