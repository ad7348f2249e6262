// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/templeworks/Gopuram/app/dto"
	businessflow "github.com/templeworks/Gopuram/business_flow"
)

// AnnouncementHandlerInterface defines the contract for announcement handlers
type AnnouncementHandlerInterface interface {
	Create(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// AnnouncementHandler handles announcement-related HTTP requests
type AnnouncementHandler struct {
	announcementFlow businessflow.AnnouncementFlow
	validator        *validator.Validate
}

func (h *AnnouncementHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AnnouncementHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(announcementFlow businessflow.AnnouncementFlow) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementFlow: announcementFlow,
		validator:        newValidator(),
	}
}

// bindAnnouncementRequest accepts either a JSON body or a multipart form with
// an announcementImage file that gets inlined as a data URI
func (h *AnnouncementHandler) bindAnnouncementRequest(c fiber.Ctx) (*dto.AnnouncementRequest, error) {
	var req dto.AnnouncementRequest

	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		req.Title = c.FormValue("title")
		req.Description = c.FormValue("description")

		if fileHeader, err := c.FormFile("announcementImage"); err == nil && fileHeader != nil {
			dataURI, err := fileToDataURI(fileHeader)
			if err != nil {
				return nil, err
			}
			req.Image = &dataURI
		}
	} else {
		if err := c.Bind().JSON(&req); err != nil {
			return nil, err
		}
	}

	return &req, nil
}

// Create handles announcement creation
func (h *AnnouncementHandler) Create(c fiber.Ctx) error {
	req, err := h.bindAnnouncementRequest(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	ipAddress := c.IP()
	userAgent := c.Get("User-Agent")
	metadata := businessflow.NewClientMetadata(ipAddress, userAgent)

	result, err := h.announcementFlow.Create(createRequestContext(c, "/create-announcement"), req, metadata)
	if err != nil {
		log.Println("Create announcement failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create announcement", "CREATE_ANNOUNCEMENT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Announcement created successfully", fiber.Map{
		"announcement": result,
	})
}

// List returns all announcements
func (h *AnnouncementHandler) List(c fiber.Ctx) error {
	announcements, err := h.announcementFlow.List(createRequestContext(c, "/get-announcements"), 0, 0)
	if err != nil {
		log.Println("List announcements failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list announcements", "LIST_ANNOUNCEMENTS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Announcements retrieved successfully", fiber.Map{
		"announcements": announcements,
	})
}

// Update replaces an existing announcement
func (h *AnnouncementHandler) Update(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid announcement ID", "INVALID_ANNOUNCEMENT_ID", nil)
	}

	req, err := h.bindAnnouncementRequest(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	ipAddress := c.IP()
	userAgent := c.Get("User-Agent")
	metadata := businessflow.NewClientMetadata(ipAddress, userAgent)

	result, err := h.announcementFlow.Update(createRequestContext(c, "/update-announcement"), uint(id), req, metadata)
	if err != nil {
		if businessflow.IsAnnouncementNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Announcement not found", "ANNOUNCEMENT_NOT_FOUND", nil)
		}

		log.Println("Update announcement failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update announcement", "UPDATE_ANNOUNCEMENT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Announcement updated successfully", fiber.Map{
		"announcement": result,
	})
}

// Delete removes an announcement
func (h *AnnouncementHandler) Delete(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid announcement ID", "INVALID_ANNOUNCEMENT_ID", nil)
	}

	ipAddress := c.IP()
	userAgent := c.Get("User-Agent")
	metadata := businessflow.NewClientMetadata(ipAddress, userAgent)

	if err := h.announcementFlow.Delete(createRequestContext(c, "/delete-announcement"), uint(id), metadata); err != nil {
		if businessflow.IsAnnouncementNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Announcement not found", "ANNOUNCEMENT_NOT_FOUND", nil)
		}

		log.Println("Delete announcement failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete announcement", "DELETE_ANNOUNCEMENT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Announcement deleted successfully", fiber.Map{
		"id": uint(id),
	})
}
