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

// ServiceHandlerInterface defines the contract for temple service handlers
type ServiceHandlerInterface interface {
	Create(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// ServiceHandler handles temple service HTTP requests
type ServiceHandler struct {
	serviceFlow businessflow.ServiceFlow
	validator   *validator.Validate
}

func (h *ServiceHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ServiceHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewServiceHandler creates a new temple service handler
func NewServiceHandler(serviceFlow businessflow.ServiceFlow) *ServiceHandler {
	return &ServiceHandler{
		serviceFlow: serviceFlow,
		validator:   newValidator(),
	}
}

// bindServiceRequest accepts either a JSON body or a multipart form with a
// serviceImage file that gets inlined as a data URI
func (h *ServiceHandler) bindServiceRequest(c fiber.Ctx) (*dto.ServiceRequest, error) {
	var req dto.ServiceRequest

	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		req.Title = c.FormValue("title")
		req.Description = c.FormValue("description")

		if cost, err := strconv.ParseInt(c.FormValue("cost"), 10, 64); err == nil {
			req.Cost = cost
		}

		if fileHeader, err := c.FormFile("serviceImage"); err == nil && fileHeader != nil {
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

// Create handles temple service creation
func (h *ServiceHandler) Create(c fiber.Ctx) error {
	req, err := h.bindServiceRequest(c)
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

	result, err := h.serviceFlow.Create(createRequestContext(c, "/create-service"), req, metadata)
	if err != nil {
		log.Println("Create service failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create service", "CREATE_SERVICE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Service created successfully", fiber.Map{
		"service": result,
	})
}

// List returns all temple services
func (h *ServiceHandler) List(c fiber.Ctx) error {
	services, err := h.serviceFlow.List(createRequestContext(c, "/get-services"), 0, 0)
	if err != nil {
		log.Println("List services failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list services", "LIST_SERVICES_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Services retrieved successfully", fiber.Map{
		"services": services,
	})
}

// Update replaces an existing temple service
func (h *ServiceHandler) Update(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid service ID", "INVALID_SERVICE_ID", nil)
	}

	req, err := h.bindServiceRequest(c)
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

	result, err := h.serviceFlow.Update(createRequestContext(c, "/update-service"), uint(id), req, metadata)
	if err != nil {
		if businessflow.IsServiceNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Service not found", "SERVICE_NOT_FOUND", nil)
		}

		log.Println("Update service failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update service", "UPDATE_SERVICE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Service updated successfully", fiber.Map{
		"service": result,
	})
}

// Delete removes a temple service
func (h *ServiceHandler) Delete(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid service ID", "INVALID_SERVICE_ID", nil)
	}

	ipAddress := c.IP()
	userAgent := c.Get("User-Agent")
	metadata := businessflow.NewClientMetadata(ipAddress, userAgent)

	if err := h.serviceFlow.Delete(createRequestContext(c, "/delete-service"), uint(id), metadata); err != nil {
		if businessflow.IsServiceNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Service not found", "SERVICE_NOT_FOUND", nil)
		}

		log.Println("Delete service failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete service", "DELETE_SERVICE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Service deleted successfully", fiber.Map{
		"id": uint(id),
	})
}
