// Package businessflow contains the core business logic and use cases for the temple management workflows
package businessflow

import (
	"context"

	"github.com/google/uuid"
	"github.com/templeworks/Gopuram/app/dto"
	"github.com/templeworks/Gopuram/models"
	"github.com/templeworks/Gopuram/repository"
	"gorm.io/gorm"
)

// AppointmentFlow handles the appointment booking lifecycle
type AppointmentFlow interface {
	Book(ctx context.Context, req *dto.BookAppointmentRequest, metadata *ClientMetadata) (*dto.AppointmentDTO, error)
	List(ctx context.Context, limit, offset int) ([]dto.AppointmentDTO, error)
	UpdateStatus(ctx context.Context, id uint, req *dto.UpdateAppointmentRequest, metadata *ClientMetadata) (*dto.AppointmentDTO, error)
	Delete(ctx context.Context, id uint, metadata *ClientMetadata) error
}

// AppointmentFlowImpl implements the appointment business flow
type AppointmentFlowImpl struct {
	appointmentRepo repository.AppointmentRepository
	db              *gorm.DB
}

// NewAppointmentFlow creates a new appointment flow instance
func NewAppointmentFlow(appointmentRepo repository.AppointmentRepository, db *gorm.DB) AppointmentFlow {
	return &AppointmentFlowImpl{
		appointmentRepo: appointmentRepo,
		db:              db,
	}
}

// Book validates required booking fields and persists a new appointment.
// The first missing field determines the error so callers get one
// actionable message at a time.
func (af *AppointmentFlowImpl) Book(ctx context.Context, req *dto.BookAppointmentRequest, metadata *ClientMetadata) (*dto.AppointmentDTO, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, NewBusinessError("APPOINTMENT_VALIDATION_FAILED", err.Error(), err)
	}

	status := req.Status
	if status == "" {
		status = models.AppointmentStatusPending
	}

	appointment := &models.Appointment{
		UUID:       uuid.New(),
		EmpID:      req.EmpID,
		PriestID:   req.PriestID,
		PriestName: req.PriestName,
		Title:      req.Title,
		FirstName:  req.FirstName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		Date:       req.Date,
		Status:     status,
	}

	err := repository.WithTransaction(ctx, af.db, func(txCtx context.Context) error {
		return af.appointmentRepo.Save(txCtx, appointment)
	})
	if err != nil {
		return nil, NewBusinessError("BOOK_APPOINTMENT_FAILED", "Failed to book appointment", err)
	}

	result := ToAppointmentDTO(*appointment)
	return &result, nil
}

// List returns all appointments
func (af *AppointmentFlowImpl) List(ctx context.Context, limit, offset int) ([]dto.AppointmentDTO, error) {
	appointments, err := af.appointmentRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, NewBusinessError("LIST_APPOINTMENTS_FAILED", "Failed to list appointments", err)
	}

	result := make([]dto.AppointmentDTO, 0, len(appointments))
	for _, appointment := range appointments {
		result = append(result, ToAppointmentDTO(*appointment))
	}

	return result, nil
}

// UpdateStatus changes the status of an existing appointment
func (af *AppointmentFlowImpl) UpdateStatus(ctx context.Context, id uint, req *dto.UpdateAppointmentRequest, metadata *ClientMetadata) (*dto.AppointmentDTO, error) {
	if req.Status == "" {
		return nil, NewBusinessError("APPOINTMENT_VALIDATION_FAILED", ErrStatusRequired.Error(), ErrStatusRequired)
	}

	var updated *models.Appointment

	err := repository.WithTransaction(ctx, af.db, func(txCtx context.Context) error {
		existing, err := af.appointmentRepo.ByID(txCtx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrAppointmentNotFound
		}

		updated, err = af.appointmentRepo.UpdateStatus(txCtx, id, req.Status)
		return err
	})

	if err != nil {
		if IsAppointmentNotFound(err) {
			return nil, NewBusinessError("APPOINTMENT_NOT_FOUND", "Appointment not found", err)
		}
		return nil, NewBusinessError("UPDATE_APPOINTMENT_FAILED", "Failed to update appointment", err)
	}

	result := ToAppointmentDTO(*updated)
	return &result, nil
}

// Delete removes an appointment by its numeric ID
func (af *AppointmentFlowImpl) Delete(ctx context.Context, id uint, metadata *ClientMetadata) error {
	err := repository.WithTransaction(ctx, af.db, func(txCtx context.Context) error {
		existing, err := af.appointmentRepo.ByID(txCtx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrAppointmentNotFound
		}

		return af.appointmentRepo.Delete(txCtx, id)
	})

	if err != nil {
		if IsAppointmentNotFound(err) {
			return NewBusinessError("APPOINTMENT_NOT_FOUND", "Appointment not found", err)
		}
		return NewBusinessError("DELETE_APPOINTMENT_FAILED", "Failed to delete appointment", err)
	}

	return nil
}

// Private helper methods

func validateBookingRequest(req *dto.BookAppointmentRequest) error {
	if req.Title == "" {
		return ErrAppointmentTitleRequired
	}
	if req.FirstName == "" {
		return ErrAppointmentNameRequired
	}
	if req.PriestID == "" {
		return ErrPriestIDRequired
	}
	if req.Date == "" {
		return ErrDateRequired
	}
	return nil
}
