// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templeworks/Gopuram/app/dto"
	businessflow "github.com/templeworks/Gopuram/business_flow"
)

// stubAppointmentFlow lets handler tests script appointment flow outcomes
type stubAppointmentFlow struct {
	deleteFn func(ctx context.Context, id uint) error
}

func (s *stubAppointmentFlow) Book(ctx context.Context, req *dto.BookAppointmentRequest, metadata *businessflow.ClientMetadata) (*dto.AppointmentDTO, error) {
	return &dto.AppointmentDTO{}, nil
}

func (s *stubAppointmentFlow) List(ctx context.Context, limit, offset int) ([]dto.AppointmentDTO, error) {
	return nil, nil
}

func (s *stubAppointmentFlow) UpdateStatus(ctx context.Context, id uint, req *dto.UpdateAppointmentRequest, metadata *businessflow.ClientMetadata) (*dto.AppointmentDTO, error) {
	return &dto.AppointmentDTO{}, nil
}

func (s *stubAppointmentFlow) Delete(ctx context.Context, id uint, metadata *businessflow.ClientMetadata) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func TestDeleteAppointmentReturnsDeletedID(t *testing.T) {
	appointmentFlow := &stubAppointmentFlow{
		deleteFn: func(ctx context.Context, id uint) error {
			return nil
		},
	}
	handler := NewAppointmentHandler(appointmentFlow)

	app := fiber.New()
	app.Delete("/delete-appointment/:id", handler.Delete)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/delete-appointment/7", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	apiResp := decodeAPIResponse(t, resp)
	assert.True(t, apiResp.Success)

	data, ok := apiResp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), data["id"])
}

func TestDeleteAppointmentNotFound(t *testing.T) {
	appointmentFlow := &stubAppointmentFlow{
		deleteFn: func(ctx context.Context, id uint) error {
			return businessflow.NewBusinessError("APPOINTMENT_NOT_FOUND", "Appointment not found", businessflow.ErrAppointmentNotFound)
		},
	}
	handler := NewAppointmentHandler(appointmentFlow)

	app := fiber.New()
	app.Delete("/delete-appointment/:id", handler.Delete)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/delete-appointment/7", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
