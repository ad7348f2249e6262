// Package businessflow_test contains integration tests for the appointment lifecycle
package businessflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templeworks/Gopuram/app/dto"
	businessflow "github.com/templeworks/Gopuram/business_flow"
	"github.com/templeworks/Gopuram/models"
	"github.com/templeworks/Gopuram/repository"
	testingutil "github.com/templeworks/Gopuram/testing"
)

func setupAppointmentFlowTest(t *testing.T) (*testingutil.TestFixtures, businessflow.AppointmentFlow) {
	t.Helper()

	testDB, err := testingutil.SetupTestDB()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}
	t.Cleanup(func() {
		_ = testDB.TeardownTestDB()
	})

	appointmentRepo := repository.NewAppointmentRepository(testDB.DB)
	flow := businessflow.NewAppointmentFlow(appointmentRepo, testDB.DB)

	return testingutil.NewTestFixtures(testDB), flow
}

func bookingRequest() *dto.BookAppointmentRequest {
	return &dto.BookAppointmentRequest{
		Title:      "Housewarming ceremony",
		FirstName:  "John",
		PriestID:   "12345",
		PriestName: "Pandit Sharma",
		Date:       "2026-09-01T10:00",
		EmpID:      "54321",
		Email:      "john.doe@example.com",
		Phone:      "+15550100",
	}
}

func TestAppointmentFlowBook(t *testing.T) {
	_, flow := setupAppointmentFlowTest(t)

	t.Run("SuccessfulBooking", func(t *testing.T) {
		result, err := flow.Book(context.Background(), bookingRequest(), testMetadata())
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.NotZero(t, result.ID)
		assert.NotEmpty(t, result.UUID)
		assert.Equal(t, "Housewarming ceremony", result.Title)
		assert.Equal(t, "12345", result.PriestID)
		assert.Equal(t, models.AppointmentStatusPending, result.Status)
	})

	t.Run("ExplicitStatusKept", func(t *testing.T) {
		req := bookingRequest()
		req.Status = "Confirmed"

		result, err := flow.Book(context.Background(), req, testMetadata())
		require.NoError(t, err)
		assert.Equal(t, "Confirmed", result.Status)
	})

	t.Run("MissingFields", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*dto.BookAppointmentRequest)
			check  func(error) bool
		}{
			{"Title", func(r *dto.BookAppointmentRequest) { r.Title = "" }, businessflow.IsAppointmentTitleRequired},
			{"FirstName", func(r *dto.BookAppointmentRequest) { r.FirstName = "" }, businessflow.IsAppointmentNameRequired},
			{"PriestID", func(r *dto.BookAppointmentRequest) { r.PriestID = "" }, businessflow.IsPriestIDRequired},
			{"Date", func(r *dto.BookAppointmentRequest) { r.Date = "" }, businessflow.IsDateRequired},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := bookingRequest()
				tc.mutate(req)

				_, err := flow.Book(context.Background(), req, testMetadata())
				require.Error(t, err)
				assert.True(t, tc.check(err))
			})
		}
	})
}

func TestAppointmentFlowList(t *testing.T) {
	fixtures, flow := setupAppointmentFlowTest(t)

	_, err := fixtures.CreateTestAppointment("54321", "12345")
	require.NoError(t, err)
	_, err = fixtures.CreateTestAppointment("54322", "12345")
	require.NoError(t, err)

	appointments, err := flow.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, appointments, 2)
}

func TestAppointmentFlowUpdateStatus(t *testing.T) {
	fixtures, flow := setupAppointmentFlowTest(t)

	t.Run("SuccessfulUpdate", func(t *testing.T) {
		appointment, err := fixtures.CreateTestAppointment("54321", "12345")
		require.NoError(t, err)

		result, err := flow.UpdateStatus(context.Background(), appointment.ID, &dto.UpdateAppointmentRequest{
			Status: "Approved",
		}, testMetadata())
		require.NoError(t, err)
		assert.Equal(t, "Approved", result.Status)
		assert.Equal(t, appointment.ID, result.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := flow.UpdateStatus(context.Background(), 999999, &dto.UpdateAppointmentRequest{
			Status: "Approved",
		}, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsAppointmentNotFound(err))
	})

	t.Run("MissingStatus", func(t *testing.T) {
		appointment, err := fixtures.CreateTestAppointment("54321", "12345")
		require.NoError(t, err)

		_, err = flow.UpdateStatus(context.Background(), appointment.ID, &dto.UpdateAppointmentRequest{}, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsStatusRequired(err))
	})
}

func TestAppointmentFlowDelete(t *testing.T) {
	fixtures, flow := setupAppointmentFlowTest(t)

	t.Run("SuccessfulDelete", func(t *testing.T) {
		appointment, err := fixtures.CreateTestAppointment("54321", "12345")
		require.NoError(t, err)

		err = flow.Delete(context.Background(), appointment.ID, testMetadata())
		require.NoError(t, err)

		appointments, err := flow.List(context.Background(), 0, 0)
		require.NoError(t, err)
		for _, a := range appointments {
			assert.NotEqual(t, appointment.ID, a.ID)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := flow.Delete(context.Background(), 999999, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsAppointmentNotFound(err))
	})
}
