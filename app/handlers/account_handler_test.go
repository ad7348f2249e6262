// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	businessflow "github.com/templeworks/Gopuram/business_flow"
)

func TestDeleteUserReturnsDeletedID(t *testing.T) {
	var deletedID uint
	accountFlow := &stubAccountFlow{
		deleteUserFn: func(ctx context.Context, userID uint) error {
			deletedID = userID
			return nil
		},
	}
	handler := NewAccountHandler(accountFlow)

	app := fiber.New()
	app.Delete("/delete-user/:id", handler.DeleteUser)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/delete-user/42", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, uint(42), deletedID)

	apiResp := decodeAPIResponse(t, resp)
	assert.True(t, apiResp.Success)

	data, ok := apiResp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), data["id"])
}

func TestDeleteUserNotFound(t *testing.T) {
	accountFlow := &stubAccountFlow{
		deleteUserFn: func(ctx context.Context, userID uint) error {
			return businessflow.NewBusinessError("USER_NOT_FOUND", "User not found", businessflow.ErrUserNotFound)
		},
	}
	handler := NewAccountHandler(accountFlow)

	app := fiber.New()
	app.Delete("/delete-user/:id", handler.DeleteUser)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/delete-user/42", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
