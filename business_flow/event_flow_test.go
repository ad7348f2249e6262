// Package businessflow_test contains integration tests for temple events
package businessflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templeworks/Gopuram/app/dto"
	businessflow "github.com/templeworks/Gopuram/business_flow"
	"github.com/templeworks/Gopuram/config"
	"github.com/templeworks/Gopuram/repository"
	testingutil "github.com/templeworks/Gopuram/testing"
)

func setupEventFlowTest(t *testing.T) (*testingutil.TestFixtures, businessflow.EventFlow) {
	t.Helper()

	testDB, err := testingutil.SetupTestDB()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}
	t.Cleanup(func() {
		_ = testDB.TeardownTestDB()
	})

	// Cache disabled; the flow must work without Redis
	cacheConfig := &config.CacheConfig{Enabled: false}

	eventFlow := businessflow.NewEventFlow(repository.NewEventRepository(testDB.DB), nil, cacheConfig, testDB.DB)

	return testingutil.NewTestFixtures(testDB), eventFlow
}

func TestEventFlow(t *testing.T) {
	fixtures, flow := setupEventFlowTest(t)

	location := "Main prayer hall"

	t.Run("CreateAndList", func(t *testing.T) {
		created, err := flow.Create(context.Background(), &dto.EventRequest{
			Title:       "Navaratri celebrations",
			Description: "Nine evenings of music and dance",
			Date:        "2026-10-11T18:00",
			Location:    &location,
		}, testMetadata())
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		require.NotNil(t, created.Location)
		assert.Equal(t, location, *created.Location)

		events, err := flow.List(context.Background(), 0, 0)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("UpdateKeepsLocationWhenOmitted", func(t *testing.T) {
		created, err := flow.Create(context.Background(), &dto.EventRequest{
			Title:       "Annual chariot procession",
			Description: "Procession around the temple streets",
			Date:        "2026-11-02T09:00",
			Location:    &location,
		}, testMetadata())
		require.NoError(t, err)

		updated, err := flow.Update(context.Background(), created.ID, &dto.EventRequest{
			Title:       "Annual chariot procession",
			Description: "Procession rescheduled to the afternoon",
			Date:        "2026-11-02T15:00",
		}, testMetadata())
		require.NoError(t, err)

		assert.Equal(t, "2026-11-02T15:00", updated.Date)
		require.NotNil(t, updated.Location)
		assert.Equal(t, location, *updated.Location)
	})

	t.Run("UpdateNotFound", func(t *testing.T) {
		_, err := flow.Update(context.Background(), 999999, &dto.EventRequest{
			Title:       "Nope",
			Description: "Nope",
		}, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsEventNotFound(err))
	})

	t.Run("Delete", func(t *testing.T) {
		created, err := flow.Create(context.Background(), &dto.EventRequest{
			Title:       "To be removed",
			Description: "Temporary",
		}, testMetadata())
		require.NoError(t, err)

		err = flow.Delete(context.Background(), created.ID, testMetadata())
		require.NoError(t, err)

		err = flow.Delete(context.Background(), created.ID, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsEventNotFound(err))
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		require.NoError(t, fixtures.DB.DB.Exec("TRUNCATE TABLE events RESTART IDENTITY").Error)

		_, err := fixtures.CreateTestEvent("First event")
		require.NoError(t, err)
		_, err = fixtures.CreateTestEvent("Second event")
		require.NoError(t, err)

		events, err := flow.List(context.Background(), 0, 0)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "Second event", events[0].Title)
	})
}
