// Package businessflow_test contains integration tests for announcements, services, and donations
package businessflow_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templeworks/Gopuram/app/dto"
	businessflow "github.com/templeworks/Gopuram/business_flow"
	"github.com/templeworks/Gopuram/config"
	"github.com/templeworks/Gopuram/repository"
	testingutil "github.com/templeworks/Gopuram/testing"
	"github.com/xuri/excelize/v2"
)

func setupContentFlowTest(t *testing.T) (*testingutil.TestFixtures, businessflow.AnnouncementFlow, businessflow.ServiceFlow, businessflow.DonationFlow) {
	t.Helper()

	testDB, err := testingutil.SetupTestDB()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}
	t.Cleanup(func() {
		_ = testDB.TeardownTestDB()
	})

	// Cache disabled; the flows must work without Redis
	cacheConfig := &config.CacheConfig{Enabled: false}

	announcementFlow := businessflow.NewAnnouncementFlow(repository.NewAnnouncementRepository(testDB.DB), nil, cacheConfig, testDB.DB)
	serviceFlow := businessflow.NewServiceFlow(repository.NewServiceRepository(testDB.DB), nil, cacheConfig, testDB.DB)
	donationFlow := businessflow.NewDonationFlow(repository.NewDonationRepository(testDB.DB), testDB.DB)

	return testingutil.NewTestFixtures(testDB), announcementFlow, serviceFlow, donationFlow
}

func TestAnnouncementFlow(t *testing.T) {
	_, flow, _, _ := setupContentFlowTest(t)

	image := "data:image/png;base64,iVBORw0KGgo="

	t.Run("CreateAndList", func(t *testing.T) {
		created, err := flow.Create(context.Background(), &dto.AnnouncementRequest{
			Title:       "Diwali celebrations",
			Description: "Evening puja followed by prasad distribution",
			Image:       &image,
		}, testMetadata())
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		require.NotNil(t, created.Image)
		assert.Equal(t, image, *created.Image)

		announcements, err := flow.List(context.Background(), 0, 0)
		require.NoError(t, err)
		assert.Len(t, announcements, 1)
	})

	t.Run("UpdateKeepsImageWhenOmitted", func(t *testing.T) {
		created, err := flow.Create(context.Background(), &dto.AnnouncementRequest{
			Title:       "Temple renovation",
			Description: "East wing closed this week",
			Image:       &image,
		}, testMetadata())
		require.NoError(t, err)

		updated, err := flow.Update(context.Background(), created.ID, &dto.AnnouncementRequest{
			Title:       "Temple renovation extended",
			Description: "East wing closed until further notice",
		}, testMetadata())
		require.NoError(t, err)

		assert.Equal(t, "Temple renovation extended", updated.Title)
		require.NotNil(t, updated.Image)
		assert.Equal(t, image, *updated.Image)
	})

	t.Run("UpdateNotFound", func(t *testing.T) {
		_, err := flow.Update(context.Background(), 999999, &dto.AnnouncementRequest{
			Title:       "Nope",
			Description: "Nope",
		}, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsAnnouncementNotFound(err))
	})

	t.Run("Delete", func(t *testing.T) {
		created, err := flow.Create(context.Background(), &dto.AnnouncementRequest{
			Title:       "To be removed",
			Description: "Temporary",
		}, testMetadata())
		require.NoError(t, err)

		err = flow.Delete(context.Background(), created.ID, testMetadata())
		require.NoError(t, err)

		err = flow.Delete(context.Background(), created.ID, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsAnnouncementNotFound(err))
	})
}

func TestServiceFlow(t *testing.T) {
	_, _, flow, _ := setupContentFlowTest(t)

	t.Run("CreateAndList", func(t *testing.T) {
		created, err := flow.Create(context.Background(), &dto.ServiceRequest{
			Title:       "Abhishekam",
			Description: "Morning ritual offering",
			Cost:        5100,
		}, testMetadata())
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, int64(5100), created.Cost)

		services, err := flow.List(context.Background(), 0, 0)
		require.NoError(t, err)
		assert.Len(t, services, 1)
	})

	t.Run("Update", func(t *testing.T) {
		created, err := flow.Create(context.Background(), &dto.ServiceRequest{
			Title:       "Archana",
			Description: "Name and star recital",
			Cost:        1100,
		}, testMetadata())
		require.NoError(t, err)

		updated, err := flow.Update(context.Background(), created.ID, &dto.ServiceRequest{
			Title:       "Archana",
			Description: "Name and star recital",
			Cost:        2100,
		}, testMetadata())
		require.NoError(t, err)
		assert.Equal(t, int64(2100), updated.Cost)
	})

	t.Run("DeleteNotFound", func(t *testing.T) {
		err := flow.Delete(context.Background(), 999999, testMetadata())
		require.Error(t, err)
		assert.True(t, businessflow.IsServiceNotFound(err))
	})
}

func TestDonationFlow(t *testing.T) {
	fixtures, _, _, flow := setupContentFlowTest(t)

	t.Run("Add", func(t *testing.T) {
		result, err := flow.Add(context.Background(), &dto.AddDonationRequest{
			FullName: "Jane Donor",
			Email:    "jane.donor@example.com",
			Address:  "123 Temple Street",
			City:     "Springfield",
			State:    "IL",
			Zip:      "62701",
			CardName: "Jane Donor",
			Amount:   10000,
		}, testMetadata())
		require.NoError(t, err)
		assert.NotZero(t, result.ID)
		assert.Equal(t, int64(10000), result.Amount)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		for _, amount := range []int64{0, -500} {
			_, err := flow.Add(context.Background(), &dto.AddDonationRequest{
				FullName: "Jane Donor",
				Email:    "jane.donor@example.com",
				Amount:   amount,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsAmountTooLow(err))
		}
	})

	t.Run("List", func(t *testing.T) {
		_, err := fixtures.CreateTestDonation(2500)
		require.NoError(t, err)

		donations, err := flow.List(context.Background(), 0, 0)
		require.NoError(t, err)
		assert.NotEmpty(t, donations)
	})

	t.Run("ExportXLSX", func(t *testing.T) {
		_, err := fixtures.CreateTestDonation(7500)
		require.NoError(t, err)

		filename, content, err := flow.ExportXLSX(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "donations.xlsx", filename)
		require.NotEmpty(t, content)

		workbook, err := excelize.OpenReader(bytes.NewReader(content))
		require.NoError(t, err)
		defer workbook.Close()

		rows, err := workbook.GetRows("Donations")
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(rows), 2)

		header := rows[0]
		assert.Equal(t, "full_name", header[1])
		assert.Equal(t, "amount", header[8])
	})
}
