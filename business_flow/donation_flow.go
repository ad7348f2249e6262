// Package businessflow contains the core business logic and use cases for the temple management workflows
package businessflow

import (
	"context"
	"strconv"
	"time"

	"github.com/templeworks/Gopuram/app/dto"
	"github.com/templeworks/Gopuram/models"
	"github.com/templeworks/Gopuram/repository"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// DonationFlow handles donation records
type DonationFlow interface {
	Add(ctx context.Context, req *dto.AddDonationRequest, metadata *ClientMetadata) (*dto.DonationDTO, error)
	List(ctx context.Context, limit, offset int) ([]dto.DonationDTO, error)
	ExportXLSX(ctx context.Context) (string, []byte, error)
}

// DonationFlowImpl implements the donation business flow
type DonationFlowImpl struct {
	donationRepo repository.DonationRepository
	db           *gorm.DB
}

// NewDonationFlow creates a new donation flow instance
func NewDonationFlow(donationRepo repository.DonationRepository, db *gorm.DB) DonationFlow {
	return &DonationFlowImpl{
		donationRepo: donationRepo,
		db:           db,
	}
}

// Add records a donation
func (df *DonationFlowImpl) Add(ctx context.Context, req *dto.AddDonationRequest, metadata *ClientMetadata) (*dto.DonationDTO, error) {
	if req.Amount <= 0 {
		return nil, NewBusinessError("DONATION_VALIDATION_FAILED", ErrAmountTooLow.Error(), ErrAmountTooLow)
	}

	donation := &models.Donation{
		FullName: req.FullName,
		Email:    req.Email,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Zip:      req.Zip,
		CardName: req.CardName,
		Amount:   req.Amount,
	}

	err := repository.WithTransaction(ctx, df.db, func(txCtx context.Context) error {
		return df.donationRepo.Save(txCtx, donation)
	})
	if err != nil {
		return nil, NewBusinessError("ADD_DONATION_FAILED", "Failed to record donation", err)
	}

	result := ToDonationDTO(*donation)
	return &result, nil
}

// List returns all donation records
func (df *DonationFlowImpl) List(ctx context.Context, limit, offset int) ([]dto.DonationDTO, error) {
	donations, err := df.donationRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, NewBusinessError("LIST_DONATIONS_FAILED", "Failed to list donations", err)
	}

	result := make([]dto.DonationDTO, 0, len(donations))
	for _, donation := range donations {
		result = append(result, ToDonationDTO(*donation))
	}

	return result, nil
}

// ExportXLSX builds a spreadsheet of all donations and returns the filename
// and file contents
func (df *DonationFlowImpl) ExportXLSX(ctx context.Context) (string, []byte, error) {
	donations, err := df.donationRepo.ListAll(ctx, 0, 0)
	if err != nil {
		return "", nil, NewBusinessError("LIST_DONATIONS_FAILED", "Failed to list donations", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := "Donations"
	xl.SetSheetName(xl.GetSheetName(0), sheet)

	header := []string{"id", "full_name", "email", "address", "city", "state", "zip", "card_name", "amount", "created_at"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for i, donation := range donations {
		record := []string{
			strconv.FormatUint(uint64(donation.ID), 10),
			donation.FullName,
			donation.Email,
			donation.Address,
			donation.City,
			donation.State,
			donation.Zip,
			donation.CardName,
			strconv.FormatInt(donation.Amount, 10),
			donation.CreatedAt.UTC().Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	return "donations.xlsx", buf.Bytes(), nil
}
