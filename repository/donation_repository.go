// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/templeworks/Gopuram/models"
	"gorm.io/gorm"
)

// DonationRepositoryImpl implements DonationRepository interface
type DonationRepositoryImpl struct {
	*BaseRepository[models.Donation, models.DonationFilter]
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &DonationRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Donation, models.DonationFilter](db),
	}
}

// ListAll retrieves donations with pagination, newest first
func (r *DonationRepositoryImpl) ListAll(ctx context.Context, limit, offset int) ([]*models.Donation, error) {
	return r.ByFilter(ctx, models.DonationFilter{}, "created_at DESC", limit, offset)
}

// applyFilter applies filter criteria to a GORM query
func (r *DonationRepositoryImpl) applyFilter(query *gorm.DB, filter models.DonationFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}

	if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	}

	if filter.AmountAbove != nil {
		query = query.Where("amount > ?", *filter.AmountAbove)
	}

	if filter.AmountBelow != nil {
		query = query.Where("amount < ?", *filter.AmountBelow)
	}

	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}

	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}

	return query
}

// ByFilter retrieves donations based on filter criteria
func (r *DonationRepositoryImpl) ByFilter(ctx context.Context, filter models.DonationFilter, orderBy string, limit, offset int) ([]*models.Donation, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Donation{}), filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var donations []*models.Donation
	err := query.Find(&donations).Error
	if err != nil {
		return nil, err
	}

	return donations, nil
}

// Count returns the number of donations matching the filter
func (r *DonationRepositoryImpl) Count(ctx context.Context, filter models.DonationFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Donation{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any donation matching the filter exists
func (r *DonationRepositoryImpl) Exists(ctx context.Context, filter models.DonationFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
