// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/templeworks/Gopuram/models"
	"github.com/templeworks/Gopuram/utils"
	"gorm.io/gorm"
)

// ServiceRepositoryImpl implements ServiceRepository interface
type ServiceRepositoryImpl struct {
	*BaseRepository[models.Service, models.ServiceFilter]
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &ServiceRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Service, models.ServiceFilter](db),
	}
}

// ListAll retrieves services with pagination, newest first
func (r *ServiceRepositoryImpl) ListAll(ctx context.Context, limit, offset int) ([]*models.Service, error) {
	return r.ByFilter(ctx, models.ServiceFilter{}, "created_at DESC", limit, offset)
}

// Update persists the mutable fields of a service
func (r *ServiceRepositoryImpl) Update(ctx context.Context, service *models.Service) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Model(&models.Service{}).
		Where("id = ?", service.ID).
		Updates(map[string]any{
			"title":       service.Title,
			"image":       service.Image,
			"description": service.Description,
			"cost":        service.Cost,
			"updated_at":  utils.UTCNow(),
		}).Error

	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	return nil
}

// applyFilter applies filter criteria to a GORM query
func (r *ServiceRepositoryImpl) applyFilter(query *gorm.DB, filter models.ServiceFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}

	if filter.Title != nil {
		query = query.Where("title = ?", *filter.Title)
	}

	if filter.CostBelow != nil {
		query = query.Where("cost < ?", *filter.CostBelow)
	}

	if filter.CostAbove != nil {
		query = query.Where("cost > ?", *filter.CostAbove)
	}

	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}

	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}

	return query
}

// ByFilter retrieves services based on filter criteria
func (r *ServiceRepositoryImpl) ByFilter(ctx context.Context, filter models.ServiceFilter, orderBy string, limit, offset int) ([]*models.Service, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Service{}), filter)

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

	var services []*models.Service
	err := query.Find(&services).Error
	if err != nil {
		return nil, err
	}

	return services, nil
}

// Count returns the number of services matching the filter
func (r *ServiceRepositoryImpl) Count(ctx context.Context, filter models.ServiceFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Service{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any service matching the filter exists
func (r *ServiceRepositoryImpl) Exists(ctx context.Context, filter models.ServiceFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
