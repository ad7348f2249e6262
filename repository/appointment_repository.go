// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/templeworks/Gopuram/models"
	"github.com/templeworks/Gopuram/utils"
	"gorm.io/gorm"
)

// AppointmentRepositoryImpl implements AppointmentRepository interface
type AppointmentRepositoryImpl struct {
	*BaseRepository[models.Appointment, models.AppointmentFilter]
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &AppointmentRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Appointment, models.AppointmentFilter](db),
	}
}

// ListAll retrieves appointments with pagination, newest first
func (r *AppointmentRepositoryImpl) ListAll(ctx context.Context, limit, offset int) ([]*models.Appointment, error) {
	return r.ByFilter(ctx, models.AppointmentFilter{}, "created_at DESC", limit, offset)
}

// UpdateStatus replaces the status of an appointment and returns the updated record
func (r *AppointmentRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status string) (*models.Appointment, error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return nil, err
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

	err = db.Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": utils.UTCNow(),
		}).Error

	if err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}

	var appointment models.Appointment
	err = db.Last(&appointment, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to reload appointment: %w", err)
	}

	return &appointment, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *AppointmentRepositoryImpl) applyFilter(query *gorm.DB, filter models.AppointmentFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}

	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}

	if filter.EmpID != nil {
		query = query.Where("emp_id = ?", *filter.EmpID)
	}

	if filter.PriestID != nil {
		query = query.Where("priest_id = ?", *filter.PriestID)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}

	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}

	return query
}

// ByFilter retrieves appointments based on filter criteria
func (r *AppointmentRepositoryImpl) ByFilter(ctx context.Context, filter models.AppointmentFilter, orderBy string, limit, offset int) ([]*models.Appointment, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Appointment{}), filter)

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

	var appointments []*models.Appointment
	err := query.Find(&appointments).Error
	if err != nil {
		return nil, err
	}

	return appointments, nil
}

// Count returns the number of appointments matching the filter
func (r *AppointmentRepositoryImpl) Count(ctx context.Context, filter models.AppointmentFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Appointment{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any appointment matching the filter exists
func (r *AppointmentRepositoryImpl) Exists(ctx context.Context, filter models.AppointmentFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
