// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/templeworks/Gopuram/models"
	"github.com/templeworks/Gopuram/utils"
	"gorm.io/gorm"
)

// AnnouncementRepositoryImpl implements AnnouncementRepository interface
type AnnouncementRepositoryImpl struct {
	*BaseRepository[models.Announcement, models.AnnouncementFilter]
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &AnnouncementRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Announcement, models.AnnouncementFilter](db),
	}
}

// ListAll retrieves announcements with pagination, newest first
func (r *AnnouncementRepositoryImpl) ListAll(ctx context.Context, limit, offset int) ([]*models.Announcement, error) {
	return r.ByFilter(ctx, models.AnnouncementFilter{}, "created_at DESC", limit, offset)
}

// Update persists the mutable fields of an announcement
func (r *AnnouncementRepositoryImpl) Update(ctx context.Context, announcement *models.Announcement) error {
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

	err = db.Model(&models.Announcement{}).
		Where("id = ?", announcement.ID).
		Updates(map[string]any{
			"title":       announcement.Title,
			"image":       announcement.Image,
			"description": announcement.Description,
			"updated_at":  utils.UTCNow(),
		}).Error

	if err != nil {
		return fmt.Errorf("failed to update announcement: %w", err)
	}

	return nil
}

// applyFilter applies filter criteria to a GORM query
func (r *AnnouncementRepositoryImpl) applyFilter(query *gorm.DB, filter models.AnnouncementFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}

	if filter.Title != nil {
		query = query.Where("title = ?", *filter.Title)
	}

	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}

	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}

	return query
}

// ByFilter retrieves announcements based on filter criteria
func (r *AnnouncementRepositoryImpl) ByFilter(ctx context.Context, filter models.AnnouncementFilter, orderBy string, limit, offset int) ([]*models.Announcement, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Announcement{}), filter)

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

	var announcements []*models.Announcement
	err := query.Find(&announcements).Error
	if err != nil {
		return nil, err
	}

	return announcements, nil
}

// Count returns the number of announcements matching the filter
func (r *AnnouncementRepositoryImpl) Count(ctx context.Context, filter models.AnnouncementFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Announcement{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any announcement matching the filter exists
func (r *AnnouncementRepositoryImpl) Exists(ctx context.Context, filter models.AnnouncementFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
