// Package businessflow contains the core business logic and use cases for the temple management workflows
package businessflow

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/templeworks/Gopuram/app/dto"
	"github.com/templeworks/Gopuram/config"
	"github.com/templeworks/Gopuram/models"
	"github.com/templeworks/Gopuram/repository"
	"github.com/templeworks/Gopuram/utils"
	"gorm.io/gorm"
)

// AnnouncementFlow handles announcement content management
type AnnouncementFlow interface {
	Create(ctx context.Context, req *dto.AnnouncementRequest, metadata *ClientMetadata) (*dto.AnnouncementDTO, error)
	List(ctx context.Context, limit, offset int) ([]dto.AnnouncementDTO, error)
	Update(ctx context.Context, id uint, req *dto.AnnouncementRequest, metadata *ClientMetadata) (*dto.AnnouncementDTO, error)
	Delete(ctx context.Context, id uint, metadata *ClientMetadata) error
}

// AnnouncementFlowImpl implements the announcement business flow
type AnnouncementFlowImpl struct {
	announcementRepo repository.AnnouncementRepository
	rc               *redis.Client
	cacheConfig      *config.CacheConfig
	db               *gorm.DB
}

// NewAnnouncementFlow creates a new announcement flow instance
func NewAnnouncementFlow(
	announcementRepo repository.AnnouncementRepository,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
	db *gorm.DB,
) AnnouncementFlow {
	return &AnnouncementFlowImpl{
		announcementRepo: announcementRepo,
		rc:               rc,
		cacheConfig:      cacheConfig,
		db:               db,
	}
}

// Create persists a new announcement and invalidates the cached list
func (s *AnnouncementFlowImpl) Create(ctx context.Context, req *dto.AnnouncementRequest, metadata *ClientMetadata) (*dto.AnnouncementDTO, error) {
	announcement := &models.Announcement{
		Title:       req.Title,
		Image:       req.Image,
		Description: req.Description,
	}

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.announcementRepo.Save(txCtx, announcement)
	})
	if err != nil {
		return nil, NewBusinessError("CREATE_ANNOUNCEMENT_FAILED", "Failed to create announcement", err)
	}

	s.invalidateListCache(ctx)

	result := ToAnnouncementDTO(*announcement)
	return &result, nil
}

// List returns all announcements, served from cache when available
func (s *AnnouncementFlowImpl) List(ctx context.Context, limit, offset int) ([]dto.AnnouncementDTO, error) {
	// Only the unpaginated listing is cached
	cacheable := limit == 0 && offset == 0

	if cacheable {
		if cached, ok := s.listFromCache(ctx); ok {
			return cached, nil
		}
	}

	announcements, err := s.announcementRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, NewBusinessError("LIST_ANNOUNCEMENTS_FAILED", "Failed to list announcements", err)
	}

	result := make([]dto.AnnouncementDTO, 0, len(announcements))
	for _, announcement := range announcements {
		result = append(result, ToAnnouncementDTO(*announcement))
	}

	if cacheable {
		s.storeListCache(ctx, result)
	}

	return result, nil
}

// Update replaces the content of an existing announcement
func (s *AnnouncementFlowImpl) Update(ctx context.Context, id uint, req *dto.AnnouncementRequest, metadata *ClientMetadata) (*dto.AnnouncementDTO, error) {
	var announcement *models.Announcement

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		announcement, err = s.announcementRepo.ByID(txCtx, id)
		if err != nil {
			return err
		}
		if announcement == nil {
			return ErrAnnouncementNotFound
		}

		announcement.Title = req.Title
		announcement.Description = req.Description
		if req.Image != nil {
			announcement.Image = req.Image
		}

		return s.announcementRepo.Update(txCtx, announcement)
	})

	if err != nil {
		if IsAnnouncementNotFound(err) {
			return nil, NewBusinessError("ANNOUNCEMENT_NOT_FOUND", "Announcement not found", err)
		}
		return nil, NewBusinessError("UPDATE_ANNOUNCEMENT_FAILED", "Failed to update announcement", err)
	}

	s.invalidateListCache(ctx)

	result := ToAnnouncementDTO(*announcement)
	return &result, nil
}

// Delete removes an announcement by its numeric ID
func (s *AnnouncementFlowImpl) Delete(ctx context.Context, id uint, metadata *ClientMetadata) error {
	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.announcementRepo.ByID(txCtx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrAnnouncementNotFound
		}

		return s.announcementRepo.Delete(txCtx, id)
	})

	if err != nil {
		if IsAnnouncementNotFound(err) {
			return NewBusinessError("ANNOUNCEMENT_NOT_FOUND", "Announcement not found", err)
		}
		return NewBusinessError("DELETE_ANNOUNCEMENT_FAILED", "Failed to delete announcement", err)
	}

	s.invalidateListCache(ctx)

	return nil
}

// Private helper methods

func (s *AnnouncementFlowImpl) cacheEnabled() bool {
	return s.rc != nil && s.cacheConfig != nil && s.cacheConfig.Enabled
}

func (s *AnnouncementFlowImpl) listFromCache(ctx context.Context) ([]dto.AnnouncementDTO, bool) {
	if !s.cacheEnabled() {
		return nil, false
	}

	key := cacheKey(*s.cacheConfig, utils.AnnouncementListCacheKey)
	bs, err := s.rc.Get(ctx, key).Bytes()
	if err != nil || len(bs) == 0 {
		return nil, false
	}

	var cached []dto.AnnouncementDTO
	if err := json.Unmarshal(bs, &cached); err != nil {
		return nil, false
	}

	return cached, true
}

func (s *AnnouncementFlowImpl) storeListCache(ctx context.Context, list []dto.AnnouncementDTO) {
	if !s.cacheEnabled() {
		return
	}

	bs, err := json.Marshal(list)
	if err != nil {
		return
	}

	key := cacheKey(*s.cacheConfig, utils.AnnouncementListCacheKey)
	_ = s.rc.Set(ctx, key, bs, s.cacheConfig.DefaultTTL).Err()
}

func (s *AnnouncementFlowImpl) invalidateListCache(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}

	key := cacheKey(*s.cacheConfig, utils.AnnouncementListCacheKey)
	_ = s.rc.Del(ctx, key).Err()
}

// cacheKey builds a namespaced redis key
func cacheKey(cfg config.CacheConfig, key string) string {
	return cfg.RedisPrefix + key
}
