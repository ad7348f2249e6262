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

// EventFlow handles temple event content management
type EventFlow interface {
	Create(ctx context.Context, req *dto.EventRequest, metadata *ClientMetadata) (*dto.EventDTO, error)
	List(ctx context.Context, limit, offset int) ([]dto.EventDTO, error)
	Update(ctx context.Context, id uint, req *dto.EventRequest, metadata *ClientMetadata) (*dto.EventDTO, error)
	Delete(ctx context.Context, id uint, metadata *ClientMetadata) error
}

// EventFlowImpl implements the event business flow
type EventFlowImpl struct {
	eventRepo   repository.EventRepository
	rc          *redis.Client
	cacheConfig *config.CacheConfig
	db          *gorm.DB
}

// NewEventFlow creates a new event flow instance
func NewEventFlow(
	eventRepo repository.EventRepository,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
	db *gorm.DB,
) EventFlow {
	return &EventFlowImpl{
		eventRepo:   eventRepo,
		rc:          rc,
		cacheConfig: cacheConfig,
		db:          db,
	}
}

// Create persists a new event and invalidates the cached list
func (s *EventFlowImpl) Create(ctx context.Context, req *dto.EventRequest, metadata *ClientMetadata) (*dto.EventDTO, error) {
	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
	}

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.eventRepo.Save(txCtx, event)
	})
	if err != nil {
		return nil, NewBusinessError("CREATE_EVENT_FAILED", "Failed to create event", err)
	}

	s.invalidateListCache(ctx)

	result := ToEventDTO(*event)
	return &result, nil
}

// List returns all events, served from cache when available
func (s *EventFlowImpl) List(ctx context.Context, limit, offset int) ([]dto.EventDTO, error) {
	// Only the unpaginated listing is cached
	cacheable := limit == 0 && offset == 0

	if cacheable {
		if cached, ok := s.listFromCache(ctx); ok {
			return cached, nil
		}
	}

	events, err := s.eventRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, NewBusinessError("LIST_EVENTS_FAILED", "Failed to list events", err)
	}

	result := make([]dto.EventDTO, 0, len(events))
	for _, event := range events {
		result = append(result, ToEventDTO(*event))
	}

	if cacheable {
		s.storeListCache(ctx, result)
	}

	return result, nil
}

// Update replaces the content of an existing event
func (s *EventFlowImpl) Update(ctx context.Context, id uint, req *dto.EventRequest, metadata *ClientMetadata) (*dto.EventDTO, error) {
	var event *models.Event

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		event, err = s.eventRepo.ByID(txCtx, id)
		if err != nil {
			return err
		}
		if event == nil {
			return ErrEventNotFound
		}

		event.Title = req.Title
		event.Description = req.Description
		event.Date = req.Date
		if req.Location != nil {
			event.Location = req.Location
		}

		return s.eventRepo.Update(txCtx, event)
	})

	if err != nil {
		if IsEventNotFound(err) {
			return nil, NewBusinessError("EVENT_NOT_FOUND", "Event not found", err)
		}
		return nil, NewBusinessError("UPDATE_EVENT_FAILED", "Failed to update event", err)
	}

	s.invalidateListCache(ctx)

	result := ToEventDTO(*event)
	return &result, nil
}

// Delete removes an event by its numeric ID
func (s *EventFlowImpl) Delete(ctx context.Context, id uint, metadata *ClientMetadata) error {
	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.eventRepo.ByID(txCtx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrEventNotFound
		}

		return s.eventRepo.Delete(txCtx, id)
	})

	if err != nil {
		if IsEventNotFound(err) {
			return NewBusinessError("EVENT_NOT_FOUND", "Event not found", err)
		}
		return NewBusinessError("DELETE_EVENT_FAILED", "Failed to delete event", err)
	}

	s.invalidateListCache(ctx)

	return nil
}

// Private helper methods

func (s *EventFlowImpl) cacheEnabled() bool {
	return s.rc != nil && s.cacheConfig != nil && s.cacheConfig.Enabled
}

func (s *EventFlowImpl) listFromCache(ctx context.Context) ([]dto.EventDTO, bool) {
	if !s.cacheEnabled() {
		return nil, false
	}

	key := cacheKey(*s.cacheConfig, utils.EventListCacheKey)
	bs, err := s.rc.Get(ctx, key).Bytes()
	if err != nil || len(bs) == 0 {
		return nil, false
	}

	var cached []dto.EventDTO
	if err := json.Unmarshal(bs, &cached); err != nil {
		return nil, false
	}

	return cached, true
}

func (s *EventFlowImpl) storeListCache(ctx context.Context, list []dto.EventDTO) {
	if !s.cacheEnabled() {
		return
	}

	bs, err := json.Marshal(list)
	if err != nil {
		return
	}

	key := cacheKey(*s.cacheConfig, utils.EventListCacheKey)
	_ = s.rc.Set(ctx, key, bs, s.cacheConfig.DefaultTTL).Err()
}

func (s *EventFlowImpl) invalidateListCache(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}

	key := cacheKey(*s.cacheConfig, utils.EventListCacheKey)
	_ = s.rc.Del(ctx, key).Err()
}
