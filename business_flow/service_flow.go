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

// ServiceFlow handles temple service content management
type ServiceFlow interface {
	Create(ctx context.Context, req *dto.ServiceRequest, metadata *ClientMetadata) (*dto.ServiceDTO, error)
	List(ctx context.Context, limit, offset int) ([]dto.ServiceDTO, error)
	Update(ctx context.Context, id uint, req *dto.ServiceRequest, metadata *ClientMetadata) (*dto.ServiceDTO, error)
	Delete(ctx context.Context, id uint, metadata *ClientMetadata) error
}

// ServiceFlowImpl implements the temple service business flow
type ServiceFlowImpl struct {
	serviceRepo repository.ServiceRepository
	rc          *redis.Client
	cacheConfig *config.CacheConfig
	db          *gorm.DB
}

// NewServiceFlow creates a new temple service flow instance
func NewServiceFlow(
	serviceRepo repository.ServiceRepository,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
	db *gorm.DB,
) ServiceFlow {
	return &ServiceFlowImpl{
		serviceRepo: serviceRepo,
		rc:          rc,
		cacheConfig: cacheConfig,
		db:          db,
	}
}

// Create persists a new temple service and invalidates the cached list
func (s *ServiceFlowImpl) Create(ctx context.Context, req *dto.ServiceRequest, metadata *ClientMetadata) (*dto.ServiceDTO, error) {
	service := &models.Service{
		Title:       req.Title,
		Image:       req.Image,
		Description: req.Description,
		Cost:        req.Cost,
	}

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.serviceRepo.Save(txCtx, service)
	})
	if err != nil {
		return nil, NewBusinessError("CREATE_SERVICE_FAILED", "Failed to create service", err)
	}

	s.invalidateListCache(ctx)

	result := ToServiceDTO(*service)
	return &result, nil
}

// List returns all temple services, served from cache when available
func (s *ServiceFlowImpl) List(ctx context.Context, limit, offset int) ([]dto.ServiceDTO, error) {
	// Only the unpaginated listing is cached
	cacheable := limit == 0 && offset == 0

	if cacheable {
		if cached, ok := s.listFromCache(ctx); ok {
			return cached, nil
		}
	}

	services, err := s.serviceRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, NewBusinessError("LIST_SERVICES_FAILED", "Failed to list services", err)
	}

	result := make([]dto.ServiceDTO, 0, len(services))
	for _, service := range services {
		result = append(result, ToServiceDTO(*service))
	}

	if cacheable {
		s.storeListCache(ctx, result)
	}

	return result, nil
}

// Update replaces the content of an existing temple service
func (s *ServiceFlowImpl) Update(ctx context.Context, id uint, req *dto.ServiceRequest, metadata *ClientMetadata) (*dto.ServiceDTO, error) {
	var service *models.Service

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		service, err = s.serviceRepo.ByID(txCtx, id)
		if err != nil {
			return err
		}
		if service == nil {
			return ErrServiceNotFound
		}

		service.Title = req.Title
		service.Description = req.Description
		service.Cost = req.Cost
		if req.Image != nil {
			service.Image = req.Image
		}

		return s.serviceRepo.Update(txCtx, service)
	})

	if err != nil {
		if IsServiceNotFound(err) {
			return nil, NewBusinessError("SERVICE_NOT_FOUND", "Service not found", err)
		}
		return nil, NewBusinessError("UPDATE_SERVICE_FAILED", "Failed to update service", err)
	}

	s.invalidateListCache(ctx)

	result := ToServiceDTO(*service)
	return &result, nil
}

// Delete removes a temple service by its numeric ID
func (s *ServiceFlowImpl) Delete(ctx context.Context, id uint, metadata *ClientMetadata) error {
	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.serviceRepo.ByID(txCtx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrServiceNotFound
		}

		return s.serviceRepo.Delete(txCtx, id)
	})

	if err != nil {
		if IsServiceNotFound(err) {
			return NewBusinessError("SERVICE_NOT_FOUND", "Service not found", err)
		}
		return NewBusinessError("DELETE_SERVICE_FAILED", "Failed to delete service", err)
	}

	s.invalidateListCache(ctx)

	return nil
}

// Private helper methods

func (s *ServiceFlowImpl) cacheEnabled() bool {
	return s.rc != nil && s.cacheConfig != nil && s.cacheConfig.Enabled
}

func (s *ServiceFlowImpl) listFromCache(ctx context.Context) ([]dto.ServiceDTO, bool) {
	if !s.cacheEnabled() {
		return nil, false
	}

	key := cacheKey(*s.cacheConfig, utils.ServiceListCacheKey)
	bs, err := s.rc.Get(ctx, key).Bytes()
	if err != nil || len(bs) == 0 {
		return nil, false
	}

	var cached []dto.ServiceDTO
	if err := json.Unmarshal(bs, &cached); err != nil {
		return nil, false
	}

	return cached, true
}

func (s *ServiceFlowImpl) storeListCache(ctx context.Context, list []dto.ServiceDTO) {
	if !s.cacheEnabled() {
		return
	}

	bs, err := json.Marshal(list)
	if err != nil {
		return
	}

	key := cacheKey(*s.cacheConfig, utils.ServiceListCacheKey)
	_ = s.rc.Set(ctx, key, bs, s.cacheConfig.DefaultTTL).Err()
}

func (s *ServiceFlowImpl) invalidateListCache(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}

	key := cacheKey(*s.cacheConfig, utils.ServiceListCacheKey)
	_ = s.rc.Del(ctx, key).Err()
}
