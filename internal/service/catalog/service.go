package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/catalog"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/catalog/models"
)

// Service сервис чтения каталога услуг
type Service struct {
	repo   ServiceRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo ServiceRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetByID получает активную услугу по ID
// Услуга с нарушенными инвариантами не отдаётся
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := svc.Validate(); err != nil {
		s.logger.Error("GetByID: service id=%d is misconfigured: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrServiceMisconfigured, err)
	}

	return models.FromDomainService(svc), nil
}
