package overrides

import (
	"context"
	"errors"
	"fmt"

	overrideRepo "github.com/glowbook/selection-engine/internal/infra/storage/override"
	"github.com/glowbook/selection-engine/internal/service/overrides/models"
)

// Service сервис персональных настроек пар услуга+мастер.
// Настройка меняет только действующую запись, запись каталога не трогается
type Service struct {
	repo     OverrideRepository
	resolver EffectiveResolver
	logger   Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo OverrideRepository, resolver EffectiveResolver, logger Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
	}
}

// Upsert создает или обновляет настройку пары
// Повторная запись той же пары перезаписывает значения целиком
func (s *Service) Upsert(ctx context.Context, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("Upsert: service=%s, professional=%s", req.ServiceID, req.ProfessionalID)

	if err := validateUpsert(req); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.repo.Upsert(ctx, req.ToDomainOverride())
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	// Прежние действующие записи всех сессий устарели
	s.resolver.DropAll()

	s.logger.Info("Upsert: successfully saved override id=%d", saved.ID)
	return models.FromDomainOverride(saved), nil
}

// Get получает настройку конкретной пары
func (s *Service) Get(ctx context.Context, serviceID, professionalID string) (*models.OverrideResponse, error) {
	s.logger.Info("Get: service=%s, professional=%s", serviceID, professionalID)

	if serviceID == "" || professionalID == "" {
		return nil, fmt.Errorf("%w: serviceID and professionalID are required", ErrInvalidInput)
	}

	override, err := s.repo.GetByServiceAndProfessional(ctx, serviceID, professionalID)
	if err != nil {
		if errors.Is(err, overrideRepo.ErrOverrideNotFound) {
			s.logger.Warn("Get: override not found, service=%s, professional=%s", serviceID, professionalID)
			return nil, ErrOverrideNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOverride(override), nil
}

// GetAllByService получает все настройки услуги по мастерам
func (s *Service) GetAllByService(ctx context.Context, serviceID string) (*models.OverrideListResponse, error) {
	s.logger.Info("GetAllByService: service=%s", serviceID)

	if serviceID == "" {
		return nil, fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	list, err := s.repo.GetAllByService(ctx, serviceID)
	if err != nil {
		s.logger.Error("GetAllByService: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllByService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByService: fetched %d overrides for service=%s", len(list), serviceID)
	return models.FromDomainOverrideList(list), nil
}

// Delete удаляет настройку пары, пара возвращается к каскаду салона и каталога
func (s *Service) Delete(ctx context.Context, serviceID, professionalID string) error {
	s.logger.Info("Delete: service=%s, professional=%s", serviceID, professionalID)

	if serviceID == "" || professionalID == "" {
		return fmt.Errorf("%w: serviceID and professionalID are required", ErrInvalidInput)
	}

	if err := s.repo.Delete(ctx, serviceID, professionalID); err != nil {
		if errors.Is(err, overrideRepo.ErrOverrideNotFound) {
			s.logger.Warn("Delete: override not found, service=%s, professional=%s", serviceID, professionalID)
			return ErrOverrideNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.resolver.DropAll()

	s.logger.Info("Delete: successfully deleted override, service=%s, professional=%s", serviceID, professionalID)
	return nil
}

// validateUpsert валидирует запрос на запись настройки
func validateUpsert(req *models.UpsertOverrideRequest) error {
	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}
	if req.ProfessionalID == "" {
		return fmt.Errorf("%w: professionalID is required", ErrInvalidInput)
	}
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Price != nil && *req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}
	return nil
}
