package configuration

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	configurationRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/configuration"
	"github.com/m04kA/SMC-AppointmentService/internal/service/configuration/models"
)

// Service сервис для работы с конфигурацией расписания
type Service struct {
	configRepo ConfigurationRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigurationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		configRepo: configRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Get возвращает текущую конфигурацию
func (s *Service) Get(ctx context.Context) (*models.ConfigurationResponse, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configurationRepo.ErrConfigNotFound) {
			s.logger.Error("Get: configuration row is missing")
			return nil, ErrConfigurationNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfiguration(cfg), nil
}

// Update частично обновляет конфигурацию: непереданные поля сохраняют прежние значения.
// Чтение, проверка и запись выполняются в одной транзакции с блокировкой строки.
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigurationRequest) (*models.ConfigurationResponse, error) {
	s.logger.Info("Update: updating configuration")

	var result *domain.Configuration

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем текущую конфигурацию с блокировкой
		current, err := s.configRepo.GetForUpdate(txCtx)
		if err != nil {
			if errors.Is(err, configurationRepo.ErrConfigNotFound) {
				s.logger.Error("Update: configuration row is missing")
				return ErrConfigurationNotFound
			}
			s.logger.Error("Update: repository error: %v", err)
			return fmt.Errorf("%w: Update - get configuration: %v", ErrInternal, err)
		}

		// 2. Пустой запрос ничего не меняет
		if req.IsEmpty() {
			result = current
			return nil
		}

		// 3. Валидируем поля с учетом текущих значений
		patch, err := validatePatch(current, req)
		if err != nil {
			s.logger.Warn("Update: validation failed: %v", err)
			return err
		}

		// 4. Применяем изменения к копии и сохраняем
		updated := current.Clone()
		patch.ApplyToConfiguration(updated)

		saved, err := s.configRepo.Update(txCtx, updated)
		if err != nil {
			s.logger.Error("Update: repository error: %v", err)
			return fmt.Errorf("%w: Update - save configuration: %v", ErrInternal, err)
		}

		result = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: configuration updated (slotDuration=%d, maxSlots=%d, window=%s-%s, weekendOff=%t)",
		result.SlotDuration, result.MaxSlotsPerAppointment,
		result.OperationalStart, result.OperationalEnd, result.IsWeekendOff)
	return models.FromDomainConfiguration(result), nil
}

// EnsureDefault создает конфигурацию по умолчанию, если её ещё нет
func (s *Service) EnsureDefault(ctx context.Context, defaults *domain.Configuration) error {
	created, err := s.configRepo.EnsureDefault(ctx, defaults)
	if err != nil {
		s.logger.Error("EnsureDefault: repository error: %v", err)
		return fmt.Errorf("%w: EnsureDefault - repository error: %v", ErrInternal, err)
	}

	if created {
		s.logger.Info("EnsureDefault: default configuration created")
	}
	return nil
}
