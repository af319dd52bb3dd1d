package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	configurationRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/configuration"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigurationRepository
	validator       *schedule.Validator
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ConfigurationRepository,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		validator:       schedule.NewValidator(loc),
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов.
// Прошедшие слоты не отфильтровываются: список отражает сетку дня целиком.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%q", req.Date)

	// 1. Проверяем дату
	date, err := uc.validator.ValidateSlotsQuery(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем конфигурацию
	cfg, err := uc.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configurationRepo.ErrConfigNotFound) {
			uc.logger.Error("GetAvailableSlots: configuration row is missing")
			return nil, ErrConfigurationNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get configuration: %v", err)
		return nil, fmt.Errorf("%w: failed to get configuration: %v", ErrInternal, err)
	}

	// 3. Выходной: слоты не предлагаются, в БД не ходим
	if cfg.IsWeekendBlocked(date) {
		uc.logger.Info("GetAvailableSlots: %s is a weekend, no slots", date)
		return &Response{Date: date, Slots: []domain.AvailableSlot{}}, nil
	}

	// 4. Получаем записи на дату
	appointments, err := uc.appointmentRepo.FindMany(ctx, domain.AppointmentFilter{Date: date})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Считаем оставшуюся вместимость каждого слота
	slots := schedule.CalculateAvailability(cfg, date, appointments)

	uc.logger.Info("GetAvailableSlots: generated %d slots for date=%s (%d appointments)",
		len(slots), date, len(appointments))

	return &Response{Date: date, Slots: slots}, nil
}
