package cancel_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	configurationRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/configuration"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
)

// UseCase use case для отмены записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigurationRepository
	txManager       TransactionManager
	validator       *schedule.Validator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ConfigurationRepository,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		txManager:       txManager,
		validator:       schedule.NewValidator(loc),
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отмены.
// Удаляется ровно одна запись на слот: та, что создана раньше остальных.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: date=%q, time=%q", req.Date, req.Time)

	// 1. Получаем конфигурацию
	cfg, err := uc.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configurationRepo.ErrConfigNotFound) {
			uc.logger.Error("CancelAppointment: configuration row is missing")
			return nil, ErrConfigurationNotFound
		}
		uc.logger.Error("CancelAppointment: failed to get configuration: %v", err)
		return nil, fmt.Errorf("%w: failed to get configuration: %v", ErrInternal, err)
	}

	// 2. Валидация запроса
	key, err := uc.validator.ValidateCancellation(cfg, req.Date, req.Time, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("CancelAppointment: validation failed: %v", err)
		return nil, err
	}

	// 3. Находим и удаляем запись под блокировкой слота
	var deleted *domain.Appointment
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.appointmentRepo.LockSlot(txCtx, key); err != nil {
			uc.logger.Error("CancelAppointment: failed to lock slot %s: %v", key, err)
			return fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
		}

		appointment, err := uc.appointmentRepo.FindFirstBySlot(txCtx, key)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CancelAppointment: no appointment at %s", key)
				return schedule.NothingToCancelError()
			}
			uc.logger.Error("CancelAppointment: failed to find appointment at %s: %v", key, err)
			return fmt.Errorf("%w: failed to find appointment: %v", ErrInternal, err)
		}

		if err := uc.appointmentRepo.Delete(txCtx, appointment.ID); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return schedule.NothingToCancelError()
			}
			uc.logger.Error("CancelAppointment: failed to delete appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to delete appointment: %v", ErrInternal, err)
		}

		deleted = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelAppointment: appointment id=%d at %s cancelled", deleted.ID, key)

	return &Response{
		ID:   deleted.ID,
		Date: deleted.Date,
		Time: deleted.Time,
	}, nil
}
