package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache/idempotency"
	configurationRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/configuration"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
)

// idempotencyTimeout таймаут операций с ключом идемпотентности после завершения транзакции
const idempotencyTimeout = 2 * time.Second

// UseCase use case для записи на слот
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigurationRepository
	idempotency     IdempotencyStore
	txManager       TransactionManager
	validator       *schedule.Validator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// idempotencyStore может быть nil: тогда заголовок Idempotency-Key игнорируется.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ConfigurationRepository,
	idempotencyStore IdempotencyStore,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		idempotency:     idempotencyStore,
		txManager:       txManager,
		validator:       schedule.NewValidator(loc),
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case записи.
// Проверка вместимости и вставка идут в одной транзакции под блокировкой слота,
// поэтому параллельные запросы не могут превысить maxSlotsPerAppointment.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: date=%q, time=%q", req.Date, req.Time)

	// 1. Получаем конфигурацию
	cfg, err := uc.getConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Валидация запроса (все проверки, кроме вместимости)
	now := uc.timeProvider.Now()
	key, err := uc.validator.ValidateBooking(cfg, req.Date, req.Time, now)
	if err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 3. Ключ идемпотентности: повтор отдаем из хранилища, новый резервируем
	reserved := false
	if req.IdempotencyKey != "" && uc.idempotency != nil {
		replay, ok, err := uc.reserveIdempotencyKey(ctx, req.IdempotencyKey, key)
		if err != nil {
			return nil, err
		}
		if replay != nil {
			return replay, nil
		}
		reserved = ok
	}

	// 4. Проверяем вместимость и создаем запись в транзакции
	var created *domain.Appointment
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.appointmentRepo.LockSlot(txCtx, key); err != nil {
			uc.logger.Error("BookAppointment: failed to lock slot %s: %v", key, err)
			return fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
		}

		// конфигурация могла измениться, пока ждали блокировку: повторяем все проверки
		fresh, err := uc.getConfiguration(txCtx)
		if err != nil {
			return err
		}
		if _, err := uc.validator.ValidateBooking(fresh, req.Date, req.Time, now); err != nil {
			uc.logger.Warn("BookAppointment: validation failed against current configuration: %v", err)
			return err
		}

		booked, err := uc.appointmentRepo.CountBySlot(txCtx, key)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to count appointments for %s: %v", key, err)
			return fmt.Errorf("%w: failed to count appointments: %v", ErrInternal, err)
		}

		if err := schedule.CheckCapacity(fresh, booked); err != nil {
			uc.logger.Warn("BookAppointment: slot %s is full (%d/%d)", key, booked, fresh.MaxSlotsPerAppointment)
			return err
		}

		created, err = uc.appointmentRepo.Create(txCtx, &domain.Appointment{Date: key.Date, Time: key.Time})
		if err != nil {
			uc.logger.Error("BookAppointment: failed to create appointment for %s: %v", key, err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if reserved {
			uc.releaseIdempotencyKey(ctx, req.IdempotencyKey)
		}
		return nil, err
	}

	// 5. Сохраняем результат под ключом идемпотентности
	if reserved {
		storeCtx, cancel := detachedContext(ctx)
		if err := uc.idempotency.Complete(storeCtx, req.IdempotencyKey, created); err != nil {
			uc.logger.Warn("BookAppointment: failed to store idempotency result: %v", err)
		}
		cancel()
	}

	uc.logger.Info("BookAppointment: appointment id=%d created for %s", created.ID, key)

	return &Response{
		ID:   created.ID,
		Date: created.Date,
		Time: created.Time,
	}, nil
}

func (uc *UseCase) getConfiguration(ctx context.Context) (*domain.Configuration, error) {
	cfg, err := uc.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configurationRepo.ErrConfigNotFound) {
			uc.logger.Error("BookAppointment: configuration row is missing")
			return nil, ErrConfigurationNotFound
		}
		uc.logger.Error("BookAppointment: failed to get configuration: %v", err)
		return nil, fmt.Errorf("%w: failed to get configuration: %v", ErrInternal, err)
	}
	return cfg, nil
}

// reserveIdempotencyKey возвращает сохраненный ответ для повторного запроса
// или резервирует ключ за текущим. Недоступность Redis не блокирует запись:
// запрос выполняется без идемпотентности.
func (uc *UseCase) reserveIdempotencyKey(ctx context.Context, idemKey string, slot domain.SlotKey) (*Response, bool, error) {
	rec, err := uc.idempotency.Get(ctx, idemKey)
	switch {
	case err == nil:
		if !rec.Matches(slot) {
			uc.logger.Warn("BookAppointment: idempotency key reused for %s (was %s %s)", slot, rec.Date, rec.Time)
			return nil, false, ErrIdempotencyMismatch
		}
		if rec.Status != idempotency.StatusCompleted {
			uc.logger.Warn("BookAppointment: idempotency key for %s is still in progress", slot)
			return nil, false, ErrIdempotencyInProgress
		}
		uc.logger.Info("BookAppointment: replaying appointment id=%d for %s", rec.AppointmentID, slot)
		return &Response{ID: rec.AppointmentID, Date: slot.Date, Time: slot.Time, Replayed: true}, false, nil
	case errors.Is(err, idempotency.ErrRecordNotFound):
	default:
		uc.logger.Warn("BookAppointment: idempotency store unavailable, continuing without it: %v", err)
		return nil, false, nil
	}

	ok, err := uc.idempotency.Reserve(ctx, idemKey, slot)
	if err != nil {
		uc.logger.Warn("BookAppointment: failed to reserve idempotency key, continuing without it: %v", err)
		return nil, false, nil
	}
	if !ok {
		// ключ занял параллельный запрос между Get и Reserve
		return nil, false, ErrIdempotencyInProgress
	}
	return nil, true, nil
}

// releaseIdempotencyKey освобождает ключ даже если клиент уже отключился,
// иначе повторы получали бы IDEMPOTENCY-02 до истечения TTL
func (uc *UseCase) releaseIdempotencyKey(ctx context.Context, idemKey string) {
	releaseCtx, cancel := detachedContext(ctx)
	defer cancel()

	if err := uc.idempotency.Release(releaseCtx, idemKey); err != nil {
		uc.logger.Warn("BookAppointment: failed to release idempotency key: %v", err)
	}
}

// detachedContext контекст без отмены родителя, ограниченный idempotencyTimeout
func detachedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), idempotencyTimeout)
}
