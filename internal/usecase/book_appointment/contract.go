package book_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache/idempotency"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	LockSlot(ctx context.Context, key domain.SlotKey) error
	CountBySlot(ctx context.Context, key domain.SlotKey) (int, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// ConfigurationRepository интерфейс репозитория конфигурации
type ConfigurationRepository interface {
	Get(ctx context.Context) (*domain.Configuration, error)
}

// IdempotencyStore интерфейс хранилища ключей идемпотентности
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*idempotency.Record, error)
	Reserve(ctx context.Context, key string, slot domain.SlotKey) (bool, error)
	Complete(ctx context.Context, key string, appointment *domain.Appointment) error
	Release(ctx context.Context, key string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
