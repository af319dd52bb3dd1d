package cancel_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	LockSlot(ctx context.Context, key domain.SlotKey) error
	FindFirstBySlot(ctx context.Context, key domain.SlotKey) (*domain.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

// ConfigurationRepository интерфейс репозитория конфигурации
type ConfigurationRepository interface {
	Get(ctx context.Context) (*domain.Configuration, error)
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
