package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	FindMany(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// ConfigurationRepository интерфейс репозитория конфигурации
type ConfigurationRepository interface {
	Get(ctx context.Context) (*domain.Configuration, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
