package configuration

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ConfigurationRepository интерфейс репозитория конфигурации
type ConfigurationRepository interface {
	Get(ctx context.Context) (*domain.Configuration, error)
	GetForUpdate(ctx context.Context) (*domain.Configuration, error)
	Update(ctx context.Context, cfg *domain.Configuration) (*domain.Configuration, error)
	EnsureDefault(ctx context.Context, cfg *domain.Configuration) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
