package get_configuration

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/configuration/models"
)

type ConfigurationService interface {
	Get(ctx context.Context) (*models.ConfigurationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
