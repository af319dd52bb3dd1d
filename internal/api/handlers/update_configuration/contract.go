package update_configuration

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/configuration/models"
)

type ConfigurationService interface {
	Update(ctx context.Context, req *models.UpdateConfigurationRequest) (*models.ConfigurationResponse, error)
}

type Metrics interface {
	IncValidationRejection(code string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
