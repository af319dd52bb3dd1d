package update_configuration

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/configuration"
	"github.com/m04kA/SMC-AppointmentService/internal/service/configuration/models"
)

const (
	msgInvalidRequestBody   = "Request body must be a JSON object"
	msgConfigurationMissing = "Configuration is not initialized"
)

type Handler struct {
	service ConfigurationService
	metrics Metrics
	logger  Logger
}

func NewHandler(service ConfigurationService, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle PATCH /configuration
// Передаются только изменяемые поля; пустое тело возвращает текущую конфигурацию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateConfigurationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /configuration - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cfg, err := h.service.Update(r.Context(), &req)
	if err != nil {
		if vErr, ok := domain.AsValidationError(err); ok {
			h.logger.Warn("PATCH /configuration - Validation failed: code=%s, message=%s", vErr.Code, vErr.Message)
			h.metrics.IncValidationRejection(vErr.Code)
			handlers.RespondValidationError(w, vErr)
			return
		}

		switch {
		case errors.Is(err, configuration.ErrConfigurationNotFound):
			h.logger.Error("PATCH /configuration - Configuration missing")
			handlers.RespondServiceUnavailable(w, msgConfigurationMissing)

		default:
			h.logger.Error("PATCH /configuration - Failed to update configuration: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /configuration - Configuration updated successfully")
	handlers.RespondJSON(w, http.StatusOK, cfg)
}
