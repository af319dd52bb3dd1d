package get_configuration

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/configuration"
)

const msgConfigurationMissing = "Configuration is not initialized"

type Handler struct {
	service ConfigurationService
	logger  Logger
}

func NewHandler(service ConfigurationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /configuration
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Get(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, configuration.ErrConfigurationNotFound):
			h.logger.Error("GET /configuration - Configuration missing")
			handlers.RespondServiceUnavailable(w, msgConfigurationMissing)

		default:
			h.logger.Error("GET /configuration - Failed to get configuration: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /configuration - Configuration retrieved successfully")
	handlers.RespondJSON(w, http.StatusOK, cfg)
}
