package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

const msgConfigurationMissing = "Configuration is not initialized"

type Handler struct {
	useCase GetAvailableSlotsUseCase
	metrics Metrics
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle GET /appointments/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(date))
	if err != nil {
		if vErr, ok := domain.AsValidationError(err); ok {
			h.logger.Warn("GET /appointments/slots - Validation failed: date=%q, code=%s", date, vErr.Code)
			h.metrics.IncValidationRejection(vErr.Code)
			handlers.RespondValidationError(w, vErr)
			return
		}

		switch {
		case errors.Is(err, getAvailableSlots.ErrConfigurationNotFound):
			h.logger.Error("GET /appointments/slots - Configuration missing")
			handlers.RespondServiceUnavailable(w, msgConfigurationMissing)

		default:
			h.logger.Error("GET /appointments/slots - Failed to get slots: date=%q, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/slots - Slots retrieved successfully: date=%s, slots_count=%d",
		result.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
