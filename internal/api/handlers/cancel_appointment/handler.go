package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	cancelAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
)

const (
	msgInvalidRequestBody   = "Request body must be a JSON object with fields `date` and `time`"
	msgConfigurationMissing = "Configuration is not initialized"
)

type Handler struct {
	useCase CancelAppointmentUseCase
	metrics Metrics
	logger  Logger
}

func NewHandler(useCase CancelAppointmentUseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle DELETE /appointments
// Слот передается в теле запроса: {date, time}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		if vErr, ok := domain.AsValidationError(err); ok {
			h.logger.Warn("DELETE /appointments - Validation failed: date=%q, time=%q, code=%s", req.Date, req.Time, vErr.Code)
			h.metrics.IncValidationRejection(vErr.Code)
			handlers.RespondValidationError(w, vErr)
			return
		}

		switch {
		case errors.Is(err, cancelAppointment.ErrConfigurationNotFound):
			h.logger.Error("DELETE /appointments - Configuration missing")
			handlers.RespondServiceUnavailable(w, msgConfigurationMissing)

		default:
			h.logger.Error("DELETE /appointments - Failed to cancel appointment: date=%q, time=%q, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncCancelled()

	h.logger.Info("DELETE /appointments - Appointment cancelled successfully: appointment_id=%d, date=%s, time=%s",
		result.ID, result.Date, result.Time)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
