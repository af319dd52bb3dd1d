package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody   = "Request body must be a JSON object with fields `date` and `time`"
	msgConfigurationMissing = "Configuration is not initialized"
	msgIdempotencyMismatch  = "Idempotency-Key was already used for a different appointment"
	msgIdempotencyInFlight  = "A request with this Idempotency-Key is still being processed"
)

type Handler struct {
	useCase BookAppointmentUseCase
	metrics Metrics
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(r.Header.Get(IdempotencyKeyHeader)))
	if err != nil {
		if vErr, ok := domain.AsValidationError(err); ok {
			h.logger.Warn("POST /appointments - Validation failed: date=%q, time=%q, code=%s", req.Date, req.Time, vErr.Code)
			h.metrics.IncValidationRejection(vErr.Code)
			handlers.RespondValidationError(w, vErr)
			return
		}

		switch {
		case errors.Is(err, bookAppointment.ErrIdempotencyMismatch):
			h.logger.Warn("POST /appointments - Idempotency key mismatch: date=%q, time=%q", req.Date, req.Time)
			handlers.RespondConflict(w, domain.CodeIdempotencyMismatch, msgIdempotencyMismatch)

		case errors.Is(err, bookAppointment.ErrIdempotencyInProgress):
			h.logger.Warn("POST /appointments - Idempotency key in progress: date=%q, time=%q", req.Date, req.Time)
			handlers.RespondConflict(w, domain.CodeIdempotencyInProgress, msgIdempotencyInFlight)

		case errors.Is(err, bookAppointment.ErrConfigurationNotFound):
			h.logger.Error("POST /appointments - Configuration missing")
			handlers.RespondServiceUnavailable(w, msgConfigurationMissing)

		default:
			h.logger.Error("POST /appointments - Failed to book appointment: date=%q, time=%q, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Replayed {
		h.metrics.IncBooked()
	}

	h.logger.Info("POST /appointments - Appointment booked successfully: appointment_id=%d, date=%s, time=%s, replayed=%t",
		result.ID, result.Date, result.Time, result.Replayed)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
