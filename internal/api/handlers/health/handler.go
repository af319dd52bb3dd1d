package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	statusOK          = "ok"
	statusUnavailable = "unavailable"

	pingTimeout = 2 * time.Second
)

// Response тело ответа /health
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type Handler struct {
	deps   map[string]Pinger
	logger Logger
}

// NewHandler создает handler. deps: имя зависимости → её проверка.
func NewHandler(deps map[string]Pinger, logger Logger) *Handler {
	return &Handler{
		deps:   deps,
		logger: logger,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := Response{Status: statusOK, Checks: make(map[string]string, len(h.deps))}
	for name, dep := range h.deps {
		if err := dep.PingContext(ctx); err != nil {
			h.logger.Warn("GET /health - %s is unavailable: %v", name, err)
			resp.Checks[name] = statusUnavailable
			resp.Status = statusUnavailable
			continue
		}
		resp.Checks[name] = statusOK
	}

	status := http.StatusOK
	if resp.Status != statusOK {
		status = http.StatusServiceUnavailable
	}
	handlers.RespondJSON(w, status, resp)
}
