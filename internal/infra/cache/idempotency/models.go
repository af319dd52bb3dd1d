package idempotency

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Status состояние запроса с ключом идемпотентности
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Record то, что хранится под ключом идемпотентности
type Record struct {
	Status        Status `json:"status"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	AppointmentID int64  `json:"appointmentId,omitempty"`
}

// Matches проверяет, что повторный запрос пришел с теми же date и time
func (r *Record) Matches(key domain.SlotKey) bool {
	return r.Date == key.Date.String() && r.Time == key.Time.String()
}
