package book_appointment

import (
	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
)

// IdempotencyKeyHeader заголовок с ключом идемпотентности
const IdempotencyKeyHeader = "Idempotency-Key"

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	Date handlers.BodyField `json:"date"` // "2025-06-16"
	Time handlers.BodyField `json:"time"` // "09:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest(idempotencyKey string) *bookAppointment.Request {
	return &bookAppointment.Request{
		Date:           string(r.Date),
		Time:           string(r.Time),
		IdempotencyKey: idempotencyKey,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:   resp.ID,
		Date: resp.Date.String(),
		Time: resp.Time.String(),
	}
}
