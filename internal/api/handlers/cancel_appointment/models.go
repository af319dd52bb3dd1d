package cancel_appointment

import (
	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	cancelAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	Date handlers.BodyField `json:"date"`
	Time handlers.BodyField `json:"time"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelAppointmentRequest) ToUseCaseRequest() *cancelAppointment.Request {
	return &cancelAppointment.Request{
		Date: string(r.Date),
		Time: string(r.Time),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:   resp.ID,
		Date: resp.Date.String(),
		Time: resp.Time.String(),
	}
}
