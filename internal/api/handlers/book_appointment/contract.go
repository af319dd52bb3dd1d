package book_appointment

import (
	"context"

	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
)

type BookAppointmentUseCase interface {
	Execute(ctx context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error)
}

type Metrics interface {
	IncBooked()
	IncValidationRejection(code string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
