package cancel_appointment

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Request модель запроса на отмену записи
type Request struct {
	Date string // Дата в сыром виде из тела запроса
	Time string // Время в сыром виде из тела запроса
}

// Response модель ответа с удаленной записью
type Response struct {
	ID   int64
	Date types.Date
	Time types.TimeString
}
