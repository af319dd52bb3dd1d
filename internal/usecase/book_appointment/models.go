package book_appointment

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Request модель запроса на запись
type Request struct {
	Date           string // Дата в сыром виде из тела запроса
	Time           string // Время в сыром виде из тела запроса
	IdempotencyKey string // Заголовок Idempotency-Key, может быть пустым
}

// Response модель ответа с созданной записью
type Response struct {
	ID       int64
	Date     types.Date
	Time     types.TimeString
	Replayed bool // Ответ восстановлен по ключу идемпотентности, новая запись не создавалась
}
