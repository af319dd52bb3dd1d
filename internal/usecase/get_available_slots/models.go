package get_available_slots

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	Date string // Дата в сыром виде из query, формат проверяет usecase
}

// Response модель ответа со списком слотов
type Response struct {
	Date  types.Date             // Дата, на которую запрашивались слоты
	Slots []domain.AvailableSlot // Слоты по порядку сетки; пусто для закрытого выходного
}
