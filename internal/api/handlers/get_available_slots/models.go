package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlot HTTP response model
type AvailableSlot struct {
	Date           string `json:"date"`
	Time           string `json:"time"`
	AvailableSlots int    `json:"available_slots"`
}

// ToUseCaseRequest формирует запрос к use case из query параметров
func ToUseCaseRequest(date string) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{Date: date}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) []AvailableSlot {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Date:           slot.Date.String(),
			Time:           slot.Time.String(),
			AvailableSlots: slot.AvailableSlots,
		}
	}
	return slots
}
