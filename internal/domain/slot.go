package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// AvailableSlot is the remaining capacity of one slot on a date
type AvailableSlot struct {
	Date           types.Date
	Time           types.TimeString
	AvailableSlots int
}

// IsFull returns true if the slot cannot take more bookings
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSlots <= 0
}
