package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Appointment is a single booking of one slot
type Appointment struct {
	ID        int64
	Date      types.Date
	Time      types.TimeString
	CreatedAt time.Time
}

// SlotKey identifies a bookable (date, time) pair
type SlotKey struct {
	Date types.Date
	Time types.TimeString
}

// String returns "YYYY-MM-DD HH:MM"
func (k SlotKey) String() string {
	return k.Date.String() + " " + k.Time.String()
}

// Key returns the slot the appointment occupies
func (a *Appointment) Key() SlotKey {
	return SlotKey{Date: a.Date, Time: a.Time}
}

// AppointmentFilter selects appointments of a date, optionally narrowed to one time
type AppointmentFilter struct {
	Date types.Date
	Time types.TimeString // zero value means any time
}
