package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Default configuration values
const (
	DefaultSlotDuration           = 30
	DefaultMaxSlotsPerAppointment = 1
	DefaultOperationalStart       = "09:00"
	DefaultOperationalEnd         = "18:00"
	DefaultIsWeekendOff           = true
)

// Business validation constants
const (
	MinSlotDuration           = 5
	MinSlotsPerAppointment    = 1
	MaxSlotsPerAppointment    = 5
	UnavailableHourLengthMins = 60
)

// ConfigurationID the configuration is a singleton row with a fixed id
const ConfigurationID int64 = 1

// Time format constants
const (
	TimeFormat = "15:04"          // HH:MM
	DateFormat = types.DateLayout // YYYY-MM-DD
)

// ListSeparator separates entries of daysOff and unavailableHours
const ListSeparator = ","
