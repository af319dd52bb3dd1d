package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Configuration is the scheduling policy shared by every booking operation.
// Exactly one configuration exists; it is loaded per request and passed explicitly.
type Configuration struct {
	ID                     int64
	SlotDuration           int // minutes
	MaxSlotsPerAppointment int
	OperationalStart       types.TimeString
	OperationalEnd         types.TimeString
	DaysOff                []types.Date
	UnavailableHours       []types.TimeString // "HH:00" markers, each blocks one hour
	IsWeekendOff           bool
	UpdatedAt              time.Time
}

// DefaultConfiguration returns the configuration seeded on first start
func DefaultConfiguration() *Configuration {
	return &Configuration{
		ID:                     ConfigurationID,
		SlotDuration:           DefaultSlotDuration,
		MaxSlotsPerAppointment: DefaultMaxSlotsPerAppointment,
		OperationalStart:       types.MustTimeString(DefaultOperationalStart),
		OperationalEnd:         types.MustTimeString(DefaultOperationalEnd),
		DaysOff:                []types.Date{},
		UnavailableHours:       []types.TimeString{},
		IsWeekendOff:           DefaultIsWeekendOff,
	}
}

// Clone returns a deep copy
func (c *Configuration) Clone() *Configuration {
	clone := *c
	clone.DaysOff = append([]types.Date(nil), c.DaysOff...)
	clone.UnavailableHours = append([]types.TimeString(nil), c.UnavailableHours...)
	return &clone
}

// IsWeekendBlocked returns true if the date is Saturday or Sunday and weekends are off
func (c *Configuration) IsWeekendBlocked(date types.Date) bool {
	return c.IsWeekendOff && date.IsWeekend()
}

// IsDayOff returns true if the date is listed in daysOff
func (c *Configuration) IsDayOff(date types.Date) bool {
	for _, d := range c.DaysOff {
		if d.Equal(date) {
			return true
		}
	}
	return false
}

// IsUnavailableMarker returns true if t is exactly one of the unavailable hour markers
func (c *Configuration) IsUnavailableMarker(t types.TimeString) bool {
	for _, h := range c.UnavailableHours {
		if h.Equal(t) {
			return true
		}
	}
	return false
}

// IsWithinUnavailableHour returns true if t falls in [HH:00, HH:00+1h) of any marker
func (c *Configuration) IsWithinUnavailableHour(t types.TimeString) bool {
	for _, h := range c.UnavailableHours {
		start := h.Minutes()
		end := start + UnavailableHourLengthMins
		if t.Minutes() >= start && t.Minutes() < end {
			return true
		}
	}
	return false
}

// IsWithinOperationalWindow returns true if t is in [OperationalStart, OperationalEnd]
func (c *Configuration) IsWithinOperationalWindow(t types.TimeString) bool {
	return !t.IsBefore(c.OperationalStart) && !t.IsAfter(c.OperationalEnd)
}

// FormatDaysOff returns daysOff as a comma-separated string
func (c *Configuration) FormatDaysOff() string {
	parts := make([]string, 0, len(c.DaysOff))
	for _, d := range c.DaysOff {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, ListSeparator)
}

// FormatUnavailableHours returns unavailableHours as a comma-separated string
func (c *Configuration) FormatUnavailableHours() string {
	parts := make([]string, 0, len(c.UnavailableHours))
	for _, h := range c.UnavailableHours {
		parts = append(parts, h.String())
	}
	return strings.Join(parts, ListSeparator)
}

// ParseDaysOff parses a comma-separated list of YYYY-MM-DD dates. An empty string is an empty list.
func ParseDaysOff(s string) ([]types.Date, error) {
	if strings.TrimSpace(s) == "" {
		return []types.Date{}, nil
	}

	entries := strings.Split(s, ListSeparator)
	days := make([]types.Date, 0, len(entries))
	for _, entry := range entries {
		d, err := types.ParseDate(strings.TrimSpace(entry))
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

// ParseUnavailableHours parses a comma-separated list of "HH:00" markers. An empty string is an empty list.
func ParseUnavailableHours(s string) ([]types.TimeString, error) {
	if strings.TrimSpace(s) == "" {
		return []types.TimeString{}, nil
	}

	entries := strings.Split(s, ListSeparator)
	hours := make([]types.TimeString, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		h, err := types.NewTimeStringFromString(entry)
		if err != nil {
			return nil, err
		}
		if !h.IsTopOfHour() || len(entry) != len(TimeFormat) {
			return nil, fmt.Errorf("%w: %q is not an hour marker", types.ErrInvalidTimeFormat, entry)
		}
		hours = append(hours, h)
	}
	return hours, nil
}
