package configuration

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/configuration/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const (
	msgSlotDuration      = "`slotDuration` must be a number and at least 5 minutes."
	msgMaxSlots          = "`maxSlotsPerAppointment` must be a number between 1 and 5."
	msgOperationalStart  = "`operationalStart` must be in the format HH:mm."
	msgOperationalEnd    = "`operationalEnd` must be in the format HH:mm."
	msgWindowOrder       = "`operationalStart` must not be later than `operationalEnd`."
	msgDaysOffType       = "`daysOff` must be a comma-separated string of dates."
	msgDaysOffEntryFmt   = "Invalid date format in `daysOff`: %s. Expected format is YYYY-MM-DD."
	msgUnavailableType   = "`unavailableHours` must be a comma-separated string of hours."
	msgUnavailableFmt    = "Invalid hour format in `unavailableHours`: %s. Expected format is HH:00."
	msgUnavailableOutFmt = "Unavailable hour `%s` must be within operational hours: %s to %s."
	msgWeekendOff        = "`isWeekendOff` must be a boolean value."
)

// validatePatch проверяет поля запроса по порядку и возвращает типизированный патч.
// Недоступные часы сверяются с рабочими часами итоговой конфигурации:
// новые operationalStart/operationalEnd из того же запроса учитываются.
func validatePatch(current *domain.Configuration, req *models.UpdateConfigurationRequest) (*models.ConfigurationPatch, error) {
	patch := &models.ConfigurationPatch{}

	if req.SlotDuration != nil {
		v, ok := decodeInt(req.SlotDuration)
		if !ok || v < domain.MinSlotDuration {
			return nil, domain.NewValidationError(domain.CodeConfigSlotDuration, msgSlotDuration)
		}
		patch.SlotDuration = ptr.Ptr(v)
	}

	if req.MaxSlotsPerAppointment != nil {
		v, ok := decodeInt(req.MaxSlotsPerAppointment)
		if !ok || v < domain.MinSlotsPerAppointment || v > domain.MaxSlotsPerAppointment {
			return nil, domain.NewValidationError(domain.CodeConfigMaxSlots, msgMaxSlots)
		}
		patch.MaxSlotsPerAppointment = ptr.Ptr(v)
	}

	if req.OperationalStart != nil {
		v, ok := decodeClock(req.OperationalStart)
		if !ok {
			return nil, domain.NewValidationError(domain.CodeConfigOperationalStart, msgOperationalStart)
		}
		patch.OperationalStart = ptr.Ptr(v)
	}

	if req.OperationalEnd != nil {
		v, ok := decodeClock(req.OperationalEnd)
		if !ok {
			return nil, domain.NewValidationError(domain.CodeConfigOperationalEnd, msgOperationalEnd)
		}
		patch.OperationalEnd = ptr.Ptr(v)
	}

	start, end := current.OperationalStart, current.OperationalEnd
	if patch.OperationalStart != nil {
		start = *patch.OperationalStart
	}
	if patch.OperationalEnd != nil {
		end = *patch.OperationalEnd
	}
	if start.IsAfter(end) {
		return nil, domain.NewValidationError(domain.CodeConfigWindowOrder, msgWindowOrder)
	}

	if req.DaysOff != nil {
		raw, ok := decodeString(req.DaysOff)
		if !ok {
			return nil, domain.NewValidationError(domain.CodeConfigDaysOffType, msgDaysOffType)
		}
		days, err := parseDaysOffEntries(raw)
		if err != nil {
			return nil, err
		}
		patch.DaysOff = ptr.Ptr(days)
	}

	if req.UnavailableHours != nil {
		raw, ok := decodeString(req.UnavailableHours)
		if !ok {
			return nil, domain.NewValidationError(domain.CodeConfigUnavailableType, msgUnavailableType)
		}
		hours, err := parseUnavailableEntries(raw, start, end)
		if err != nil {
			return nil, err
		}
		patch.UnavailableHours = ptr.Ptr(hours)
	} else if patch.OperationalStart != nil || patch.OperationalEnd != nil {
		// окно сдвинулось: уже сохраненные часы должны остаться внутри него
		for _, h := range current.UnavailableHours {
			if h.IsBefore(start) || !h.IsBefore(end) {
				return nil, domain.NewValidationErrorf(domain.CodeConfigUnavailableRange, msgUnavailableOutFmt,
					h.String(), start.String(), end.String())
			}
		}
	}

	if req.IsWeekendOff != nil {
		var v bool
		if isNull(req.IsWeekendOff) || json.Unmarshal(req.IsWeekendOff, &v) != nil {
			return nil, domain.NewValidationError(domain.CodeConfigWeekendOff, msgWeekendOff)
		}
		patch.IsWeekendOff = ptr.Ptr(v)
	}

	return patch, nil
}

func parseDaysOffEntries(raw string) ([]types.Date, error) {
	days := []types.Date{}
	if raw == "" {
		return days, nil
	}

	for _, entry := range strings.Split(raw, domain.ListSeparator) {
		entry = strings.TrimSpace(entry)
		d, err := types.ParseDate(entry)
		if err != nil {
			return nil, domain.NewValidationErrorf(domain.CodeConfigDaysOffEntry, msgDaysOffEntryFmt, entry)
		}
		days = append(days, d)
	}
	return days, nil
}

// parseUnavailableEntries проверяет каждый маркер: формат HH:00 и попадание в [start, end)
func parseUnavailableEntries(raw string, start, end types.TimeString) ([]types.TimeString, error) {
	hours := []types.TimeString{}
	if raw == "" {
		return hours, nil
	}

	for _, entry := range strings.Split(raw, domain.ListSeparator) {
		entry = strings.TrimSpace(entry)
		h, ok := parseHourMarker(entry)
		if !ok {
			return nil, domain.NewValidationErrorf(domain.CodeConfigUnavailableEntry, msgUnavailableFmt, entry)
		}
		if h.IsBefore(start) || !h.IsBefore(end) {
			return nil, domain.NewValidationErrorf(domain.CodeConfigUnavailableRange, msgUnavailableOutFmt,
				entry, start.String(), end.String())
		}
		hours = append(hours, h)
	}
	return hours, nil
}

func parseHourMarker(s string) (types.TimeString, bool) {
	h, err := types.ParseClock(s)
	if err != nil || !h.IsTopOfHour() {
		return types.TimeString{}, false
	}
	return h, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeInt(raw json.RawMessage) (int, bool) {
	var v int
	if isNull(raw) || json.Unmarshal(raw, &v) != nil {
		return 0, false
	}
	return v, true
}

func decodeString(raw json.RawMessage) (string, bool) {
	var v string
	if isNull(raw) || json.Unmarshal(raw, &v) != nil {
		return "", false
	}
	return v, true
}

// decodeClock разбирает строку строго в формате HH:MM
func decodeClock(raw json.RawMessage) (types.TimeString, bool) {
	s, ok := decodeString(raw)
	if !ok {
		return types.TimeString{}, false
	}
	t, err := types.ParseClock(s)
	if err != nil {
		return types.TimeString{}, false
	}
	return t, true
}
