package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var testLoc = time.UTC

// now понедельник 2025-06-16 08:00
var testNow = time.Date(2025, time.June, 16, 8, 0, 0, 0, testLoc)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok, "expected ValidationError, got %v", err)
	assert.Equal(t, code, vErr.Code)
	assert.NotEmpty(t, vErr.Message)
}

func TestValidator_ValidateBooking(t *testing.T) {
	base := domain.DefaultConfiguration()
	base.DaysOff = []types.Date{types.MustDate("2025-06-18")}
	base.UnavailableHours = []types.TimeString{types.MustTimeString("13:00")}

	tests := []struct {
		name     string
		date     string
		time     string
		now      time.Time
		wantCode string
	}{
		{name: "both missing", wantCode: domain.CodeBookMissingBoth},
		{name: "date missing", time: "09:00", wantCode: domain.CodeBookMissingDate},
		{name: "time missing", date: "2025-06-16", wantCode: domain.CodeBookMissingTime},
		{name: "bad date format", date: "16-06-2025", time: "09:00", wantCode: domain.CodeBookDateFormat},
		{name: "month 13", date: "2025-13-01", time: "09:00", wantCode: domain.CodeBookDateFormat},
		{name: "impossible calendar day", date: "2025-06-31", time: "09:00", wantCode: domain.CodeBookDateFormat},
		{name: "in the past", date: "2025-06-13", time: "09:00", wantCode: domain.CodeBookInPast},
		{name: "earlier today", date: "2025-06-16", time: "09:00", now: time.Date(2025, 6, 16, 9, 1, 0, 0, testLoc), wantCode: domain.CodeBookInPast},
		{name: "before opening", date: "2025-06-17", time: "08:30", wantCode: domain.CodeBookOutsideHours},
		{name: "after closing", date: "2025-06-17", time: "18:30", wantCode: domain.CodeBookOutsideHours},
		{name: "off grid", date: "2025-06-16", time: "09:15", wantCode: domain.CodeBookOffGrid},
		{name: "unparsable time", date: "2025-06-16", time: "9am", wantCode: domain.CodeBookOffGrid},
		{name: "time with zero seconds", date: "2025-06-16", time: "09:00:00", wantCode: domain.CodeBookOffGrid},
		{name: "time with seconds", date: "2025-06-16", time: "09:00:45", wantCode: domain.CodeBookOffGrid},
		{name: "on-grid minute with seconds", date: "2025-06-16", time: "10:30:59", wantCode: domain.CodeBookOffGrid},
		{name: "weekend", date: "2025-06-21", time: "10:00", wantCode: domain.CodeBookWeekend},
		{name: "day off", date: "2025-06-18", time: "10:00", wantCode: domain.CodeBookDayOff},
		{name: "unavailable hour start", date: "2025-06-17", time: "13:00", wantCode: domain.CodeBookUnavailableHour},
		{name: "inside unavailable hour", date: "2025-06-17", time: "13:30", wantCode: domain.CodeBookUnavailableHour},
		{name: "right after unavailable hour", date: "2025-06-17", time: "14:00"},
		{name: "first slot", date: "2025-06-16", time: "09:00"},
		{name: "end boundary slot", date: "2025-06-16", time: "18:00"},
	}

	v := NewValidator(testLoc)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			if now.IsZero() {
				now = testNow
			}

			key, err := v.ValidateBooking(base, tt.date, tt.time, now)
			if tt.wantCode != "" {
				assertCode(t, err, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.date, key.Date.String())
			assert.Equal(t, tt.time, key.Time.String())
		})
	}
}

func TestValidator_OutsideHoursMessage(t *testing.T) {
	v := NewValidator(testLoc)

	_, err := v.ValidateBooking(domain.DefaultConfiguration(), "2025-06-17", "19:00", testNow)

	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "`time` must be within operational hours: 09:00 to 18:00", vErr.Message)
}

func TestValidator_GatesShortCircuitInOrder(t *testing.T) {
	v := NewValidator(testLoc)
	cfg := domain.DefaultConfiguration()

	// в прошлом, вне часов и на выходных одновременно: срабатывает первая проверка
	_, err := v.ValidateBooking(cfg, "2025-06-14", "20:00", testNow)
	assertCode(t, err, domain.CodeBookInPast)

	// вне часов и не на сетке: срабатывает проверка часов
	_, err = v.ValidateBooking(cfg, "2025-06-17", "20:10", testNow)
	assertCode(t, err, domain.CodeBookOutsideHours)
}

func TestValidator_ValidateCancellation(t *testing.T) {
	cfg := domain.DefaultConfiguration()
	cfg.DaysOff = []types.Date{types.MustDate("2025-06-18")}
	cfg.UnavailableHours = []types.TimeString{types.MustTimeString("13:00")}

	tests := []struct {
		name     string
		date     string
		time     string
		wantCode string
	}{
		{name: "both missing", wantCode: domain.CodeCancelMissingBoth},
		{name: "date missing", time: "09:00", wantCode: domain.CodeCancelMissingDate},
		{name: "time missing", date: "2025-06-16", wantCode: domain.CodeCancelMissingTime},
		{name: "bad date", date: "2025/06/16", time: "09:00", wantCode: domain.CodeCancelDateFormat},
		{name: "in the past", date: "2025-06-01", time: "09:00", wantCode: domain.CodeCancelInPast},
		{name: "outside hours", date: "2025-06-17", time: "07:00", wantCode: domain.CodeCancelOutsideHours},
		{name: "off grid", date: "2025-06-17", time: "09:10", wantCode: domain.CodeCancelOffGrid},
		{name: "time with zero seconds", date: "2025-06-17", time: "09:00:00", wantCode: domain.CodeCancelOffGrid},
		{name: "time with seconds", date: "2025-06-17", time: "10:30:59", wantCode: domain.CodeCancelOffGrid},
		{name: "weekend is allowed", date: "2025-06-21", time: "10:00"},
		{name: "day off is allowed", date: "2025-06-18", time: "10:00"},
		{name: "unavailable hour is allowed", date: "2025-06-17", time: "13:00"},
	}

	v := NewValidator(testLoc)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateCancellation(cfg, tt.date, tt.time, testNow)
			if tt.wantCode != "" {
				assertCode(t, err, tt.wantCode)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidator_CancelPastMessage(t *testing.T) {
	v := NewValidator(testLoc)

	_, err := v.ValidateCancellation(domain.DefaultConfiguration(), "2025-06-02", "09:00", testNow)

	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Can't cancel past appointments", vErr.Message)
}

func TestValidator_UsesLocation(t *testing.T) {
	// 09:00 в UTC+3 это 06:00 UTC, то есть уже в прошлом относительно 08:00 UTC
	v := NewValidator(time.FixedZone("UTC+3", 3*60*60))

	_, err := v.ValidateBooking(domain.DefaultConfiguration(), "2025-06-16", "09:00", testNow)

	assertCode(t, err, domain.CodeBookInPast)
}

func TestValidator_ValidateSlotsQuery(t *testing.T) {
	v := NewValidator(testLoc)

	_, err := v.ValidateSlotsQuery("")
	assertCode(t, err, domain.CodeSlotsDateRequired)

	_, err = v.ValidateSlotsQuery("2025-6-16")
	assertCode(t, err, domain.CodeSlotsDateFormat)

	date, err := v.ValidateSlotsQuery("2025-06-16")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-16", date.String())
}

func TestCheckCapacity(t *testing.T) {
	cfg := domain.DefaultConfiguration()
	cfg.MaxSlotsPerAppointment = 2

	assert.NoError(t, CheckCapacity(cfg, 0))
	assert.NoError(t, CheckCapacity(cfg, 1))
	assertCode(t, CheckCapacity(cfg, 2), domain.CodeBookCapacityReached)
	assertCode(t, CheckCapacity(cfg, 3), domain.CodeBookCapacityReached)
}

func TestNothingToCancelError(t *testing.T) {
	assertCode(t, NothingToCancelError(), domain.CodeCancelNotFound)
}
