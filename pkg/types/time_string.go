package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	clockLayout = "15:04"

	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

var (
	// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOverflow = errors.New("time string overflows the day")
)

var timeStringRegexp = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)(:[0-5]\d)?$`)

// TimeString время суток с точностью до минуты ("HH:MM").
// Хранится как количество минут от полуночи; нулевое значение считается пустым.
type TimeString struct {
	minutes int
	valid   bool
}

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*minutesPerHour + t.Minute(), valid: true}
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return TimeString{minutes: minutes, valid: true}, nil
}

// NewTimeStringFromString парсит строку "HH:MM" (допускается "HH:MM:SS" из БД, секунды отбрасываются)
func NewTimeStringFromString(s string) (TimeString, error) {
	m := timeStringRegexp.FindStringSubmatch(s)
	if m == nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])

	return TimeString{minutes: hours*minutesPerHour + minutes, valid: true}, nil
}

// ParseClock парсит строку строго в формате "HH:MM" (без секунд).
// Используется для значений из запросов; NewTimeStringFromString остается для данных из БД.
func ParseClock(s string) (TimeString, error) {
	if len(s) != len(clockLayout) {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return NewTimeStringFromString(s)
}

// MustTimeString парсит строку и паникует при ошибке. Используется для констант и в тестах.
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() int {
	return t.minutes
}

// Hour возвращает час
func (t TimeString) Hour() int {
	return t.minutes / minutesPerHour
}

// Minute возвращает минуту часа
func (t TimeString) Minute() int {
	return t.minutes % minutesPerHour
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return !t.valid
}

// IsTopOfHour возвращает true для времени вида HH:00
func (t TimeString) IsTopOfHour() bool {
	return t.valid && t.Minute() == 0
}

// AddMinutes возвращает время, сдвинутое на n минут.
// Переход через полночь считается ошибкой.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	return NewTimeStringFromMinutes(t.minutes + n)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// Equal сравнивает два значения
func (t TimeString) Equal(other TimeString) bool {
	return t.valid == other.valid && t.minutes == other.minutes
}

// Validate проверяет, что время задано и находится в пределах суток
func (t TimeString) Validate() error {
	if !t.valid {
		return ErrInvalidTimeFormat
	}
	if t.minutes < 0 || t.minutes >= minutesPerDay {
		return ErrTimeOverflow
	}
	return nil
}

// String возвращает время в формате HH:MM (пустая строка для незаданного времени)
func (t TimeString) String() string {
	if !t.valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalJSON implements json.Marshaler
func (t TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if !t.valid {
		return nil, nil
	}
	return t.String(), nil
}

// Scan implements sql.Scanner. Поддерживает TIME (строка/байты) и TIMESTAMP (time.Time).
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// lib/pq возвращает TIME как "15:04:05" или "15:04:05.999999"
	if len(s) > 8 {
		s = s[:8]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
