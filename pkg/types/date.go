package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// DateLayout формат даты YYYY-MM-DD
const DateLayout = "2006-01-02"

// ErrInvalidDateFormat возвращается, когда строка не является корректной датой YYYY-MM-DD
var ErrInvalidDateFormat = errors.New("invalid date format")

var dateRegexp = regexp.MustCompile(`^(19|20)\d{2}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)

// Date календарная дата без времени и часового пояса
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate создает дату из компонентов time.Time в его собственном часовом поясе
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// ParseDate парсит строку YYYY-MM-DD.
// Год 1900–2099, месяц 01–12, день 01–31, и дата должна существовать в календаре.
func ParseDate(s string) (Date, error) {
	if !dateRegexp.MatchString(s) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	return NewDate(t), nil
}

// MustDate парсит дату и паникует при ошибке
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero возвращает true для незаданной даты
func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Weekday возвращает день недели
func (d Date) Weekday() time.Weekday {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC).Weekday()
}

// IsWeekend возвращает true для субботы и воскресенья
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// At объединяет дату и время суток в момент времени в указанном часовом поясе
func (d Date) At(t TimeString, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.year, d.month, d.day, t.Hour(), t.Minute(), 0, 0, loc)
}

// Equal сравнивает две даты
func (d Date) Equal(other Date) bool {
	return d == other
}

// String возвращает дату в формате YYYY-MM-DD
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner. lib/pq возвращает DATE как time.Time.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDateFormat, src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	*d = NewDate(t)
	return nil
}
