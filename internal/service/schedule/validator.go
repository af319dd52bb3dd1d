package schedule

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Validator проверяет запросы на запись и отмену по правилам конфигурации.
// Проверки идут по порядку и останавливаются на первой неудачной:
// наличие полей → формат даты → прошлое → рабочие часы → сетка слотов → политика.
type Validator struct {
	loc *time.Location
}

// NewValidator создает валидатор. loc задает часовой пояс, в котором интерпретируются дата и время.
func NewValidator(loc *time.Location) *Validator {
	if loc == nil {
		loc = time.Local
	}
	return &Validator{loc: loc}
}

// Location возвращает часовой пояс валидатора
func (v *Validator) Location() *time.Location {
	return v.loc
}

// ValidateSlotsQuery проверяет дату в запросе списка слотов
func (v *Validator) ValidateSlotsQuery(rawDate string) (types.Date, error) {
	if rawDate == "" {
		return types.Date{}, domain.NewValidationError(domain.CodeSlotsDateRequired, msgDateRequiredInQuery)
	}

	date, err := types.ParseDate(rawDate)
	if err != nil {
		return types.Date{}, domain.NewValidationError(domain.CodeSlotsDateFormat, msgDateFormat)
	}
	return date, nil
}

// ValidateBooking проверяет запрос на запись (все проверки, кроме вместимости).
// Вместимость проверяется в момент вставки, см. CheckCapacity.
func (v *Validator) ValidateBooking(cfg *domain.Configuration, rawDate, rawTime string, now time.Time) (domain.SlotKey, error) {
	key, err := v.validateCommon(cfg, rawDate, rawTime, now, bookingCodes)
	if err != nil {
		return domain.SlotKey{}, err
	}

	if err := checkPolicy(cfg, key); err != nil {
		return domain.SlotKey{}, err
	}

	return key, nil
}

// ValidateCancellation проверяет запрос на отмену.
// Политика выходных и недоступных часов не применяется: существующую запись можно отменить всегда.
func (v *Validator) ValidateCancellation(cfg *domain.Configuration, rawDate, rawTime string, now time.Time) (domain.SlotKey, error) {
	return v.validateCommon(cfg, rawDate, rawTime, now, cancellationCodes)
}

func (v *Validator) validateCommon(
	cfg *domain.Configuration,
	rawDate, rawTime string,
	now time.Time,
	codes gateCodes,
) (domain.SlotKey, error) {
	// 1. Наличие полей
	switch {
	case rawDate == "" && rawTime == "":
		return domain.SlotKey{}, domain.NewValidationError(codes.missingBoth, msgBothRequired)
	case rawDate == "":
		return domain.SlotKey{}, domain.NewValidationError(codes.missingDate, msgDateRequired)
	case rawTime == "":
		return domain.SlotKey{}, domain.NewValidationError(codes.missingTime, msgTimeRequired)
	}

	// 2. Формат даты
	date, err := types.ParseDate(rawDate)
	if err != nil {
		return domain.SlotKey{}, domain.NewValidationError(codes.dateFormat, msgDateFormat)
	}

	// Время отдельно не проверяется: строка, которая не разбирается строго как HH:MM
	// (в том числе "09:00:00"), не может попасть в сетку и отклоняется на шаге 5.
	slotTime, err := types.ParseClock(rawTime)
	if err != nil {
		return domain.SlotKey{}, domain.NewValidationError(codes.offGrid, msgOffGrid)
	}

	// 3. Запись в прошлое
	if date.At(slotTime, v.loc).Before(now) {
		return domain.SlotKey{}, domain.NewValidationError(codes.inPast, codes.pastMessage)
	}

	// 4. Рабочие часы [start, end] включительно
	if !cfg.IsWithinOperationalWindow(slotTime) {
		return domain.SlotKey{}, domain.NewValidationErrorf(codes.outsideHours, msgOutsideHoursFmt,
			cfg.OperationalStart.String(), cfg.OperationalEnd.String())
	}

	// 5. Сетка слотов
	if !IsOnGrid(cfg, slotTime) {
		return domain.SlotKey{}, domain.NewValidationError(codes.offGrid, msgOffGrid)
	}

	return domain.SlotKey{Date: date, Time: slotTime}, nil
}

// checkPolicy проверки, применяемые только при записи
func checkPolicy(cfg *domain.Configuration, key domain.SlotKey) error {
	if cfg.IsWeekendBlocked(key.Date) {
		return domain.NewValidationError(domain.CodeBookWeekend, msgWeekend)
	}
	if cfg.IsDayOff(key.Date) {
		return domain.NewValidationError(domain.CodeBookDayOff, msgDayOff)
	}
	if cfg.IsWithinUnavailableHour(key.Time) {
		return domain.NewValidationError(domain.CodeBookUnavailableHour, msgUnavailableHour)
	}
	return nil
}

// CheckCapacity возвращает BOOK-01, если на слот уже записано maxSlotsPerAppointment или больше
func CheckCapacity(cfg *domain.Configuration, booked int) error {
	if booked >= cfg.MaxSlotsPerAppointment {
		return domain.NewValidationError(domain.CodeBookCapacityReached, msgCapacityReached)
	}
	return nil
}

// NothingToCancelError возвращает CANCEL-01 для отмены несуществующей записи
func NothingToCancelError() error {
	return domain.NewValidationError(domain.CodeCancelNotFound, msgNothingToCancel)
}
