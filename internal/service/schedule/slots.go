package schedule

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// GenerateSlots возвращает сетку времен начала слотов от start до end включительно с шагом duration.
//
// Слот, совпадающий с end, тоже попадает в сетку, хотя записаться на него
// имеет смысл не всегда. Поведение сохранено для совместимости с клиентами.
// Если duration не делит окно нацело, последний слот будет строго раньше end.
func GenerateSlots(start, end types.TimeString, duration int) []types.TimeString {
	slots := make([]types.TimeString, 0)
	if duration <= 0 || start.IsZero() || end.IsZero() || start.IsAfter(end) {
		return slots
	}

	for current := start; !current.IsAfter(end); {
		slots = append(slots, current)

		next, err := current.AddMinutes(duration)
		if err != nil {
			// следующий слот был бы уже завтра
			break
		}
		current = next
	}

	return slots
}

// GridFor возвращает сетку слотов для конфигурации
func GridFor(cfg *domain.Configuration) []types.TimeString {
	return GenerateSlots(cfg.OperationalStart, cfg.OperationalEnd, cfg.SlotDuration)
}

// IsOnGrid проверяет, что t входит в сетку слотов конфигурации
func IsOnGrid(cfg *domain.Configuration, t types.TimeString) bool {
	if t.IsZero() || cfg.SlotDuration <= 0 {
		return false
	}
	if !cfg.IsWithinOperationalWindow(t) {
		return false
	}
	return (t.Minutes()-cfg.OperationalStart.Minutes())%cfg.SlotDuration == 0
}
