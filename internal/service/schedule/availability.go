package schedule

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CalculateAvailability считает оставшуюся вместимость каждого слота на дату.
//
// Выходной по isWeekendOff: пустой список, слоты не предлагаются вовсе.
// День из daysOff: все слоты с нулевой вместимостью.
// Недоступные часы сравниваются с временем слота точно ("HH:00"),
// поэтому слоты не в начале часа ими не блокируются.
func CalculateAvailability(cfg *domain.Configuration, date types.Date, appointments []*domain.Appointment) []domain.AvailableSlot {
	if cfg.IsWeekendBlocked(date) {
		return []domain.AvailableSlot{}
	}

	grid := GridFor(cfg)
	booked := CountByTime(date, appointments)
	dayOff := cfg.IsDayOff(date)

	result := make([]domain.AvailableSlot, 0, len(grid))
	for _, slot := range grid {
		available := 0
		if !dayOff && !cfg.IsUnavailableMarker(slot) {
			available = cfg.MaxSlotsPerAppointment - booked[slot.Minutes()]
			if available < 0 {
				available = 0
			}
		}

		result = append(result, domain.AvailableSlot{
			Date:           date,
			Time:           slot,
			AvailableSlots: available,
		})
	}

	return result
}

// CountByTime строит отображение "минуты от полуночи → количество записей" для даты
func CountByTime(date types.Date, appointments []*domain.Appointment) map[int]int {
	counts := make(map[int]int, len(appointments))
	for _, a := range appointments {
		if a == nil || !a.Date.Equal(date) {
			continue
		}
		counts[a.Time.Minutes()]++
	}
	return counts
}
