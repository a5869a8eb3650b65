package get_available_slots

import (
	"time"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/availability"
)

// generateSlotStarts строит начала слотов в локальной зоне с openHour до closeHour.
// Последний слот начинается строго раньше closeHour
func generateSlotStarts(day time.Time, loc *time.Location, openHour, closeHour, stepMinutes int) []time.Time {
	y, m, d := day.Date()
	open := time.Date(y, m, d, openHour, 0, 0, 0, loc)
	closeAt := time.Date(y, m, d, closeHour, 0, 0, 0, loc)
	step := time.Duration(stepMinutes) * time.Minute

	starts := make([]time.Time, 0)
	for cur := open; cur.Before(closeAt); cur = cur.Add(step) {
		starts = append(starts, cur)
	}
	return starts
}

// buildSlots оценивает каждый слот по уже загруженным записям дня.
// Недоступность слота не ошибка: он помечается IsFull
func buildSlots(svc *domain.Service, starts []time.Time, existing []*domain.Appointment, now time.Time) []domain.AvailabilitySlot {
	slots := make([]domain.AvailabilitySlot, 0, len(starts))

	for _, local := range starts {
		start := local.UTC()
		end := domain.EndFor(start, svc)

		decision := availability.Evaluate(svc, start, end, existing, nil)

		slots = append(slots, domain.AvailabilitySlot{
			Start:           start,
			End:             end,
			Local:           local,
			IsPast:          start.Before(now),
			IsFull:          !decision.Admitted,
			CurrentBookings: decision.Booked,
			MaxCapacity:     svc.Capacity,
		})
	}

	return slots
}
