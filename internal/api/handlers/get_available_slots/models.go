package get_available_slots

import (
	"time"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	getAvailableSlots "github.com/TruongDHiep/Booking-Service-System/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date        string          `json:"date"`
	ServiceID   int64           `json:"serviceId"`
	ServiceName string          `json:"serviceName"`
	Duration    float64         `json:"duration"` // часы
	Timezone    string          `json:"timezone"`
	Slots       []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time            string `json:"time"`     // "10:00" в зоне клиента
	Display         string `json:"display"`  // "10:00 AM"
	Datetime        string `json:"datetime"` // начало слота в UTC, RFC3339
	Available       bool   `json:"available"`
	IsPast          bool   `json:"isPast"`
	IsFull          bool   `json:"isFull"`
	CurrentBookings int    `json:"currentBookings"`
	MaxCapacity     int    `json:"maxCapacity"` // 0 - без ограничений
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i := range resp.Slots {
		slot := &resp.Slots[i]
		slots[i] = AvailableSlot{
			Time:            slot.Local.Format(domain.TimeFormat),
			Display:         slot.Local.Format(domain.DisplayTimeFormat),
			Datetime:        slot.Start.UTC().Format(time.RFC3339),
			Available:       slot.IsAvailable(),
			IsPast:          slot.IsPast,
			IsFull:          slot.IsFull,
			CurrentBookings: slot.CurrentBookings,
			MaxCapacity:     slot.MaxCapacity,
		}
	}

	return &AvailableSlotsResponse{
		Date:        resp.Date,
		ServiceID:   resp.ServiceID,
		ServiceName: resp.ServiceName,
		Duration:    resp.DurationHours,
		Timezone:    resp.Timezone,
		Slots:       slots,
	}
}
