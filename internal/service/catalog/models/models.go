package models

import "github.com/TruongDHiep/Booking-Service-System/internal/domain"

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	DurationHours float64 `json:"durationHours"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	Capacity      int     `json:"capacity"` // 0 = без ограничений
	Unlimited     bool    `json:"unlimited"`
	Sellable      bool    `json:"sellable"`
}

// FromDomainService конвертирует domain модель в response
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:            s.ID,
		Name:          s.Name,
		DurationHours: s.DurationHours,
		Price:         s.Price,
		Currency:      s.Currency,
		Capacity:      s.Capacity,
		Unlimited:     s.IsUnlimited(),
		Sellable:      s.CanBeSold(),
	}
}
