package salesservice

// SaleOrderLine строка заказа
type SaleOrderLine struct {
	ProductRef  string  `json:"product_ref"`
	Quantity    float64 `json:"quantity"`
	PriceUnit   float64 `json:"price_unit"`
	Description string  `json:"description"`
}

// SaleOrderRequest запрос на создание заказа по записи
type SaleOrderRequest struct {
	CustomerID           int64           `json:"customer_id"`
	CustomerEmail        string          `json:"customer_email"`
	AppointmentReference string          `json:"appointment_reference"`
	Note                 string          `json:"note"`
	Currency             string          `json:"currency"`
	Lines                []SaleOrderLine `json:"lines"`
}

// SaleOrder ответ сервиса продаж
type SaleOrder struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"` // номер заказа, например SO042
	State string `json:"state"`
}

// ErrorResponse модель ошибки от сервиса продаж
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
