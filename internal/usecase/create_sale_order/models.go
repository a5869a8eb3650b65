package create_sale_order

// Response модель ответа с созданным заказом
type Response struct {
	AppointmentID int64
	Reference     string
	SaleOrderID   int64
	SaleOrderName string
	State         string
}
