package domain

// Customer represents the person an appointment is booked for
type Customer struct {
	ID    int64
	Name  string
	Email string
	Phone string
}
