package domain

// PaymentStatus represents the current status of an advance payment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment represents the advance payment collected for a booking.
type Payment struct {
	ID             string
	BookingID      string
	Amount         float64 // advance amount in rupees
	Status         PaymentStatus
	IdempotencyKey string
}
