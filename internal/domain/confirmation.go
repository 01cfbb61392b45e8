package domain

import "time"

// HelplineNumber is the customer helpline printed on confirmations.
const HelplineNumber = "8979973148"

// Confirmation is the summary generated when a booking reaches CONFIRMED.
type Confirmation struct {
	ID         string
	BookingID  string
	Identifier string
	Details    BookingDetails
	Vehicle    string
	Fare       float64
	Advance    float64 // 0 for admin bookings (no advance collected)
	Remaining  float64
	CreatedAt  time.Time
}
