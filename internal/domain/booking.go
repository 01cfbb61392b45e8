package domain

import (
	"math"
	"strings"
	"time"
)

// BookingStep represents the current step of the booking wizard.
type BookingStep string

const (
	StepBookingForm BookingStep = "BOOKING_FORM"
	StepFareDetails BookingStep = "FARE_DETAILS"
	StepPayment     BookingStep = "PAYMENT"
	StepConfirmed   BookingStep = "CONFIRMED"
)

// BookingDetails holds the trip details entered on the booking form.
// All four fields are required before a fare can be estimated.
type BookingDetails struct {
	Pickup  string
	Dropoff string
	Date    string // calendar date, e.g. "2024-05-01"
	Time    string // clock time, e.g. "10:00"
}

// Complete reports whether every detail field is non-empty.
func (d BookingDetails) Complete() bool {
	return strings.TrimSpace(d.Pickup) != "" &&
		strings.TrimSpace(d.Dropoff) != "" &&
		strings.TrimSpace(d.Date) != "" &&
		strings.TrimSpace(d.Time) != ""
}

// FareEstimate is the estimator's response for one booking attempt.
// It is immutable once produced and discarded on "new booking".
type FareEstimate struct {
	Fare        float64 // whole rupees, non-negative
	Distance    string  // free text, e.g. "25 km"
	Duration    string  // free text, e.g. "45 minutes"
	Description string  // one-sentence route description
}

// Booking represents one pass through the booking wizard.
// Details and the estimate are frozen once the estimate is produced.
type Booking struct {
	ID          string
	Identifier  string // session identifier of the booking user
	Role        Role
	Details     BookingDetails
	VehicleType VehicleType
	VehicleName string
	Estimate    FareEstimate
	Step        BookingStep
	CreatedAt   time.Time
	ConfirmedAt time.Time
}

// farePaise returns the total fare in integer paise.
func (b *Booking) farePaise() int64 {
	return int64(math.Round(b.Estimate.Fare * 100))
}

// AdvancePaise is the 20% upfront amount in paise.
func (b *Booking) AdvancePaise() int64 {
	return b.farePaise() / 5
}

// RemainingPaise is the amount due after the advance, in paise.
// AdvancePaise + RemainingPaise always equals the total fare exactly.
func (b *Booking) RemainingPaise() int64 {
	return b.farePaise() - b.AdvancePaise()
}

// Advance is the 20% upfront amount in rupees.
func (b *Booking) Advance() float64 {
	return float64(b.AdvancePaise()) / 100
}

// Remaining is the amount due after the advance, in rupees.
func (b *Booking) Remaining() float64 {
	return float64(b.RemainingPaise()) / 100
}

// BookingDraft is the reset wizard state handed back after "new booking".
type BookingDraft struct {
	Details     BookingDetails
	VehicleType VehicleType
	Step        BookingStep
}

// NewBookingDraft returns an empty draft with the default vehicle selected.
func NewBookingDraft() BookingDraft {
	return BookingDraft{
		Details:     BookingDetails{},
		VehicleType: DefaultVehicleType,
		Step:        StepBookingForm,
	}
}
