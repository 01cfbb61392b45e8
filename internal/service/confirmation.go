package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cab/internal/domain"
)

// ConfirmationService generates booking confirmation summaries.
type ConfirmationService struct {
	notificationService *NotificationService
}

// NewConfirmationService creates a new ConfirmationService.
func NewConfirmationService(notificationService *NotificationService) *ConfirmationService {
	return &ConfirmationService{
		notificationService: notificationService,
	}
}

// GenerateConfirmation builds the summary for a confirmed booking.
// Admin bookings carry no advance; guest bookings show the 20/80 split.
func (s *ConfirmationService) GenerateConfirmation(ctx context.Context, booking *domain.Booking) (*domain.Confirmation, error) {
	if booking == nil {
		return nil, ErrInvalidBookingID
	}
	if booking.Step != domain.StepConfirmed {
		return nil, ErrBookingNotConfirmed
	}

	confirmation := &domain.Confirmation{
		ID:         uuid.New().String(),
		BookingID:  booking.ID,
		Identifier: booking.Identifier,
		Details:    booking.Details,
		Vehicle:    booking.VehicleName,
		Fare:       booking.Estimate.Fare,
		CreatedAt:  time.Now(),
	}

	if booking.Role == domain.RoleGuest {
		confirmation.Advance = booking.Advance()
		confirmation.Remaining = booking.Remaining()
	} else {
		confirmation.Remaining = booking.Estimate.Fare
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyConfirmationReady(ctx, confirmation)
	}

	return confirmation, nil
}

// FormatConfirmation formats the summary as a string (for SMS/print).
func (s *ConfirmationService) FormatConfirmation(c *domain.Confirmation) string {
	return `
=====================================
     MUSSOORIE CAB - BOOKING
=====================================
Confirmation: ` + c.ID + `
Booking:      ` + c.BookingID + `
Date:         ` + c.CreatedAt.Format("Jan 02, 2006 3:04 PM") + `

TRIP DETAILS
-------------------------------------
Pickup:   ` + c.Details.Pickup + `
Drop-off: ` + c.Details.Dropoff + `
When:     ` + c.Details.Date + ` ` + c.Details.Time + `
Vehicle:  ` + c.Vehicle + `

FARE
-------------------------------------
Total Fare:    Rs ` + formatAmount(c.Fare) + `
Advance Paid:  Rs ` + formatAmount(c.Advance) + `
Due to Driver: Rs ` + formatAmount(c.Remaining) + `

=====================================
   Thank you for riding with us!
   Helpline: ` + domain.HelplineNumber + `
=====================================
`
}

func formatAmount(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
