package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"cab/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationOTPIssued         NotificationType = "OTP_ISSUED"
	NotificationBookingConfirmed  NotificationType = "BOOKING_CONFIRMED"
	NotificationPaymentSuccess    NotificationType = "PAYMENT_SUCCESS"
	NotificationPaymentFailed     NotificationType = "PAYMENT_FAILED"
	NotificationConfirmationReady NotificationType = "CONFIRMATION_READY"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string // mobile number or email
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
// The delivery itself is simulated: a real deployment would plug in an SMS
// gateway for OTPs and booking updates.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyOTPIssued delivers the simulated OTP SMS.
func (s *NotificationService) NotifyOTPIssued(ctx context.Context, mobile, code string) error {
	notification := Notification{
		Type:        NotificationOTPIssued,
		RecipientID: mobile,
		Title:       "Your Mussoorie Cab OTP",
		Message:     fmt.Sprintf("Your one-time password is %s", code),
		Data: map[string]interface{}{
			"mobile": mobile,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyBookingConfirmed notifies the user their booking is confirmed.
func (s *NotificationService) NotifyBookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	notification := Notification{
		Type:        NotificationBookingConfirmed,
		RecipientID: booking.Identifier,
		Title:       "Booking Confirmed",
		Message:     fmt.Sprintf("Your %s from %s to %s is confirmed", booking.VehicleName, booking.Details.Pickup, booking.Details.Dropoff),
		Data: map[string]interface{}{
			"booking_id": booking.ID,
			"fare":       booking.Estimate.Fare,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyPaymentSuccess notifies the user of a successful advance payment.
func (s *NotificationService) NotifyPaymentSuccess(ctx context.Context, payment *domain.Payment, recipientID string) error {
	notification := Notification{
		Type:        NotificationPaymentSuccess,
		RecipientID: recipientID,
		Title:       "Advance Payment Received",
		Message:     fmt.Sprintf("Advance payment of Rs %.2f was successful", payment.Amount),
		Data: map[string]interface{}{
			"payment_id": payment.ID,
			"booking_id": payment.BookingID,
			"amount":     payment.Amount,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyPaymentFailed notifies the user of a failed advance payment.
func (s *NotificationService) NotifyPaymentFailed(ctx context.Context, payment *domain.Payment, recipientID string) error {
	notification := Notification{
		Type:        NotificationPaymentFailed,
		RecipientID: recipientID,
		Title:       "Advance Payment Failed",
		Message:     fmt.Sprintf("Advance payment of Rs %.2f failed. Please try again.", payment.Amount),
		Data: map[string]interface{}{
			"payment_id": payment.ID,
			"booking_id": payment.BookingID,
			"amount":     payment.Amount,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyConfirmationReady notifies the user their confirmation summary is ready.
func (s *NotificationService) NotifyConfirmationReady(ctx context.Context, confirmation *domain.Confirmation) error {
	notification := Notification{
		Type:        NotificationConfirmationReady,
		RecipientID: confirmation.Identifier,
		Title:       "Booking Summary Ready",
		Message:     fmt.Sprintf("Your booking summary for Rs %.0f is ready", confirmation.Fare),
		Data: map[string]interface{}{
			"confirmation_id": confirmation.ID,
			"booking_id":      confirmation.BookingID,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// send delivers a notification (simulated).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)

	return nil
}
