package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cab/internal/domain"
	"cab/internal/repository"
)

// PSP is the interface for a Payment Service Provider.
type PSP interface {
	Charge(ctx context.Context, amount float64) (bool, error)
}

// SimulatedPSP stands in for a real gateway: it waits a fixed processing
// delay and approves every charge.
type SimulatedPSP struct {
	processingDelay time.Duration
}

// NewSimulatedPSP creates a simulated PSP with the given processing delay.
func NewSimulatedPSP(processingDelay time.Duration) *SimulatedPSP {
	return &SimulatedPSP{processingDelay: processingDelay}
}

// Charge simulates payment processing. Always succeeds after the delay.
func (p *SimulatedPSP) Charge(ctx context.Context, amount float64) (bool, error) {
	if p.processingDelay > 0 {
		select {
		case <-time.After(p.processingDelay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return true, nil
}

// PaymentService handles advance payment processing.
type PaymentService struct {
	paymentRepo         repository.PaymentRepository
	psp                 PSP
	notificationService *NotificationService
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repository.PaymentRepository, psp PSP, notificationService *NotificationService) *PaymentService {
	return &PaymentService{
		paymentRepo:         paymentRepo,
		psp:                 psp,
		notificationService: notificationService,
	}
}

// ProcessAdvanceRequest contains the parameters for charging an advance.
type ProcessAdvanceRequest struct {
	BookingID  string
	Amount     float64
	Identifier string
}

// ProcessAdvance charges the 20% advance for a booking. One advance per
// booking: a repeat call after success returns the existing payment, while
// a failed attempt reopens the same record and charges again.
func (s *PaymentService) ProcessAdvance(ctx context.Context, req ProcessAdvanceRequest) (*domain.Payment, error) {
	if req.BookingID == "" {
		return nil, ErrInvalidBookingID
	}

	if req.Amount < 0 {
		return nil, ErrInvalidPaymentAmount
	}

	idempotencyKey := fmt.Sprintf("advance:%s", req.BookingID)

	payment, err := s.paymentRepo.GetByIdempotencyKey(ctx, idempotencyKey)
	if err != nil {
		return nil, err
	}

	// SUCCESS or an in-flight PENDING charge; never collect twice.
	if payment != nil && payment.Status != domain.PaymentStatusFailed {
		return payment, nil
	}

	if payment == nil {
		payment = &domain.Payment{
			ID:             uuid.New().String(),
			BookingID:      req.BookingID,
			Amount:         req.Amount,
			Status:         domain.PaymentStatusPending,
			IdempotencyKey: idempotencyKey,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return nil, err
		}
	} else {
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentStatusPending); err != nil {
			return nil, err
		}
		payment.Status = domain.PaymentStatusPending
	}

	// A zero fare carries a zero advance; nothing to collect.
	if req.Amount == 0 {
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentStatusSuccess); err != nil {
			return nil, err
		}
		payment.Status = domain.PaymentStatusSuccess
		s.notifyResult(ctx, payment, req.Identifier)
		return payment, nil
	}

	success, err := s.psp.Charge(ctx, req.Amount)
	if err != nil {
		_ = s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentStatusFailed)
		payment.Status = domain.PaymentStatusFailed
		s.notifyResult(ctx, payment, req.Identifier)
		return payment, nil
	}

	if success {
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentStatusSuccess); err != nil {
			return nil, err
		}
		payment.Status = domain.PaymentStatusSuccess
	} else {
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentStatusFailed); err != nil {
			return nil, err
		}
		payment.Status = domain.PaymentStatusFailed
	}

	s.notifyResult(ctx, payment, req.Identifier)
	return payment, nil
}

// GetPayment retrieves a payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}

	return s.paymentRepo.GetByID(ctx, paymentID)
}

func (s *PaymentService) notifyResult(ctx context.Context, payment *domain.Payment, identifier string) {
	if s.notificationService == nil {
		return
	}
	if payment.Status == domain.PaymentStatusSuccess {
		_ = s.notificationService.NotifyPaymentSuccess(ctx, payment, identifier)
	} else {
		_ = s.notificationService.NotifyPaymentFailed(ctx, payment, identifier)
	}
}
