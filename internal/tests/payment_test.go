package tests

import (
	"context"
	"errors"
	"testing"

	"cab/internal/domain"
	"cab/internal/service"
)

// ──────────────────────────────────────────────
// 1. ADVANCE PROCESSING
// ──────────────────────────────────────────────

func TestProcessAdvance_SuccessfulCharge_RecordsPayment(t *testing.T) {
	t.Parallel()

	paymentRepo := NewMockPaymentRepository()
	psp := NewMockPSP()
	paymentService := service.NewPaymentService(paymentRepo, psp, nil)

	payment, err := paymentService.ProcessAdvance(context.Background(), service.ProcessAdvanceRequest{
		BookingID:  "booking-1",
		Amount:     170,
		Identifier: "9876543210",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if payment.Status != domain.PaymentStatusSuccess {
		t.Errorf("expected SUCCESS, got %s", payment.Status)
	}
	if payment.Amount != 170 {
		t.Errorf("expected amount 170, got %v", payment.Amount)
	}
	if paymentRepo.CreateCallCount != 1 {
		t.Errorf("expected 1 create call, got %d", paymentRepo.CreateCallCount)
	}
	// PENDING -> SUCCESS transition is persisted.
	if paymentRepo.UpdateStatusCallCount != 1 {
		t.Errorf("expected 1 status update, got %d", paymentRepo.UpdateStatusCallCount)
	}
}

func TestProcessAdvance_RepeatCall_ReturnsExistingPayment(t *testing.T) {
	t.Parallel()

	paymentRepo := NewMockPaymentRepository()
	psp := NewMockPSP()
	paymentService := service.NewPaymentService(paymentRepo, psp, nil)

	req := service.ProcessAdvanceRequest{
		BookingID:  "booking-1",
		Amount:     170,
		Identifier: "9876543210",
	}

	first, err := paymentService.ProcessAdvance(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	second, err := paymentService.ProcessAdvance(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected the same payment, got %s and %s", first.ID, second.ID)
	}
	if psp.ChargeCallCount != 1 {
		t.Errorf("expected exactly one charge, got %d", psp.ChargeCallCount)
	}
}

func TestProcessAdvance_RetryAfterFailure_ChargesAgain(t *testing.T) {
	t.Parallel()

	paymentRepo := NewMockPaymentRepository()
	psp := NewMockPSP()
	psp.ChargeError = errors.New("gateway unreachable")
	paymentService := service.NewPaymentService(paymentRepo, psp, nil)

	req := service.ProcessAdvanceRequest{
		BookingID:  "booking-1",
		Amount:     170,
		Identifier: "9876543210",
	}

	first, err := paymentService.ProcessAdvance(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if first.Status != domain.PaymentStatusFailed {
		t.Fatalf("expected FAILED, got %s", first.Status)
	}

	psp.ChargeError = nil

	second, err := paymentService.ProcessAdvance(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error on retry, got: %v", err)
	}

	if second.Status != domain.PaymentStatusSuccess {
		t.Errorf("expected SUCCESS after retry, got %s", second.Status)
	}
	if second.ID != first.ID {
		t.Errorf("expected the retry to reuse the payment record, got %s and %s", first.ID, second.ID)
	}
	if psp.ChargeCallCount != 2 {
		t.Errorf("expected 2 charge attempts, got %d", psp.ChargeCallCount)
	}
	if paymentRepo.CreateCallCount != 1 {
		t.Errorf("expected 1 create call, got %d", paymentRepo.CreateCallCount)
	}
}

func TestProcessAdvance_ZeroAmount_SucceedsWithoutCharge(t *testing.T) {
	t.Parallel()

	paymentRepo := NewMockPaymentRepository()
	psp := NewMockPSP()
	paymentService := service.NewPaymentService(paymentRepo, psp, nil)

	payment, err := paymentService.ProcessAdvance(context.Background(), service.ProcessAdvanceRequest{
		BookingID:  "booking-1",
		Amount:     0,
		Identifier: "9876543210",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if payment.Status != domain.PaymentStatusSuccess {
		t.Errorf("expected SUCCESS, got %s", payment.Status)
	}
	if psp.ChargeCallCount != 0 {
		t.Errorf("expected no charge for a zero advance, got %d", psp.ChargeCallCount)
	}
}

func TestProcessAdvance_InvalidInput_Rejected(t *testing.T) {
	t.Parallel()

	paymentRepo := NewMockPaymentRepository()
	paymentService := service.NewPaymentService(paymentRepo, NewMockPSP(), nil)

	if _, err := paymentService.ProcessAdvance(context.Background(), service.ProcessAdvanceRequest{
		BookingID: "",
		Amount:    170,
	}); !errors.Is(err, service.ErrInvalidBookingID) {
		t.Errorf("expected ErrInvalidBookingID, got: %v", err)
	}

	if _, err := paymentService.ProcessAdvance(context.Background(), service.ProcessAdvanceRequest{
		BookingID: "booking-1",
		Amount:    -50,
	}); !errors.Is(err, service.ErrInvalidPaymentAmount) {
		t.Errorf("expected ErrInvalidPaymentAmount for negative, got: %v", err)
	}

	if paymentRepo.CreateCallCount != 0 {
		t.Error("expected no payment to be created")
	}
}

func TestProcessAdvance_GatewayError_MarksPaymentFailed(t *testing.T) {
	t.Parallel()

	paymentRepo := NewMockPaymentRepository()
	psp := NewMockPSP()
	psp.ChargeError = errors.New("gateway unreachable")
	paymentService := service.NewPaymentService(paymentRepo, psp, nil)

	payment, err := paymentService.ProcessAdvance(context.Background(), service.ProcessAdvanceRequest{
		BookingID:  "booking-1",
		Amount:     170,
		Identifier: "9876543210",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if payment.Status != domain.PaymentStatusFailed {
		t.Errorf("expected FAILED, got %s", payment.Status)
	}

	stored, err := paymentRepo.GetByID(context.Background(), payment.ID)
	if err != nil {
		t.Fatalf("expected stored payment, got: %v", err)
	}
	if stored.Status != domain.PaymentStatusFailed {
		t.Errorf("expected stored status FAILED, got %s", stored.Status)
	}
}

func TestGetPayment_EmptyID_Rejected(t *testing.T) {
	t.Parallel()

	paymentService := service.NewPaymentService(NewMockPaymentRepository(), NewMockPSP(), nil)

	if _, err := paymentService.GetPayment(context.Background(), ""); !errors.Is(err, service.ErrInvalidPaymentID) {
		t.Fatalf("expected ErrInvalidPaymentID, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 2. ADVANCE / REMAINING SPLIT
// ──────────────────────────────────────────────

func TestAdvanceSplit_AlwaysSumsToFare(t *testing.T) {
	t.Parallel()

	fares := []float64{1, 3, 7, 99, 850, 999, 1234, 5000, 12345}

	for _, fare := range fares {
		booking := &domain.Booking{Estimate: domain.FareEstimate{Fare: fare}}

		advance := booking.AdvancePaise()
		remaining := booking.RemainingPaise()
		total := int64(fare * 100)

		if advance+remaining != total {
			t.Errorf("fare %v: advance %d + remaining %d != total %d", fare, advance, remaining, total)
		}
		if advance > total/5 {
			t.Errorf("fare %v: advance %d exceeds 20%% of %d", fare, advance, total)
		}
	}
}

func TestAdvanceSplit_ExampleFare(t *testing.T) {
	t.Parallel()

	booking := &domain.Booking{Estimate: domain.FareEstimate{Fare: 850}}

	if booking.Advance() != 170 {
		t.Errorf("expected advance 170.00, got %v", booking.Advance())
	}
	if booking.Remaining() != 680 {
		t.Errorf("expected remaining 680.00, got %v", booking.Remaining())
	}
}
