package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"cab/internal/domain"
	"cab/internal/estimator"
	"cab/internal/redis"
	"cab/internal/repository"
)

// transitionLockTTL caps how long a wizard transition may hold its booking.
const transitionLockTTL = 30 * time.Second

// BookingService drives the booking wizard:
// BOOKING_FORM -> FARE_DETAILS -> PAYMENT (guest only) -> CONFIRMED.
type BookingService struct {
	bookingRepo         repository.BookingRepository
	estimator           estimator.Estimator
	rateService         *RateService
	paymentService      *PaymentService
	confirmationService *ConfirmationService
	notificationService *NotificationService
	estimateCache       redis.EstimateCacheInterface // optional
	lockStore           redis.LockStoreInterface     // optional
	adminConfirmDelay   time.Duration
}

// NewBookingService creates a new BookingService. estimateCache and
// lockStore may be nil; the flow then runs without caching or locking.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	est estimator.Estimator,
	rateService *RateService,
	paymentService *PaymentService,
	confirmationService *ConfirmationService,
	notificationService *NotificationService,
	estimateCache redis.EstimateCacheInterface,
	lockStore redis.LockStoreInterface,
	adminConfirmDelay time.Duration,
) *BookingService {
	return &BookingService{
		bookingRepo:         bookingRepo,
		estimator:           est,
		rateService:         rateService,
		paymentService:      paymentService,
		confirmationService: confirmationService,
		notificationService: notificationService,
		estimateCache:       estimateCache,
		lockStore:           lockStore,
		adminConfirmDelay:   adminConfirmDelay,
	}
}

// EstimateRequest contains the booking form submission.
type EstimateRequest struct {
	Session     *domain.Session
	Details     domain.BookingDetails
	VehicleType domain.VehicleType
}

// EstimateFare runs the BOOKING_FORM -> FARE_DETAILS transition: it
// validates the draft, asks the estimator for a fare, and freezes the
// details and estimate into a new booking. On estimator failure nothing is
// created and the caller's draft stays as it was.
func (s *BookingService) EstimateFare(ctx context.Context, req EstimateRequest) (*domain.Booking, error) {
	if !req.Details.Complete() {
		return nil, ErrMissingBookingDetails
	}

	vehicle, err := s.rateService.GetVehicle(ctx, req.VehicleType)
	if err != nil {
		return nil, err
	}

	estimate, err := s.fetchEstimate(ctx, req.Details, vehicle)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:          uuid.New().String(),
		Identifier:  req.Session.Identifier,
		Role:        req.Session.Role,
		Details:     req.Details,
		VehicleType: vehicle.Type,
		VehicleName: vehicle.Name,
		Estimate:    *estimate,
		Step:        domain.StepFareDetails,
		CreatedAt:   time.Now(),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// fetchEstimate consults the cache before the external estimator. A cache
// entry is keyed by details and the rate values, so rate edits miss.
func (s *BookingService) fetchEstimate(ctx context.Context, details domain.BookingDetails, vehicle domain.VehicleOption) (*domain.FareEstimate, error) {
	key := redis.EstimateKey(details, vehicle)

	if s.estimateCache != nil {
		if cached, err := s.estimateCache.Get(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	estimate, err := s.estimator.Estimate(ctx, details, vehicle)
	if err != nil {
		log.Printf("booking: estimate failed: %v", err)
		return nil, estimator.ErrEstimateUnavailable
	}

	if s.estimateCache != nil {
		if err := s.estimateCache.Set(ctx, key, estimate); err != nil {
			log.Printf("booking: estimate cache write failed: %v", err)
		}
	}

	return estimate, nil
}

// GetBooking retrieves a booking, enforcing ownership. Admins may read any
// booking.
func (s *BookingService) GetBooking(ctx context.Context, session *domain.Session, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if session.Role != domain.RoleAdmin && booking.Identifier != session.Identifier {
		return nil, ErrBookingNotOwned
	}

	return booking, nil
}

// ListBookings retrieves recent bookings (admin overview).
func (s *BookingService) ListBookings(ctx context.Context) ([]*domain.Booking, error) {
	return s.bookingRepo.GetAll(ctx)
}

// ConfirmResult reports where the confirm transition landed.
type ConfirmResult struct {
	Booking      *domain.Booking
	Confirmation *domain.Confirmation // set only when the booking confirmed
}

// Confirm runs FARE_DETAILS -> PAYMENT for guests, or FARE_DETAILS ->
// CONFIRMED for admins after the simulated confirmation wait.
func (s *BookingService) Confirm(ctx context.Context, session *domain.Session, bookingID string) (*ConfirmResult, error) {
	booking, err := s.lockedBooking(ctx, session, bookingID)
	if err != nil {
		return nil, err
	}
	defer s.unlock(ctx, bookingID)

	if booking.Step != domain.StepFareDetails {
		return nil, ErrBookingNotAtFareDetails
	}

	if booking.Role == domain.RoleGuest {
		booking.Step = domain.StepPayment
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			return nil, err
		}
		return &ConfirmResult{Booking: booking}, nil
	}

	// Admin path: no payment step, just the simulated confirmation wait.
	if err := s.wait(ctx, s.adminConfirmDelay); err != nil {
		return nil, err
	}

	confirmation, err := s.finishBooking(ctx, booking)
	if err != nil {
		return nil, err
	}
	return &ConfirmResult{Booking: booking, Confirmation: confirmation}, nil
}

// PayRequest contains the advance payment submission.
type PayRequest struct {
	BookingID          string
	PolicyAcknowledged bool
}

// PayResult reports the outcome of the advance payment.
type PayResult struct {
	Booking      *domain.Booking
	Payment      *domain.Payment
	Confirmation *domain.Confirmation
}

// Pay runs PAYMENT -> CONFIRMED. The non-refundable-advance policy must be
// acknowledged first; the booking stays at PAYMENT otherwise.
func (s *BookingService) Pay(ctx context.Context, session *domain.Session, req PayRequest) (*PayResult, error) {
	booking, err := s.lockedBooking(ctx, session, req.BookingID)
	if err != nil {
		return nil, err
	}
	defer s.unlock(ctx, req.BookingID)

	if booking.Step != domain.StepPayment {
		return nil, ErrBookingNotAtPayment
	}

	if !req.PolicyAcknowledged {
		return nil, ErrPolicyNotAcknowledged
	}

	payment, err := s.paymentService.ProcessAdvance(ctx, ProcessAdvanceRequest{
		BookingID:  booking.ID,
		Amount:     booking.Advance(),
		Identifier: booking.Identifier,
	})
	if err != nil {
		return nil, err
	}

	if payment.Status != domain.PaymentStatusSuccess {
		return nil, ErrPaymentFailed
	}

	confirmation, err := s.finishBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	return &PayResult{Booking: booking, Payment: payment, Confirmation: confirmation}, nil
}

// BackToFareDetails runs PAYMENT -> FARE_DETAILS. The stored estimate is
// untouched.
func (s *BookingService) BackToFareDetails(ctx context.Context, session *domain.Session, bookingID string) (*domain.Booking, error) {
	booking, err := s.lockedBooking(ctx, session, bookingID)
	if err != nil {
		return nil, err
	}
	defer s.unlock(ctx, bookingID)

	if booking.Step != domain.StepPayment {
		return nil, ErrBookingNotAtPayment
	}

	booking.Step = domain.StepFareDetails
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// NewBooking runs CONFIRMED -> BOOKING_FORM: it hands back a reset draft
// with empty details and the default vehicle. The confirmed booking itself
// is left as a record.
func (s *BookingService) NewBooking(ctx context.Context, session *domain.Session, bookingID string) (domain.BookingDraft, error) {
	booking, err := s.GetBooking(ctx, session, bookingID)
	if err != nil {
		return domain.BookingDraft{}, err
	}

	if booking.Step != domain.StepConfirmed {
		return domain.BookingDraft{}, ErrBookingNotConfirmed
	}

	return domain.NewBookingDraft(), nil
}

// finishBooking moves a booking to its terminal step and generates the
// confirmation summary.
func (s *BookingService) finishBooking(ctx context.Context, booking *domain.Booking) (*domain.Confirmation, error) {
	booking.Step = domain.StepConfirmed
	booking.ConfirmedAt = time.Now()

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBookingConfirmed(ctx, booking)
	}

	if s.confirmationService == nil {
		return nil, nil
	}
	return s.confirmationService.GenerateConfirmation(ctx, booking)
}

// lockedBooking loads a booking with ownership checks and takes its
// transition lock when a lock store is configured.
func (s *BookingService) lockedBooking(ctx context.Context, session *domain.Session, bookingID string) (*domain.Booking, error) {
	booking, err := s.GetBooking(ctx, session, bookingID)
	if err != nil {
		return nil, err
	}

	if s.lockStore != nil {
		ok, err := s.lockStore.AcquireBookingLock(ctx, bookingID, transitionLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrBookingBusy
		}
	}

	return booking, nil
}

func (s *BookingService) unlock(ctx context.Context, bookingID string) {
	if s.lockStore != nil {
		_ = s.lockStore.ReleaseBookingLock(ctx, bookingID)
	}
}

// wait sleeps for the simulated delay, honoring cancellation.
func (s *BookingService) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
