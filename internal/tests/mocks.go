package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"cab/internal/domain"
	"cab/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	GetError    error
	UpdateError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		copy := *b
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *booking
	m.bookings[booking.ID] = &copy
	return nil
}

// GetBooking returns the stored booking for test assertions.
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError       error
	UpdateStatusError error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.Payment),
	}
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *payment
	m.payments[payment.ID] = &copy
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payment, ok := m.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *payment
	return &copy, nil
}

func (m *MockPaymentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.IdempotencyKey == key {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	payment.Status = status
	return nil
}

// ──────────────────────────────────────────────
// MOCK ESTIMATOR
// ──────────────────────────────────────────────

// MockEstimator is a mock implementation of estimator.Estimator.
type MockEstimator struct {
	// Estimate to return; a copy is handed out per call.
	Result domain.FareEstimate

	// Error injection
	EstimateError error

	// Counters for verification
	EstimateCallCount int32
}

// NewMockEstimator creates a mock estimator returning the given fare.
func NewMockEstimator(fare float64) *MockEstimator {
	return &MockEstimator{
		Result: domain.FareEstimate{
			Fare:        fare,
			Distance:    "35 km",
			Duration:    "1 hour 15 minutes",
			Description: "Scenic hill route via Mussoorie Road.",
		},
	}
}

func (m *MockEstimator) Estimate(ctx context.Context, details domain.BookingDetails, vehicle domain.VehicleOption) (*domain.FareEstimate, error) {
	atomic.AddInt32(&m.EstimateCallCount, 1)
	if m.EstimateError != nil {
		return nil, m.EstimateError
	}
	result := m.Result
	return &result, nil
}

// ──────────────────────────────────────────────
// MOCK ESTIMATE CACHE
// ──────────────────────────────────────────────

// MockEstimateCache is an in-memory implementation of EstimateCacheInterface.
type MockEstimateCache struct {
	mu      sync.RWMutex
	entries map[string]*domain.FareEstimate

	// Counters for verification
	GetCallCount int32
	SetCallCount int32
}

// NewMockEstimateCache creates a new mock estimate cache.
func NewMockEstimateCache() *MockEstimateCache {
	return &MockEstimateCache{
		entries: make(map[string]*domain.FareEstimate),
	}
}

func (m *MockEstimateCache) Get(ctx context.Context, key string) (*domain.FareEstimate, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	copy := *entry
	return &copy, nil
}

func (m *MockEstimateCache) Set(ctx context.Context, key string, estimate *domain.FareEstimate) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *estimate
	m.entries[key] = &copy
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[bookingID] {
		return false, nil
	}
	m.locks[bookingID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseBookingLock(ctx context.Context, bookingID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, bookingID)
	return nil
}

// HoldLock pre-acquires a lock so the next caller sees the booking busy.
func (m *MockLockStore) HoldLock(bookingID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks[bookingID] = true
}

// ──────────────────────────────────────────────
// MOCK SESSION STORE
// ──────────────────────────────────────────────

// MockSessionStore is an in-memory implementation of SessionStoreInterface.
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session

	// Counters for verification
	SaveCallCount   int32
	DeleteCallCount int32

	// Error injection
	SaveError error
}

// NewMockSessionStore creates a new mock session store.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]*domain.Session)}
}

func (m *MockSessionStore) Save(ctx context.Context, token string, session *domain.Session) error {
	atomic.AddInt32(&m.SaveCallCount, 1)
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *session
	m.sessions[token] = &copy
	return nil
}

func (m *MockSessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	copy := *session
	return &copy, nil
}

func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOGIN FLOW STORE
// ──────────────────────────────────────────────

// MockLoginFlowStore is an in-memory implementation of LoginFlowStoreInterface.
type MockLoginFlowStore struct {
	mu    sync.RWMutex
	flows map[string]*domain.LoginFlow

	// Counters for verification
	SaveCallCount   int32
	DeleteCallCount int32

	// Error injection
	SaveError error
	GetError  error
}

// NewMockLoginFlowStore creates a new mock login flow store.
func NewMockLoginFlowStore() *MockLoginFlowStore {
	return &MockLoginFlowStore{flows: make(map[string]*domain.LoginFlow)}
}

func (m *MockLoginFlowStore) Save(ctx context.Context, flow *domain.LoginFlow) error {
	atomic.AddInt32(&m.SaveCallCount, 1)
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *flow
	m.flows[flow.ID] = &copy
	return nil
}

func (m *MockLoginFlowStore) Get(ctx context.Context, id string) (*domain.LoginFlow, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	flow, ok := m.flows[id]
	if !ok {
		return nil, nil
	}
	copy := *flow
	return &copy, nil
}

func (m *MockLoginFlowStore) Delete(ctx context.Context, id string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flows, id)
	return nil
}

// GetFlow returns the stored flow for test assertions.
func (m *MockLoginFlowStore) GetFlow(id string) *domain.LoginFlow {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flows[id]
}

// ──────────────────────────────────────────────
// MOCK PSP
// ──────────────────────────────────────────────

// MockPSP is a mock Payment Service Provider with a controllable outcome.
type MockPSP struct {
	// Outcome of the next charge.
	Approve bool

	// Error injection
	ChargeError error

	// Counters for verification
	ChargeCallCount int32

	mu         sync.Mutex
	lastAmount float64
}

// NewMockPSP creates a mock PSP that approves every charge.
func NewMockPSP() *MockPSP {
	return &MockPSP{Approve: true}
}

func (m *MockPSP) Charge(ctx context.Context, amount float64) (bool, error) {
	atomic.AddInt32(&m.ChargeCallCount, 1)
	m.mu.Lock()
	m.lastAmount = amount
	m.mu.Unlock()
	if m.ChargeError != nil {
		return false, m.ChargeError
	}
	return m.Approve, nil
}

// LastAmount returns the amount of the most recent charge.
func (m *MockPSP) LastAmount() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastAmount
}
