package redis

import (
	"context"
	"time"

	"cab/internal/domain"
)

// SessionStoreInterface defines the interface for session storage.
type SessionStoreInterface interface {
	Save(ctx context.Context, token string, session *domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// LoginFlowStoreInterface defines the interface for login flow storage.
type LoginFlowStoreInterface interface {
	Save(ctx context.Context, flow *domain.LoginFlow) error
	Get(ctx context.Context, id string) (*domain.LoginFlow, error)
	Delete(ctx context.Context, id string) error
}

// EstimateCacheInterface defines the interface for fare estimate caching.
type EstimateCacheInterface interface {
	Get(ctx context.Context, key string) (*domain.FareEstimate, error)
	Set(ctx context.Context, key string, estimate *domain.FareEstimate) error
}

// LockStoreInterface defines the interface for booking transition locks.
type LockStoreInterface interface {
	AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (bool, error)
	ReleaseBookingLock(ctx context.Context, bookingID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ SessionStoreInterface   = (*SessionStore)(nil)
	_ LoginFlowStoreInterface = (*LoginFlowStore)(nil)
	_ EstimateCacheInterface  = (*EstimateCache)(nil)
	_ LockStoreInterface      = (*LockStore)(nil)
)
