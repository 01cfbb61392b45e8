package estimator

import (
	"context"
	"errors"

	"cab/internal/domain"
)

// ErrEstimateUnavailable is the single failure surfaced to callers. Every
// transport, parse, or shape problem collapses into it; the booking flow
// does not retry automatically.
var ErrEstimateUnavailable = errors.New("could not retrieve fare estimate")

// Estimator produces a fare estimate for a trip. The caller supplies the
// pricing inputs and trusts the returned fare; it is not re-derived locally.
type Estimator interface {
	Estimate(ctx context.Context, details domain.BookingDetails, vehicle domain.VehicleOption) (*domain.FareEstimate, error)
}
