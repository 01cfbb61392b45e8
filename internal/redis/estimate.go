package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cab/internal/domain"
)

// EstimateCache caches fare estimates keyed by a digest of the trip details
// and the rate-table entry they were computed with. An admin rate edit
// changes the digest, so stale prices are never served.
type EstimateCache struct {
	client *redis.Client
}

// EstimateCacheTTL keeps estimates fresh enough for a booking session.
const EstimateCacheTTL = 30 * time.Minute

const estimatePrefix = "cache:estimate:"

// NewEstimateCache creates a new EstimateCache.
func NewEstimateCache(client *redis.Client) *EstimateCache {
	return &EstimateCache{client: client}
}

// EstimateKey derives the cache key for a trip/vehicle/rates combination.
func EstimateKey(details domain.BookingDetails, vehicle domain.VehicleOption) string {
	raw := fmt.Sprintf("%s|%s|%s|%s|%s|%.2f|%.2f",
		details.Pickup, details.Dropoff, details.Date, details.Time,
		vehicle.Type, vehicle.BaseFare, vehicle.PerKm)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:16])
}

// Get retrieves a cached estimate. Returns nil on a miss.
func (c *EstimateCache) Get(ctx context.Context, key string) (*domain.FareEstimate, error) {
	data, err := c.client.Get(ctx, estimatePrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var estimate domain.FareEstimate
	if err := json.Unmarshal(data, &estimate); err != nil {
		return nil, err
	}
	return &estimate, nil
}

// Set stores an estimate.
func (c *EstimateCache) Set(ctx context.Context, key string, estimate *domain.FareEstimate) error {
	data, err := json.Marshal(estimate)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, estimatePrefix+key, data, EstimateCacheTTL).Err()
}
