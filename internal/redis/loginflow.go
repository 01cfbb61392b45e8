package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"cab/internal/domain"
)

// LoginFlowStore persists in-progress login flows in Redis so a flow
// survives across requests. Abandoned flows expire on their own.
type LoginFlowStore struct {
	client *redis.Client
	ttl    time.Duration
}

// LoginFlowTTL bounds how long an unfinished login attempt is kept.
const LoginFlowTTL = 15 * time.Minute

const loginFlowPrefix = "login:flow:"

// NewLoginFlowStore creates a new LoginFlowStore.
func NewLoginFlowStore(client *redis.Client) *LoginFlowStore {
	return &LoginFlowStore{client: client, ttl: LoginFlowTTL}
}

// Save stores a login flow, refreshing its TTL.
func (s *LoginFlowStore) Save(ctx context.Context, flow *domain.LoginFlow) error {
	data, err := json.Marshal(flow)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, loginFlowPrefix+flow.ID, data, s.ttl).Err()
}

// Get retrieves a login flow by ID. Returns nil on a miss.
func (s *LoginFlowStore) Get(ctx context.Context, id string) (*domain.LoginFlow, error) {
	data, err := s.client.Get(ctx, loginFlowPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flow domain.LoginFlow
	if err := json.Unmarshal(data, &flow); err != nil {
		return nil, err
	}
	return &flow, nil
}

// Delete removes a completed or abandoned flow.
func (s *LoginFlowStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, loginFlowPrefix+id).Err()
}
