package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"cab/internal/domain"
)

// SessionStore holds authenticated sessions in Redis, keyed by an opaque
// bearer token. A session lives from login until logout or TTL expiry.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// SessionTTL bounds how long an idle session survives.
const SessionTTL = 24 * time.Hour

const sessionPrefix = "session:"

// NewSessionStore creates a new SessionStore.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, ttl: SessionTTL}
}

// Save stores a session under the given token.
func (s *SessionStore) Save(ctx context.Context, token string, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+token, data, s.ttl).Err()
}

// Get retrieves the session for a token. Returns nil on a miss.
func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionPrefix+token).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete destroys the session for a token (logout).
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionPrefix+token).Err()
}
