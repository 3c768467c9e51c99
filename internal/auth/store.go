package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bus-ticketing/internal/models"

	"github.com/go-redis/redis/v8"
)

// SessionKeyPrefix names the durable session store. The web client
// persists its auth state under the same name.
const SessionKeyPrefix = "auth-storage"

// SessionStore keeps the logged-in user behind each live token in
// redis. Logout deletes the entry, which is what invalidates a token
// before its JWT expiry.
type SessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{Client: client, TTL: ttl}
}

func sessionKey(token string) string {
	return fmt.Sprintf("%s:%s", SessionKeyPrefix, token)
}

func (s *SessionStore) Save(ctx context.Context, token string, user models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, sessionKey(token), payload, s.TTL).Err()
}

// Get returns the session user, or nil when the token has no live
// session.
func (s *SessionStore) Get(ctx context.Context, token string) (*models.User, error) {
	payload, err := s.Client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &user, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.Client.Del(ctx, sessionKey(token)).Err()
}
