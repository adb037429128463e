package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrSessionNotFound is returned when no user is bound to the session id
	ErrSessionNotFound = errors.New("session not found")

	// ErrStoreNotAvailable is returned when the store has no backing client
	ErrStoreNotAvailable = errors.New("session store not available")
)

// Store binds opaque session ids to durable user ids. Only the identifier
// is stored; the user record itself is re-read from the database on every
// request.
type Store interface {
	// Bind creates a new session for the user and returns its id
	Bind(ctx context.Context, userID string) (string, error)

	// Resolve returns the user id bound to the session id
	Resolve(ctx context.Context, sessionID string) (string, error)

	// Unbind removes the session binding (logout)
	Unbind(ctx context.Context, sessionID string) error
}

// RedisStore is the redis-backed session store
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a session store on the given redis client
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
		ttl:    ttl,
	}
}

func (s *RedisStore) key(sessionID string) string {
	return fmt.Sprintf("%s%s", s.prefix, sessionID)
}

func (s *RedisStore) Bind(ctx context.Context, userID string) (string, error) {
	if s.client == nil {
		return "", ErrStoreNotAvailable
	}

	sessionID := uuid.New().String()
	if err := s.client.Set(ctx, s.key(sessionID), userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to bind session: %w", err)
	}
	return sessionID, nil
}

func (s *RedisStore) Resolve(ctx context.Context, sessionID string) (string, error) {
	if s.client == nil {
		return "", ErrStoreNotAvailable
	}

	userID, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("failed to resolve session: %w", err)
	}
	return userID, nil
}

func (s *RedisStore) Unbind(ctx context.Context, sessionID string) error {
	if s.client == nil {
		return ErrStoreNotAvailable
	}

	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to unbind session: %w", err)
	}
	return nil
}
