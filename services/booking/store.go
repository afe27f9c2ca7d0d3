package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/sharathcodingit/remi-fitness-booking-app/models"
)

// ErrSessionNotFound is returned when a booking draft is missing or has
// expired out of the store.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// DraftTTL is how long an unconfirmed booking draft survives between steps.
const DraftTTL = 10 * time.Minute

// SessionStore holds booking drafts between form steps.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Set(ctx context.Context, draft *models.BookingSession) error
	Delete(ctx context.Context, sessionID string) error
}

const sessionKeyPrefix = "booking:session:"

// RedisSessionStore keeps drafts in Redis with a TTL, so abandoned forms
// clean themselves up.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisSessionStore creates a store with the default draft TTL.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: DraftTTL}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	data, err := s.Client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking session %s: %w", sessionID, err)
	}

	var draft models.BookingSession
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse booking session %s: %w", sessionID, err)
	}
	return &draft, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, draft *models.BookingSession) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session %s: %w", draft.SessionID, err)
	}
	if err := s.Client.Set(ctx, sessionKeyPrefix+draft.SessionID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to cache booking session %s: %w", draft.SessionID, err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.Client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete booking session %s: %w", sessionID, err)
	}
	return nil
}
