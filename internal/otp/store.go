package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "otp:session:"
	sessionTTL       = 10 * time.Minute
)

var ErrSessionNotFound = errors.New("otp session not found")

// Session binds a provider-issued session id to the account that requested
// it, so a successful verify can flip that account's mobile-verified flag.
type Session struct {
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) key(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal otp session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("save otp session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load otp session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode otp session: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}
