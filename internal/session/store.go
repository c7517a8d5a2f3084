// Package session keeps the device session (the backend auth token and the
// seller record it belongs to) in Redis. The
// store is consumed as-is: the companion never mints or verifies credentials,
// it only screens the token expiry locally before bothering the backend.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dvalverde/pos-companion/internal/errors"
	"github.com/dvalverde/pos-companion/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const sessionKey = "pos-companion:session"

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Save commits the session after a successful login.
func (s *Store) Save(ctx context.Context, session models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	return nil
}

// Get returns the stored session. A missing or expired session maps to a
// typed unauthorized error so handlers can surface it directly.
func (s *Store) Get(ctx context.Context) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.UnauthorizedError("No active session")
		}

		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if expired(session.Token) {
		return nil, errors.UnauthorizedError("Session token has expired")
	}

	return &session, nil
}

// Token implements the backend client's token source.
func (s *Store) Token(ctx context.Context) (string, error) {
	sess, err := s.Get(ctx)
	if err != nil {
		return "", err
	}

	return sess.Token, nil
}

// Delete drops the session on logout. Deleting an absent session is fine.
func (s *Store) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// expired decodes the token claims without verifying the signature. The
// backend is the authority on validity; this only avoids sending requests
// with a token that is already past its exp claim.
func expired(token string) bool {
	claims := jwt.MapClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// opaque tokens pass through, the backend will reject them if bad
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}
