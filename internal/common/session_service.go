package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aeroclub/flightdesk/internal/constants"
	"aeroclub/flightdesk/internal/logging"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionData is what the external identity provider leaves in Redis once a
// member signs in. Flightdesk only reads it; sign-in itself happens
// elsewhere.
type SessionData struct {
	SessionID      string            `json:"session_id"`
	UserID         string            `json:"user_id"`
	OrganizationID string            `json:"organization_id"`
	Role           constants.OrgRole `json:"role"`
	DisplayName    string            `json:"display_name"`
	CreatedAt      time.Time         `json:"created_at"`
	ExpiresAt      time.Time         `json:"expires_at"`
}

var ErrSessionNotFound = errors.New("session not found")
var ErrSessionExpired = errors.New("session expired")

const sessionTTL = 7 * 24 * time.Hour

// SessionService resolves session ids against the Redis session store.
type SessionService struct {
	redis *redis.Client
}

// NewSessionService creates a new session service
func NewSessionService(redis *redis.Client) *SessionService {
	return &SessionService{
		redis: redis,
	}
}

// CreateSession mints a session. Used by the dev tooling and tests; in
// production the identity provider writes sessions in the same format.
func (s *SessionService) CreateSession(
	ctx context.Context,
	userID, organizationID, displayName string,
	role constants.OrgRole,
) (string, error) {
	sessionID := uuid.New().String()

	now := time.Now()
	session := SessionData{
		SessionID:      sessionID,
		UserID:         userID,
		OrganizationID: organizationID,
		Role:           role,
		DisplayName:    displayName,
		CreatedAt:      now,
		ExpiresAt:      now.Add(sessionTTL),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.redis.Set(ctx, "session:"+sessionID, data, sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return sessionID, nil
}

// GetSession retrieves a session from Redis
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	val, err := s.redis.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		logging.Warn("Session expired", "session_id", sessionID, "user_id", session.UserID)
		_ = s.DeleteSession(ctx, sessionID) // clean up the stale key
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// DeleteSession deletes a session from Redis
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, "session:"+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// RefreshSession extends the session expiration
func (s *SessionService) RefreshSession(ctx context.Context, sessionID string) error {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	session.ExpiresAt = time.Now().Add(sessionTTL)

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.redis.Set(ctx, "session:"+sessionID, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	return nil
}
