package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const AuthSessionPrefix = "authSession:"

// ServiceSessionID keys the process-wide service session that the expiration
// sweeper's guard checks. main establishes it at startup and keeps it fresh.
const ServiceSessionID = "sweeper"

// authSessionTTL matches the lifetime of issued access tokens.
const authSessionTTL = 24 * time.Hour

// AuthSession represents an authenticated service session.
type AuthSession struct {
	UserID        string    `json:"userId"`
	Role          string    `json:"role"` // e.g. "admin", "provider", "service"
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	Token         string    `json:"token,omitempty"`
}

// SaveAuthSession saves the session in Redis with a TTL.
func SaveAuthSession(client *redis.Client, sessionID string, session AuthSession) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal auth session: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, AuthSessionPrefix+sessionID, data, authSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

// GetAuthSession retrieves a session from Redis.
func GetAuthSession(client *redis.Client, sessionID string) (*AuthSession, error) {
	ctx := context.Background()
	data, err := client.Get(ctx, AuthSessionPrefix+sessionID).Result()
	if err != nil {
		return nil, err
	}
	var session AuthSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &session, nil
}

// DeleteAuthSession removes a session from Redis.
func DeleteAuthSession(client *redis.Client, sessionID string) error {
	ctx := context.Background()
	return client.Del(ctx, AuthSessionPrefix+sessionID).Err()
}

// sessionGuardTTL is how long a HasSession result is reused before Redis is
// asked again. Keeps a tight polling loop from hammering Redis and from
// logging the same authorization failure every few milliseconds.
const sessionGuardTTL = 5 * time.Second

// SessionGuard answers "does an authenticated session exist right now" with
// a short-lived cache of the last answer.
type SessionGuard struct {
	client    *redis.Client
	sessionID string
	now       func() time.Time

	mu        sync.Mutex
	checkedAt time.Time
	lastValue bool
}

// NewSessionGuard builds a guard for the given session key.
func NewSessionGuard(client *redis.Client, sessionID string) *SessionGuard {
	return &SessionGuard{
		client:    client,
		sessionID: sessionID,
		now:       time.Now,
	}
}

// HasSession reports whether the guarded session currently exists. The
// result is cached for sessionGuardTTL; Redis errors count as "no session".
func (g *SessionGuard) HasSession(ctx context.Context) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.checkedAt.IsZero() && g.now().Sub(g.checkedAt) < sessionGuardTTL {
		return g.lastValue
	}

	n, err := g.client.Exists(ctx, AuthSessionPrefix+g.sessionID).Result()
	g.checkedAt = g.now()
	g.lastValue = err == nil && n > 0
	return g.lastValue
}
