// Package auth supplies bearer tokens for authenticated API requests.
// The engine never reads ambient auth state; a TokenProvider is injected
// wherever a token is needed so tests can substitute doubles.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenProvider produces a bearer token for the current identity.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Static is a TokenProvider returning a fixed token, typically loaded from
// configuration.
type Static string

// Token returns the fixed token. An empty token is an error.
func (s Static) Token(_ context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("no bearer token configured")
	}
	return string(s), nil
}

// Claims represents JWT claims with user ID.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// Minter is a TokenProvider that signs HS256 tokens locally. It is intended
// for development and testing against a server sharing the same secret.
// Tokens are reused until close to expiry.
type Minter struct {
	mu      sync.Mutex
	secret  []byte
	userID  uuid.UUID
	ttl     time.Duration
	now     func() time.Time
	token   string
	expires time.Time
}

// NewMinter creates a Minter for the given user ID and signing secret.
// A non-positive ttl defaults to one hour.
func NewMinter(secret string, userID uuid.UUID, ttl time.Duration) *Minter {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Minter{
		secret: []byte(secret),
		userID: userID,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Token returns a signed token, minting a fresh one when the cached token is
// within a minute of expiry.
func (m *Minter) Token(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if m.token != "" && now.Add(time.Minute).Before(m.expires) {
		return m.token, nil
	}

	expiresAt := now.Add(m.ttl)
	claims := &Claims{
		UserID: m.userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	m.token = signed
	m.expires = expiresAt
	return signed, nil
}

// ParseClaims validates a token string against the secret and returns its
// claims. Used by the CLI to inspect minted tokens.
func ParseClaims(tokenString, secret string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	return claims, nil
}
