package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds configuration for access token issuance.
type Config struct {
	// Secret is the HMAC signing secret. Must be set in production.
	Secret string `mapstructure:"secret" default:"change-me-in-production"`
	// ExpireMinutes is the access token lifetime in minutes.
	ExpireMinutes int `mapstructure:"expire_minutes" default:"30"`
}

// ErrInvalidToken is returned when a token fails signature or claim checks.
var ErrInvalidToken = errors.New("invalid access token")

// Claims are the JWT claims carried by an access token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 access tokens.
type Manager struct {
	secret []byte
	expiry time.Duration
}

// NewManager creates a token manager from configuration.
func NewManager(cfg Config) *Manager {
	expiry := time.Duration(cfg.ExpireMinutes) * time.Minute
	if expiry <= 0 {
		expiry = 30 * time.Minute
	}
	return &Manager{secret: []byte(cfg.Secret), expiry: expiry}
}

// Issue signs a new token for the given user.
func (m *Manager) Issue(userID uint, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the user id and claims.
func (m *Manager) Verify(tokenStr string) (uint, *Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return uint(id), claims, nil
}
