// Package auth issues and checks the bearer tokens chat bridges present to
// the dialog ingress.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
	ErrNoSecret     = errors.New("bridge secret is empty")
)

const issuer = "krispyledger"

// JWTManager handles bridge token generation and validation.
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// Claims identifies the bridge a token was issued to.
type Claims struct {
	Bridge string `json:"bridge"`
	jwt.RegisteredClaims
}

// NewJWTManager creates a JWT manager with the given HS256 secret and
// token lifetime.
func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

// Generate mints a token for the named bridge.
func (m *JWTManager) Generate(bridge string) (string, error) {
	if len(m.secretKey) == 0 {
		return "", ErrNoSecret
	}
	now := m.now()
	claims := &Claims{
		Bridge: bridge,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   bridge,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Validate parses and validates a token, returning its claims if valid.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Bridge == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
