// Package auth issues and validates bearer tokens and hashes credentials.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest signing secret accepted for HS256 (256 bits).
const MinSecretLength = 32

var (
	// ErrConfiguration is the parent of every token service setup failure.
	ErrConfiguration = errors.New("auth: invalid token configuration")
	ErrMissingSecret = fmt.Errorf("%w: signing secret is not set", ErrConfiguration)
	ErrWeakSecret    = fmt.Errorf("%w: signing secret must be at least %d bytes", ErrConfiguration, MinSecretLength)
	ErrBadLifetime   = fmt.Errorf("%w: token lifetime must be positive", ErrConfiguration)
)

// Token is a signed bearer token and its absolute expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Claims is what a valid token tells us about its holder.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenService issues and validates signed, time-limited tokens.
type TokenService struct {
	key      []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenService builds a TokenService from a shared secret and token lifetime.
func NewTokenService(secret string, lifetime time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if lifetime <= 0 {
		return nil, ErrBadLifetime
	}
	return &TokenService{
		key:      []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

// Lifetime returns the configured token lifetime.
func (s *TokenService) Lifetime() time.Duration {
	return s.lifetime
}

// Issue signs a token for subject that expires one lifetime from now.
func (s *TokenService) Issue(subject string) (Token, error) {
	now := s.now()
	exp := jwt.NewNumericDate(now.Add(s.lifetime))

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: exp,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: exp.Time}, nil
}

// Validate returns the token's claims when its signature, structure and expiry
// all check out. Any failure yields false; the reason is not reported.
func (s *TokenService) Validate(token string) (Claims, bool) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, false
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return Claims{}, false
	}
	return Claims{Subject: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, true
}
