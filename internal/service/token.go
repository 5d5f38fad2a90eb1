package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aidar/remote-work-hub/internal/domain"
)

// TokenTTL is the fixed lifetime of a session token.
const TokenTTL = 24 * time.Hour

// SessionClaims represents JWT claims of a session token.
// The subject carries the username.
type SessionClaims struct {
	Authority string `json:"auth"`
	jwt.RegisteredClaims
}

// Username returns the subject of the token.
func (c *SessionClaims) Username() string {
	return c.Subject
}

// TokenCodec issues and verifies HS256-signed session tokens.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec creates a TokenCodec signing with secret.
func NewTokenCodec(secret string, opts ...Option) *TokenCodec {
	o := newOptions(opts)
	return &TokenCodec{
		secret: []byte(secret),
		now:    o.now,
	}
}

// Issue generates a signed token for user.
func (c *TokenCodec) Issue(user *domain.User) (string, error) {
	now := c.now()

	claims := &SessionClaims{
		Authority: user.Role.Authority(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify validates the signature and expiry of tokenString and returns its claims.
// Failures are reported as ErrTokenMalformed, ErrTokenExpired or ErrTokenSignature.
func (c *TokenCodec) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenSignature
		default:
			return nil, domain.ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenMalformed
	}

	return claims, nil
}
