package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clavier/clavier/internal/model"
)

// Token verification errors.
var (
	// ErrTokenInvalid covers malformed, unverifiable, and expired tokens.
	// Callers treat all of these the same: the request is unauthenticated.
	ErrTokenInvalid = errors.New("invalid or expired token")
)

// Tokens issues and verifies session tokens: HMAC-SHA256 JWTs whose
// subject is the user id. Tokens self-expire; there is no server-side
// revocation.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens creates a token issuer/verifier. The signing secret and token
// lifetime come from explicit configuration, not ambient state.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token asserting the given user id, expiring after the
// configured TTL.
func (t *Tokens) Issue(userID model.UserID) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   string(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token string, returning the user id it
// asserts. Any parse, signature, or expiry failure yields ErrTokenInvalid;
// the caller does not need to distinguish why a token was rejected.
func (t *Tokens) Verify(tokenStr string) (model.UserID, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return t.now() }),
	)
	if err != nil {
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return model.UserID(claims.Subject), nil
}
