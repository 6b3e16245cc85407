package authgate

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity data embedded in an auth token. The user id rides
// in the standard "sub" claim; email is a custom claim.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// UserID returns the subject claim
func (c *Claims) UserID() string {
	return c.Subject
}

// DisplayName derives a human-friendly name from the email's local part
// ("jane" for "jane@example.com"). Falls back to the user id when the email
// claim is missing.
func (c *Claims) DisplayName() string {
	if c.Email != "" {
		local, _, _ := strings.Cut(c.Email, "@")
		if local != "" {
			return local
		}
	}
	return c.Subject
}

// TokenIssuer issues and verifies HS256-signed auth tokens. The secret key
// is set once at startup and treated as read-only; a TokenIssuer is safe
// for concurrent use.
type TokenIssuer struct {
	// SecretKey is the HMAC secret used for signing and verification
	SecretKey []byte

	// Issuer is placed in the "iss" claim of issued tokens
	Issuer string
}

// Issue creates a signed token for the user with the given lifetime. The
// expiry is embedded in the token; callers pick the lifetime per flow.
func (ti *TokenIssuer) Issue(userID, email string, lifetime time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    ti.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
		Email: email,
	})
	return token.SignedString(ti.SecretKey)
}

// Verify parses and validates a token string, returning the embedded claims
// unchanged on success. Failures are one of ErrTokenExpired,
// ErrInvalidSignature, or ErrTokenMalformed.
func (ti *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return ti.SecretKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
