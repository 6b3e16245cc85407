package authgate

import "errors"

// Error codes returned in JSON error bodies
const (
	ErrCodeMissingField = "missing_field"
	ErrCodeInvalidEmail = "invalid_email"
	ErrCodeWeakPassword = "weak_password"
	ErrCodeEmailExists  = "email_exists"
	ErrCodeInvalidCreds = "invalid_credentials"
	ErrCodeInternal     = "internal_error"
)

// Store errors. Implementations must return these so handlers can map them
// to status codes without knowing the backend.
var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

// Token verification errors. The session guard treats all three the same
// way (not authenticated) but callers that care can distinguish them.
var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrTokenMalformed   = errors.New("token malformed")
)

// AuthError is a structured authentication error with a machine-readable
// code and the offending field (if any)
type AuthError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Field   string `json:"field,omitempty"`
}

// NewAuthError creates a new AuthError
func NewAuthError(code, message, field string) *AuthError {
	return &AuthError{Code: code, Message: message, Field: field}
}

func (e *AuthError) Error() string {
	return e.Message
}
