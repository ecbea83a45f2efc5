package auth

import "errors"

var (
	// ErrInvalidToken is returned when a bearer token cannot be parsed or validated
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnexpectedSigningMethod is returned when a token uses a non-HMAC signing method
	ErrUnexpectedSigningMethod = errors.New("unexpected signing method")
	// ErrMissingIdentity is returned when a valid token carries no user identity
	ErrMissingIdentity = errors.New("token carries no user identity")
)
