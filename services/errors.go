package services

import "errors"

// ValidationError is a client-correctable failure. The message is exactly
// what the client sees in the 400 body.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErr(msg string) error { return &ValidationError{Msg: msg} }

var (
	// ErrForbidden: valid credential, insufficient privilege (403).
	ErrForbidden = errors.New("forbidden")
	// ErrRateLimited: fixed-window limit exceeded (429).
	ErrRateLimited = errors.New("rate limited")
	// ErrInvalidToken covers malformed, expired, and unknown CLI tokens
	// alike; callers must not be able to tell which (401).
	ErrInvalidToken = errors.New("invalid token")
)
