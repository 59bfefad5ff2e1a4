// Package common defines shared constants and sentinel errors used across
// QuizDeck components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Auth errors. Unknown email and wrong password collapse into
	// ErrInvalidCredentials so callers cannot tell which part failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")

	// Session errors. Bad signature, token mismatch and unknown user all
	// collapse into ErrInvalidToken at the validation boundary.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Authorization errors (valid session, insufficient role).
	ErrForbidden = errors.New("forbidden")
)
