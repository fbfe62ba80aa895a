package domain

import "errors"

// Sentinel errors forming the full failure taxonomy of the API. Services and
// repositories return these; the HTTP error handler owns the mapping to
// status codes, so no other layer needs to know about HTTP.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidAccessToken  = errors.New("invalid or expired token")
	ErrAuthRequired        = errors.New("authentication required")
	ErrForbidden           = errors.New("forbidden")
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameConflict    = errors.New("username already exists")
	ErrInvalidResetCode    = errors.New("invalid reset code")
	ErrInvalidID           = errors.New("invalid user id")
)
