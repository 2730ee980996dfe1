// Package common defines shared constants and sentinel errors used across
// askboard components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Signup conflicts.
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")

	// Signin failures.
	ErrUnknownUser    = errors.New("unknown user")
	ErrBadCredentials = errors.New("bad credentials")

	// Session resolution failures. ErrNotAuthenticated means no session
	// matches the presented token; ErrSessionExpiredOrClosed means a session
	// exists but is signed out or past its expiry.
	ErrNotAuthenticated       = errors.New("not authenticated")
	ErrSessionExpiredOrClosed = errors.New("session expired or closed")

	// Authorization failures (valid session, insufficient rights).
	ErrNotAuthorized = errors.New("not authorized")

	// Target question/answer/user does not exist.
	ErrResourceNotFound = errors.New("resource not found")
)
