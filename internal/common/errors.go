// Package common defines shared constants and sentinel errors used across
// client and server layers of Petzy. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Registration errors.
	ErrorAlreadyExists   = errors.New("already exists")
	ErrorInvalidUsername = errors.New("invalid username")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Preference update outcomes. See UpdateError and ReasonOf.
	ErrNoIdentity       = errors.New("no identity")
	ErrStoreUnreachable = errors.New("store unreachable")
	ErrDuplicateIgnored = errors.New("duplicate ignored")
	ErrUnknown          = errors.New("unknown error")
)
