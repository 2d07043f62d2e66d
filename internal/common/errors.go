// Package common defines shared sentinel errors and small helpers used
// across the authkit packages. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation / registration errors.
	ErrorValidation  = errors.New("validation error")
	ErrorEmailExists = errors.New("email already registered")

	// Login errors. Absent account and wrong password both map here so
	// callers cannot probe which emails exist.
	ErrorInvalidCredentials = errors.New("invalid email/password")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Generic internal failure, returned when the concrete cause must
	// not leak to the caller.
	ErrorInternal = errors.New("internal error")
)
