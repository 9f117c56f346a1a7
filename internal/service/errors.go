package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
//
// Error handling principles:
//  1. Service methods return sentinel errors for expected error conditions
//  2. Unexpected errors are wrapped in service-specific error types
//  3. Callers use errors.Is/errors.As to check for specific error conditions
//  4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrInvalidCredentials is returned on login when the email is unknown
	// OR the password is wrong. The two cases are deliberately
	// indistinguishable to prevent user enumeration.
	// API layer maps this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotOwned indicates a place is owned by a different user than the
	// one making the request.
	// API layer maps this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("place is owned by another user")
)
