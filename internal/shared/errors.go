package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed     = fmt.Errorf("authentication failed")
	ErrAuthDenied     = fmt.Errorf("authorization denied")
	ErrRefreshFailed  = fmt.Errorf("token refresh failed")
	ErrNoRefreshToken = fmt.Errorf("no refresh token available")
	ErrTimeout        = fmt.Errorf("operation timed out")

	// Remote call errors, one sentinel per outcome category so callers can
	// branch with errors.Is instead of catching everything
	ErrAPIRequest        = fmt.Errorf("API request failed")
	ErrUnauthorized      = fmt.Errorf("not authorized")
	ErrRateLimited       = fmt.Errorf("rate limited")
	ErrMalformedResponse = fmt.Errorf("malformed response")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrCancelled       = fmt.Errorf("cancelled")
)
