package kycaid

import "fmt"

// ErrInvalidMode is returned when a mode write names anything other than
// "test" or "prod".
type ErrInvalidMode struct {
	Mode string
}

func (e ErrInvalidMode) Error() string {
	return fmt.Sprintf("invalid mode %q, must be \"test\" or \"prod\"", e.Mode)
}

// ErrProviderUnreachable wraps a transport failure where no provider
// response was obtained. Callers report it as a generic 500.
type ErrProviderUnreachable struct {
	Err error
}

func (e ErrProviderUnreachable) Error() string {
	return fmt.Sprintf("couldn't reach identity provider: %v", e.Err)
}

func (e ErrProviderUnreachable) Unwrap() error {
	return e.Err
}

// APIError carries a non-2xx provider response. The status code and body
// are relayed to the caller unchanged.
type APIError struct {
	StatusCode int
	Body       map[string]interface{}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider returned status %d", e.StatusCode)
}
