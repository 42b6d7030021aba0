// ABOUTME: Error taxonomy for CyrLab API calls
// ABOUTME: Distinguishes transport, authentication, envelope, and validation failures

package client

import "fmt"

// NetworkError means the transport could not reach the server. The UI shows
// a connectivity-specific message for this case.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cannot connect to the CyrLab API at %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError means the credentials were rejected or the bearer token is
// invalid or expired. It triggers a forced logout in the UI.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// APIError means the response envelope reported failure or the HTTP status
// was outside the success range. Message is surfaced to the user verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// ValidationError means a request body failed client-side constraints and
// was never sent over the network.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
