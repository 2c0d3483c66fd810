package m3

import "fmt"

// AuthenticationError is returned when the auth endpoint rejects the client
// secret. The secret is embedded in the message for diagnostics, matching
// the behavior of the remote services' reference tooling.
type AuthenticationError struct {
	Secret string
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication error, check client secret: %s", e.Secret)
}

// AuthenticationMissingError is returned when a privileged call is attempted
// before any successful authentication.
type AuthenticationMissingError struct{}

// Error implements the error interface
func (e *AuthenticationMissingError) Error() string {
	return "authorization required"
}

// BadRequestError is returned for 400 responses.
type BadRequestError struct {
	Message string
}

// Error implements the error interface
func (e *BadRequestError) Error() string {
	return fmt.Sprintf("malformed request: %s", e.Message)
}

// NotFoundError is returned for 404 responses.
type NotFoundError struct {
	Message string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Message)
}

// GatewayTimeoutError is returned for 504 responses.
type GatewayTimeoutError struct{}

// Error implements the error interface
func (e *GatewayTimeoutError) Error() string {
	return "gateway timeout"
}

// ServiceError wraps any response status outside the mapped set.
type ServiceError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error: status %d: %s", e.StatusCode, e.Body)
}

// DecodeError reports a response body that could not be shaped into the
// expected record type. Raw holds the value the server actually sent so
// callers can still inspect the untyped payload.
type DecodeError struct {
	Schema string
	Raw    any
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("response did not match %s schema: %v", e.Schema, e.Raw)
}
