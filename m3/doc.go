// Package m3 provides the shared machinery for the M3 microservice clients:
// an authenticated HTTP client, a status-to-error mapper, and a schema-driven
// decoder that shapes untyped JSON payloads into typed records.
//
// The service packages (annosaurus, panoptes, vampiresquid) are thin catalogs
// of endpoints built on this package. A typical client is constructed with a
// base URL and authenticated once per session:
//
//	client := m3.New("https://m3.example.org/anno", m3.WithLogger(logger))
//	if err := client.Authenticate(ctx, secret); err != nil {
//		log.Fatal(err)
//	}
//
// Read endpoints are public; write endpoints require a prior successful
// Authenticate call and fail with *AuthenticationMissingError before any
// network I/O otherwise.
//
// # Error handling
//
// Non-2xx responses map onto a closed set of error types: *BadRequestError
// (400), *NotFoundError (404), *GatewayTimeoutError (504) and *ServiceError
// for everything else. Callers classify with errors.As:
//
//	var nf *m3.NotFoundError
//	if errors.As(err, &nf) {
//		// resource missing
//	}
//
// Response bodies that do not match the expected record shape are reported
// as *DecodeError carrying the raw payload, so degraded responses stay
// observable without crashing callers.
package m3
