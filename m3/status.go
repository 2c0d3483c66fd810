package m3

import "net/http"

// CheckStatus maps an HTTP response status onto the client error taxonomy.
// A 200 yields nil; 400 and 404 carry the decoded response body; 504 maps to
// a gateway timeout; any other status falls through to *ServiceError with
// the full body attached. The mapping is pure so every endpoint shares it.
func CheckStatus(statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		return &BadRequestError{Message: string(body)}
	case http.StatusNotFound:
		return &NotFoundError{Message: string(body)}
	case http.StatusGatewayTimeout:
		return &GatewayTimeoutError{}
	default:
		return &ServiceError{StatusCode: statusCode, Body: string(body)}
	}
}
