package errors

import (
	"net/http"
)

// CodeFromHTTPStatus maps an upstream HTTP status onto a Code
func CodeFromHTTPStatus(status int) Code {
	switch {
	case status >= 200 && status < 300:
		return CodeOK
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return CodeUnauthenticated
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusConflict:
		return CodeAlreadyExists
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return CodeDeadlineExceeded
	case status == http.StatusTooManyRequests, status >= 500:
		return CodeUnavailable
	case status >= 400:
		return CodeInvalidArgument
	default:
		return CodeInternal
	}
}

// FromHTTPStatus builds the error for a failed upstream response
func FromHTTPStatus(status int, message string) *Error {
	return New(CodeFromHTTPStatus(status), message).WithMeta("http_status", status)
}
