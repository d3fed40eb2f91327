package errors

import (
	"errors"
	"net/http"
)

// ErrorWithStatusCode carries the HTTP status an API handler should answer with.
// Errors of any other type are reported as 500.
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func NotFound(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusNotFound}
}

func BadRequest(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest}
}

func Unprocessable(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusUnprocessableEntity}
}

// IsClientError reports whether err carries a 4xx status.
func IsClientError(err error) bool {
	var e *ErrorWithStatusCode
	return errors.As(err, &e) && e.StatusCode >= 400 && e.StatusCode < 500
}
