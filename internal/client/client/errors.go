package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
	ErrBadRequest    = errors.New("bad request")
	ErrEmptyResponse = errors.New("empty response body")
	// ErrNoAccessToken is returned by token sources when nobody is logged in.
	ErrNoAccessToken = errors.New("no access token")
)

// StatusError is returned for every non-2xx response. It matches
// ErrUnauthorized, ErrConflict and ErrBadRequest with errors.Is.
type StatusError struct {
	StatusCode int
	// Message is the HTTP reason phrase, e.g. "Conflict".
	Message string
	// Detail is the server-provided explanation, if the body had one.
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s (%s)", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	}
	return false
}

// StatusCode extracts the HTTP status from err, or 0 when err did not come
// from a response.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// ResponseMessage returns the reason phrase of a StatusError, or the error
// text for anything else.
func ResponseMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
