package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindTransport  Kind = "transport"
	KindValidation Kind = "validation"
	KindInternal   Kind = "internal"
)

var (
	ErrBodyTooLarge  = errors.New("request entity too large")
	ErrMalformedBody = errors.New("malformed request body")
)

// AppError tags an error with the kind used to pick the HTTP status and the public message.
type AppError struct {
	Kind Kind
	Err  error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewTransportError(err error) error {
	return &AppError{Kind: KindTransport, Err: err}
}

func NewValidationError(err error) error {
	return &AppError{Kind: KindValidation, Err: err}
}

func NewInternalError(err error) error {
	return &AppError{Kind: KindInternal, Err: err}
}

// KindOf reports the kind of err; errors that were never tagged are internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusCode picks the response status. An unparsable body keeps its validation kind for logging
// but is answered with 500, which is what existing clients of the echo endpoint expect.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrMalformedBody):
		return http.StatusInternalServerError
	}
	switch KindOf(err) {
	case KindTransport, KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the message shown to clients in production, where error details stay in the logs.
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		return "Request entity too large"
	case errors.Is(err, ErrMalformedBody):
		return "Something went wrong!"
	}
	switch KindOf(err) {
	case KindTransport, KindValidation:
		return "Invalid request"
	default:
		return "Something went wrong!"
	}
}
