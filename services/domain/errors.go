package domain

import (
	"errors"
	"net/http"
)

// ErrDuplicate is returned by stores when an insert hits a uniqueness
// constraint. Engines treat it as the lost side of a check-then-insert
// race, equivalent to the pre-check having fired.
var ErrDuplicate = errors.New("duplicate record")

// Kind classifies engine failures so transport code can map them to
// status codes without parsing messages.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindForbidden
	KindConflict
	KindValidation
	KindUpstream
	KindInternal
)

// Error is a classified engine failure. Data carries the structured
// payload some failures expose to clients, such as missing sequence
// orders or the completion snapshot.
type Error struct {
	Kind    Kind
	Message string
	Data    interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func ForbiddenWithData(msg string, data interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: msg, Data: data}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}
