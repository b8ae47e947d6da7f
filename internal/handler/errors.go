package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Kind classifies a failed request.  Every kind maps to one HTTP status.
type Kind int

const (
	KindInternal   Kind = iota // storage or unexpected failure
	KindValidation             // request structurally incomplete
	KindConflict               // uniqueness violation on create
	KindNotFound               // update/delete target absent
)

// Status returns the HTTP status code for k.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a request failure with the message shown to the caller.  Err holds
// the underlying cause, which is logged but never serialized.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func validationError(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func notFoundError(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func conflictError(msg string, err error) *Error {
	return &Error{Kind: KindConflict, Message: msg, Err: err}
}
func internalError(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// fail writes err in the error envelope.  Errors that are not *Error are
// treated as internal with a generic message.
func (h *ClientHandler) fail(c echo.Context, err error) error {
	var e *Error
	if !errors.As(err, &e) {
		e = internalError(msgInternal, err)
	}
	switch e.Kind {
	case KindInternal:
		h.Log.Errorw(e.Message, "method", c.Request().Method, "path", c.Request().URL.Path, "error", e.Err)
	case KindConflict:
		h.Log.Warnw(e.Message, "path", c.Request().URL.Path, "error", e.Err)
	}
	return c.JSON(e.Kind.Status(), errorBody(e.Message))
}
