package mockapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation")
)

// Error is a failure the API reports to its caller with a status and a readable message.
type Error struct {
	Status  int
	Message string
	Field   string
	kind    error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.kind }

func badRequest(format string, args ...any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...), kind: ErrBadRequest}
}

func unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg, kind: ErrUnauthorized}
}

func notFound(format string, args ...any) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...), kind: ErrNotFound}
}

func invalid(field, msg string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: msg, Field: field, kind: ErrValidation}
}

func insufficientStock(p Product) *Error {
	return badRequest("Insufficient stock for %s. Available: %d", p.Name, p.StockQuantity)
}
