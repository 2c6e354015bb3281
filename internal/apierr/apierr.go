// internal/apierr/apierr.go
//
// Closed error taxonomy for the mobile post catalogue.
//
// Context
// -------
// Every failure that crosses a package boundary in this service is one of
// the codes below, grouped by leading digits: 01xx validation, 02xx
// not-found, 03xx conflict, 04xx server, 05xx auth.  Handlers translate
// an *Error into the response
// envelope verbatim; anything that is not an *Error is logged with full
// detail and downgraded to ServerError so internal messages never leak to
// API consumers.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package apierr

import (
	"errors"
	"net/http"
)

// Code is a stable four-digit error identifier.
type Code string

const (
	CodeSuccess Code = "0000"

	// Validation (400-class).
	CodeMissingRequiredField   Code = "0101"
	CodeNoUpdatableFields      Code = "0102"
	CodeInvalidParameterFormat Code = "0103"
	CodeInvalidTimeFormat      Code = "0104"
	CodeInvalidLangValue       Code = "0105"
	CodeInvalidNumericValue    Code = "0106"

	// Not found (404-class).
	CodeRecordNotFound Code = "0201"

	// Conflict (409-class).
	CodeDuplicateRecord Code = "0301"

	// Server (500-class, also the catch-all).
	CodeServerError Code = "0401"

	// Auth (401-class).
	CodeUnauthorized Code = "0501"
)

// messages holds the canonical message for each code, used when the raiser
// supplies no more specific text.
var messages = map[Code]string{
	CodeSuccess:                "No error",
	CodeMissingRequiredField:   "Missing required field(s)",
	CodeNoUpdatableFields:      "No updatable fields provided in PUT",
	CodeInvalidParameterFormat: "Invalid parameter format or limit exceeded",
	CodeInvalidTimeFormat:      "Invalid time format (expect HH:MM)",
	CodeInvalidLangValue:       "Invalid lang value (not en|tc|sc|all)",
	CodeInvalidNumericValue:    "Invalid numeric value or out of range",
	CodeRecordNotFound:         "Record not found",
	CodeDuplicateRecord:        "Duplicate / unique constraint violation",
	CodeServerError:            "Database or internal server error",
	CodeUnauthorized:           "Unauthorized",
}

// statuses maps each code to its HTTP-equivalent severity class.
var statuses = map[Code]int{
	CodeMissingRequiredField:   http.StatusBadRequest,
	CodeNoUpdatableFields:      http.StatusBadRequest,
	CodeInvalidParameterFormat: http.StatusBadRequest,
	CodeInvalidTimeFormat:      http.StatusBadRequest,
	CodeInvalidLangValue:       http.StatusBadRequest,
	CodeInvalidNumericValue:    http.StatusBadRequest,
	CodeRecordNotFound:         http.StatusNotFound,
	CodeDuplicateRecord:        http.StatusConflict,
	CodeServerError:            http.StatusInternalServerError,
	CodeUnauthorized:           http.StatusUnauthorized,
}

// CanonicalMessage returns the published message for code, or "Unknown error".
func CanonicalMessage(code Code) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Unknown error"
}

// Error carries one taxonomy code plus a human-readable message.  It is the
// only error type the HTTP layer renders directly.
type Error struct {
	Code    Code
	Message string

	// Unavailable marks store-connectivity loss; handlers answer 503
	// instead of the code's usual status.
	Unavailable bool
}

func (e *Error) Error() string { return string(e.Code) + ": " + e.Message }

// Status returns the HTTP status for the error.
func (e *Error) Status() int {
	if e.Unavailable {
		return http.StatusServiceUnavailable
	}
	if s, ok := statuses[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// New builds an *Error with an explicit message.
func New(code Code, msg string) *Error {
	if msg == "" {
		msg = CanonicalMessage(code)
	}
	return &Error{Code: code, Message: msg}
}

// Is lets callers test errors.Is(err, apierr.New(code, "")) by code alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// From coerces any error into an *Error.  Known taxonomy errors pass
// through; everything else becomes a generic ServerError so internal detail
// stays out of responses.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return New(CodeServerError, CanonicalMessage(CodeServerError))
}

// CodeOf returns the taxonomy code for err, or CodeServerError.
func CodeOf(err error) Code { return From(err).Code }
