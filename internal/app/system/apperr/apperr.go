// Package apperr defines the error taxonomy surfaced at the HTTP
// boundary. Every operation-level failure maps to exactly one Kind,
// and every Kind maps to a fixed status code. There are no retries:
// all operations are single-shot reads or writes.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an operation failure.
type Kind int

const (
	// Validation: malformed or missing input; client-fixable.
	Validation Kind = iota
	// Conflict: uniqueness violation (duplicate email).
	Conflict
	// InvalidCredentials: login failure. Deliberately identical for
	// "unknown user" and "wrong password" to prevent enumeration.
	InvalidCredentials
	// Unauthenticated: missing, invalid, or expired token.
	Unauthenticated
	// Forbidden: valid token, insufficient role.
	Forbidden
	// NotFound: referenced record absent.
	NotFound
	// Internal: unexpected failure (database error, etc.).
	Internal
)

// Error is a classified application error with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// New returns an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validationf returns a Validation error.
func Validationf(message string) *Error { return New(Validation, message) }

// Conflictf returns a Conflict error.
func Conflictf(message string) *Error { return New(Conflict, message) }

// ErrInvalidCredentials is the single login-failure error. Both lookup
// miss and hash mismatch return this exact value so the responses are
// byte-identical.
var ErrInvalidCredentials = New(InvalidCredentials, "Invalid credentials")

// ErrUnauthenticated is returned when no valid bearer token is present.
var ErrUnauthenticated = New(Unauthenticated, "Authentication required")

// ErrForbidden is returned when the identity's role is not allowed.
var ErrForbidden = New(Forbidden, "Forbidden")

// NotFoundf returns a NotFound error.
func NotFoundf(message string) *Error { return New(NotFound, message) }

// Internalf returns an Internal error.
func Internalf(message string) *Error { return New(Internal, message) }

// StatusCode maps a Kind to its HTTP status. Conflict and
// InvalidCredentials render as 400 to match the external contract
// (signup/login failures are all "400 validation/conflict").
func StatusCode(kind Kind) int {
	switch kind {
	case Validation, Conflict, InvalidCredentials:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// From classifies an arbitrary error. Known *Error values pass
// through; anything else becomes Internal with a generic message so
// internal details never leak to clients.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internalf("Something went wrong")
}
