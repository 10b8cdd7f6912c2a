package apperrors

import (
	"net/http"
)

/*
Factories and predeclared variables for the domain error vocabulary.
Factories wrap lower-level errors (usually from a repository); variables
cover frequent static failures.
*/

// =========================================================================
// Factories
// =========================================================================

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the general conflict factory (409).
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation creates a 400 for operations the current state forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidTransition rejects an illegal booking status change. Details
// always name the current status and the legal next states so clients can
// render the choice without a second request.
func ErrInvalidTransition(current string, allowed []string) *AppError {
	return New(CodeInvalidTransition, "booking", "Illegal booking status transition", http.StatusBadRequest).
		WithDetails(map[string]interface{}{
			"current_status":      current,
			"allowed_transitions": allowed,
		})
}

// ErrMailTransport classifies a mail collaborator failure. kind is one of
// "authentication", "connection", "send"; the hint tells the operator what
// to check.
func ErrMailTransport(err error, kind, hint string) *AppError {
	return Wrap(err, CodeTransportError, "mail", "Mail delivery failed: "+kind, http.StatusInternalServerError).
		WithDetails(map[string]interface{}{"kind": kind, "hint": hint})
}

// ErrMailNotConfigured reports missing mail credentials as a configuration
// problem instead of a generic failure.
func ErrMailNotConfigured(hint string) *AppError {
	return New(CodeConfigurationError, "mail", "Mail transport is not configured", http.StatusInternalServerError).
		WithDetails(map[string]interface{}{"hint": hint})
}

// =========================================================================
// Predeclared variables
// =========================================================================

// --- Auth ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrInvalidUserRole = New(
	CodeValidationFailed,
	"auth",
	"Invalid user role",
	http.StatusBadRequest,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or unknown token",
	http.StatusNotFound,
)

// ErrTokenExpired covers one-time tokens past their window. 410, not 401:
// the token itself was real but is permanently gone.
var ErrTokenExpired = New(
	CodeGone,
	"auth",
	"Token has expired",
	http.StatusGone,
)

// --- Events ---

var ErrNotEventCreator = New(
	CodeForbidden,
	"event",
	"Only the event creator may perform this operation",
	http.StatusForbidden,
)

var ErrEventNotPublic = New(
	CodeForbidden,
	"event",
	"This event is private",
	http.StatusForbidden,
)

var ErrEventNotPrivate = New(
	CodeInvalidOperation,
	"event",
	"Guest lists exist only on private events",
	http.StatusBadRequest,
)

var ErrAlreadyAttending = New(
	CodeConflict,
	"event",
	"Already attending this event",
	http.StatusConflict,
)

// --- Guests ---

var ErrDuplicateGuest = New(
	CodeAlreadyExists,
	"guest",
	"This email is already invited to the event",
	http.StatusBadRequest,
)

// --- Bookings ---

var ErrBookingConflict = New(
	CodeConflict,
	"booking",
	"An active booking already exists for this event and provider",
	http.StatusConflict,
)

var ErrNotBookingOwner = New(
	CodeForbidden,
	"booking",
	"Only the owning provider may change this booking",
	http.StatusForbidden,
)

// --- Providers ---

var ErrNoProviderProfile = New(
	CodeNotFound,
	"provider",
	"No provider profile exists for this account",
	http.StatusNotFound,
)
