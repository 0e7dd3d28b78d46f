package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors into AppErrors.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and friends)
// into a 404. Callers must not retry it.
func ErrNotFound(err error, message string) *AppError {
	return Wrap(err, CodeNotFound, "resource", message, http.StatusNotFound)
}

// ErrConflict marks a stable precondition failure such as an already booked
// timeslot. Not retryable.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInternal marks an aborted transaction or other transient failure. This is
// the only class a caller may safely retry: no partial state is left behind.
func ErrInternal(err error, domain string) *AppError {
	return Wrap(err, CodeInternalError, domain, "Operation aborted", http.StatusInternalServerError)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// Entitlement outcomes.

// ErrCapabilityForbidden is returned when the resolved limit is Disabled or
// Bounded(0): the plan categorically excludes the action.
var ErrCapabilityForbidden = New(
	CodeForbidden,
	"entitlement",
	"Capability is not included in the active plan",
	http.StatusForbidden,
)

// ErrQuotaExceeded is returned when a Bounded(n) limit is used up for the
// current window.
var ErrQuotaExceeded = New(
	CodeQuotaExceeded,
	"entitlement",
	"Quota for this capability is exhausted",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)
