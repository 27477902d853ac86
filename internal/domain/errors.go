package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error. The handler layer maps kinds to HTTP
// statuses; callers branch on kinds, never on message text.
type Kind string

const (
	KindValidation          Kind = "validation"
	KindInvalidRange        Kind = "invalid_range"
	KindGuestInvalid        Kind = "guest_invalid"
	KindRoomNotFound        Kind = "room_not_found"
	KindGuestNotFound       Kind = "guest_not_found"
	KindReservationNotFound Kind = "reservation_not_found"
	KindRoomUnavailable     Kind = "room_unavailable"
	KindInvalidTransition   Kind = "invalid_transition"
	KindConcurrencyConflict Kind = "concurrency_conflict"
	KindIntegrityViolation  Kind = "integrity_violation"
)

// Error is the single error type produced by the domain and application
// layers. Infrastructure errors are wrapped with fmt.Errorf and surface as
// internal failures unless translated into one of these kinds.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf returns the Kind of err, or the empty Kind for non-domain errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// NewValidationError creates a generic validation error.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewInvalidRangeError creates an error for a malformed or oversized stay range.
func NewInvalidRangeError(message string) *Error {
	return &Error{Kind: KindInvalidRange, Message: message}
}

// NewGuestInvalidError creates an error for missing or malformed guest identity data.
func NewGuestInvalidError(message string) *Error {
	return &Error{Kind: KindGuestInvalid, Message: message}
}

// NewRoomNotFoundError creates an error for an unknown room reference.
func NewRoomNotFoundError(ref string) *Error {
	return &Error{Kind: KindRoomNotFound, Message: fmt.Sprintf("room %s not found", ref)}
}

// NewGuestNotFoundError creates an error for an unknown guest reference.
func NewGuestNotFoundError(ref string) *Error {
	return &Error{Kind: KindGuestNotFound, Message: fmt.Sprintf("guest %s not found", ref)}
}

// NewReservationNotFoundError creates an error for an unknown reservation reference.
func NewReservationNotFoundError(ref string) *Error {
	return &Error{Kind: KindReservationNotFound, Message: fmt.Sprintf("reservation %s not found", ref)}
}

// NewRoomUnavailableError creates an error for a booking that conflicts with
// an existing active reservation, or targets a room out of service.
func NewRoomUnavailableError(roomNumber, reason string) *Error {
	return &Error{
		Kind:    KindRoomUnavailable,
		Message: fmt.Sprintf("room %s is unavailable: %s", roomNumber, reason),
	}
}

// NewInvalidTransitionError creates an error for a status change the state
// machine does not allow.
func NewInvalidTransitionError(from, to string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot transition reservation from %s to %s", from, to),
	}
}

// NewInvalidStateError creates an error for an operation attempted while the
// reservation is in a status that forbids it.
func NewInvalidStateError(action, status string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot %s a reservation in status %s", action, status),
	}
}

// NewConcurrencyConflictError creates an error for lock or version contention.
// Callers are expected to retry with backoff.
func NewConcurrencyConflictError(message string) *Error {
	return &Error{Kind: KindConcurrencyConflict, Message: message}
}

// NewIntegrityViolationError creates an error for a delete that would orphan
// records still referenced by reservations.
func NewIntegrityViolationError(message string) *Error {
	return &Error{Kind: KindIntegrityViolation, Message: message}
}
