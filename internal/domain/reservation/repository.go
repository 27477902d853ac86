package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter narrows reservation listings. Nil fields match everything.
type Filter struct {
	RoomID  *uuid.UUID
	GuestID *uuid.UUID
	Status  *Status
}

// Repository defines the persistence contract for reservation aggregates.
// Overlap and coverage queries must observe writes made earlier in the same
// transaction scope.
type Repository interface {
	// FindByID retrieves a reservation by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)

	// List retrieves reservations matching the filter, newest first, with
	// pagination.
	List(ctx context.Context, filter Filter, page, limit int) ([]*Reservation, int64, error)

	// HasOverlap reports whether any active reservation for the room
	// overlaps [checkin, checkout). excludeID, when non-nil, skips that
	// reservation so edits do not conflict with themselves.
	HasOverlap(ctx context.Context, roomID uuid.UUID, checkin, checkout time.Time, excludeID *uuid.UUID) (bool, error)

	// ExistsActiveCovering reports whether any active reservation for the
	// room covers the given date.
	ExistsActiveCovering(ctx context.Context, roomID uuid.UUID, date time.Time) (bool, error)

	// CountByRoom returns the number of reservations referencing a room,
	// terminal ones included. Rooms with any reservation history cannot be
	// deleted.
	CountByRoom(ctx context.Context, roomID uuid.UUID) (int64, error)

	// CountByGuest returns the number of reservations referencing a guest,
	// terminal ones included.
	CountByGuest(ctx context.Context, guestID uuid.UUID) (int64, error)

	// CountByStatus returns reservation counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// CompletedRevenueCents returns the summed price of completed reservations.
	CompletedRevenueCents(ctx context.Context) (int64, error)

	// Save persists a new reservation.
	Save(ctx context.Context, r *Reservation) error

	// Update persists changes to an existing reservation with optimistic locking.
	Update(ctx context.Context, r *Reservation) error

	// Delete removes a reservation. Lifecycle rules are enforced by the
	// application layer before calling this.
	Delete(ctx context.Context, id uuid.UUID) error
}
