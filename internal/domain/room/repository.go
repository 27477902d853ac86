package room

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for room aggregates.
type Repository interface {
	// FindByID retrieves a room by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)

	// FindByNumber retrieves a room by its human-readable number.
	FindByNumber(ctx context.Context, number string) (*Room, error)

	// List retrieves all rooms ordered by category then number.
	List(ctx context.Context) ([]*Room, error)

	// FindAvailable retrieves rooms not in maintenance and without an active
	// reservation overlapping [checkin, checkout), ordered by category then
	// number.
	FindAvailable(ctx context.Context, checkin, checkout time.Time) ([]*Room, error)

	// CountByStatus returns room counts grouped by coarse status.
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new room. The room number is unique.
	Save(ctx context.Context, r *Room) error

	// Update persists changes to an existing room.
	Update(ctx context.Context, r *Room) error

	// Delete removes a room. Referential guards are enforced by the
	// application layer before calling this.
	Delete(ctx context.Context, id uuid.UUID) error
}
