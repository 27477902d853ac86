package guest

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for guest aggregates.
type Repository interface {
	// FindByID retrieves a guest by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Guest, error)

	// FindByDocument retrieves a guest by the document natural key.
	FindByDocument(ctx context.Context, document string) (*Guest, error)

	// List retrieves guests ordered by full name, with pagination.
	List(ctx context.Context, page, limit int) ([]*Guest, int64, error)

	// Upsert inserts the guest or, when a record with the same document
	// already exists, refreshes its contact fields. The persisted record is
	// returned either way; the store's uniqueness constraint makes this safe
	// under concurrent first-time bookings.
	Upsert(ctx context.Context, g *Guest) (*Guest, error)

	// Delete removes a guest. Referential guards are enforced by the
	// application layer before calling this.
	Delete(ctx context.Context, id uuid.UUID) error
}
