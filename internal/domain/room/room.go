package room

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pousada-alegrim/service-reservations/internal/domain"
)

// Category classifies a room. The set is closed but extending it only means
// adding a constant and a case to IsValid.
type Category string

const (
	CategoryStandard Category = "standard"
	CategoryFamily   Category = "family"
	CategoryChalet   Category = "chalet"
)

// IsValid returns true if the category is recognized.
func (c Category) IsValid() bool {
	switch c {
	case CategoryStandard, CategoryFamily, CategoryChalet:
		return true
	}
	return false
}

// Status is the coarse room state. available and occupied are derived from
// the active reservation set; maintenance is set only by explicit
// administrative action and takes precedence over derivation.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

// IsValid returns true if the status is recognized.
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance:
		return true
	}
	return false
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid room status: %s", s)
	}
	return status, nil
}

// Room is the aggregate root for a lodging unit.
type Room struct {
	id          uuid.UUID
	number      string
	category    Category
	floor       string
	description string
	capacity    int
	rateCents   int64
	status      Status

	createdAt time.Time
	updatedAt time.Time
}

// NewRoom creates an available Room.
func NewRoom(
	number string,
	category Category,
	floor, description string,
	capacity int,
	rateCents int64,
	now time.Time,
) (*Room, error) {
	if number == "" {
		return nil, domain.NewValidationError("room number is required")
	}
	if !category.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid room category: %s", category))
	}
	if capacity <= 0 {
		return nil, domain.NewValidationError("room capacity must be positive")
	}
	if rateCents <= 0 {
		return nil, domain.NewValidationError("nightly rate must be positive")
	}

	return &Room{
		id:          uuid.New(),
		number:      number,
		category:    category,
		floor:       floor,
		description: description,
		capacity:    capacity,
		rateCents:   rateCents,
		status:      StatusAvailable,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Room from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	number string,
	category Category,
	floor, description string,
	capacity int,
	rateCents int64,
	status Status,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:          id,
		number:      number,
		category:    category,
		floor:       floor,
		description: description,
		capacity:    capacity,
		rateCents:   rateCents,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the room's unique identifier.
func (r *Room) ID() uuid.UUID { return r.id }

// Number returns the human-readable room number.
func (r *Room) Number() string { return r.number }

// Category returns the room category.
func (r *Room) Category() Category { return r.category }

// Floor returns the floor label.
func (r *Room) Floor() string { return r.floor }

// Description returns the free-text description.
func (r *Room) Description() string { return r.description }

// Capacity returns the maximum occupant count.
func (r *Room) Capacity() int { return r.capacity }

// RateCents returns the nightly rate in cents.
func (r *Room) RateCents() int64 { return r.rateCents }

// Status returns the coarse room status.
func (r *Room) Status() Status { return r.status }

// CreatedAt returns the creation timestamp.
func (r *Room) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }

// InMaintenance reports whether the room is under the sticky maintenance flag.
func (r *Room) InMaintenance() bool { return r.status == StatusMaintenance }

// UpdateDetails edits the administrative fields. Rate changes do not reprice
// existing reservations.
func (r *Room) UpdateDetails(
	number string,
	category Category,
	floor, description string,
	capacity int,
	rateCents int64,
	now time.Time,
) error {
	if number == "" {
		return domain.NewValidationError("room number is required")
	}
	if !category.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid room category: %s", category))
	}
	if capacity <= 0 {
		return domain.NewValidationError("room capacity must be positive")
	}
	if rateCents <= 0 {
		return domain.NewValidationError("nightly rate must be positive")
	}
	r.number = number
	r.category = category
	r.floor = floor
	r.description = description
	r.capacity = capacity
	r.rateCents = rateCents
	r.updatedAt = now
	return nil
}

// EnterMaintenance places the room out of service. The synchronizer will not
// override this until ExitMaintenance is called.
func (r *Room) EnterMaintenance(now time.Time) {
	r.status = StatusMaintenance
	r.updatedAt = now
}

// ExitMaintenance clears the maintenance flag. The caller re-runs the
// synchronizer immediately afterwards to derive the real status.
func (r *Room) ExitMaintenance(now time.Time) {
	if r.status != StatusMaintenance {
		return
	}
	r.status = StatusAvailable
	r.updatedAt = now
}

// ApplyDerivedStatus sets the room to occupied or available from the active
// reservation set. It is a no-op while the room is in maintenance.
func (r *Room) ApplyDerivedStatus(occupied bool, now time.Time) {
	if r.status == StatusMaintenance {
		return
	}
	target := StatusAvailable
	if occupied {
		target = StatusOccupied
	}
	if r.status == target {
		return
	}
	r.status = target
	r.updatedAt = now
}
