package reservation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pousada-alegrim/service-reservations/internal/domain"
)

// Reservation is the aggregate root for the reservation domain. It owns the
// lifecycle state machine and the append-only notes audit trail.
type Reservation struct {
	id              uuid.UUID
	roomID          uuid.UUID
	guestID         uuid.UUID
	checkin         time.Time
	checkout        time.Time
	occupants       int
	totalPriceCents int64
	status          Status
	notes           string

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewReservation creates a pending Reservation. The caller has already
// validated the date range against the configured stay bound and computed the
// price from the room's current rate; availability is checked by the
// lifecycle manager inside the room's lock scope.
func NewReservation(
	roomID, guestID uuid.UUID,
	checkin, checkout time.Time,
	occupants int,
	totalPriceCents int64,
	now time.Time,
) (*Reservation, error) {
	if roomID == uuid.Nil {
		return nil, domain.NewValidationError("room ID is required")
	}
	if guestID == uuid.Nil {
		return nil, domain.NewValidationError("guest ID is required")
	}
	if !checkin.Before(checkout) {
		return nil, domain.NewInvalidRangeError("check-out must be after check-in")
	}
	if occupants <= 0 {
		return nil, domain.NewValidationError("occupant count must be positive")
	}
	if totalPriceCents <= 0 {
		return nil, domain.NewValidationError("total price must be positive")
	}

	return &Reservation{
		id:              uuid.New(),
		roomID:          roomID,
		guestID:         guestID,
		checkin:         checkin,
		checkout:        checkout,
		occupants:       occupants,
		totalPriceCents: totalPriceCents,
		status:          StatusPending,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct rebuilds a Reservation from persistence data (no validation).
func Reconstruct(
	id, roomID, guestID uuid.UUID,
	checkin, checkout time.Time,
	occupants int,
	totalPriceCents int64,
	status Status,
	notes string,
	version int64,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		roomID:          roomID,
		guestID:         guestID,
		checkin:         checkin,
		checkout:        checkout,
		occupants:       occupants,
		totalPriceCents: totalPriceCents,
		status:          status,
		notes:           notes,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ID returns the reservation's unique identifier.
func (r *Reservation) ID() uuid.UUID { return r.id }

// RoomID returns the identifier of the reserved room.
func (r *Reservation) RoomID() uuid.UUID { return r.roomID }

// GuestID returns the identifier of the booking guest.
func (r *Reservation) GuestID() uuid.UUID { return r.guestID }

// Checkin returns the check-in date (inclusive).
func (r *Reservation) Checkin() time.Time { return r.checkin }

// Checkout returns the check-out date (exclusive).
func (r *Reservation) Checkout() time.Time { return r.checkout }

// Occupants returns the declared occupant count.
func (r *Reservation) Occupants() int { return r.occupants }

// TotalPriceCents returns the price computed at booking or last edit.
func (r *Reservation) TotalPriceCents() int64 { return r.totalPriceCents }

// Status returns the current lifecycle status.
func (r *Reservation) Status() Status { return r.status }

// Notes returns the append-only audit trail.
func (r *Reservation) Notes() string { return r.notes }

// Nights returns the stay length in nights.
func (r *Reservation) Nights() int { return Nights(r.checkin, r.checkout) }

// Version returns the entity version for optimistic locking.
func (r *Reservation) Version() int64 { return r.version }

// CreatedAt returns the creation timestamp.
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }

// CoversDate reports whether the stay window includes the given date while
// the reservation is active.
func (r *Reservation) CoversDate(date time.Time) bool {
	return r.status.IsActive() && !r.checkin.After(date) && date.Before(r.checkout)
}

// Confirm transitions the reservation from pending to confirmed.
func (r *Reservation) Confirm(now time.Time) error {
	return r.transitionTo(StatusConfirmed, now)
}

// Cancel transitions the reservation to cancelled. The slot it held no
// longer counts against the room's availability.
func (r *Reservation) Cancel(now time.Time) error {
	return r.transitionTo(StatusCancelled, now)
}

// Complete transitions the reservation from confirmed to completed after
// checkout has occurred.
func (r *Reservation) Complete(now time.Time) error {
	return r.transitionTo(StatusCompleted, now)
}

// TransitionTo applies a status change if the state machine allows it.
func (r *Reservation) TransitionTo(target Status, now time.Time) error {
	if !target.IsValid() {
		return domain.NewValidationError("unknown reservation status: " + string(target))
	}
	return r.transitionTo(target, now)
}

func (r *Reservation) transitionTo(target Status, now time.Time) error {
	if !r.status.CanTransitionTo(target) {
		return domain.NewInvalidTransitionError(string(r.status), string(target))
	}
	r.status = target
	r.updatedAt = now
	return nil
}

// AppendNote adds a timestamped entry to the audit trail. Prior notes are
// never overwritten.
func (r *Reservation) AppendNote(note string, at time.Time) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	entry := "[" + at.UTC().Format(time.RFC3339) + "] " + note
	if r.notes == "" {
		r.notes = entry
	} else {
		r.notes += "\n" + entry
	}
	r.updatedAt = at
}

// Reschedule moves the stay window and replaces the price, which the caller
// recomputed from the room's current rate. Only non-terminal reservations can
// be edited.
func (r *Reservation) Reschedule(checkin, checkout time.Time, totalPriceCents int64, now time.Time) error {
	if !r.status.IsActive() {
		return domain.NewInvalidStateError("edit", string(r.status))
	}
	if !checkin.Before(checkout) {
		return domain.NewInvalidRangeError("check-out must be after check-in")
	}
	r.checkin = checkin
	r.checkout = checkout
	r.totalPriceCents = totalPriceCents
	r.updatedAt = now
	return nil
}

// MoveToRoom reassigns the reservation to another room with a freshly
// computed price. Only non-terminal reservations can be edited.
func (r *Reservation) MoveToRoom(roomID uuid.UUID, totalPriceCents int64, now time.Time) error {
	if !r.status.IsActive() {
		return domain.NewInvalidStateError("edit", string(r.status))
	}
	if roomID == uuid.Nil {
		return domain.NewValidationError("room ID is required")
	}
	r.roomID = roomID
	r.totalPriceCents = totalPriceCents
	r.updatedAt = now
	return nil
}

// Deletable reports whether hard deletion is allowed. Confirmed and completed
// reservations are part of the occupancy history and must be cancelled
// instead.
func (r *Reservation) Deletable() bool {
	return r.status == StatusPending || r.status == StatusCancelled
}

// IncrementVersion bumps the version for optimistic locking.
func (r *Reservation) IncrementVersion() {
	r.version++
}
