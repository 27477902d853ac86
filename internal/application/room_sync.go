package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pousada-alegrim/service-reservations/internal/clock"
)

// RoomSynchronizer keeps each room's coarse status consistent with its
// active reservation set. It is the single authority for the invariant
// "room status = f(active reservations)": occupied iff an active reservation
// covers today, available otherwise, except while the sticky maintenance
// flag is set. Sync is idempotent and runs synchronously inside the same
// transaction as the mutation that triggered it, so a failure rolls the
// whole operation back.
type RoomSynchronizer struct {
	clock clock.Clock
}

// NewRoomSynchronizer creates a RoomSynchronizer.
func NewRoomSynchronizer(c clock.Clock) *RoomSynchronizer {
	return &RoomSynchronizer{clock: c}
}

// Sync recomputes the room's coarse status within the given transaction scope.
func (s *RoomSynchronizer) Sync(ctx context.Context, tx TxStore, roomID uuid.UUID) error {
	rm, err := tx.Rooms().FindByID(ctx, roomID)
	if err != nil {
		return err
	}
	if rm.InMaintenance() {
		return nil
	}

	today := clock.UTCDate(s.clock.Now())
	occupied, err := tx.Reservations().ExistsActiveCovering(ctx, roomID, today)
	if err != nil {
		return fmt.Errorf("failed to derive room status: %w", err)
	}

	before := rm.Status()
	rm.ApplyDerivedStatus(occupied, s.clock.Now())
	if rm.Status() == before {
		return nil
	}
	if err := tx.Rooms().Update(ctx, rm); err != nil {
		return fmt.Errorf("failed to persist room status: %w", err)
	}
	return nil
}
