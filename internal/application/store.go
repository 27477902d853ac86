package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/pousada-alegrim/service-reservations/internal/domain/guest"
	"github.com/pousada-alegrim/service-reservations/internal/domain/reservation"
	"github.com/pousada-alegrim/service-reservations/internal/domain/room"
)

// TxStore exposes the repositories of one transaction scope.
type TxStore interface {
	Rooms() room.Repository
	Guests() guest.Repository
	Reservations() reservation.Repository
}

// Store is the persistence boundary consumed by the application services.
//
// WithRoomLock is the concurrency discipline for the double-booking hazard:
// fn runs inside a transaction that holds an exclusive per-room lock for
// every listed room, so the availability check and the subsequent write form
// one atomic unit. Implementations must acquire the locks in a stable order
// regardless of the order of roomIDs. Any error from fn rolls the whole
// transaction back; lock or serialization contention surfaces as a
// concurrency-conflict domain error.
type Store interface {
	TxStore

	WithRoomLock(ctx context.Context, roomIDs []uuid.UUID, fn func(TxStore) error) error

	// WithTx runs fn inside a plain transaction without room locks, for
	// multi-step mutations that do not touch reservation sets.
	WithTx(ctx context.Context, fn func(TxStore) error) error
}
