package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/pousada-alegrim/service-reservations/internal/application"
	"github.com/pousada-alegrim/service-reservations/internal/domain"
	guestDomain "github.com/pousada-alegrim/service-reservations/internal/domain/guest"
	reservationDomain "github.com/pousada-alegrim/service-reservations/internal/domain/reservation"
	roomDomain "github.com/pousada-alegrim/service-reservations/internal/domain/room"
)

// GormStore is the postgres-backed implementation of application.Store.
//
// Room-scoped atomicity uses transaction-level advisory locks: every
// mutation of a room's reservation set runs inside a transaction that first
// takes pg_advisory_xact_lock keyed on the room ID, so the availability
// check and the subsequent insert/update are serialized per room. The locks
// release automatically at commit or rollback.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Rooms returns the room repository bound to this store's scope.
func (s *GormStore) Rooms() roomDomain.Repository {
	return &GormRoomRepository{db: s.db}
}

// Guests returns the guest repository bound to this store's scope.
func (s *GormStore) Guests() guestDomain.Repository {
	return &GormGuestRepository{db: s.db}
}

// Reservations returns the reservation repository bound to this store's scope.
func (s *GormStore) Reservations() reservationDomain.Repository {
	return &GormReservationRepository{db: s.db}
}

// WithRoomLock runs fn inside a transaction holding advisory locks for the
// given rooms. Lock order is by sorted UUID string so concurrent multi-room
// edits cannot deadlock.
func (s *GormStore) WithRoomLock(ctx context.Context, roomIDs []uuid.UUID, fn func(application.TxStore) error) error {
	keys := make([]string, len(roomIDs))
	for i, id := range roomIDs {
		keys[i] = id.String()
	}
	sort.Strings(keys)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range keys {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
				return fmt.Errorf("failed to acquire room lock: %w", err)
			}
		}
		return fn(&GormStore{db: tx})
	})
	return translateTxError(err)
}

// WithTx runs fn inside a plain transaction.
func (s *GormStore) WithTx(ctx context.Context, fn func(application.TxStore) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
	return translateTxError(err)
}

// translateTxError maps transient postgres failures onto the domain's
// concurrency-conflict kind so callers know to retry. Domain errors pass
// through untouched.
func translateTxError(err error) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03": // serialization failure, deadlock, lock not available
			return domain.NewConcurrencyConflictError("storage contention, retry: " + pgErr.Message)
		}
	}
	return err
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is a postgres foreign key
// constraint violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
