// Package memory provides an in-memory application.Store used by unit
// tests. It honors the same contract as the postgres store: WithRoomLock
// serializes check+write sequences, and any error from the callback rolls
// every change in the transaction back.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pousada-alegrim/service-reservations/internal/application"
	guestDomain "github.com/pousada-alegrim/service-reservations/internal/domain/guest"
	reservationDomain "github.com/pousada-alegrim/service-reservations/internal/domain/reservation"
	roomDomain "github.com/pousada-alegrim/service-reservations/internal/domain/room"
)

type dataset struct {
	rooms        map[uuid.UUID]*roomDomain.Room
	guests       map[uuid.UUID]*guestDomain.Guest
	reservations map[uuid.UUID]*reservationDomain.Reservation
}

func newDataset() *dataset {
	return &dataset{
		rooms:        make(map[uuid.UUID]*roomDomain.Room),
		guests:       make(map[uuid.UUID]*guestDomain.Guest),
		reservations: make(map[uuid.UUID]*reservationDomain.Reservation),
	}
}

func (d *dataset) clone() *dataset {
	c := newDataset()
	for id, rm := range d.rooms {
		c.rooms[id] = cloneRoom(rm)
	}
	for id, g := range d.guests {
		c.guests[id] = cloneGuest(g)
	}
	for id, r := range d.reservations {
		c.reservations[id] = cloneReservation(r)
	}
	return c
}

func cloneRoom(rm *roomDomain.Room) *roomDomain.Room {
	c := *rm
	return &c
}

func cloneGuest(g *guestDomain.Guest) *guestDomain.Guest {
	c := *g
	return &c
}

func cloneReservation(r *reservationDomain.Reservation) *reservationDomain.Reservation {
	c := *r
	return &c
}

// Store is an in-memory application.Store. Transactions copy the whole
// dataset and swap it back in on success; a single store-wide mutex gives
// coarser serialization than the per-room advisory locks of the postgres
// store, which trivially satisfies the same contract.
type Store struct {
	mu   sync.Mutex // guards data for non-transactional reads
	txMu sync.Mutex // serializes transactions
	data *dataset
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

// Rooms returns a room repository over the live dataset.
func (s *Store) Rooms() roomDomain.Repository {
	return &roomRepository{access: s.liveAccess}
}

// Guests returns a guest repository over the live dataset.
func (s *Store) Guests() guestDomain.Repository {
	return &guestRepository{access: s.liveAccess}
}

// Reservations returns a reservation repository over the live dataset.
func (s *Store) Reservations() reservationDomain.Repository {
	return &reservationRepository{access: s.liveAccess}
}

// WithRoomLock runs fn against a private copy of the dataset and commits it
// on success.
func (s *Store) WithRoomLock(_ context.Context, _ []uuid.UUID, fn func(application.TxStore) error) error {
	return s.transact(fn)
}

// WithTx runs fn against a private copy of the dataset and commits it on
// success.
func (s *Store) WithTx(_ context.Context, fn func(application.TxStore) error) error {
	return s.transact(fn)
}

func (s *Store) transact(fn func(application.TxStore) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	working := s.data.clone()
	s.mu.Unlock()

	tx := &txStore{data: working}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = working
	s.mu.Unlock()
	return nil
}

func (s *Store) liveAccess() (*dataset, func()) {
	s.mu.Lock()
	return s.data, s.mu.Unlock
}

// txStore exposes repositories bound to one transaction's working copy.
type txStore struct {
	data *dataset
}

func (t *txStore) access() (*dataset, func()) {
	return t.data, func() {}
}

func (t *txStore) Rooms() roomDomain.Repository {
	return &roomRepository{access: t.access}
}

func (t *txStore) Guests() guestDomain.Repository {
	return &guestRepository{access: t.access}
}

func (t *txStore) Reservations() reservationDomain.Repository {
	return &reservationRepository{access: t.access}
}
