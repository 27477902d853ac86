package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pousada-alegrim/service-reservations/internal/clock"
	"github.com/pousada-alegrim/service-reservations/internal/domain"
	reservationDomain "github.com/pousada-alegrim/service-reservations/internal/domain/reservation"
	roomDomain "github.com/pousada-alegrim/service-reservations/internal/domain/room"
)

// RoomInput holds the administrative fields of a room.
type RoomInput struct {
	Number      string `json:"number"`
	Category    string `json:"category"`
	Floor       string `json:"floor"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	RateCents   int64  `json:"rate_cents"`
}

// RoomStatsDTO holds room statistics for the admin dashboard.
type RoomStatsDTO struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// RoomService handles room administration: CRUD, the sticky maintenance
// flag, and the available-rooms query.
type RoomService struct {
	store         Store
	sync          *RoomSynchronizer
	logger        *zap.Logger
	clock         clock.Clock
	maxStayNights int
}

// NewRoomService creates a RoomService.
func NewRoomService(store Store, sync *RoomSynchronizer, logger *zap.Logger, clk clock.Clock, maxStayNights int) *RoomService {
	if maxStayNights <= 0 {
		maxStayNights = reservationDomain.DefaultMaxStayNights
	}
	return &RoomService{store: store, sync: sync, logger: logger, clock: clk, maxStayNights: maxStayNights}
}

// CreateRoom registers a new room.
func (s *RoomService) CreateRoom(ctx context.Context, in RoomInput) (*RoomDTO, error) {
	rm, err := roomDomain.NewRoom(
		in.Number,
		roomDomain.Category(in.Category),
		in.Floor,
		in.Description,
		in.Capacity,
		in.RateCents,
		s.clock.Now(),
	)
	if err != nil {
		return nil, err
	}
	if err := s.store.Rooms().Save(ctx, rm); err != nil {
		return nil, err
	}
	dto := toRoomDTO(rm)
	return &dto, nil
}

// UpdateRoom edits a room's administrative fields. Rate changes do not
// reprice existing reservations.
func (s *RoomService) UpdateRoom(ctx context.Context, id uuid.UUID, in RoomInput) (*RoomDTO, error) {
	var dto RoomDTO
	err := s.store.WithTx(ctx, func(tx TxStore) error {
		rm, err := tx.Rooms().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := rm.UpdateDetails(
			in.Number,
			roomDomain.Category(in.Category),
			in.Floor,
			in.Description,
			in.Capacity,
			in.RateCents,
			s.clock.Now(),
		); err != nil {
			return err
		}
		if err := tx.Rooms().Update(ctx, rm); err != nil {
			return err
		}
		dto = toRoomDTO(rm)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// SetMaintenance places the room in or out of the sticky maintenance state.
// Clearing it immediately re-derives the real status from the active
// reservation set.
func (s *RoomService) SetMaintenance(ctx context.Context, id uuid.UUID, maintenance bool) (*RoomDTO, error) {
	var dto RoomDTO
	err := s.store.WithRoomLock(ctx, []uuid.UUID{id}, func(tx TxStore) error {
		rm, err := tx.Rooms().FindByID(ctx, id)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		if maintenance {
			rm.EnterMaintenance(now)
		} else {
			rm.ExitMaintenance(now)
		}
		if err := tx.Rooms().Update(ctx, rm); err != nil {
			return err
		}
		if err := s.sync.Sync(ctx, tx, id); err != nil {
			return err
		}
		// Re-read so the response reflects the derived status.
		rm, err = tx.Rooms().FindByID(ctx, id)
		if err != nil {
			return err
		}
		dto = toRoomDTO(rm)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("room maintenance flag changed",
		zap.String("room_id", id.String()),
		zap.Bool("maintenance", maintenance),
	)
	return &dto, nil
}

// DeleteRoom removes a room with no reservation history. Reservations hold a
// non-null reference to their room, so even terminal reservations pin the
// room; delete the history first.
func (s *RoomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return s.store.WithRoomLock(ctx, []uuid.UUID{id}, func(tx TxStore) error {
		if _, err := tx.Rooms().FindByID(ctx, id); err != nil {
			return err
		}
		referenced, err := tx.Reservations().CountByRoom(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count reservations: %w", err)
		}
		if referenced > 0 {
			return domain.NewIntegrityViolationError(
				fmt.Sprintf("room is referenced by %d reservations", referenced),
			)
		}
		return tx.Rooms().Delete(ctx, id)
	})
}

// GetRoom retrieves a single room by ID.
func (s *RoomService) GetRoom(ctx context.Context, id uuid.UUID) (*RoomDTO, error) {
	rm, err := s.store.Rooms().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toRoomDTO(rm)
	return &dto, nil
}

// ListRooms retrieves all rooms ordered by category then number.
func (s *RoomService) ListRooms(ctx context.Context) ([]RoomDTO, error) {
	rooms, err := s.store.Rooms().List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]RoomDTO, len(rooms))
	for i, rm := range rooms {
		dtos[i] = toRoomDTO(rm)
	}
	return dtos, nil
}

// AvailableRooms retrieves rooms bookable for the whole of
// [checkin, checkout): not in maintenance and free of overlapping active
// reservations.
func (s *RoomService) AvailableRooms(ctx context.Context, checkin, checkout time.Time) ([]RoomDTO, error) {
	ci := clock.UTCDate(checkin)
	co := clock.UTCDate(checkout)
	if err := reservationDomain.ValidateRange(ci, co, s.maxStayNights); err != nil {
		return nil, err
	}
	rooms, err := s.store.Rooms().FindAvailable(ctx, ci, co)
	if err != nil {
		return nil, err
	}
	dtos := make([]RoomDTO, len(rooms))
	for i, rm := range rooms {
		dtos[i] = toRoomDTO(rm)
	}
	return dtos, nil
}

// GetStats returns room counts grouped by coarse status.
func (s *RoomService) GetStats(ctx context.Context) (*RoomStatsDTO, error) {
	counts, err := s.store.Rooms().CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}
	var total int64
	for _, c := range counts {
		total += c
	}
	return &RoomStatsDTO{Total: total, ByStatus: counts}, nil
}
