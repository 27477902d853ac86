package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pousada-alegrim/service-reservations/internal/clock"
	"github.com/pousada-alegrim/service-reservations/internal/domain"
	"github.com/pousada-alegrim/service-reservations/internal/domain/guest"
	reservationDomain "github.com/pousada-alegrim/service-reservations/internal/domain/reservation"
	"github.com/pousada-alegrim/service-reservations/internal/events"
)

// GuestInput carries guest identity data for upsert-by-document.
type GuestInput struct {
	FullName string `json:"full_name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// CreateReservationInput holds the data needed to create a reservation.
// Exactly one of GuestID and Guest must be set.
type CreateReservationInput struct {
	RoomID    uuid.UUID
	GuestID   *uuid.UUID
	Guest     *GuestInput
	Checkin   time.Time
	Checkout  time.Time
	Occupants int
	Note      string
}

// EditReservationInput holds the optional fields of a reservation edit. Nil
// fields keep their current values.
type EditReservationInput struct {
	RoomID   *uuid.UUID
	Checkin  *time.Time
	Checkout *time.Time
}

// ReservationStatsDTO holds reservation statistics for the admin dashboard.
type ReservationStatsDTO struct {
	Total                 int64            `json:"total"`
	ByStatus              map[string]int64 `json:"by_status"`
	CompletedRevenueCents int64            `json:"completed_revenue_cents"`
}

// ReservationService is the reservation lifecycle manager. Every mutation
// runs inside a per-room lock scope so the availability check, the write and
// the room status sync commit or roll back as one unit.
type ReservationService struct {
	store         Store
	sync          *RoomSynchronizer
	producer      *events.Producer
	logger        *zap.Logger
	clock         clock.Clock
	maxStayNights int
}

// NewReservationService creates a ReservationService.
func NewReservationService(
	store Store,
	sync *RoomSynchronizer,
	producer *events.Producer,
	logger *zap.Logger,
	clk clock.Clock,
	maxStayNights int,
) *ReservationService {
	if maxStayNights <= 0 {
		maxStayNights = reservationDomain.DefaultMaxStayNights
	}
	return &ReservationService{
		store:         store,
		sync:          sync,
		producer:      producer,
		logger:        logger,
		clock:         clk,
		maxStayNights: maxStayNights,
	}
}

// CreateReservation books a room for a guest. The guest is resolved by ID or
// upserted by document; the overlap check and the insert happen inside the
// room's lock scope, so two concurrent bookings for the same room and
// overlapping dates cannot both succeed.
func (s *ReservationService) CreateReservation(ctx context.Context, in CreateReservationInput) (*ReservationDTO, error) {
	checkin := clock.UTCDate(in.Checkin)
	checkout := clock.UTCDate(in.Checkout)
	if err := reservationDomain.ValidateRange(checkin, checkout, s.maxStayNights); err != nil {
		return nil, err
	}

	var dto ReservationDTO
	err := s.store.WithRoomLock(ctx, []uuid.UUID{in.RoomID}, func(tx TxStore) error {
		rm, err := tx.Rooms().FindByID(ctx, in.RoomID)
		if err != nil {
			return err
		}
		if rm.InMaintenance() {
			return domain.NewRoomUnavailableError(rm.Number(), "room is under maintenance")
		}
		if in.Occupants <= 0 {
			return domain.NewValidationError("occupant count must be positive")
		}
		if in.Occupants > rm.Capacity() {
			return domain.NewValidationError(
				fmt.Sprintf("occupant count %d exceeds room capacity %d", in.Occupants, rm.Capacity()),
			)
		}

		g, err := s.resolveGuest(ctx, tx, in)
		if err != nil {
			return err
		}

		overlaps, err := tx.Reservations().HasOverlap(ctx, rm.ID(), checkin, checkout, nil)
		if err != nil {
			return fmt.Errorf("failed to check availability: %w", err)
		}
		if overlaps {
			return domain.NewRoomUnavailableError(rm.Number(), "dates overlap an existing reservation")
		}

		price, err := reservationDomain.Price(rm.RateCents(), checkin, checkout)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		res, err := reservationDomain.NewReservation(rm.ID(), g.ID(), checkin, checkout, in.Occupants, price, now)
		if err != nil {
			return err
		}
		res.AppendNote(in.Note, now)

		if err := tx.Reservations().Save(ctx, res); err != nil {
			return err
		}
		if err := s.sync.Sync(ctx, tx, rm.ID()); err != nil {
			return err
		}

		dto = toReservationDTO(res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, dto)
	return &dto, nil
}

// ChangeStatus applies a lifecycle transition and appends the optional note
// to the audit trail.
func (s *ReservationService) ChangeStatus(ctx context.Context, id uuid.UUID, target reservationDomain.Status, note string) (*ReservationDTO, error) {
	roomID, err := s.roomIDOf(ctx, id)
	if err != nil {
		return nil, err
	}

	var dto ReservationDTO
	var oldStatus reservationDomain.Status
	err = s.store.WithRoomLock(ctx, []uuid.UUID{roomID}, func(tx TxStore) error {
		res, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if res.RoomID() != roomID {
			// Moved rooms between our lookup and the lock; retry resolves it.
			return domain.NewConcurrencyConflictError("reservation changed rooms concurrently, retry")
		}

		oldStatus = res.Status()
		now := s.clock.Now()
		if err := res.TransitionTo(target, now); err != nil {
			return err
		}
		res.AppendNote(note, now)
		res.IncrementVersion()

		if err := tx.Reservations().Update(ctx, res); err != nil {
			return err
		}
		if err := s.sync.Sync(ctx, tx, roomID); err != nil {
			return err
		}

		dto = toReservationDTO(res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, dto, oldStatus)
	return &dto, nil
}

// EditReservation changes the stay dates and/or room of a non-terminal
// reservation. Availability is re-checked excluding the reservation itself,
// and the price is recomputed from the target room's current rate only when
// dates or room actually change.
func (s *ReservationService) EditReservation(ctx context.Context, id uuid.UUID, in EditReservationInput) (*ReservationDTO, error) {
	currentRoomID, err := s.roomIDOf(ctx, id)
	if err != nil {
		return nil, err
	}
	targetRoomID := currentRoomID
	if in.RoomID != nil {
		targetRoomID = *in.RoomID
	}
	lockIDs := []uuid.UUID{currentRoomID}
	if targetRoomID != currentRoomID {
		lockIDs = append(lockIDs, targetRoomID)
	}

	var dto ReservationDTO
	err = s.store.WithRoomLock(ctx, lockIDs, func(tx TxStore) error {
		res, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if res.RoomID() != currentRoomID {
			return domain.NewConcurrencyConflictError("reservation changed rooms concurrently, retry")
		}
		if !res.Status().IsActive() {
			return domain.NewInvalidStateError("edit", string(res.Status()))
		}

		checkin := res.Checkin()
		checkout := res.Checkout()
		if in.Checkin != nil {
			checkin = clock.UTCDate(*in.Checkin)
		}
		if in.Checkout != nil {
			checkout = clock.UTCDate(*in.Checkout)
		}
		datesChanged := !checkin.Equal(res.Checkin()) || !checkout.Equal(res.Checkout())
		roomChanged := targetRoomID != currentRoomID

		if !datesChanged && !roomChanged {
			dto = toReservationDTO(res)
			return nil
		}

		if err := reservationDomain.ValidateRange(checkin, checkout, s.maxStayNights); err != nil {
			return err
		}

		rm, err := tx.Rooms().FindByID(ctx, targetRoomID)
		if err != nil {
			return err
		}
		if rm.InMaintenance() {
			return domain.NewRoomUnavailableError(rm.Number(), "room is under maintenance")
		}
		if res.Occupants() > rm.Capacity() {
			return domain.NewValidationError(
				fmt.Sprintf("occupant count %d exceeds room capacity %d", res.Occupants(), rm.Capacity()),
			)
		}

		excludeID := res.ID()
		overlaps, err := tx.Reservations().HasOverlap(ctx, rm.ID(), checkin, checkout, &excludeID)
		if err != nil {
			return fmt.Errorf("failed to check availability: %w", err)
		}
		if overlaps {
			return domain.NewRoomUnavailableError(rm.Number(), "dates overlap an existing reservation")
		}

		price, err := reservationDomain.Price(rm.RateCents(), checkin, checkout)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if err := res.Reschedule(checkin, checkout, price, now); err != nil {
			return err
		}
		if roomChanged {
			if err := res.MoveToRoom(rm.ID(), price, now); err != nil {
				return err
			}
		}
		res.IncrementVersion()

		if err := tx.Reservations().Update(ctx, res); err != nil {
			return err
		}
		if err := s.sync.Sync(ctx, tx, currentRoomID); err != nil {
			return err
		}
		if roomChanged {
			if err := s.sync.Sync(ctx, tx, targetRoomID); err != nil {
				return err
			}
		}

		dto = toReservationDTO(res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishUpdated(ctx, dto)
	return &dto, nil
}

// DeleteReservation hard-deletes a pending or cancelled reservation.
// Confirmed and completed reservations are occupancy history and must be
// cancelled instead.
func (s *ReservationService) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	roomID, err := s.roomIDOf(ctx, id)
	if err != nil {
		return err
	}

	var deleted ReservationDTO
	err = s.store.WithRoomLock(ctx, []uuid.UUID{roomID}, func(tx TxStore) error {
		res, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if res.RoomID() != roomID {
			return domain.NewConcurrencyConflictError("reservation changed rooms concurrently, retry")
		}
		if !res.Deletable() {
			return domain.NewInvalidStateError("delete", string(res.Status()))
		}

		if err := tx.Reservations().Delete(ctx, res.ID()); err != nil {
			return err
		}
		if err := s.sync.Sync(ctx, tx, roomID); err != nil {
			return err
		}

		deleted = toReservationDTO(res)
		return nil
	})
	if err != nil {
		return err
	}

	s.publishDeleted(ctx, deleted)
	return nil
}

// GetReservation retrieves a single reservation by ID.
func (s *ReservationService) GetReservation(ctx context.Context, id uuid.UUID) (*ReservationDTO, error) {
	res, err := s.store.Reservations().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toReservationDTO(res)
	return &dto, nil
}

// ListReservations retrieves paginated reservations matching the filter.
func (s *ReservationService) ListReservations(ctx context.Context, filter reservationDomain.Filter, page, limit int) (*domain.PaginatedResult[ReservationDTO], error) {
	items, total, err := s.store.Reservations().List(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]ReservationDTO, len(items))
	for i, res := range items {
		dtos[i] = toReservationDTO(res)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetStats returns aggregate reservation statistics.
func (s *ReservationService) GetStats(ctx context.Context) (*ReservationStatsDTO, error) {
	counts, err := s.store.Reservations().CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reservations: %w", err)
	}
	revenue, err := s.store.Reservations().CompletedRevenueCents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum completed revenue: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &ReservationStatsDTO{
		Total:                 total,
		ByStatus:              counts,
		CompletedRevenueCents: revenue,
	}, nil
}

// resolveGuest finds the guest by ID, or upserts by document. Setting both
// identities is rejected rather than silently picking one. The upsert
// relies on the store's uniqueness constraint, so two concurrent first-time
// bookings with the same document converge on one record.
func (s *ReservationService) resolveGuest(ctx context.Context, tx TxStore, in CreateReservationInput) (*guest.Guest, error) {
	if in.GuestID != nil && in.Guest != nil {
		return nil, domain.NewGuestInvalidError("provide either a guest ID or guest details, not both")
	}
	if in.GuestID != nil {
		return tx.Guests().FindByID(ctx, *in.GuestID)
	}
	if in.Guest == nil {
		return nil, domain.NewGuestInvalidError("guest identity is required")
	}
	g, err := guest.NewGuest(
		in.Guest.FullName,
		in.Guest.Document,
		in.Guest.Email,
		in.Guest.Phone,
		in.Guest.Address,
		s.clock.Now(),
	)
	if err != nil {
		return nil, err
	}
	return tx.Guests().Upsert(ctx, g)
}

// roomIDOf reads the reservation outside any lock to learn which room scope
// to lock. The locked section re-reads and verifies the room did not change.
func (s *ReservationService) roomIDOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	res, err := s.store.Reservations().FindByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	return res.RoomID(), nil
}

func (s *ReservationService) publishCreated(ctx context.Context, dto ReservationDTO) {
	s.publish(ctx, events.ReservationCreated, dto.ID.String(), events.ReservationCreatedEvent{
		ReservationID:   dto.ID,
		RoomID:          dto.RoomID,
		GuestID:         dto.GuestID,
		Checkin:         dto.Checkin,
		Checkout:        dto.Checkout,
		Occupants:       dto.Occupants,
		TotalPriceCents: dto.TotalPriceCents,
		Currency:        dto.Currency,
		OccurredAt:      s.clock.Now(),
	})
}

func (s *ReservationService) publishStatusChanged(ctx context.Context, dto ReservationDTO, old reservationDomain.Status) {
	s.publish(ctx, events.ReservationStatusChanged, dto.ID.String(), events.ReservationStatusChangedEvent{
		ReservationID: dto.ID,
		RoomID:        dto.RoomID,
		OldStatus:     string(old),
		NewStatus:     dto.Status,
		OccurredAt:    s.clock.Now(),
	})
}

func (s *ReservationService) publishUpdated(ctx context.Context, dto ReservationDTO) {
	s.publish(ctx, events.ReservationUpdated, dto.ID.String(), events.ReservationUpdatedEvent{
		ReservationID:   dto.ID,
		RoomID:          dto.RoomID,
		Checkin:         dto.Checkin,
		Checkout:        dto.Checkout,
		TotalPriceCents: dto.TotalPriceCents,
		OccurredAt:      s.clock.Now(),
	})
}

func (s *ReservationService) publishDeleted(ctx context.Context, dto ReservationDTO) {
	s.publish(ctx, events.ReservationDeleted, dto.ID.String(), events.ReservationDeletedEvent{
		ReservationID: dto.ID,
		RoomID:        dto.RoomID,
		Status:        dto.Status,
		OccurredAt:    s.clock.Now(),
	})
}

// publish wraps data in a CloudEvent and sends it. Event publication happens
// after the transaction committed; failures are logged, never surfaced.
func (s *ReservationService) publish(ctx context.Context, eventType, key string, data interface{}) {
	if s.producer == nil {
		return
	}
	ce, err := events.NewCloudEvent("service-reservations", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.Publish(ctx, events.TopicReservationEvents, key, ce); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
