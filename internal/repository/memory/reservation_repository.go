package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pousada-alegrim/service-reservations/internal/domain"
	reservationDomain "github.com/pousada-alegrim/service-reservations/internal/domain/reservation"
)

type reservationRepository struct {
	access func() (*dataset, func())
}

func (r *reservationRepository) FindByID(_ context.Context, id uuid.UUID) (*reservationDomain.Reservation, error) {
	data, release := r.access()
	defer release()

	res, ok := data.reservations[id]
	if !ok {
		return nil, domain.NewReservationNotFoundError(id.String())
	}
	return cloneReservation(res), nil
}

func (r *reservationRepository) List(_ context.Context, filter reservationDomain.Filter, page, limit int) ([]*reservationDomain.Reservation, int64, error) {
	data, release := r.access()
	defer release()

	matched := make([]*reservationDomain.Reservation, 0, len(data.reservations))
	for _, res := range data.reservations {
		if filter.RoomID != nil && res.RoomID() != *filter.RoomID {
			continue
		}
		if filter.GuestID != nil && res.GuestID() != *filter.GuestID {
			continue
		}
		if filter.Status != nil && res.Status() != *filter.Status {
			continue
		}
		matched = append(matched, cloneReservation(res))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt().Equal(matched[j].CreatedAt()) {
			return matched[i].CreatedAt().After(matched[j].CreatedAt())
		}
		return matched[i].ID().String() < matched[j].ID().String()
	})

	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) {
		return []*reservationDomain.Reservation{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *reservationRepository) HasOverlap(_ context.Context, roomID uuid.UUID, checkin, checkout time.Time, excludeID *uuid.UUID) (bool, error) {
	data, release := r.access()
	defer release()

	for _, res := range data.reservations {
		if res.RoomID() != roomID || !res.Status().IsActive() {
			continue
		}
		if excludeID != nil && res.ID() == *excludeID {
			continue
		}
		if reservationDomain.Overlaps(res.Checkin(), res.Checkout(), checkin, checkout) {
			return true, nil
		}
	}
	return false, nil
}

func (r *reservationRepository) ExistsActiveCovering(_ context.Context, roomID uuid.UUID, date time.Time) (bool, error) {
	data, release := r.access()
	defer release()

	for _, res := range data.reservations {
		if res.RoomID() == roomID && res.Status().IsActive() && res.CoversDate(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *reservationRepository) CountByRoom(_ context.Context, roomID uuid.UUID) (int64, error) {
	data, release := r.access()
	defer release()

	var count int64
	for _, res := range data.reservations {
		if res.RoomID() == roomID {
			count++
		}
	}
	return count, nil
}

func (r *reservationRepository) CountByGuest(_ context.Context, guestID uuid.UUID) (int64, error) {
	data, release := r.access()
	defer release()

	var count int64
	for _, res := range data.reservations {
		if res.GuestID() == guestID {
			count++
		}
	}
	return count, nil
}

func (r *reservationRepository) CountByStatus(_ context.Context) (map[string]int64, error) {
	data, release := r.access()
	defer release()

	counts := make(map[string]int64)
	for _, res := range data.reservations {
		counts[res.Status().String()]++
	}
	return counts, nil
}

func (r *reservationRepository) CompletedRevenueCents(_ context.Context) (int64, error) {
	data, release := r.access()
	defer release()

	var total int64
	for _, res := range data.reservations {
		if res.Status() == reservationDomain.StatusCompleted {
			total += res.TotalPriceCents()
		}
	}
	return total, nil
}

func (r *reservationRepository) Save(_ context.Context, res *reservationDomain.Reservation) error {
	data, release := r.access()
	defer release()

	data.reservations[res.ID()] = cloneReservation(res)
	return nil
}

func (r *reservationRepository) Update(_ context.Context, res *reservationDomain.Reservation) error {
	data, release := r.access()
	defer release()

	existing, ok := data.reservations[res.ID()]
	if !ok {
		return domain.NewReservationNotFoundError(res.ID().String())
	}
	if existing.Version() != res.Version()-1 {
		return domain.NewConcurrencyConflictError("reservation was modified by another transaction")
	}
	data.reservations[res.ID()] = cloneReservation(res)
	return nil
}

func (r *reservationRepository) Delete(_ context.Context, id uuid.UUID) error {
	data, release := r.access()
	defer release()

	if _, ok := data.reservations[id]; !ok {
		return domain.NewReservationNotFoundError(id.String())
	}
	delete(data.reservations, id)
	return nil
}
