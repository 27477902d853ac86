package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pousada-alegrim/service-reservations/internal/domain"
	reservationDomain "github.com/pousada-alegrim/service-reservations/internal/domain/reservation"
	roomDomain "github.com/pousada-alegrim/service-reservations/internal/domain/room"
)

type roomRepository struct {
	access func() (*dataset, func())
}

func (r *roomRepository) FindByID(_ context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	data, release := r.access()
	defer release()

	rm, ok := data.rooms[id]
	if !ok {
		return nil, domain.NewRoomNotFoundError(id.String())
	}
	return cloneRoom(rm), nil
}

func (r *roomRepository) FindByNumber(_ context.Context, number string) (*roomDomain.Room, error) {
	data, release := r.access()
	defer release()

	for _, rm := range data.rooms {
		if rm.Number() == number {
			return cloneRoom(rm), nil
		}
	}
	return nil, domain.NewRoomNotFoundError(number)
}

func (r *roomRepository) List(_ context.Context) ([]*roomDomain.Room, error) {
	data, release := r.access()
	defer release()

	return sortedRooms(data.rooms), nil
}

func (r *roomRepository) FindAvailable(_ context.Context, checkin, checkout time.Time) ([]*roomDomain.Room, error) {
	data, release := r.access()
	defer release()

	occupied := make(map[uuid.UUID]bool)
	for _, res := range data.reservations {
		if !res.Status().IsActive() {
			continue
		}
		if reservationDomain.Overlaps(res.Checkin(), res.Checkout(), checkin, checkout) {
			occupied[res.RoomID()] = true
		}
	}

	available := make(map[uuid.UUID]*roomDomain.Room)
	for id, rm := range data.rooms {
		if rm.InMaintenance() || occupied[id] {
			continue
		}
		available[id] = rm
	}
	return sortedRooms(available), nil
}

func (r *roomRepository) CountByStatus(_ context.Context) (map[string]int64, error) {
	data, release := r.access()
	defer release()

	counts := make(map[string]int64)
	for _, rm := range data.rooms {
		counts[string(rm.Status())]++
	}
	return counts, nil
}

func (r *roomRepository) Save(_ context.Context, rm *roomDomain.Room) error {
	data, release := r.access()
	defer release()

	for _, existing := range data.rooms {
		if existing.Number() == rm.Number() {
			return domain.NewValidationError("room number " + rm.Number() + " is already in use")
		}
	}
	data.rooms[rm.ID()] = cloneRoom(rm)
	return nil
}

func (r *roomRepository) Update(_ context.Context, rm *roomDomain.Room) error {
	data, release := r.access()
	defer release()

	if _, ok := data.rooms[rm.ID()]; !ok {
		return domain.NewRoomNotFoundError(rm.ID().String())
	}
	for id, existing := range data.rooms {
		if id != rm.ID() && existing.Number() == rm.Number() {
			return domain.NewValidationError("room number " + rm.Number() + " is already in use")
		}
	}
	data.rooms[rm.ID()] = cloneRoom(rm)
	return nil
}

func (r *roomRepository) Delete(_ context.Context, id uuid.UUID) error {
	data, release := r.access()
	defer release()

	if _, ok := data.rooms[id]; !ok {
		return domain.NewRoomNotFoundError(id.String())
	}
	delete(data.rooms, id)
	return nil
}

func sortedRooms(rooms map[uuid.UUID]*roomDomain.Room) []*roomDomain.Room {
	out := make([]*roomDomain.Room, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, cloneRoom(rm))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category() != out[j].Category() {
			return out[i].Category() < out[j].Category()
		}
		return out[i].Number() < out[j].Number()
	})
	return out
}
