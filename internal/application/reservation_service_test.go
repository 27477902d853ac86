package application_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pousada-alegrim/service-reservations/internal/application"
	"github.com/pousada-alegrim/service-reservations/internal/clock"
	"github.com/pousada-alegrim/service-reservations/internal/domain"
	reservationDomain "github.com/pousada-alegrim/service-reservations/internal/domain/reservation"
	roomDomain "github.com/pousada-alegrim/service-reservations/internal/domain/room"
	"github.com/pousada-alegrim/service-reservations/internal/repository/memory"
)

// testNow is "today" for every test: stays starting on this date occupy
// their room immediately.
var testNow = time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store        *memory.Store
	reservations *application.ReservationService
	rooms        *application.RoomService
	guests       *application.GuestService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	logger := zap.NewNop()
	clk := clock.Fixed{T: testNow}
	sync := application.NewRoomSynchronizer(clk)

	return &fixture{
		store:        store,
		reservations: application.NewReservationService(store, sync, nil, logger, clk, 30),
		rooms:        application.NewRoomService(store, sync, logger, clk, 30),
		guests:       application.NewGuestService(store, logger),
	}
}

func (f *fixture) seedRoom(t *testing.T, number string, capacity int, rateCents int64) *application.RoomDTO {
	t.Helper()
	dto, err := f.rooms.CreateRoom(context.Background(), application.RoomInput{
		Number:    number,
		Category:  string(roomDomain.CategoryStandard),
		Floor:     "1",
		Capacity:  capacity,
		RateCents: rateCents,
	})
	require.NoError(t, err)
	return dto
}

func guestInput(document string) *application.GuestInput {
	return &application.GuestInput{
		FullName: "Maria Souza",
		Document: document,
		Email:    "maria@example.com",
	}
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateReservation(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)

	dto, err := f.reservations.CreateReservation(context.Background(), application.CreateReservationInput{
		RoomID:    room.ID,
		Guest:     guestInput("11122233344"),
		Checkin:   day(10),
		Checkout:  day(13),
		Occupants: 2,
		Note:      "honeymoon",
	})
	require.NoError(t, err)

	assert.Equal(t, string(reservationDomain.StatusPending), dto.Status)
	assert.Equal(t, 3, dto.Nights)
	assert.Equal(t, int64(54000), dto.TotalPriceCents, "3 nights at 18000 cents")
	assert.Equal(t, "BRL", dto.Currency)
	assert.Contains(t, dto.Notes, "honeymoon")
	assert.Equal(t, int64(1), dto.Version)

	// The guest was created by the booking.
	g, err := f.guests.GetGuestByDocument(context.Background(), "11122233344")
	require.NoError(t, err)
	assert.Equal(t, g.ID, dto.GuestID)
}

func TestCreateReservationNormalizesDates(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)

	// Timestamps with time-of-day collapse to UTC dates.
	dto, err := f.reservations.CreateReservation(context.Background(), application.CreateReservationInput{
		RoomID:    room.ID,
		Guest:     guestInput("11122233344"),
		Checkin:   time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC),
		Checkout:  time.Date(2026, 3, 12, 11, 0, 0, 0, time.UTC),
		Occupants: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, day(10), dto.Checkin)
	assert.Equal(t, day(12), dto.Checkout)
	assert.Equal(t, 2, dto.Nights)
}

func TestCreateReservationValidation(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)
	ctx := context.Background()

	tests := []struct {
		name     string
		in       application.CreateReservationInput
		wantKind domain.Kind
	}{
		{
			"zero nights",
			application.CreateReservationInput{RoomID: room.ID, Guest: guestInput("1"), Checkin: day(10), Checkout: day(10), Occupants: 1},
			domain.KindInvalidRange,
		},
		{
			"inverted range",
			application.CreateReservationInput{RoomID: room.ID, Guest: guestInput("1"), Checkin: day(12), Checkout: day(10), Occupants: 1},
			domain.KindInvalidRange,
		},
		{
			"stay too long",
			application.CreateReservationInput{RoomID: room.ID, Guest: guestInput("1"), Checkin: day(1), Checkout: time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), Occupants: 1},
			domain.KindInvalidRange,
		},
		{
			"unknown room",
			application.CreateReservationInput{RoomID: uuid.New(), Guest: guestInput("1"), Checkin: day(10), Checkout: day(12), Occupants: 1},
			domain.KindRoomNotFound,
		},
		{
			"over capacity",
			application.CreateReservationInput{RoomID: room.ID, Guest: guestInput("1"), Checkin: day(10), Checkout: day(12), Occupants: 3},
			domain.KindValidation,
		},
		{
			"no guest identity",
			application.CreateReservationInput{RoomID: room.ID, Checkin: day(10), Checkout: day(12), Occupants: 1},
			domain.KindGuestInvalid,
		},
		{
			"guest without document",
			application.CreateReservationInput{RoomID: room.ID, Guest: &application.GuestInput{FullName: "Maria"}, Checkin: day(10), Checkout: day(12), Occupants: 1},
			domain.KindGuestInvalid,
		},
		{
			"unknown guest id",
			application.CreateReservationInput{RoomID: room.ID, GuestID: ptr(uuid.New()), Checkin: day(10), Checkout: day(12), Occupants: 1},
			domain.KindGuestNotFound,
		},
		{
			"both guest id and guest details",
			application.CreateReservationInput{RoomID: room.ID, GuestID: ptr(uuid.New()), Guest: guestInput("1"), Checkin: day(10), Checkout: day(12), Occupants: 1},
			domain.KindGuestInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.reservations.CreateReservation(ctx, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, domain.KindOf(err))
		})
	}
}

func TestCreateReservationOverlapRejected(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)
	other := f.seedRoom(t, "102", 2, 18000)
	ctx := context.Background()

	_, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("1"), Checkin: day(10), Checkout: day(13), Occupants: 1,
	})
	require.NoError(t, err)

	overlapping := []struct {
		name     string
		checkin  time.Time
		checkout time.Time
	}{
		{"identical", day(10), day(13)},
		{"partial head", day(8), day(11)},
		{"partial tail", day(12), day(15)},
		{"containing", day(8), day(15)},
		{"contained", day(11), day(12)},
	}
	for _, tt := range overlapping {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
				RoomID: room.ID, Guest: guestInput("2"), Checkin: tt.checkin, Checkout: tt.checkout, Occupants: 1,
			})
			require.Error(t, err)
			assert.Equal(t, domain.KindRoomUnavailable, domain.KindOf(err))
		})
	}

	// A back-to-back stay is not a conflict: checkout day equals checkin day.
	_, err = f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("2"), Checkin: day(13), Checkout: day(15), Occupants: 1,
	})
	require.NoError(t, err)

	_, err = f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("3"), Checkin: day(8), Checkout: day(10), Occupants: 1,
	})
	require.NoError(t, err)

	// The same dates in another room are fine.
	_, err = f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: other.ID, Guest: guestInput("4"), Checkin: day(10), Checkout: day(13), Occupants: 1,
	})
	require.NoError(t, err)
}

func TestCreateReservationCancelledSlotIsFree(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)
	ctx := context.Background()

	first, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("1"), Checkin: day(10), Checkout: day(13), Occupants: 1,
	})
	require.NoError(t, err)

	_, err = f.reservations.ChangeStatus(ctx, first.ID, reservationDomain.StatusCancelled, "")
	require.NoError(t, err)

	_, err = f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("2"), Checkin: day(10), Checkout: day(13), Occupants: 1,
	})
	require.NoError(t, err, "cancelled reservations do not block the slot")
}

func TestConcurrentCreateOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.reservations.CreateReservation(ctx, application.CreateReservationInput{
				RoomID:    room.ID,
				Guest:     guestInput(fmt.Sprintf("doc-%d", i)),
				Checkin:   day(10),
				Checkout:  day(13),
				Occupants: 1,
			})
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case domain.IsKind(err, domain.KindRoomUnavailable):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one booking wins the slot")
	assert.Equal(t, attempts-1, conflicts)
}

func TestGuestUpsertByDocument(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)
	ctx := context.Background()

	first, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("11122233344"), Checkin: day(10), Checkout: day(12), Occupants: 1,
	})
	require.NoError(t, err)

	second, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID,
		Guest: &application.GuestInput{
			FullName: "Maria S. Oliveira",
			Document: "11122233344",
			Phone:    "+55 11 98888-1111",
		},
		Checkin: day(20), Checkout: day(22), Occupants: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, first.GuestID, second.GuestID, "same document reuses the guest record")

	g, err := f.guests.GetGuest(ctx, first.GuestID)
	require.NoError(t, err)
	assert.Equal(t, "Maria S. Oliveira", g.FullName, "contact fields refreshed")
	assert.Equal(t, "maria@example.com", g.Email, "absent fields keep prior values")
}

func TestChangeStatusFlow(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)
	ctx := context.Background()

	res, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("1"), Checkin: day(10), Checkout: day(12), Occupants: 1,
	})
	require.NoError(t, err)

	confirmed, err := f.reservations.ChangeStatus(ctx, res.ID, reservationDomain.StatusConfirmed, "deposit received")
	require.NoError(t, err)
	assert.Equal(t, string(reservationDomain.StatusConfirmed), confirmed.Status)
	assert.Equal(t, int64(2), confirmed.Version)
	assert.Contains(t, confirmed.Notes, "deposit received")

	completed, err := f.reservations.ChangeStatus(ctx, res.ID, reservationDomain.StatusCompleted, "")
	require.NoError(t, err)
	assert.Equal(t, string(reservationDomain.StatusCompleted), completed.Status)
	assert.Equal(t, int64(3), completed.Version)

	// Terminal.
	_, err = f.reservations.ChangeStatus(ctx, res.ID, reservationDomain.StatusCancelled, "")
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err))
}

func TestChangeStatusInvalidTransition(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)
	ctx := context.Background()

	res, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("1"), Checkin: day(10), Checkout: day(12), Occupants: 1,
	})
	require.NoError(t, err)

	_, err = f.reservations.ChangeStatus(ctx, res.ID, reservationDomain.StatusCompleted, "")
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err))

	// The failed transition left nothing behind.
	unchanged, err := f.reservations.GetReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, string(reservationDomain.StatusPending), unchanged.Status)
	assert.Equal(t, int64(1), unchanged.Version)
}

func TestRoomStatusFollowsReservations(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)
	ctx := context.Background()

	// Stay covering "today" occupies the room on creation.
	res, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("1"), Checkin: day(5), Checkout: day(8), Occupants: 1,
	})
	require.NoError(t, err)

	occupied, err := f.rooms.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, string(roomDomain.StatusOccupied), occupied.Status)

	// Cancelling frees it in the same transaction.
	_, err = f.reservations.ChangeStatus(ctx, res.ID, reservationDomain.StatusCancelled, "")
	require.NoError(t, err)

	freed, err := f.rooms.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, string(roomDomain.StatusAvailable), freed.Status)
}

func TestRoomStatusFutureStayDoesNotOccupy(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)
	ctx := context.Background()

	_, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("1"), Checkin: day(20), Checkout: day(22), Occupants: 1,
	})
	require.NoError(t, err)

	rm, err := f.rooms.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, string(roomDomain.StatusAvailable), rm.Status, "future stays do not occupy today")
}

func TestEditReservationReprices(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)
	ctx := context.Background()

	res, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("1"), Checkin: day(10), Checkout: day(12), Occupants: 1,
	})
	require.NoError(t, err)
	require.Equal(t, int64(36000), res.TotalPriceCents)

	edited, err := f.reservations.EditReservation(ctx, res.ID, application.EditReservationInput{
		Checkout: ptr(day(15)),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, edited.Nights)
	assert.Equal(t, int64(90000), edited.TotalPriceCents, "price recomputed for the new stay")
	assert.Equal(t, int64(2), edited.Version)
}

func TestEditReservationNoChangeIsNoop(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)
	ctx := context.Background()

	res, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("1"), Checkin: day(10), Checkout: day(12), Occupants: 1,
	})
	require.NoError(t, err)

	same, err := f.reservations.EditReservation(ctx, res.ID, application.EditReservationInput{
		Checkin: ptr(day(10)), Checkout: ptr(day(12)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), same.Version, "identical dates change nothing")
	assert.Equal(t, res.TotalPriceCents, same.TotalPriceCents)
}

func TestEditReservationMovesRoom(t *testing.T) {
	f := newFixture(t)
	cheap := f.seedRoom(t, "101", 2, 18000)
	pricey := f.seedRoom(t, "201", 2, 30000)
	ctx := context.Background()

	// A stay covering today so room status moves with the reservation.
	res, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: cheap.ID, Guest: guestInput("1"), Checkin: day(5), Checkout: day(7), Occupants: 1,
	})
	require.NoError(t, err)

	moved, err := f.reservations.EditReservation(ctx, res.ID, application.EditReservationInput{
		RoomID: ptr(pricey.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, pricey.ID, moved.RoomID)
	assert.Equal(t, int64(60000), moved.TotalPriceCents, "price from the new room's rate")

	oldRoom, err := f.rooms.GetRoom(ctx, cheap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(roomDomain.StatusAvailable), oldRoom.Status, "source room freed")

	newRoom, err := f.rooms.GetRoom(ctx, pricey.ID)
	require.NoError(t, err)
	assert.Equal(t, string(roomDomain.StatusOccupied), newRoom.Status, "target room occupied")
}

func TestEditReservationOverlapExcludesSelf(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)
	ctx := context.Background()

	res, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("1"), Checkin: day(10), Checkout: day(13), Occupants: 1,
	})
	require.NoError(t, err)

	// Extending a stay overlaps only itself, which is allowed.
	_, err = f.reservations.EditReservation(ctx, res.ID, application.EditReservationInput{
		Checkout: ptr(day(14)),
	})
	require.NoError(t, err)

	// But it cannot grow into someone else's stay.
	_, err = f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("2"), Checkin: day(14), Checkout: day(16), Occupants: 1,
	})
	require.NoError(t, err)

	_, err = f.reservations.EditReservation(ctx, res.ID, application.EditReservationInput{
		Checkout: ptr(day(15)),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindRoomUnavailable, domain.KindOf(err))
}

func TestEditTerminalReservationRejected(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)
	ctx := context.Background()

	res, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("1"), Checkin: day(10), Checkout: day(12), Occupants: 1,
	})
	require.NoError(t, err)
	_, err = f.reservations.ChangeStatus(ctx, res.ID, reservationDomain.StatusCancelled, "")
	require.NoError(t, err)

	_, err = f.reservations.EditReservation(ctx, res.ID, application.EditReservationInput{
		Checkout: ptr(day(14)),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err))
}

func TestDeleteReservation(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)
	ctx := context.Background()

	t.Run("pending is deletable", func(t *testing.T) {
		res, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
			RoomID: room.ID, Guest: guestInput("1"), Checkin: day(10), Checkout: day(12), Occupants: 1,
		})
		require.NoError(t, err)

		require.NoError(t, f.reservations.DeleteReservation(ctx, res.ID))
		_, err = f.reservations.GetReservation(ctx, res.ID)
		assert.Equal(t, domain.KindReservationNotFound, domain.KindOf(err))
	})

	t.Run("confirmed is not deletable", func(t *testing.T) {
		res, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
			RoomID: room.ID, Guest: guestInput("1"), Checkin: day(10), Checkout: day(12), Occupants: 1,
		})
		require.NoError(t, err)
		_, err = f.reservations.ChangeStatus(ctx, res.ID, reservationDomain.StatusConfirmed, "")
		require.NoError(t, err)

		err = f.reservations.DeleteReservation(ctx, res.ID)
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err))

		// Cancelled afterwards, the record can go.
		_, err = f.reservations.ChangeStatus(ctx, res.ID, reservationDomain.StatusCancelled, "")
		require.NoError(t, err)
		require.NoError(t, f.reservations.DeleteReservation(ctx, res.ID))
	})

	t.Run("delete frees the room", func(t *testing.T) {
		res, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
			RoomID: room.ID, Guest: guestInput("1"), Checkin: day(5), Checkout: day(7), Occupants: 1,
		})
		require.NoError(t, err)

		occupied, err := f.rooms.GetRoom(ctx, room.ID)
		require.NoError(t, err)
		require.Equal(t, string(roomDomain.StatusOccupied), occupied.Status)

		require.NoError(t, f.reservations.DeleteReservation(ctx, res.ID))

		freed, err := f.rooms.GetRoom(ctx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, string(roomDomain.StatusAvailable), freed.Status)
	})
}

func TestListReservationsFilters(t *testing.T) {
	f := newFixture(t)
	roomA := f.seedRoom(t, "101", 2, 18000)
	roomB := f.seedRoom(t, "102", 2, 18000)
	ctx := context.Background()

	a, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: roomA.ID, Guest: guestInput("1"), Checkin: day(10), Checkout: day(12), Occupants: 1,
	})
	require.NoError(t, err)
	_, err = f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: roomB.ID, Guest: guestInput("2"), Checkin: day(10), Checkout: day(12), Occupants: 1,
	})
	require.NoError(t, err)
	_, err = f.reservations.ChangeStatus(ctx, a.ID, reservationDomain.StatusConfirmed, "")
	require.NoError(t, err)

	byRoom, err := f.reservations.ListReservations(ctx, reservationDomain.Filter{RoomID: &roomA.ID}, 1, 20)
	require.NoError(t, err)
	require.Len(t, byRoom.Items, 1)
	assert.Equal(t, a.ID, byRoom.Items[0].ID)

	confirmed := reservationDomain.StatusConfirmed
	byStatus, err := f.reservations.ListReservations(ctx, reservationDomain.Filter{Status: &confirmed}, 1, 20)
	require.NoError(t, err)
	require.Len(t, byStatus.Items, 1)
	assert.Equal(t, a.ID, byStatus.Items[0].ID)

	all, err := f.reservations.ListReservations(ctx, reservationDomain.Filter{}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, int64(2), all.Total)
}

func TestReservationStats(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", 2, 18000)
	ctx := context.Background()

	completedRes, err := f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("1"), Checkin: day(10), Checkout: day(12), Occupants: 1,
	})
	require.NoError(t, err)
	_, err = f.reservations.ChangeStatus(ctx, completedRes.ID, reservationDomain.StatusConfirmed, "")
	require.NoError(t, err)
	_, err = f.reservations.ChangeStatus(ctx, completedRes.ID, reservationDomain.StatusCompleted, "")
	require.NoError(t, err)

	_, err = f.reservations.CreateReservation(ctx, application.CreateReservationInput{
		RoomID: room.ID, Guest: guestInput("2"), Checkin: day(20), Checkout: day(22), Occupants: 1,
	})
	require.NoError(t, err)

	stats, err := f.reservations.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.ByStatus["completed"])
	assert.Equal(t, int64(1), stats.ByStatus["pending"])
	assert.Equal(t, int64(36000), stats.CompletedRevenueCents)
}

func ptr[T any](v T) *T { return &v }
