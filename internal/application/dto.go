package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/pousada-alegrim/service-reservations/internal/domain/guest"
	"github.com/pousada-alegrim/service-reservations/internal/domain/reservation"
	"github.com/pousada-alegrim/service-reservations/internal/domain/room"
)

// ReservationDTO is the response representation of a reservation.
type ReservationDTO struct {
	ID              uuid.UUID `json:"id"`
	RoomID          uuid.UUID `json:"room_id"`
	GuestID         uuid.UUID `json:"guest_id"`
	Checkin         time.Time `json:"checkin"`
	Checkout        time.Time `json:"checkout"`
	Nights          int       `json:"nights"`
	Occupants       int       `json:"occupants"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	Version         int64     `json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RoomDTO is the response representation of a room.
type RoomDTO struct {
	ID          uuid.UUID `json:"id"`
	Number      string    `json:"number"`
	Category    string    `json:"category"`
	Floor       string    `json:"floor,omitempty"`
	Description string    `json:"description,omitempty"`
	Capacity    int       `json:"capacity"`
	RateCents   int64     `json:"rate_cents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GuestDTO is the response representation of a guest.
type GuestDTO struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Document  string    `json:"document"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toReservationDTO(r *reservation.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:              r.ID(),
		RoomID:          r.RoomID(),
		GuestID:         r.GuestID(),
		Checkin:         r.Checkin(),
		Checkout:        r.Checkout(),
		Nights:          r.Nights(),
		Occupants:       r.Occupants(),
		TotalPriceCents: r.TotalPriceCents(),
		Currency:        reservation.Currency,
		Status:          string(r.Status()),
		Notes:           r.Notes(),
		Version:         r.Version(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

func toRoomDTO(rm *room.Room) RoomDTO {
	return RoomDTO{
		ID:          rm.ID(),
		Number:      rm.Number(),
		Category:    string(rm.Category()),
		Floor:       rm.Floor(),
		Description: rm.Description(),
		Capacity:    rm.Capacity(),
		RateCents:   rm.RateCents(),
		Status:      string(rm.Status()),
		CreatedAt:   rm.CreatedAt(),
		UpdatedAt:   rm.UpdatedAt(),
	}
}

func toGuestDTO(g *guest.Guest) GuestDTO {
	return GuestDTO{
		ID:        g.ID(),
		FullName:  g.FullName(),
		Document:  g.Document(),
		Email:     g.Email(),
		Phone:     g.Phone(),
		Address:   g.Address(),
		CreatedAt: g.CreatedAt(),
		UpdatedAt: g.UpdatedAt(),
	}
}
