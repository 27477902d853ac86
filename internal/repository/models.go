package repository

import (
	"time"

	"github.com/google/uuid"

	guestDomain "github.com/pousada-alegrim/service-reservations/internal/domain/guest"
	reservationDomain "github.com/pousada-alegrim/service-reservations/internal/domain/reservation"
	roomDomain "github.com/pousada-alegrim/service-reservations/internal/domain/room"
)

// RoomModel is the GORM model for the rooms table.
type RoomModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number      string    `gorm:"uniqueIndex;not null;size:10"`
	Category    string    `gorm:"not null;size:20;index"`
	Floor       string    `gorm:"size:20"`
	Description string    `gorm:"size:1000"`
	Capacity    int       `gorm:"not null"`
	RateCents   int64     `gorm:"not null"`
	Status      string    `gorm:"not null;size:20;index;default:'available'"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RoomModel) TableName() string {
	return "rooms"
}

// GuestModel is the GORM model for the guests table.
type GuestModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName  string    `gorm:"not null;size:100"`
	Document  string    `gorm:"uniqueIndex;not null;size:20"`
	Email     string    `gorm:"size:100"`
	Phone     string    `gorm:"size:20"`
	Address   string    `gorm:"size:500"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (GuestModel) TableName() string {
	return "guests"
}

// ReservationModel is the GORM model for the reservations table.
type ReservationModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID          uuid.UUID `gorm:"type:uuid;not null;index:idx_reservations_room_status"`
	GuestID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Checkin         time.Time `gorm:"type:date;not null"`
	Checkout        time.Time `gorm:"type:date;not null"`
	Occupants       int       `gorm:"not null;default:1"`
	TotalPriceCents int64     `gorm:"not null"`
	Status          string    `gorm:"not null;size:20;index:idx_reservations_room_status"`
	Notes           string    `gorm:"type:text"`
	Version         int64     `gorm:"not null;default:1"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`

	// Associations exist so AutoMigrate creates the same foreign keys the
	// SQL migrations declare. They are never preloaded.
	Room  *RoomModel  `gorm:"foreignKey:RoomID"`
	Guest *GuestModel `gorm:"foreignKey:GuestID"`
}

// TableName returns the table name for the GORM model.
func (ReservationModel) TableName() string {
	return "reservations"
}

// --- Conversion helpers ---

func toRoomModel(rm *roomDomain.Room) *RoomModel {
	return &RoomModel{
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

func toDomainRoom(m *RoomModel) (*roomDomain.Room, error) {
	status, err := roomDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return roomDomain.Reconstruct(
		m.ID,
		m.Number,
		roomDomain.Category(m.Category),
		m.Floor,
		m.Description,
		m.Capacity,
		m.RateCents,
		status,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toGuestModel(g *guestDomain.Guest) *GuestModel {
	return &GuestModel{
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

func toDomainGuest(m *GuestModel) *guestDomain.Guest {
	return guestDomain.Reconstruct(
		m.ID,
		m.FullName,
		m.Document,
		m.Email,
		m.Phone,
		m.Address,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toReservationModel(r *reservationDomain.Reservation) *ReservationModel {
	return &ReservationModel{
		ID:              r.ID(),
		RoomID:          r.RoomID(),
		GuestID:         r.GuestID(),
		Checkin:         r.Checkin(),
		Checkout:        r.Checkout(),
		Occupants:       r.Occupants(),
		TotalPriceCents: r.TotalPriceCents(),
		Status:          string(r.Status()),
		Notes:           r.Notes(),
		Version:         r.Version(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

func toDomainReservation(m *ReservationModel) (*reservationDomain.Reservation, error) {
	status, err := reservationDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return reservationDomain.Reconstruct(
		m.ID,
		m.RoomID,
		m.GuestID,
		m.Checkin.UTC(),
		m.Checkout.UTC(),
		m.Occupants,
		m.TotalPriceCents,
		status,
		m.Notes,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func activeStatusStrings() []string {
	statuses := reservationDomain.ActiveStatuses()
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
