package guest

import (
	"time"

	"github.com/google/uuid"

	"github.com/pousada-alegrim/service-reservations/internal/domain"
)

// Guest is the aggregate root for a guest record. Guests are deduplicated by
// the document natural key: the first booking creates the record, later
// bookings with the same document reuse it.
type Guest struct {
	id       uuid.UUID
	fullName string
	document string
	email    string
	phone    string
	address  string

	createdAt time.Time
	updatedAt time.Time
}

// NewGuest creates a Guest from booking identity data.
func NewGuest(fullName, document, email, phone, address string, now time.Time) (*Guest, error) {
	if fullName == "" {
		return nil, domain.NewGuestInvalidError("guest full name is required")
	}
	if document == "" {
		return nil, domain.NewGuestInvalidError("guest document is required")
	}
	return &Guest{
		id:        uuid.New(),
		fullName:  fullName,
		document:  document,
		email:     email,
		phone:     phone,
		address:   address,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Guest from persistence data (no validation).
func Reconstruct(id uuid.UUID, fullName, document, email, phone, address string, createdAt, updatedAt time.Time) *Guest {
	return &Guest{
		id:        id,
		fullName:  fullName,
		document:  document,
		email:     email,
		phone:     phone,
		address:   address,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the guest's unique identifier.
func (g *Guest) ID() uuid.UUID { return g.id }

// FullName returns the guest's full name.
func (g *Guest) FullName() string { return g.fullName }

// Document returns the natural-key identity document.
func (g *Guest) Document() string { return g.document }

// Email returns the contact email.
func (g *Guest) Email() string { return g.email }

// Phone returns the contact phone number.
func (g *Guest) Phone() string { return g.phone }

// Address returns the postal address.
func (g *Guest) Address() string { return g.address }

// CreatedAt returns the creation timestamp.
func (g *Guest) CreatedAt() time.Time { return g.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (g *Guest) UpdatedAt() time.Time { return g.updatedAt }

// UpdateContact refreshes the mutable contact fields from a later booking.
func (g *Guest) UpdateContact(fullName, email, phone, address string, now time.Time) {
	if fullName != "" {
		g.fullName = fullName
	}
	if email != "" {
		g.email = email
	}
	if phone != "" {
		g.phone = phone
	}
	if address != "" {
		g.address = address
	}
	g.updatedAt = now
}
