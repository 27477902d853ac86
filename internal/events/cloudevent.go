package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Topic and event type constants for the reservation event stream.
const (
	TopicReservationEvents = "reservation.events"

	ReservationCreated       = "reservation.created"
	ReservationStatusChanged = "reservation.status_changed"
	ReservationUpdated       = "reservation.updated"
	ReservationDeleted       = "reservation.deleted"
)

// CloudEvent is the envelope every published message is wrapped in.
type CloudEvent struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// NewCloudEvent wraps data in a CloudEvent envelope.
func NewCloudEvent(source, eventType string, data interface{}) (CloudEvent, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return CloudEvent{}, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return CloudEvent{
		ID:     uuid.New().String(),
		Source: source,
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   payload,
	}, nil
}

// ParseCloudEvent decodes a CloudEvent from raw message bytes.
func ParseCloudEvent(b []byte) (CloudEvent, error) {
	var ce CloudEvent
	if err := json.Unmarshal(b, &ce); err != nil {
		return CloudEvent{}, fmt.Errorf("failed to parse cloud event: %w", err)
	}
	return ce, nil
}

// ParseData decodes the event payload into v.
func (e CloudEvent) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// ReservationCreatedEvent is published after a reservation is persisted.
type ReservationCreatedEvent struct {
	ReservationID   uuid.UUID `json:"reservation_id"`
	RoomID          uuid.UUID `json:"room_id"`
	GuestID         uuid.UUID `json:"guest_id"`
	Checkin         time.Time `json:"checkin"`
	Checkout        time.Time `json:"checkout"`
	Occupants       int       `json:"occupants"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Currency        string    `json:"currency"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// ReservationStatusChangedEvent is published after a lifecycle transition.
type ReservationStatusChangedEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	RoomID        uuid.UUID `json:"room_id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ReservationUpdatedEvent is published after dates or room change.
type ReservationUpdatedEvent struct {
	ReservationID   uuid.UUID `json:"reservation_id"`
	RoomID          uuid.UUID `json:"room_id"`
	Checkin         time.Time `json:"checkin"`
	Checkout        time.Time `json:"checkout"`
	TotalPriceCents int64     `json:"total_price_cents"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// ReservationDeletedEvent is published after a hard delete.
type ReservationDeletedEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	RoomID        uuid.UUID `json:"room_id"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
