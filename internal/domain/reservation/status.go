package reservation

import "fmt"

// Status represents the current state of a reservation in its lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// validTransitions defines the state machine for reservation status changes.
// cancelled and completed are terminal.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

// IsValid returns true if the status is a recognized reservation status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target
// is allowed. Self-transitions are never allowed.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// IsActive returns true if the reservation counts against room availability.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ActiveStatuses returns the statuses that reserve the room's date range.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid reservation status: %s", s)
	}
	return status, nil
}
