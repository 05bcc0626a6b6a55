package order

import "fmt"

// Status is the order lifecycle state. All transition guards live in this
// file; request handlers call these and never re-implement the checks.
type Status string

const (
	StatusPending           Status = "pending"
	StatusProcessing        Status = "processing"
	StatusShipped           Status = "shipped"
	StatusDelivered         Status = "delivered"
	StatusCancelled         Status = "cancelled"
	StatusCancelRequested   Status = "cancel_requested"
	StatusDeliveryConfirmed Status = "delivery_confirmed"
)

var validStatuses = map[Status]bool{
	StatusPending:           true,
	StatusProcessing:        true,
	StatusShipped:           true,
	StatusDelivered:         true,
	StatusCancelled:         true,
	StatusCancelRequested:   true,
	StatusDeliveryConfirmed: true,
}

// ParseStatus rejects unknown enum values before any guard runs.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !validStatuses[status] {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// CanBecome is the guard for a direct status write. A cancelled order
// stays cancelled; a delivered order may only stay delivered or be
// cancelled. Writing the current status back is a permitted no-op.
func (s Status) CanBecome(target Status) error {
	if s == StatusCancelled && target != StatusCancelled {
		return fmt.Errorf("%w: cannot change status of a cancelled order", ErrInvalidTransition)
	}
	if s == StatusDelivered && target != StatusDelivered && target != StatusCancelled {
		return fmt.Errorf("%w: a delivered order can only be cancelled", ErrInvalidTransition)
	}
	return nil
}

// Cancellable reports whether the owner may still cancel or request
// cancellation of the order.
func (s Status) Cancellable() bool {
	return s == StatusPending || s == StatusProcessing
}
