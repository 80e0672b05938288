package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the booking transaction.
var (
	// ErrInvalidSeats is returned when the requested seat count is not a positive integer.
	ErrInvalidSeats = errors.New("seat count must be a positive integer")
	// ErrInsufficientCapacity is matched via errors.Is against *CapacityError.
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	// ErrTryAgain is returned when the store could not complete the atomic
	// reservation step in time. No partial state was committed; the caller may
	// safely retry with identical input.
	ErrTryAgain = errors.New("booking could not complete, try again")
)

// CapacityError is the rejection returned when a reservation asks for more
// seats than the event has remaining. Remaining is the actual remaining
// capacity at the time of the attempt, so the caller can act on it.
type CapacityError struct {
	EventID   int64
	Requested int
	Remaining int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("event %d: requested %d seats, %d remaining", e.EventID, e.Requested, e.Remaining)
}

// Is makes errors.Is(err, ErrInsufficientCapacity) match a *CapacityError.
func (e *CapacityError) Is(target error) bool {
	return target == ErrInsufficientCapacity
}

// Booking is one committed reservation in the ledger. Bookings are immutable
// after creation; there is no cancellation path.
// swagger:model Booking
type Booking struct {
	ID             int64     `json:"id"`
	EventID        int64     `json:"event_id"`
	UserID         int64     `json:"user_id"`
	Seats          int       `json:"seats"`
	RemainingAfter int       `json:"remaining_after"`
	CommittedAt    time.Time `json:"committed_at"`
}

// BookingWithEvent bundles a booking with its related event for history listings.
type BookingWithEvent struct {
	Booking *Booking `json:"booking"`
	Event   *Event   `json:"event"`
}

// BookingConfirmation is the success outcome returned to callers of Book.
// swagger:model BookingConfirmation
type BookingConfirmation struct {
	BookingID   int64     `json:"booking_id"`
	EventID     int64     `json:"event_id"`
	Seats       int       `json:"seats"`
	Remaining   int       `json:"remaining"`
	CommittedAt time.Time `json:"committed_at"`
}

// BookingRepository defines storage operations for the booking ledger.
//
// Reserve is the only writer path for bookings. It must execute the capacity
// check and the insert as one atomic unit with respect to every concurrent
// Reserve on the same event: two reservations whose combined seats exceed
// the event's total capacity can never both commit. Reservations against
// different events must not block each other.
type BookingRepository interface {
	// Reserve atomically checks remaining capacity for the event and, if
	// sufficient, inserts a booking with a store-assigned commit timestamp.
	// Returns ErrNotFound if the event does not exist, *CapacityError if
	// seats exceed remaining capacity, ErrTryAgain on contention timeout.
	Reserve(ctx context.Context, eventID, userID int64, seats int) (*Booking, error)
	// CurrentBooked returns the sum of seats over all committed bookings for
	// the event. It reflects every committed reservation, never a stale view.
	CurrentBooked(ctx context.Context, eventID int64) (int, error)
	ListByUserID(ctx context.Context, userID int64) ([]*BookingWithEvent, error)
	ListAll(ctx context.Context, params PaginationParams) (bookings []*Booking, total int, err error)
}

// BookingService is the single entry point external callers use to book seats.
type BookingService interface {
	// Book reserves seats for the given user. The identity is assumed to be
	// already authenticated and role-checked by the delivery layer.
	Book(ctx context.Context, userID, eventID int64, seats int) (*BookingConfirmation, error)
	ListMyBookings(ctx context.Context, userID int64) ([]*BookingWithEvent, error)
	ListAllBookings(ctx context.Context, params PaginationParams) ([]*Booking, int, error)
}
