package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a referenced resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the actor lacks the role required for an operation.
var ErrForbidden = errors.New("forbidden")

// Event represents a bookable event with a fixed seat capacity.
// TotalCapacity is set at creation and never mutated afterwards.
// swagger:model Event
type Event struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Venue         string    `json:"venue"`
	Date          time.Time `json:"date"`
	TotalCapacity int       `json:"total_capacity"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(name, venue string, date time.Time, totalCapacity int, createdAt time.Time) *Event {
	return &Event{
		Name:          name,
		Venue:         venue,
		Date:          date,
		TotalCapacity: totalCapacity,
		CreatedAt:     createdAt,
	}
}

// EventFilter holds optional list filters. Empty fields match everything.
type EventFilter struct {
	Name  string
	Venue string
}

// EventWithAvailability bundles an event with its live booked/remaining counts.
type EventWithAvailability struct {
	Event       *Event `json:"event"`
	SeatsBooked int    `json:"seats_booked"`
	Remaining   int    `json:"remaining"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
}

// EventService defines the business logic for event management.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	GetEventByID(ctx context.Context, eventID int64) (*EventWithAvailability, error)
}
