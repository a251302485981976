package domain

import (
	"context"
	"time"
)

// Booking represents one attendee's reservation for an event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking returns a new Booking. ID is set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingRepository defines storage operations for bookings. Create must
// verify that the referenced event exists atomically with the insert and
// return ErrEventNotFound when it does not; nothing is persisted in that
// case.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Booking, error)
}

// BookingService defines attendee-facing booking operations.
type BookingService interface {
	CreateBooking(ctx context.Context, eventID, email string) (*Booking, error)
	ListBookingsByEvent(ctx context.Context, eventID string) ([]*Booking, error)
}
