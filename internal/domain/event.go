package domain

import (
	"context"
	"time"
)

// Event represents a single listed developer event (hackathon, meetup,
// conference). Date and Time hold canonical strings; see NormalizeDate
// and NormalizeTime.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"` // "2006-01-02"
	Time        string    `json:"time"` // "15:04", 24-hour
	Mode        string    `json:"mode"` // e.g. "online", "in-person", "hybrid"
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventFilter narrows List results. Zero-value fields match everything.
type EventFilter struct {
	Tag  string
	Mode string
}

// EventUpdate carries a partial update. Nil fields are left unchanged.
type EventUpdate struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Overview    *string  `json:"overview"`
	Image       *string  `json:"image"`
	Venue       *string  `json:"venue"`
	Location    *string  `json:"location"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Mode        *string  `json:"mode"`
	Audience    *string  `json:"audience"`
	Agenda      []string `json:"agenda"`
	Organizer   *string  `json:"organizer"`
	Tags        []string `json:"tags"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventService defines the write and read paths for events. Create and
// Update run validation and normalization before touching storage.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, eventID string) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	UpdateEvent(ctx context.Context, eventID string, upd *EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}
