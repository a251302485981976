package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yousef10-awadh/dev-events/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

// CreateEvent validates and normalizes the event, derives its slug from the
// title, stamps timestamps, and persists it. Validation failures and
// duplicate slugs are returned as-is so callers can map them; nothing is
// persisted on any failure.
func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := event.Validate(); err != nil {
		return err
	}
	if err := event.Normalize(true); err != nil {
		return err
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlug) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

// UpdateEvent fetches the current record, applies the partial update, and
// re-runs validation and normalization before writing. The slug is
// regenerated only when the update changes the title (or no slug was set).
func (s *eventService) UpdateEvent(ctx context.Context, eventID string, upd *domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	titleChanged := false
	if upd.Title != nil && strings.TrimSpace(*upd.Title) != event.Title {
		event.Title = *upd.Title
		titleChanged = true
	}
	if upd.Description != nil {
		event.Description = *upd.Description
	}
	if upd.Overview != nil {
		event.Overview = *upd.Overview
	}
	if upd.Image != nil {
		event.Image = *upd.Image
	}
	if upd.Venue != nil {
		event.Venue = *upd.Venue
	}
	if upd.Location != nil {
		event.Location = *upd.Location
	}
	if upd.Date != nil {
		event.Date = *upd.Date
	}
	if upd.Time != nil {
		event.Time = *upd.Time
	}
	if upd.Mode != nil {
		event.Mode = *upd.Mode
	}
	if upd.Audience != nil {
		event.Audience = *upd.Audience
	}
	if upd.Agenda != nil {
		event.Agenda = upd.Agenda
	}
	if upd.Organizer != nil {
		event.Organizer = *upd.Organizer
	}
	if upd.Tags != nil {
		event.Tags = upd.Tags
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}
	if err := event.Normalize(titleChanged); err != nil {
		return nil, err
	}
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		if errors.Is(err, domain.ErrDuplicateSlug) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
