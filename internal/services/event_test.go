package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yousef10-awadh/dev-events/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	nextID    int
	createErr error // if set, Create returns this error
	updateErr error // if set, Update returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Slug == e.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, e := range f.byID {
		if e.Slug == slug {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if filter.Mode != "" && e.Mode != filter.Mode {
			continue
		}
		if filter.Tag != "" {
			found := false
			for _, tag := range e.Tags {
				if tag == filter.Tag {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range f.byID {
		if id != e.ID && existing.Slug == e.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func validEvent() *domain.Event {
	return &domain.Event{
		Title:       "  My Awesome Dev Meetup!!  ",
		Description: "A meetup for devs.",
		Overview:    "Talks and pizza.",
		Image:       "https://img.example.com/meetup.png",
		Venue:       "Tech Hub",
		Location:    "Berlin, DE",
		Date:        "2026-09-12T18:00:00Z",
		Time:        "9:05",
		Mode:        "in-person",
		Audience:    "developers",
		Agenda:      []string{"Doors open", "Lightning talks"},
		Organizer:   "Dev Community",
		Tags:        []string{"go", "meetup"},
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	t.Run("normalizes and persists", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, timeout)

		ev := validEvent()
		err := svc.CreateEvent(ctx, ev)
		require.NoError(t, err)

		require.NotEmpty(t, ev.ID)
		assert.Equal(t, "My Awesome Dev Meetup!!", ev.Title)
		assert.Equal(t, "my-awesome-dev-meetup", ev.Slug)
		assert.Equal(t, "2026-09-12", ev.Date)
		assert.Equal(t, "09:05", ev.Time)
		assert.False(t, ev.CreatedAt.IsZero())
		assert.False(t, ev.UpdatedAt.IsZero())

		got, ok := repo.byID[ev.ID]
		require.True(t, ok)
		assert.Equal(t, "my-awesome-dev-meetup", got.Slug)
	})

	t.Run("validation failure keeps repo untouched", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, timeout)

		ev := validEvent()
		ev.Venue = "   "
		err := svc.CreateEvent(ctx, ev)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "venue", verr.Field)
		assert.Empty(t, repo.byID)
	})

	t.Run("bad date surfaces field error", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, timeout)

		ev := validEvent()
		ev.Date = "12/09/2026"
		err := svc.CreateEvent(ctx, ev)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "date", verr.Field)
		assert.Empty(t, repo.byID)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, timeout)

		require.NoError(t, svc.CreateEvent(ctx, validEvent()))
		err := svc.CreateEvent(ctx, validEvent())
		require.ErrorIs(t, err, domain.ErrDuplicateSlug)
		assert.Len(t, repo.byID, 1)
	})

	t.Run("repo error wrapped", func(t *testing.T) {
		repo := newFakeEventRepo()
		repo.createErr = errors.New("db down")
		svc := NewEventService(repo, timeout)

		err := svc.CreateEvent(ctx, validEvent())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create event")
	})
}

func TestEventService_GetEventBySlug(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	repo := newFakeEventRepo()
	svc := NewEventService(repo, timeout)
	ev := validEvent()
	require.NoError(t, svc.CreateEvent(ctx, ev))

	got, err := svc.GetEventBySlug(ctx, "my-awesome-dev-meetup")
	require.NoError(t, err)
	assert.Equal(t, ev.ID, got.ID)

	_, err = svc.GetEventBySlug(ctx, "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_ListEvents(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	repo := newFakeEventRepo()
	svc := NewEventService(repo, timeout)

	online := validEvent()
	online.Title = "Remote Go Night"
	online.Mode = "online"
	require.NoError(t, svc.CreateEvent(ctx, online))

	inPerson := validEvent()
	require.NoError(t, svc.CreateEvent(ctx, inPerson))

	events, total, err := svc.ListEvents(ctx, domain.EventFilter{Mode: "online"}, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, "remote-go-night", events[0].Slug)

	events, total, err = svc.ListEvents(ctx, domain.EventFilter{Tag: "nonexistent"}, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	require.NotNil(t, events)
	assert.Empty(t, events)
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	seed := func(t *testing.T) (*fakeEventRepo, domain.EventService, *domain.Event) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, timeout)
		ev := validEvent()
		require.NoError(t, svc.CreateEvent(ctx, ev))
		return repo, svc, ev
	}

	t.Run("title change regenerates slug", func(t *testing.T) {
		_, svc, ev := seed(t)

		newTitle := "Renamed Meetup"
		got, err := svc.UpdateEvent(ctx, ev.ID, &domain.EventUpdate{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "Renamed Meetup", got.Title)
		assert.Equal(t, "renamed-meetup", got.Slug)
	})

	t.Run("unrelated change keeps slug", func(t *testing.T) {
		_, svc, ev := seed(t)

		newVenue := "Bigger Hall"
		got, err := svc.UpdateEvent(ctx, ev.ID, &domain.EventUpdate{Venue: &newVenue})
		require.NoError(t, err)
		assert.Equal(t, "Bigger Hall", got.Venue)
		assert.Equal(t, "my-awesome-dev-meetup", got.Slug)
	})

	t.Run("same title keeps slug", func(t *testing.T) {
		_, svc, ev := seed(t)

		sameTitle := "  My Awesome Dev Meetup!!  "
		got, err := svc.UpdateEvent(ctx, ev.ID, &domain.EventUpdate{Title: &sameTitle})
		require.NoError(t, err)
		assert.Equal(t, "my-awesome-dev-meetup", got.Slug)
	})

	t.Run("date and time renormalized", func(t *testing.T) {
		_, svc, ev := seed(t)

		newDate := "2026-10-01 19:00:00"
		newTime := "7:30"
		got, err := svc.UpdateEvent(ctx, ev.ID, &domain.EventUpdate{Date: &newDate, Time: &newTime})
		require.NoError(t, err)
		assert.Equal(t, "2026-10-01", got.Date)
		assert.Equal(t, "07:30", got.Time)
	})

	t.Run("invalid update rejected", func(t *testing.T) {
		_, svc, ev := seed(t)

		badTime := "25:00"
		_, err := svc.UpdateEvent(ctx, ev.ID, &domain.EventUpdate{Time: &badTime})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "time", verr.Field)
	})

	t.Run("missing event", func(t *testing.T) {
		_, svc, _ := seed(t)

		newTitle := "Whatever"
		_, err := svc.UpdateEvent(ctx, "nope", &domain.EventUpdate{Title: &newTitle})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("slug collision on rename", func(t *testing.T) {
		_, svc, ev := seed(t)

		other := validEvent()
		other.Title = "Other Event"
		require.NoError(t, svc.CreateEvent(ctx, other))

		clashing := "Other Event"
		_, err := svc.UpdateEvent(ctx, ev.ID, &domain.EventUpdate{Title: &clashing})
		require.ErrorIs(t, err, domain.ErrDuplicateSlug)
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	repo := newFakeEventRepo()
	svc := NewEventService(repo, timeout)
	ev := validEvent()
	require.NoError(t, svc.CreateEvent(ctx, ev))

	require.NoError(t, svc.DeleteEvent(ctx, ev.ID))
	assert.Empty(t, repo.byID)

	err := svc.DeleteEvent(ctx, ev.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
