package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validEvent() *Event {
	return &Event{
		Title:       "My Awesome Dev Meetup!!",
		Description: "An evening of talks.",
		Overview:    "Talks, pizza, networking.",
		Image:       "https://img.example.com/meetup.png",
		Venue:       "The Warehouse",
		Location:    "Berlin, Germany",
		Date:        "2024-03-05T10:00:00Z",
		Time:        "9:05",
		Mode:        "in-person",
		Audience:    "developers",
		Agenda:      []string{"Doors open", "Talks", "Networking"},
		Organizer:   "Dev Events",
		Tags:        []string{"go", "meetup"},
	}
}

func TestEventValidate(t *testing.T) {
	t.Run("valid event passes", func(t *testing.T) {
		require.NoError(t, validEvent().Validate())
	})

	scalarFields := []struct {
		field string
		zero  func(*Event)
	}{
		{"title", func(e *Event) { e.Title = "" }},
		{"description", func(e *Event) { e.Description = "   " }},
		{"overview", func(e *Event) { e.Overview = "" }},
		{"image", func(e *Event) { e.Image = "" }},
		{"venue", func(e *Event) { e.Venue = "\t" }},
		{"location", func(e *Event) { e.Location = "" }},
		{"date", func(e *Event) { e.Date = "" }},
		{"time", func(e *Event) { e.Time = " " }},
		{"mode", func(e *Event) { e.Mode = "" }},
		{"audience", func(e *Event) { e.Audience = "" }},
		{"organizer", func(e *Event) { e.Organizer = "" }},
	}
	for _, tt := range scalarFields {
		t.Run("empty "+tt.field+" is rejected", func(t *testing.T) {
			e := validEvent()
			tt.zero(e)
			err := e.Validate()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.field, verr.Field)
		})
	}

	t.Run("empty agenda rejected", func(t *testing.T) {
		e := validEvent()
		e.Agenda = nil
		err := e.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "agenda", verr.Field)
	})

	t.Run("blank agenda item rejected", func(t *testing.T) {
		e := validEvent()
		e.Agenda = []string{"Talks", "  "}
		err := e.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "agenda", verr.Field)
	})

	t.Run("empty tags rejected", func(t *testing.T) {
		e := validEvent()
		e.Tags = []string{}
		err := e.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "tags", verr.Field)
	})
}

func TestEventNormalize(t *testing.T) {
	t.Run("canonicalizes slug, date, and time", func(t *testing.T) {
		e := validEvent()
		require.NoError(t, e.Normalize(true))
		require.Equal(t, "my-awesome-dev-meetup", e.Slug)
		require.Equal(t, "2024-03-05", e.Date)
		require.Equal(t, "09:05", e.Time)
	})

	t.Run("keeps existing slug when title unchanged", func(t *testing.T) {
		e := validEvent()
		e.Slug = "my-awesome-dev-meetup"
		e.Title = "A Different Title"
		require.NoError(t, e.Normalize(false))
		require.Equal(t, "my-awesome-dev-meetup", e.Slug)
	})

	t.Run("derives slug when none is set", func(t *testing.T) {
		e := validEvent()
		e.Slug = ""
		require.NoError(t, e.Normalize(false))
		require.Equal(t, "my-awesome-dev-meetup", e.Slug)
	})

	t.Run("trims text fields and items", func(t *testing.T) {
		e := validEvent()
		e.Venue = "  The Warehouse  "
		e.Agenda = []string{" Doors open ", "Talks"}
		require.NoError(t, e.Normalize(true))
		require.Equal(t, "The Warehouse", e.Venue)
		require.Equal(t, "Doors open", e.Agenda[0])
	})

	t.Run("bad date surfaces validation error", func(t *testing.T) {
		e := validEvent()
		e.Date = "soon"
		var verr *ValidationError
		require.ErrorAs(t, e.Normalize(true), &verr)
		require.Equal(t, "date", verr.Field)
	})

	t.Run("bad time surfaces validation error", func(t *testing.T) {
		e := validEvent()
		e.Time = "25:00"
		var verr *ValidationError
		require.ErrorAs(t, e.Normalize(true), &verr)
		require.Equal(t, "time", verr.Field)
	})
}

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"dev@example.com",
		"  spaced@example.com  ",
		"first.last+tag@sub.example.co",
	}
	for _, email := range valid {
		require.NoError(t, ValidateEmail(email), "email %q", email)
	}

	invalid := []string{
		"",
		"no-at-sign.example.com",
		"missing-domain-dot@example",
		"two@@example.com",
		"spaces in@local.com",
	}
	for _, email := range invalid {
		err := ValidateEmail(email)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "email %q", email)
		require.Equal(t, "email", verr.Field)
	}
}
