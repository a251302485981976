package domain

import (
	"regexp"
	"strings"
)

// emailRe matches a simple email format (local@domain with at least one dot
// in the domain).
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks field presence on the event. Every required scalar field
// must be non-empty after trimming, and agenda and tags must each hold at
// least one non-empty item. The first failure is returned as a
// ValidationError naming the field. Callers on the write path run Validate
// before Normalize and never persist a record that fails either.
func (e *Event) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"title", e.Title},
		{"description", e.Description},
		{"overview", e.Overview},
		{"image", e.Image},
		{"venue", e.Venue},
		{"location", e.Location},
		{"date", e.Date},
		{"time", e.Time},
		{"mode", e.Mode},
		{"audience", e.Audience},
		{"organizer", e.Organizer},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field, Message: "must not be empty"}
		}
	}
	if err := validateItems("agenda", e.Agenda); err != nil {
		return err
	}
	return validateItems("tags", e.Tags)
}

func validateItems(field string, items []string) error {
	if len(items) == 0 {
		return &ValidationError{Field: field, Message: "must contain at least one item"}
	}
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			return &ValidationError{Field: field, Message: "items must not be empty"}
		}
	}
	return nil
}

// Normalize trims every text field and canonicalizes the slug, date, and
// time in place. The slug is regenerated from the title when regenSlug is
// true or when no slug is set. Date or time values that fail to parse
// return a ValidationError and leave the event unpersisted.
func (e *Event) Normalize(regenSlug bool) error {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	e.Overview = strings.TrimSpace(e.Overview)
	e.Image = strings.TrimSpace(e.Image)
	e.Venue = strings.TrimSpace(e.Venue)
	e.Location = strings.TrimSpace(e.Location)
	e.Mode = strings.TrimSpace(e.Mode)
	e.Audience = strings.TrimSpace(e.Audience)
	e.Organizer = strings.TrimSpace(e.Organizer)
	for i := range e.Agenda {
		e.Agenda[i] = strings.TrimSpace(e.Agenda[i])
	}
	for i := range e.Tags {
		e.Tags[i] = strings.TrimSpace(e.Tags[i])
	}

	if regenSlug || e.Slug == "" {
		e.Slug = Slugify(e.Title)
	}

	date, err := NormalizeDate(e.Date)
	if err != nil {
		return err
	}
	e.Date = date

	t, err := NormalizeTime(e.Time)
	if err != nil {
		return err
	}
	e.Time = t
	return nil
}

// ValidateEmail checks the trimmed address against a local@domain-with-dot
// shape. Failures are ValidationErrors on the email field.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return &ValidationError{Field: "email", Message: "must be a well-formed email address"}
	}
	return nil
}
