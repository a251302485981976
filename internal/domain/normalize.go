package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Canonical storage layouts for event date and time fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	slugDropRe   = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRe  = regexp.MustCompile(`\s+`)
	slugHyphenRe = regexp.MustCompile(`-+`)

	// timeRe accepts one or two digits for the hour but requires exactly two
	// for minutes and seconds: "9:05" matches, "9:5" does not.
	timeRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
)

// dateLayouts are tried in order when parsing an incoming date value.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	DateLayout,
}

// Slugify derives a URL-safe identifier from a title: lowercase, trim,
// drop everything outside [a-z0-9 space hyphen], turn whitespace runs into
// single hyphens, collapse hyphen runs, and strip edge hyphens. The result
// contains only lowercase letters, digits, and interior hyphens.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugDropRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugHyphenRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeDate parses a calendar date or timestamp and returns only the
// calendar-date component as "2006-01-02". Unparseable input yields a
// ValidationError on the date field. Idempotent on its own output.
func NormalizeDate(s string) (string, error) {
	v := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", &ValidationError{Field: "date", Message: fmt.Sprintf("unparseable date %q", s)}
}

// NormalizeTime parses a time of day matching H:MM, HH:MM, or the same with
// a :SS suffix, and returns zero-padded "HH:MM". Seconds are discarded.
// Hours above 23 or minutes/seconds above 59 are rejected.
func NormalizeTime(s string) (string, error) {
	m := timeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", &ValidationError{Field: "time", Message: fmt.Sprintf("%q does not match HH:MM or HH:MM:SS", s)}
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 {
		return "", &ValidationError{Field: "time", Message: "hour must be between 0 and 23"}
	}
	if minute > 59 {
		return "", &ValidationError{Field: "time", Message: "minute must be between 0 and 59"}
	}
	if m[3] != "" {
		if sec, _ := strconv.Atoi(m[3]); sec > 59 {
			return "", &ValidationError{Field: "time", Message: "second must be between 0 and 59"}
		}
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
