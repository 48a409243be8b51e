package services

import (
	"moving-presurvey-service/internal/domain"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultEventTitle       = "Move Job"
	DefaultEventDurationMin = 120
	CalendarFilename        = "move-job.ics"

	icsProdID    = "-//Moving Pre-Survey//EN"
	icsUIDDomain = "moving-pre-survey"
	icsTimestamp = "20060102T150405Z"
)

type CalendarEvent struct {
	Title string
	// ISO-8601 start; empty means now.
	StartISO string
	// Nil means the default duration.
	DurationMinutes *int
	Location        string
	Notes           string
}

type CalendarService struct {
	Now   func() time.Time
	NewID func() string
}

// BuildICS renders a single-event iCalendar document with CRLF line endings.
func (s *CalendarService) BuildICS(ev CalendarEvent) ([]byte, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	newID := uuid.NewString
	if s.NewID != nil {
		newID = s.NewID
	}

	start := now
	if v := strings.TrimSpace(ev.StartISO); v != "" {
		t, err := parseStart(v)
		if err != nil {
			return nil, domain.ErrInvalidStart
		}
		start = t
	}

	duration := DefaultEventDurationMin
	if ev.DurationMinutes != nil {
		duration = *ev.DurationMinutes
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	title := ev.Title
	if title == "" {
		title = DefaultEventTitle
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + icsProdID,
		"BEGIN:VEVENT",
		"UID:" + newID() + "@" + icsUIDDomain,
		"DTSTAMP:" + now.UTC().Format(icsTimestamp),
		"DTSTART:" + start.UTC().Format(icsTimestamp),
		"DTEND:" + end.UTC().Format(icsTimestamp),
		"SUMMARY:" + icsText(title),
		"LOCATION:" + icsText(ev.Location),
		"DESCRIPTION:" + icsText(ev.Notes),
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return []byte(strings.Join(lines, "\r\n") + "\r\n"), nil
}

func parseStart(v string) (time.Time, error) {
	var err error
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", time.DateOnly} {
		var t time.Time
		if t, err = time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

var icsEscaper = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
)

// icsText flattens newlines to spaces and escapes TEXT special characters.
func icsText(s string) string { return icsEscaper.Replace(s) }
