package eventbrite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/theakshaypant/sched/internal/core"
)

// apiEvent mirrors the fields we read from an Eventbrite event object.
// Pointers distinguish absent fields from empty ones.
type apiEvent struct {
	Name        *textField `json:"name"`
	Description *textField `json:"description"`
	URL         *string    `json:"url"`
	Start       *dateField `json:"start"`
	End         *dateField `json:"end"`
	Logo        *logoField `json:"logo"`
}

type textField struct {
	Text *string `json:"text"`
}

type dateField struct {
	UTC *string `json:"utc"`
}

// Only the resized logo URL; logo.original.url is several times larger.
type logoField struct {
	URL *string `json:"url"`
}

// Normalize converts one raw record into a core.Event. Every field is
// required; a missing one, a wrong JSON type or an unparsable timestamp
// produces an error wrapping core.ErrMalformedRecord.
func Normalize(raw RawEvent) (core.Event, error) {
	var ev apiEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return core.Event{}, fmt.Errorf("%w: %v", core.ErrMalformedRecord, err)
	}

	if ev.Name == nil || ev.Name.Text == nil {
		return core.Event{}, missing("name.text")
	}
	if ev.Description == nil || ev.Description.Text == nil {
		return core.Event{}, missing("description.text")
	}
	if ev.URL == nil {
		return core.Event{}, missing("url")
	}
	if ev.Logo == nil || ev.Logo.URL == nil {
		return core.Event{}, missing("logo.url")
	}

	start, err := parseUTC("start.utc", ev.Start)
	if err != nil {
		return core.Event{}, err
	}
	end, err := parseUTC("end.utc", ev.End)
	if err != nil {
		return core.Event{}, err
	}

	return core.Event{
		Name:        *ev.Name.Text,
		Description: *ev.Description.Text,
		URL:         *ev.URL,
		Start:       start,
		End:         end,
		ImageURL:    *ev.Logo.URL,
	}, nil
}

// parseUTC reads an Eventbrite "utc" timestamp such as 2024-06-01T18:00:00Z.
func parseUTC(field string, d *dateField) (time.Time, error) {
	if d == nil || d.UTC == nil {
		return time.Time{}, missing(field)
	}
	t, err := time.Parse(time.RFC3339, *d.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", core.ErrMalformedRecord, field, err)
	}
	return t.UTC(), nil
}

func missing(field string) error {
	return fmt.Errorf("%w: missing %s", core.ErrMalformedRecord, field)
}
