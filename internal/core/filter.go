package core

import (
	"fmt"
	"strings"
	"time"
)

// Filter selects which subset of fetched events is shown.
type Filter int

const (
	FilterAll Filter = iota + 1
	FilterUpcoming
	// Recognized but has no backing store yet, always selects nothing.
	FilterSaved
)

// DefaultFilter is what the schedule shows before the user picks anything.
const DefaultFilter = FilterUpcoming

// DialogFilters lists the filters offered in the filter dialog, in display order.
var DialogFilters = []Filter{FilterAll, FilterUpcoming}

func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterUpcoming:
		return "upcoming"
	case FilterSaved:
		return "saved"
	default:
		return fmt.Sprintf("filter(%d)", int(f))
	}
}

// Label returns the human-readable name used in menus.
func (f Filter) Label() string {
	switch f {
	case FilterAll:
		return "All Events"
	case FilterUpcoming:
		return "Upcoming Events"
	case FilterSaved:
		return "Saved Events"
	default:
		return "Unknown"
	}
}

// ParseFilter parses "all", "upcoming" or "saved" (case-insensitive).
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return FilterAll, nil
	case "upcoming":
		return FilterUpcoming, nil
	case "saved":
		return FilterSaved, nil
	default:
		return 0, fmt.Errorf("unknown filter: %q (use all, upcoming or saved)", s)
	}
}

// Select returns the events matching filter, evaluated at now.
// The input is never modified and surviving events keep their relative order.
func Select(events []Event, filter Filter, now time.Time) []Event {
	selected := []Event{}

	switch filter {
	case FilterAll:
		selected = append(selected, events...)
	case FilterUpcoming:
		for _, e := range events {
			if e.Upcoming(now) {
				selected = append(selected, e)
			}
		}
	case FilterSaved:
		// Nothing is saved anywhere yet.
	}

	return selected
}
