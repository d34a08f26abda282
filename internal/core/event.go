package core

import (
	"time"
)

// All adapters must convert their data to this format.
// Events have no identity beyond their position in the result of one fetch.
type Event struct {
	// Display title
	Name string
	// Plain text body
	Description string
	// Public event page
	URL string
	// Timing, always UTC
	Start time.Time
	End   time.Time
	// Cover image
	ImageURL string
}

// Duration returns the length of the event.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// InProgress checks if the event is happening right now.
func (e Event) InProgress(now time.Time) bool {
	return now.After(e.Start) && now.Before(e.End)
}

// Upcoming reports whether the event has not finished yet.
// An event ending exactly at now still counts.
func (e Event) Upcoming(now time.Time) bool {
	return !e.End.Before(now)
}
