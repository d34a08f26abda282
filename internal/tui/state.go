package tui

import "github.com/theakshaypant/sched/internal/core"

// Display is what the main panel shows. Exactly one applies at a time.
type Display int

const (
	DisplayList Display = iota
	DisplayLoading
	DisplayEmpty
)

// State is the screen's loading/result state. The core is stateless, so
// the shell owns this and moves it through Start then Finish or Fail.
type State struct {
	Filter  core.Filter
	Events  []core.Event
	Loading bool
	Err     error
}

// NewState returns an idle state with the given filter and no events.
func NewState(filter core.Filter) State {
	return State{Filter: filter}
}

// Start marks a fetch as in flight. Events from the last fetch stay visible.
func (s *State) Start() {
	s.Loading = true
}

// Finish stores a successful result and goes back to idle.
func (s *State) Finish(events []core.Event) {
	s.Loading = false
	s.Events = events
	s.Err = nil
}

// Fail records a failed fetch, clears the list and goes back to idle.
func (s *State) Fail(err error) {
	s.Loading = false
	s.Events = nil
	s.Err = err
}

// SetFilter switches the filter. The caller is expected to start a fetch.
func (s *State) SetFilter(f core.Filter) {
	s.Filter = f
}

// Display picks the panel: events win over the spinner, the spinner over
// the empty message.
func (s State) Display() Display {
	switch {
	case len(s.Events) > 0:
		return DisplayList
	case s.Loading:
		return DisplayLoading
	default:
		return DisplayEmpty
	}
}
