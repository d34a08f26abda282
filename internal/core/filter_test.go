package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleEvents() []Event {
	return []Event{
		{Name: "Opening Night", Start: at("2023-12-31T18:00:00Z"), End: at("2024-01-01T00:00:00Z")},
		{Name: "Short Films", Start: at("2024-05-31T20:00:00Z"), End: at("2024-06-01T00:00:00Z")},
		{Name: "Closing Gala", Start: at("2024-11-30T19:00:00Z"), End: at("2024-12-01T00:00:00Z")},
		{Name: "Workshop", Start: at("2024-03-01T10:00:00Z"), End: at("2024-03-01T12:00:00Z")},
	}
}

func TestSelectAllIsIdentity(t *testing.T) {
	events := sampleEvents()

	for _, now := range []time.Time{{}, at("2024-06-01T00:00:00Z"), at("2030-01-01T00:00:00Z")} {
		assert.Equal(t, events, Select(events, FilterAll, now))
	}
}

func TestSelectAllReturnsCopy(t *testing.T) {
	events := sampleEvents()
	got := Select(events, FilterAll, time.Now())
	got[0].Name = "changed"

	assert.Equal(t, "Opening Night", events[0].Name)
}

func TestSelectUpcoming(t *testing.T) {
	events := sampleEvents()
	now := at("2024-06-01T00:00:00Z")

	got := Select(events, FilterUpcoming, now)

	require.Len(t, got, 2)
	assert.Equal(t, "Short Films", got[0].Name, "event ending exactly now is upcoming")
	assert.Equal(t, "Closing Gala", got[1].Name)
}

func TestSelectUpcomingMembership(t *testing.T) {
	events := sampleEvents()
	times := []time.Time{
		at("2023-01-01T00:00:00Z"),
		at("2024-01-01T00:00:00Z"),
		at("2024-03-01T12:00:00Z"),
		at("2024-03-01T12:00:01Z"),
		at("2025-01-01T00:00:00Z"),
	}

	for _, now := range times {
		got := Select(events, FilterUpcoming, now)
		var want []string
		for _, e := range events {
			if !e.End.Before(now) {
				want = append(want, e.Name)
			}
		}
		var names []string
		for _, e := range got {
			names = append(names, e.Name)
		}
		assert.Equal(t, want, names, "now=%s", now)
	}
}

func TestSelectPreservesOrder(t *testing.T) {
	// Deliberately not sorted by start; the filter must not re-sort.
	events := sampleEvents()
	got := Select(events, FilterUpcoming, at("2024-02-01T00:00:00Z"))

	require.Len(t, got, 3)
	assert.Equal(t, []string{"Short Films", "Closing Gala", "Workshop"},
		[]string{got[0].Name, got[1].Name, got[2].Name})
}

func TestSelectSavedIsEmpty(t *testing.T) {
	got := Select(sampleEvents(), FilterSaved, at("2024-01-01T00:00:00Z"))

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSelectUnknownFilter(t *testing.T) {
	assert.Empty(t, Select(sampleEvents(), Filter(42), time.Now()))
}

func TestSelectEmptyInput(t *testing.T) {
	for _, f := range []Filter{FilterAll, FilterUpcoming, FilterSaved} {
		assert.Empty(t, Select(nil, f, time.Now()), f.String())
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in   string
		want Filter
	}{
		{"all", FilterAll},
		{"Upcoming", FilterUpcoming},
		{" SAVED ", FilterSaved},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, got, mustParse(t, got.String()))
	}

	_, err := ParseFilter("past")
	assert.Error(t, err)
}

func mustParse(t *testing.T, s string) Filter {
	t.Helper()
	f, err := ParseFilter(s)
	require.NoError(t, err)
	return f
}

func TestEventTiming(t *testing.T) {
	e := Event{Start: at("2024-06-01T10:00:00Z"), End: at("2024-06-01T12:30:00Z")}

	assert.Equal(t, 150*time.Minute, e.Duration())
	assert.True(t, e.InProgress(at("2024-06-01T11:00:00Z")))
	assert.False(t, e.InProgress(at("2024-06-01T12:30:00Z")))
	assert.True(t, e.Upcoming(at("2024-06-01T12:30:00Z")))
	assert.False(t, e.Upcoming(at("2024-06-01T12:30:01Z")))
}
