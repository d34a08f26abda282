package schedule

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theakshaypant/sched/internal/adapter/eventbrite"
	"github.com/theakshaypant/sched/internal/core"
	"github.com/theakshaypant/sched/internal/logger"
)

const threeEvents = `{"events": [
	{"name": {"text": "Winter Screening"}, "description": {"text": "w"}, "url": "https://eb.test/1",
	 "start": {"utc": "2023-12-31T22:00:00Z"}, "end": {"utc": "2024-01-01T00:00:00Z"}, "logo": {"url": "https://img.test/1"}},
	{"name": {"text": "Summer Shorts"}, "description": {"text": "s"}, "url": "https://eb.test/2",
	 "start": {"utc": "2024-05-31T22:00:00Z"}, "end": {"utc": "2024-06-01T00:00:00Z"}, "logo": {"url": "https://img.test/2"}},
	{"name": {"text": "Fall Gala"}, "description": {"text": "f"}, "url": "https://eb.test/3",
	 "start": {"utc": "2024-11-30T22:00:00Z"}, "end": {"utc": "2024-12-01T00:00:00Z"}, "logo": {"url": "https://img.test/3"}}
]}`

func eventbriteService(t *testing.T, baseURL string, timeout time.Duration) *Service {
	t.Helper()
	p := eventbrite.NewEventbriteAdapter("eventbrite", "Eventbrite", "42", "key", "", eventbrite.WithBaseURL(baseURL))
	require.NoError(t, p.Login(context.Background()))
	return NewService(p, timeout, logger.Discard())
}

func TestGetEventsUpcoming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, threeEvents)
	}))
	defer srv.Close()

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	events, err := eventbriteService(t, srv.URL, DefaultTimeout).GetEvents(context.Background(), core.FilterUpcoming, now)
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "Summer Shorts", events[0].Name)
	assert.Equal(t, "Fall Gala", events[1].Name)
}

func TestGetEventsFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, threeEvents)
	}))
	defer srv.Close()

	svc := eventbriteService(t, srv.URL, 0)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	all, err := svc.GetEvents(context.Background(), core.FilterAll, now)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	saved, err := svc.GetEvents(context.Background(), core.FilterSaved, now)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestGetEventsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	events, err := eventbriteService(t, url, DefaultTimeout).GetEvents(context.Background(), core.FilterAll, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNetwork)
	assert.Empty(t, events)
}

func TestGetEventsTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	started := time.Now()
	events, err := eventbriteService(t, srv.URL, 50*time.Millisecond).GetEvents(context.Background(), core.FilterAll, time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTimeout)
	assert.ErrorIs(t, err, core.ErrNetwork)
	assert.Nil(t, events)
	assert.Less(t, time.Since(started), 5*time.Second)
}

type stubProvider struct {
	events []core.Event
	err    error
}

func (s stubProvider) ID() string   { return "stub" }
func (s stubProvider) Name() string { return "Stub" }
func (s stubProvider) FetchEvents(ctx context.Context) ([]core.Event, error) {
	return s.events, s.err
}

func TestGetEventsPropagatesErrorUnchanged(t *testing.T) {
	boom := fmt.Errorf("%w: connection reset", core.ErrNetwork)
	svc := NewService(stubProvider{events: []core.Event{{Name: "partial"}}, err: boom}, 0, logger.Discard())

	events, err := svc.GetEvents(context.Background(), core.FilterAll, time.Now())
	assert.True(t, errors.Is(err, boom))
	assert.Nil(t, events, "no partial list on failure")
}
