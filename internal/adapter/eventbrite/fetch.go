package eventbrite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/theakshaypant/sched/internal/core"
	"github.com/theakshaypant/sched/internal/metrics"
)

// RawEvent is one undecoded element of the listing's "events" array.
type RawEvent json.RawMessage

type listing struct {
	Events []json.RawMessage `json:"events"`
}

// FetchRaw performs the single listing request. Only transport failures and
// non-2xx statuses are errors; a body that is not the expected shape yields
// no events.
func (e *EventbriteAdapter) FetchRaw(ctx context.Context) ([]RawEvent, error) {
	if e.client == nil {
		return nil, errors.New("eventbrite adapter used before Login")
	}

	endpoint := e.baseURL + "/v3/organizations/" + url.PathEscape(e.orgID) + "/events"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	e.log.WithField("org_id", e.orgID).Debug("fetch start")
	started := time.Now()

	resp, err := e.client.Do(req)
	if err != nil {
		e.observe(started, resultFor(err))
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e.observe(started, metrics.ResultStatusError)
		return nil, fmt.Errorf("%w: %w", core.ErrNetwork, &core.StatusError{Code: resp.StatusCode, Status: resp.Status})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		e.observe(started, resultFor(err))
		return nil, networkError(err)
	}
	e.observe(started, metrics.ResultOK)

	var l listing
	if err := json.Unmarshal(body, &l); err != nil {
		e.log.WithError(err).Warn("unexpected response body, treating as no events")
		return []RawEvent{}, nil
	}
	if l.Events == nil {
		e.log.Warn("response has no events field")
	}

	raws := make([]RawEvent, 0, len(l.Events))
	for _, msg := range l.Events {
		raws = append(raws, RawEvent(msg))
	}

	e.log.WithField("count", len(raws)).Debug("fetch done")
	return raws, nil
}

func (e *EventbriteAdapter) observe(started time.Time, result string) {
	e.metrics.FetchDuration.Observe(time.Since(started).Seconds())
	e.metrics.FetchTotal.WithLabelValues(result).Inc()
}
