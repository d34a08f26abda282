package eventbrite

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/theakshaypant/sched/internal/core"
	"github.com/theakshaypant/sched/internal/logger"
	"github.com/theakshaypant/sched/internal/metrics"
)

const (
	DefaultBaseURL = "https://www.eventbriteapi.com"
	userAgent      = "sched"
)

// EventbriteAdapter lists the events of one Eventbrite organization.
type EventbriteAdapter struct {
	id        string
	name      string
	orgID     string
	apiKey    string
	tokenFile string
	baseURL   string

	client  *http.Client
	log     *logrus.Entry
	metrics *metrics.Collectors
}

// Option customizes an EventbriteAdapter.
type Option func(*EventbriteAdapter)

// WithBaseURL points the adapter at another API host (tests, proxies).
func WithBaseURL(u string) Option {
	return func(e *EventbriteAdapter) {
		if u != "" {
			e.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithLogger(log *logrus.Logger) Option {
	return func(e *EventbriteAdapter) {
		e.log = log.WithField("module", "eventbrite")
	}
}

func WithMetrics(c *metrics.Collectors) Option {
	return func(e *EventbriteAdapter) {
		if c != nil {
			e.metrics = c
		}
	}
}

// NewEventbriteAdapter creates the adapter. Either apiKey or tokenFile
// (written by `sched auth`) must provide the bearer token; apiKey wins.
func NewEventbriteAdapter(id, name, orgID, apiKey, tokenFile string, opts ...Option) *EventbriteAdapter {
	e := &EventbriteAdapter{
		id:        id,
		name:      name,
		orgID:     orgID,
		apiKey:    strings.TrimSpace(apiKey),
		tokenFile: tokenFile,
		baseURL:   DefaultBaseURL,
		log:       logger.Discard().WithField("module", "eventbrite"),
		metrics:   metrics.New(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *EventbriteAdapter) ID() string   { return e.id }
func (e *EventbriteAdapter) Name() string { return e.name }

// Login resolves the bearer token and builds the HTTP client.
// It does not talk to the API.
func (e *EventbriteAdapter) Login(_ context.Context) error {
	if e.orgID == "" {
		return errors.New("org_id is not configured")
	}

	token := e.apiKey
	if token == "" && e.tokenFile != "" {
		tok, err := tokenFromFile(e.tokenFile)
		if err != nil {
			return fmt.Errorf("read token file (set api_key or run 'sched auth'): %w", err)
		}
		token = tok.AccessToken
	}
	if token == "" {
		return errors.New("no API key configured: set api_key or run 'sched auth'")
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	e.client = &http.Client{
		Transport: &oauth2.Transport{Source: src, Base: newTransport()},
	}
	return nil
}

// FetchEvents fetches the organization's events and normalizes them.
// Records missing required fields are dropped; the rest keep API order.
func (e *EventbriteAdapter) FetchEvents(ctx context.Context) ([]core.Event, error) {
	raws, err := e.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]core.Event, 0, len(raws))
	for i, raw := range raws {
		event, err := Normalize(raw)
		if err != nil {
			e.log.WithError(err).WithField("index", i).Debug("dropping event record")
			e.metrics.DroppedRecords.Inc()
			continue
		}
		events = append(events, event)
	}

	e.log.WithFields(logrus.Fields{
		"received": len(raws),
		"kept":     len(events),
	}).Debug("events normalized")

	return events, nil
}

func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
}
