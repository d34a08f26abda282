package schedule

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/theakshaypant/sched/internal/core"
)

// DefaultTimeout bounds a single GetEvents call.
const DefaultTimeout = 15 * time.Second

// Service answers "which events should be shown" for a filter and a time.
// It holds no state between calls.
type Service struct {
	provider core.Provider
	timeout  time.Duration
	log      *logrus.Entry
}

// NewService wraps provider. A timeout of 0 disables the per-call deadline.
func NewService(provider core.Provider, timeout time.Duration, log *logrus.Logger) *Service {
	return &Service{
		provider: provider,
		timeout:  timeout,
		log:      log.WithField("module", "schedule"),
	}
}

// GetEvents fetches, normalizes and filters in one go. Fetch errors are
// returned unchanged with no events; callers match them with errors.Is
// against core.ErrNetwork and core.ErrTimeout.
func (s *Service) GetEvents(ctx context.Context, filter core.Filter, now time.Time) ([]core.Event, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log := s.log.WithFields(logrus.Fields{
		"provider": s.provider.ID(),
		"filter":   filter.String(),
	})

	events, err := s.provider.FetchEvents(ctx)
	if err != nil {
		log.WithError(err).Error("fetch events failed")
		return nil, err
	}

	selected := core.Select(events, filter, now)
	log.WithFields(logrus.Fields{
		"fetched":  len(events),
		"selected": len(selected),
	}).Info("events loaded")

	return selected, nil
}
