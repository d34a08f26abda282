package schedule

import (
	"context"
	"sync"
)

// Loader keeps at most one fetch alive. Starting a new one cancels the
// previous, and results are tagged with a sequence number so a late answer
// from a superseded fetch can be recognized and thrown away.
type Loader struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Begin cancels any outstanding fetch and returns the context and sequence
// number for a new one.
func (l *Loader) Begin(parent context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	l.seq++
	l.cancel = cancel
	return ctx, l.seq
}

// Current reports whether seq belongs to the most recent Begin.
func (l *Loader) Current(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return seq == l.seq
}

// Finish releases the context of seq if it is still the latest fetch.
// It reports whether the result should be used.
func (l *Loader) Finish(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.seq {
		return false
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	return true
}

// Stop cancels whatever is in flight.
func (l *Loader) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
