package schedule

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoaderSupersedes(t *testing.T) {
	var l Loader

	first, seq1 := l.Begin(context.Background())
	second, seq2 := l.Begin(context.Background())

	assert.Greater(t, seq2, seq1)
	assert.ErrorIs(t, first.Err(), context.Canceled, "older fetch is cancelled")
	assert.NoError(t, second.Err())

	assert.False(t, l.Current(seq1))
	assert.True(t, l.Current(seq2))

	assert.False(t, l.Finish(seq1), "stale result is discarded")
	assert.NoError(t, second.Err(), "finishing a stale fetch leaves the live one alone")
	assert.True(t, l.Finish(seq2))
	assert.ErrorIs(t, second.Err(), context.Canceled, "context released after finish")
}

func TestLoaderStop(t *testing.T) {
	var l Loader
	ctx, seq := l.Begin(context.Background())

	l.Stop()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.True(t, l.Current(seq))
}

func TestLoaderConcurrentBegin(t *testing.T) {
	var l Loader
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, seq := l.Begin(context.Background())
			l.Finish(seq)
		}()
	}
	wg.Wait()

	_, last := l.Begin(context.Background())
	assert.Equal(t, uint64(51), last)
}
