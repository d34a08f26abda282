package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.FetchTotal.WithLabelValues(ResultOK).Inc()
	c.DroppedRecords.Add(2)
	c.FetchDuration.Observe(0.2)

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 2.0, testutil.ToFloat64(c.DroppedRecords))
}

func TestNewNilRegistry(t *testing.T) {
	c := New(nil)
	c.FetchTotal.WithLabelValues(ResultTimeout).Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.FetchTotal.WithLabelValues(ResultTimeout)))
}
