package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug", &bytes.Buffer{}).GetLevel())
	assert.Equal(t, logrus.WarnLevel, New("WARN", &bytes.Buffer{}).GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("loud", &bytes.Buffer{}).GetLevel(), "unknown level falls back to info")
}

func TestNewWritesModuleField(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", &buf)

	log.WithField("module", "schedule").Info("events fetched")
	log.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "module=schedule")
	assert.Contains(t, out, "events fetched")
	assert.NotContains(t, out, "hidden")
}
