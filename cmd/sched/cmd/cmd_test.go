package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/theakshaypant/sched/internal/core"
)

func TestNextEventsPicksEarliestGroup(t *testing.T) {
	base := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	events := []core.Event{
		{Name: "Late", Start: base.Add(2 * time.Hour)},
		{Name: "Early A", Start: base},
		{Name: "Middle", Start: base.Add(time.Hour)},
		{Name: "Early B", Start: base},
	}

	got := nextEvents(events)
	require.Len(t, got, 2)
	assert.Equal(t, "Early A", got[0].Name)
	assert.Equal(t, "Early B", got[1].Name)

	assert.Empty(t, nextEvents(nil))
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "NOW", formatCountdown(-time.Minute))
	assert.Equal(t, "less than a minute", formatCountdown(30*time.Second))
	assert.Equal(t, "1 hour, 5 minutes", formatCountdown(65*time.Minute))
	assert.Equal(t, "2 days, 1 minute", formatCountdown(48*time.Hour+time.Minute))
}

func TestWrapText(t *testing.T) {
	lines := wrapText("Live music all night\n\nDoors open at seven", 12)
	assert.Equal(t, []string{"Live music", "all night", "Doors open", "at seven"}, lines)
}

func TestUpdateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sched", "config.yaml")

	err := updateConfigFile(path, func(config map[string]interface{}) {
		config["profiles"] = map[string]interface{}{
			"festival": map[string]interface{}{"org_id": "42", "filter": "all"},
		}
	})
	require.NoError(t, err)

	err = updateConfigFile(path, func(config map[string]interface{}) {
		config["default_profile"] = "festival"
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var config map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &config))
	assert.Equal(t, "festival", config["default_profile"])

	profiles, ok := config["profiles"].(map[string]interface{})
	require.True(t, ok)
	festival, ok := profiles["festival"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "42", festival["org_id"])
	assert.Equal(t, "all", festival["filter"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestReadConfigFileMissing(t *testing.T) {
	config, err := readConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, config)
}
