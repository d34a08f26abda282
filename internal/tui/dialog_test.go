package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theakshaypant/sched/internal/core"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestFilterDialogShowPreselectsCurrent(t *testing.T) {
	d := NewFilterDialog(core.DialogFilters)
	assert.False(t, d.Visible())

	d.Show(core.FilterUpcoming)
	assert.True(t, d.Visible())
	assert.Equal(t, core.FilterUpcoming, d.Pending())

	d.Show(core.FilterAll)
	assert.Equal(t, core.FilterAll, d.Pending())

	// Not offered by the dialog; falls back to the first option.
	d.Show(core.FilterSaved)
	assert.Equal(t, core.FilterAll, d.Pending())
}

func TestFilterDialogNavigationClamps(t *testing.T) {
	d := NewFilterDialog(core.DialogFilters)
	d.Show(core.FilterAll)

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, core.FilterAll, d.Pending())

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, core.FilterUpcoming, d.Pending())

	d, _ = d.Update(keyRune('j'))
	assert.Equal(t, core.FilterUpcoming, d.Pending())

	d, _ = d.Update(keyRune('k'))
	assert.Equal(t, core.FilterAll, d.Pending())
}

func TestFilterDialogConfirm(t *testing.T) {
	d := NewFilterDialog(core.DialogFilters)
	d.Show(core.FilterUpcoming)
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyUp})

	d, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, d.Visible())
	assert.Equal(t, filterChosenMsg{filter: core.FilterAll}, cmd())
}

func TestFilterDialogDismiss(t *testing.T) {
	d := NewFilterDialog(core.DialogFilters)
	d.Show(core.FilterUpcoming)
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyUp})

	d, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.False(t, d.Visible())
	assert.Equal(t, dialogClosedMsg{}, cmd())
}

func TestFilterDialogIgnoresInputWhenHidden(t *testing.T) {
	d := NewFilterDialog(core.DialogFilters)

	d, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, d.Visible())
}

func TestFilterDialogView(t *testing.T) {
	d := NewFilterDialog(core.DialogFilters)
	d.Show(core.FilterUpcoming)

	view := d.View(40)
	assert.Contains(t, view, "Choose Event Filter")
	assert.Contains(t, view, "All Events")
	assert.Contains(t, view, "(•) Upcoming Events")
	assert.Contains(t, view, "( ) All Events")
}
