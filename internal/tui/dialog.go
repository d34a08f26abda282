package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theakshaypant/sched/internal/core"
)

// filterChosenMsg is sent when the dialog is confirmed.
type filterChosenMsg struct {
	filter core.Filter
}

// dialogClosedMsg is sent when the dialog is dismissed without a choice.
type dialogClosedMsg struct{}

// FilterDialog is the "Choose Event Filter" modal. It only holds the
// pending choice; the parent model decides what a confirmed choice does.
type FilterDialog struct {
	options []core.Filter
	cursor  int
	visible bool
	keys    DialogKeyMap
}

type DialogKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Dismiss key.Binding
}

var DefaultDialogKeyMap = DialogKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "down"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "done"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc", "f", "q"),
		key.WithHelp("esc", "cancel"),
	),
}

func NewFilterDialog(options []core.Filter) FilterDialog {
	return FilterDialog{
		options: options,
		keys:    DefaultDialogKeyMap,
	}
}

// Show opens the dialog with current preselected.
func (d *FilterDialog) Show(current core.Filter) {
	d.visible = true
	d.cursor = 0
	for i, f := range d.options {
		if f == current {
			d.cursor = i
		}
	}
}

func (d *FilterDialog) Hide() {
	d.visible = false
}

func (d FilterDialog) Visible() bool {
	return d.visible
}

// Pending returns the highlighted option.
func (d FilterDialog) Pending() core.Filter {
	if len(d.options) == 0 {
		return core.DefaultFilter
	}
	return d.options[d.cursor]
}

// Update handles keys while the dialog is open.
func (d FilterDialog) Update(msg tea.Msg) (FilterDialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !d.visible {
		return d, nil
	}

	switch {
	case key.Matches(keyMsg, d.keys.Up):
		if d.cursor > 0 {
			d.cursor--
		}
	case key.Matches(keyMsg, d.keys.Down):
		if d.cursor < len(d.options)-1 {
			d.cursor++
		}
	case key.Matches(keyMsg, d.keys.Confirm):
		d.visible = false
		chosen := d.Pending()
		return d, func() tea.Msg { return filterChosenMsg{filter: chosen} }
	case key.Matches(keyMsg, d.keys.Dismiss):
		d.visible = false
		return d, func() tea.Msg { return dialogClosedMsg{} }
	}
	return d, nil
}

// View renders the dialog box; the caller places it on screen.
func (d FilterDialog) View(width int) string {
	var rows []string
	for i, f := range d.options {
		radio := "( )"
		style := NormalItemStyle
		if i == d.cursor {
			radio = "(•)"
			style = SelectedItemStyle
		}
		rows = append(rows, style.Render(radio+" "+f.Label()))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		DialogTitleStyle.Render("Choose Event Filter"),
		strings.Join(rows, "\n"),
		"",
		HelpStyle.Render(HelpKeyStyle.Render("enter")+" done  •  "+HelpKeyStyle.Render("esc")+" cancel"),
	)

	if width < 30 {
		width = 30
	}
	return DialogStyle.Width(width).Render(body)
}
