package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/theakshaypant/sched/internal/core"
	"github.com/theakshaypant/sched/internal/schedule"
	"github.com/theakshaypant/sched/internal/util"
)

// EventGetter is the part of schedule.Service the TUI needs.
type EventGetter interface {
	GetEvents(ctx context.Context, filter core.Filter, now time.Time) ([]core.Event, error)
}

// KeyMap defines the keybindings for the TUI
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Open       key.Binding
	Image      key.Binding
	Filter     key.Binding
	Refresh    key.Binding
	Tab        key.Binding
	Quit       key.Binding
	Help       key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "down"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("ctrl+d", "scroll down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "v"),
		key.WithHelp("enter", "open event"),
	),
	Image: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "cover image"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch panel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// Panel focus for compact mode
type PanelFocus int

const (
	FocusList PanelFocus = iota
	FocusDetail
)

// Model is the Bubble Tea model for the TUI
type Model struct {
	title         string
	state         State
	selectedIdx   int
	width         int
	height        int
	listWidth     int
	detailWidth   int
	contentHeight int
	keys          KeyMap
	getter        EventGetter
	loader        *schedule.Loader
	now           func() time.Time
	spinner       spinner.Model
	dialog        FilterDialog
	listView      viewport.Model
	detailView    viewport.Model
	viewportReady bool
	compactMode   bool       // True when terminal is too narrow for side-by-side
	focusedPanel  PanelFocus // Which panel is shown in compact mode
	showHelp      bool       // Whether the help overlay is visible
}

// NewModel creates a new TUI model. The first fetch starts in Init.
func NewModel(title string, getter EventGetter, filter core.Filter) Model {
	state := NewState(filter)
	state.Start()

	return Model{
		title:   title,
		state:   state,
		keys:    DefaultKeyMap,
		getter:  getter,
		loader:  &schedule.Loader{},
		now:     time.Now,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(SpinnerStyle)),
		dialog:  NewFilterDialog(core.DialogFilters),
	}
}

// State returns the current screen state.
func (m Model) State() State {
	return m.state
}

// Messages
type eventsLoadedMsg struct {
	seq    uint64
	events []core.Event
	err    error
}

type tickMsg time.Time

// Commands

// fetch supersedes any fetch in flight and returns the command running the
// new one. The caller has already moved the state to loading.
func (m Model) fetch() tea.Cmd {
	ctx, seq := m.loader.Begin(context.Background())
	getter := m.getter
	filter := m.state.Filter
	now := m.now()

	return func() tea.Msg {
		events, err := getter.GetEvents(ctx, filter, now)
		return eventsLoadedMsg{seq: seq, events: events, err: err}
	}
}

// reload moves to loading and fetches with the current filter.
func (m *Model) reload() tea.Cmd {
	m.state.Start()
	return tea.Batch(m.fetch(), m.spinner.Tick)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.spinner.Tick, tickCmd())
}

// calculateLayout calculates responsive layout dimensions
func (m *Model) calculateLayout() {
	minHeight := 10

	width := m.width
	height := m.height

	if height < minHeight {
		height = minHeight
	}

	// Header: ~2 lines, Help: ~2 lines, Padding: ~2 lines
	m.contentHeight = height - 6
	if m.contentHeight < 5 {
		m.contentHeight = 5
	}

	m.compactMode = width < 70

	if m.compactMode {
		m.listWidth = max(width-4, 20)
		m.detailWidth = max(width-4, 20)
		return
	}

	switch {
	case width < 100:
		m.listWidth = width * 45 / 100
	case width < 140:
		m.listWidth = width * 40 / 100
	default:
		m.listWidth = min(width*35/100, 60)
	}
	m.listWidth = max(m.listWidth, 32)
	m.detailWidth = max(width-m.listWidth-5, 35)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.calculateLayout()

		listViewportHeight := max(m.contentHeight-4, 1)
		listViewportWidth := max(m.listWidth-4, 10)
		detailViewportHeight := max(m.contentHeight-4, 1)
		detailViewportWidth := max(m.detailWidth-4, 10)

		if !m.viewportReady {
			m.listView = viewport.New(listViewportWidth, listViewportHeight)
			m.listView.Style = lipgloss.NewStyle()
			m.detailView = viewport.New(detailViewportWidth, detailViewportHeight)
			m.detailView.Style = lipgloss.NewStyle()
			m.viewportReady = true
		} else {
			m.listView.Width = listViewportWidth
			m.listView.Height = listViewportHeight
			m.detailView.Width = detailViewportWidth
			m.detailView.Height = detailViewportHeight
		}
		m.updateListContent()
		m.updateDetailContent()
		return m, nil

	case eventsLoadedMsg:
		if !m.loader.Finish(msg.seq) {
			// A newer fetch has started since; it will deliver its own result.
			return m, nil
		}
		if msg.err != nil {
			m.state.Fail(msg.err)
		} else {
			m.state.Finish(msg.events)
		}
		m.selectedIdx = 0
		m.updateListContent()
		m.updateDetailContent()
		if m.viewportReady {
			m.listView.GotoTop()
			m.detailView.GotoTop()
		}
		return m, nil

	case filterChosenMsg:
		m.state.SetFilter(msg.filter)
		return m, m.reload()

	case dialogClosedMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		// Relative times ("starts in", "ended ago") drift every minute
		m.updateListContent()
		m.updateDetailContent()
		return m, tickCmd()

	case tea.KeyMsg:
		if m.dialog.Visible() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.dialog, cmd = m.dialog.Update(msg)
			return m, cmd
		}

		// When help overlay is shown, any key dismisses it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		events := m.state.Events

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.loader.Stop()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			m.dialog.Show(m.state.Filter)
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			return m, m.reload()

		case key.Matches(msg, m.keys.Up):
			if m.selectedIdx > 0 {
				m.selectedIdx--
				m.updateListContent()
				m.scrollListToSelection()
				m.updateDetailContent()
				m.detailView.GotoTop()
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.selectedIdx < len(events)-1 {
				m.selectedIdx++
				m.updateListContent()
				m.scrollListToSelection()
				m.updateDetailContent()
				m.detailView.GotoTop()
			}
			return m, nil

		case key.Matches(msg, m.keys.ScrollUp):
			if m.compactMode && m.focusedPanel == FocusList {
				m.listView.ViewUp()
			} else {
				m.detailView.ViewUp()
			}
			return m, nil

		case key.Matches(msg, m.keys.ScrollDown):
			if m.compactMode && m.focusedPanel == FocusList {
				m.listView.ViewDown()
			} else {
				m.detailView.ViewDown()
			}
			return m, nil

		case key.Matches(msg, m.keys.Tab):
			if m.focusedPanel == FocusList {
				m.focusedPanel = FocusDetail
			} else {
				m.focusedPanel = FocusList
			}
			return m, nil

		case key.Matches(msg, m.keys.Open):
			if event, ok := m.selected(); ok && event.URL != "" {
				return m, openURL(event.URL)
			}
			return m, nil

		case key.Matches(msg, m.keys.Image):
			if event, ok := m.selected(); ok && event.ImageURL != "" {
				return m, openURL(event.ImageURL)
			}
			return m, nil
		}
	}
	return m, nil
}

func (m Model) selected() (core.Event, bool) {
	events := m.state.Events
	if m.selectedIdx < 0 || m.selectedIdx >= len(events) {
		return core.Event{}, false
	}
	return events[m.selectedIdx], true
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading events..."
	}

	header := m.renderHeader()

	var content string
	switch {
	case m.dialog.Visible():
		content = lipgloss.Place(m.width-4, m.contentHeight, lipgloss.Center, lipgloss.Center,
			m.dialog.View(min(m.width-8, 40)))
	case m.state.Display() == DisplayLoading:
		content = m.renderCentered(m.spinner.View() + " " + LoadingStyle.Render("Loading events..."))
	case m.state.Display() == DisplayEmpty:
		msg := EmptyStyle.Render("No events to display")
		if m.state.Err != nil {
			msg += "\n\n" + ErrorStyle.Render(ansi.Wordwrap(fmt.Sprintf("Error: %v", m.state.Err), m.width-8, ""))
		}
		content = m.renderCentered(msg)
	case m.compactMode:
		if m.showHelp {
			content = m.renderHelpPanel()
		} else if m.focusedPanel == FocusList {
			content = m.renderListPanel()
		} else {
			content = m.renderDetailPanel()
		}
	default:
		listPanel := m.renderListPanel()
		var rightPanel string
		if m.showHelp {
			rightPanel = m.renderHelpPanel()
		} else {
			rightPanel = m.renderDetailPanel()
		}
		content = lipgloss.JoinHorizontal(lipgloss.Top, listPanel, " ", rightPanel)
	}

	help := m.renderHelp()

	return AppStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, content, help),
	)
}

func (m Model) renderCentered(s string) string {
	return lipgloss.NewStyle().
		Width(m.width-4).
		Height(m.contentHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(s)
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("📅 " + m.title)

	filter := m.state.Filter.Label()
	if m.state.Loading && len(m.state.Events) > 0 {
		filter += " • refreshing…"
	}
	sub := lipgloss.NewStyle().Foreground(mutedColor).Render(filter)

	panelIndicator := ""
	if m.compactMode {
		label := " [Events]"
		if m.focusedPanel == FocusDetail {
			label = " [Details]"
		}
		panelIndicator = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Render(label)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", sub, panelIndicator)
}

// updateListContent updates the list viewport with current events
func (m *Model) updateListContent() {
	if !m.viewportReady {
		return
	}

	events := m.state.Events
	if len(events) == 0 {
		m.listView.SetContent("")
		return
	}

	now := m.now()
	items := make([]string, 0, len(events))
	for i, event := range events {
		items = append(items, m.renderListItem(event, i == m.selectedIdx, m.listView.Width, now))
	}
	m.listView.SetContent(strings.Join(items, "\n"))
}

// scrollListToSelection scrolls the list viewport to keep the selected item visible
func (m *Model) scrollListToSelection() {
	if !m.viewportReady || len(m.state.Events) == 0 {
		return
	}

	selectedTop := m.selectedIdx
	selectedBottom := selectedTop + 1

	viewTop := m.listView.YOffset
	viewBottom := viewTop + m.listView.Height

	if selectedTop < viewTop {
		m.listView.SetYOffset(selectedTop)
	}
	if selectedBottom > viewBottom {
		m.listView.SetYOffset(selectedBottom - m.listView.Height)
	}
}

func (m Model) renderListPanel() string {
	scrollInfo := ""
	if m.viewportReady && m.listView.TotalLineCount() > m.listView.Height {
		scrollInfo = lipgloss.NewStyle().
			Foreground(mutedColor).
			Render(fmt.Sprintf(" (%d/%d)", m.selectedIdx+1, len(m.state.Events)))
	}

	header := lipgloss.NewStyle().
		Foreground(primaryColor).
		Bold(true).
		Render("Events") + scrollInfo

	return ListPanelStyle.Width(m.listWidth).Height(m.contentHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, m.listView.View()),
	)
}

func (m Model) renderListItem(event core.Event, selected bool, maxWidth int, now time.Time) string {
	isPast := event.End.Before(now)

	dateStr := event.Start.Local().Format("Jan 2 3:04PM")
	if isPast {
		dateStr = "✓ " + event.Start.Local().Format("Jan 2")
	}

	var dateStyled string
	if isPast {
		dateStyled = PastDateStyle.Render(dateStr)
	} else {
		dateStyled = DateStyle.Render(dateStr)
	}

	// Date (14) + padding (~2) + status icon (~3)
	title := util.TruncateText(event.Name, max(maxWidth-19, 10))

	statusIcon := ""
	if event.InProgress(now) {
		statusIcon = " 🟢"
	}

	line := fmt.Sprintf("%s %s%s", dateStyled, title, statusIcon)

	if selected {
		if isPast {
			return SelectedPastStyle.Render(line)
		}
		return SelectedItemStyle.Render(line)
	}
	if isPast {
		return PastItemStyle.Render(line)
	}
	return NormalItemStyle.Render(line)
}

// updateDetailContent updates the viewport with the current event details
func (m *Model) updateDetailContent() {
	if !m.viewportReady {
		return
	}
	event, ok := m.selected()
	if !ok {
		m.detailView.SetContent("")
		return
	}

	width := m.detailView.Width
	now := m.now()
	var lines []string

	lines = append(lines, TitleStyle.Render(ansi.Wordwrap(event.Name, width, "")))
	lines = append(lines, "")

	lines = append(lines, renderField("🕐 When", formatEventTime(event.Start, event.End)))
	lines = append(lines, renderField("⏱️  Duration", formatDuration(event.Duration())))

	switch {
	case event.End.Before(now):
		lines = append(lines, "", EndedStyle.Render(fmt.Sprintf("✓ Ended %s ago", formatDuration(now.Sub(event.End)))))
	case event.InProgress(now):
		lines = append(lines, "", InProgressStyle.Render(fmt.Sprintf("🟢 HAPPENING NOW • %s left", formatDuration(event.End.Sub(now)))))
	case event.Start.After(now):
		lines = append(lines, "", SoonStyle.Render(fmt.Sprintf("⏳ Starts in %s", formatDuration(event.Start.Sub(now)))))
	}

	lines = append(lines, "")

	if event.URL != "" {
		lines = append(lines, renderLink("🔗 Event", event.URL, width))
	}
	if event.ImageURL != "" {
		lines = append(lines, renderLink("🖼️  Image", event.ImageURL, width))
	}

	if event.Description != "" {
		lines = append(lines, "")
		lines = append(lines, LabelStyle.Render("📝 About"))
		lines = append(lines, ValueStyle.Render(ansi.Wordwrap(event.Description, width, "")))
	}

	m.detailView.SetContent(strings.Join(lines, "\n"))
}

func (m Model) renderDetailPanel() string {
	scrollInfo := ""
	if m.viewportReady && m.detailView.TotalLineCount() > m.detailView.Height {
		scrollPct := int(m.detailView.ScrollPercent() * 100)
		scrollInfo = lipgloss.NewStyle().
			Foreground(mutedColor).
			Render(fmt.Sprintf(" (%d%%)", scrollPct))
	}

	header := lipgloss.NewStyle().
		Foreground(primaryColor).
		Bold(true).
		Render("Event Details") + scrollInfo

	return DetailPanelStyle.Width(m.detailWidth).Height(m.contentHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", m.detailView.View()),
	)
}

func (m Model) renderHelp() string {
	keys := []string{
		HelpKeyStyle.Render("↑/↓") + " nav",
		HelpKeyStyle.Render("f") + " filter",
		HelpKeyStyle.Render("r") + " refresh",
		HelpKeyStyle.Render("enter") + " open",
		HelpKeyStyle.Render("i") + " image",
		HelpKeyStyle.Render("tab") + " panel",
		HelpKeyStyle.Render("q") + " quit",
	}

	fullLine := strings.Join(keys, "  •  ")

	if lipgloss.Width(fullLine) > m.width-4 {
		return HelpStyle.Render(HelpKeyStyle.Render("?") + " help")
	}

	return HelpStyle.Render(fullLine)
}

func (m Model) renderHelpPanel() string {
	header := lipgloss.NewStyle().
		Foreground(primaryColor).
		Bold(true).
		Render("Keyboard Shortcuts")

	lines := []string{
		"",
		HelpKeyStyle.Render("  ↑ / k      ") + " Move up",
		HelpKeyStyle.Render("  ↓ / j      ") + " Move down",
		HelpKeyStyle.Render("  ctrl+u/d   ") + " Scroll detail panel",
		HelpKeyStyle.Render("  f          ") + " Choose event filter",
		HelpKeyStyle.Render("  r          ") + " Refresh events",
		HelpKeyStyle.Render("  enter / v  ") + " Open event page",
		HelpKeyStyle.Render("  i          ") + " Open cover image",
		HelpKeyStyle.Render("  tab        ") + " Switch panel",
		HelpKeyStyle.Render("  q / ctrl+c ") + " Quit",
		"",
		lipgloss.NewStyle().Foreground(mutedColor).Italic(true).Render("  Press any key to close"),
	}

	panelWidth := m.detailWidth
	if m.compactMode {
		panelWidth = m.listWidth
	}

	return DetailPanelStyle.Width(panelWidth).Height(m.contentHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(lines, "\n")),
	)
}

// Helper functions
func renderField(label, value string) string {
	return LabelStyle.Render(label) + " " + ValueStyle.Render(value)
}

// renderLink renders a clickable, width-limited link field.
func renderLink(label, url string, maxWidth int) string {
	labelWidth := lipgloss.Width(LabelStyle.Render(label)) + 1
	display := util.TruncateText(url, maxWidth-labelWidth)
	return renderField(label, util.MakeHyperlink(url, LinkStyle.Render(display)))
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		if hours > 0 {
			return fmt.Sprintf("%dd %dh", days, hours)
		}
		return fmt.Sprintf("%dd", days)
	}
	if hours > 0 {
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}

func formatEventTime(start, end time.Time) string {
	localStart := start.Local()
	localEnd := end.Local()

	if localStart.YearDay() == localEnd.YearDay() && localStart.Year() == localEnd.Year() {
		return fmt.Sprintf("%s, %s - %s",
			localStart.Format("Mon, Jan 2"),
			localStart.Format("3:04 PM"),
			localEnd.Format("3:04 PM"))
	}
	return fmt.Sprintf("%s - %s",
		localStart.Format("Mon, Jan 2 3:04 PM"),
		localEnd.Format("Mon, Jan 2 3:04 PM"))
}

// openURL opens a URL in the default browser
func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		_ = util.OpenURL(url)
		return nil
	}
}
