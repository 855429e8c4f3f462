package statsview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/achievify/goaltrack/internal/analytics"
	"github.com/achievify/goaltrack/internal/store"
	"github.com/achievify/goaltrack/internal/theme"
)

// maxBarWidth caps the widest chart bar.
const maxBarWidth = 40

// StatsDerivedMsg carries freshly aggregated analytics.
type StatsDerivedMsg struct {
	Counts  []analytics.CategoryCount
	Summary analytics.Summary
}

// Model is the category analytics overlay. The chart is re-derived
// whenever the snapshot changes and re-rendered on theme changes.
type Model struct {
	store   *store.GoalStore
	counts  []analytics.CategoryCount
	summary analytics.Summary
	width   int
	height  int
}

// New creates a stats view over the store.
func New(s *store.GoalStore, width, height int) Model {
	return Model{store: s, width: width, height: height}
}

// Init derives the initial aggregates.
func (m Model) Init() tea.Cmd {
	return m.Derive()
}

// Derive returns a tea.Cmd that recomputes the category distribution
// from the full, unfiltered snapshot.
func (m Model) Derive() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		snapshot := s.Snapshot()
		return StatsDerivedMsg{
			Counts:  analytics.CategoryCounts(snapshot),
			Summary: analytics.Summarize(snapshot),
		}
	}
}

// Update handles messages for the stats view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if derived, ok := msg.(StatsDerivedMsg); ok {
		m.counts = derived.Counts
		m.summary = derived.Summary
	}
	return m, nil
}

// View renders the category bar chart.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Goals by Category"))
	b.WriteString("\n\n")

	if len(m.counts) == 0 {
		b.WriteString(theme.HelpStyle.Render("Nothing to chart yet."))
	} else {
		max := m.counts[0].Count
		for _, cc := range m.counts {
			b.WriteString(m.renderBar(cc, max))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render(fmt.Sprintf(
		"Total: %d  Completed: %d  Pending: %d  (%.0f%%)",
		m.summary.Total, m.summary.Completed,
		m.summary.Pending, m.summary.Percent,
	)))

	return theme.PanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(b.String())
}

// renderBar draws one category row with a proportional bar.
func (m Model) renderBar(cc analytics.CategoryCount, max int) string {
	width := maxBarWidth
	if avail := m.width - 24; avail < width {
		width = avail
	}
	if width < 4 {
		width = 4
	}

	barLen := 1
	if max > 0 {
		barLen = cc.Count * width / max
		if barLen < 1 {
			barLen = 1
		}
	}

	bar := lipgloss.NewStyle().
		Foreground(theme.CategoryBarColor(cc.Category)).
		Render(strings.Repeat("█", barLen))

	label := fmt.Sprintf("%-9s", cc.Category)
	return fmt.Sprintf("%s %s %d", label, bar, cc.Count)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
