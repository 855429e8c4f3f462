package goallist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/achievify/goaltrack/internal/analytics"
	"github.com/achievify/goaltrack/internal/keys"
	"github.com/achievify/goaltrack/internal/model"
	"github.com/achievify/goaltrack/internal/store"
	"github.com/achievify/goaltrack/internal/theme"
	"github.com/achievify/goaltrack/internal/view"
)

// GoalsDerivedMsg is sent when the view pipeline has re-derived the
// visible list from the store snapshot.
type GoalsDerivedMsg struct {
	Goals   []model.Goal
	Summary analytics.Summary
}

// ToggleGoalMsg asks the app to toggle a goal's completion state.
type ToggleGoalMsg struct{ ID string }

// DeleteGoalMsg asks the app to delete a goal.
type DeleteGoalMsg struct{ ID string }

// EditGoalMsg asks the app to open the edit form for a goal.
type EditGoalMsg struct{ Goal model.Goal }

// AdjustProgressMsg asks the app to step a measurable goal's progress.
type AdjustProgressMsg struct {
	ID    string
	Delta float64
}

// RemindGoalMsg asks the app to arm a reminder for a goal.
type RemindGoalMsg struct{ Goal model.Goal }

// Model is the main goal list view component.
type Model struct {
	list        list.Model
	store       *store.GoalStore
	keys        *keys.KeyMap
	params      view.Params
	filterIndex int
	sortIndex   int
	summary     analytics.Summary
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new goal list model over the store.
func New(s *store.GoalStore, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, GoalDelegate{}, width, height-3)
	l.Title = "Goals"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search goals..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:  l,
		store: s,
		keys:  k,
		params: view.Params{
			Filter: view.FilterAll,
			Sort:   view.SortNewest,
		},
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init derives the initial list.
func (m Model) Init() tea.Cmd {
	return m.Derive()
}

// Derive returns a tea.Cmd that runs the store snapshot through the
// view pipeline with the current controls.
func (m Model) Derive() tea.Cmd {
	s := m.store
	params := m.params
	return func() tea.Msg {
		snapshot := s.Snapshot()
		return GoalsDerivedMsg{
			Goals:   view.Apply(snapshot, params),
			Summary: analytics.Summarize(snapshot),
		}
	}
}

// Update handles messages for the goal list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case GoalsDerivedMsg:
		m.summary = msg.Summary
		items := make([]list.Item, len(msg.Goals))
		for i, g := range msg.Goals {
			items[i] = GoalItem{Goal: g}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.params.Query = m.searchInput.Value()
		return m, m.Derive()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.params.Query = ""
		return m, m.Derive()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleFilter):
		m.filterIndex = (m.filterIndex + 1) % len(view.Filters)
		m.params.Filter = view.Filters[m.filterIndex]
		return m, m.Derive()

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIndex = (m.sortIndex + 1) % len(view.Sorts)
		m.params.Sort = view.Sorts[m.sortIndex]
		return m, m.Derive()

	case key.Matches(msg, m.keys.Toggle):
		if g, ok := m.SelectedGoal(); ok {
			return m, func() tea.Msg { return ToggleGoalMsg{ID: g.ID} }
		}

	case key.Matches(msg, m.keys.Delete):
		if g, ok := m.SelectedGoal(); ok {
			return m, func() tea.Msg { return DeleteGoalMsg{ID: g.ID} }
		}

	case key.Matches(msg, m.keys.Edit):
		if g, ok := m.SelectedGoal(); ok {
			return m, func() tea.Msg { return EditGoalMsg{Goal: g} }
		}

	case key.Matches(msg, m.keys.ProgressUp):
		if g, ok := m.SelectedGoal(); ok && g.IsMeasurable {
			return m, func() tea.Msg { return AdjustProgressMsg{ID: g.ID, Delta: 1} }
		}

	case key.Matches(msg, m.keys.ProgressDown):
		if g, ok := m.SelectedGoal(); ok && g.IsMeasurable {
			return m, func() tea.Msg { return AdjustProgressMsg{ID: g.ID, Delta: -1} }
		}

	case key.Matches(msg, m.keys.Remind):
		if g, ok := m.SelectedGoal(); ok {
			return m, func() tea.Msg { return RemindGoalMsg{Goal: g} }
		}
	}

	// Delegate to the list for navigation keys.
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// InSearch reports whether the search input currently owns the
// keyboard.
func (m Model) InSearch() bool {
	return m.searchMode
}

// SelectedGoal returns the goal under the cursor.
func (m Model) SelectedGoal() (model.Goal, bool) {
	item, ok := m.list.SelectedItem().(GoalItem)
	if !ok {
		return model.Goal{}, false
	}
	return item.Goal, true
}

// FilterSummary describes the active controls for the status bar.
func (m Model) FilterSummary() string {
	s := fmt.Sprintf("filter: %s | sort: %s", m.params.Filter, m.params.Sort)
	if m.params.Query != "" {
		s += fmt.Sprintf(" | search: %q", m.params.Query)
	}
	return s
}

// View renders the goal list view.
func (m Model) View() string {
	progress := fmt.Sprintf(
		"Total: %d  Completed: %d  Pending: %d  (%.0f%%)",
		m.summary.Total, m.summary.Completed,
		m.summary.Pending, m.summary.Percent,
	)
	progressBar := theme.HelpStyle.Render(progress)

	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, progressBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return lipgloss.JoinVertical(lipgloss.Left, progressBar, m.list.View())
}

// renderEmptyState shows guidance text when no goals are visible. An
// empty result is a valid state, not an error.
func (m Model) renderEmptyState() string {
	hasControls := m.params.Query != "" ||
		(m.params.Filter != "" && m.params.Filter != view.FilterAll)

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 1).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if hasControls {
		return style.Render("No goals match.\nTry adjusting your search or filter.")
	}

	return style.Render("No goals found. Let's add one!\n\nPress n to create your first goal.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
	m.searchInput.Width = width - 4
}
