package goallist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/achievify/goaltrack/internal/model"
	"github.com/achievify/goaltrack/internal/theme"
)

// GoalItem wraps a model.Goal so it can be used in a bubbles/list.
type GoalItem struct {
	Goal model.Goal
}

// FilterValue returns the string used for fuzzy filtering. The list's
// built-in filtering is disabled in favor of the view pipeline, but
// the interface requires it.
func (i GoalItem) FilterValue() string { return i.Goal.Text }

// Title returns the goal text for the list.
func (i GoalItem) Title() string { return i.Goal.Text }

// Description returns a short summary line for the list.
func (i GoalItem) Description() string {
	return fmt.Sprintf("%s | %s", i.Goal.Category, i.Goal.Priority)
}

// GoalDelegate implements list.ItemDelegate for rendering goal lines.
type GoalDelegate struct{}

// Height returns the number of lines each item takes.
func (d GoalDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d GoalDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d GoalDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single goal line.
func (d GoalDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	gi, ok := item.(GoalItem)
	if !ok {
		return
	}

	g := gi.Goal
	isSelected := index == m.Index()

	var prefix string
	if g.Completed {
		prefix = "✓"
	} else {
		prefix = "○"
	}

	categoryBadge := theme.CategoryStyle(g.Category).Render(string(g.Category))
	priorityBadge := theme.PriorityStyle(g.Priority).Render(priorityLabel(g.Priority))

	progress := ""
	if g.IsMeasurable {
		progress = theme.DueDateStyle.Render(
			fmt.Sprintf(" [%g/%g]", g.CurrentValue, g.TargetValue),
		)
	}

	dueDate := ""
	if g.DueDate != nil {
		dueDate = theme.DueDateStyle.Render(" due " + g.DueDate.Format("Jan 02"))
	}

	overdue := ""
	if g.IsOverdue() {
		overdue = theme.OverdueStyle.Render(" OVERDUE")
	}

	text := g.Text
	if g.Completed {
		text = theme.DimmedStyle.Render(text)
	}

	line := fmt.Sprintf(
		"%s %s %s %s%s%s%s",
		prefix, categoryBadge, priorityBadge, text, progress, dueDate, overdue,
	)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// priorityLabel returns a short label for the given priority.
func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "HI"
	case model.PriorityMedium:
		return "MD"
	case model.PriorityLow:
		return "LO"
	default:
		return "??"
	}
}
