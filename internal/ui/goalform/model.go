package goalform

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/achievify/goaltrack/internal/engine"
	"github.com/achievify/goaltrack/internal/model"
	"github.com/achievify/goaltrack/internal/theme"
)

// GoalSubmittedMsg is dispatched when a new goal draft is submitted.
type GoalSubmittedMsg struct {
	Draft engine.Draft
}

// GoalTextEditedMsg is dispatched when an existing goal's text is
// edited via the form.
type GoalTextEditedMsg struct {
	ID   string
	Text string
}

// GoalFormCancelMsg is dispatched when the user cancels the form.
type GoalFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	text       string
	category   string
	priority   string
	dueDate    string
	measurable bool
	current    string
	target     string
}

// Model is the Bubble Tea model for the goal create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a new goal form model.
func New(width, height int) Model {
	return Model{
		fb: &formBindings{
			category: string(model.CategoryPersonal),
			priority: string(model.PriorityMedium),
		},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new goal.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.text = ""
	m.fb.category = string(model.CategoryPersonal)
	m.fb.priority = string(model.PriorityMedium)
	m.fb.dueDate = ""
	m.fb.measurable = false
	m.fb.current = ""
	m.fb.target = ""
	m.form = m.buildCreateForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing a goal's text.
func (m *Model) StartEdit(goal model.Goal) tea.Cmd {
	m.editMode = true
	m.editID = goal.ID
	m.fb.text = goal.Text
	m.form = m.buildEditForm()
	return m.form.Init()
}

// Update handles messages for the goal form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return GoalFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the goal form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Goal"
	if m.editMode {
		titleText = "Edit Goal"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildCreateForm() *huh.Form {
	categoryOpts := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		categoryOpts[i] = huh.NewOption(string(c), string(c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal").
				Placeholder("What do you want to achieve?").
				Value(&m.fb.text).
				Validate(validateRequired("goal text")),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOpts...).
				Value(&m.fb.category),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("High", string(model.PriorityHigh)),
					huh.NewOption("Medium", string(model.PriorityMedium)),
					huh.NewOption("Low", string(model.PriorityLow)),
				).
				Value(&m.fb.priority),
			huh.NewInput().
				Title("Due Date").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&m.fb.dueDate).
				Validate(validateOptionalDate),
			huh.NewConfirm().
				Title("Measurable?").
				Value(&m.fb.measurable),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Current Value").
				Placeholder("0").
				Value(&m.fb.current).
				Validate(validateOptionalNumber),
			huh.NewInput().
				Title("Target Value").
				Placeholder("e.g. 10").
				Value(&m.fb.target).
				Validate(validateOptionalNumber),
		).WithHideFunc(func() bool { return !m.fb.measurable }),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildEditForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal").
				Value(&m.fb.text).
				Validate(validateRequired("goal text")),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	if m.editMode {
		id := m.editID
		text := strings.TrimSpace(m.fb.text)
		return func() tea.Msg { return GoalTextEditedMsg{ID: id, Text: text} }
	}

	draft := engine.Draft{
		Text:     strings.TrimSpace(m.fb.text),
		Category: model.Category(m.fb.category),
		Priority: model.Priority(m.fb.priority),
	}

	if s := strings.TrimSpace(m.fb.dueDate); s != "" {
		if d, err := model.ParseDate(s); err == nil {
			draft.DueDate = &d
		}
	}

	if m.fb.measurable {
		draft.IsMeasurable = true
		draft.CurrentValue, _ = strconv.ParseFloat(strings.TrimSpace(m.fb.current), 64)
		draft.TargetValue, _ = strconv.ParseFloat(strings.TrimSpace(m.fb.target), 64)
	}

	return func() tea.Msg { return GoalSubmittedMsg{Draft: draft} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := model.ParseDate(s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}
