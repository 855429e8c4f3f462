package authview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/achievify/goaltrack/internal/theme"
)

// Mode selects between the login and signup forms.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// LoginSubmitMsg carries the credentials entered in the login form.
type LoginSubmitMsg struct {
	Email    string
	Password string
}

// SignupSubmitMsg carries the credentials entered in the signup form.
type SignupSubmitMsg struct {
	Email    string
	Password string
}

// formBindings holds field values on the heap so huh's pointers stay
// valid across model copies.
type formBindings struct {
	email    string
	password string
	mode     Mode
}

// Model is the unauthenticated login/signup view.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	status  string
	isError bool
	width   int
	height  int
}

// New creates the auth view in login mode.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start (re)initializes the form for the given mode, keeping the
// email so switching modes doesn't lose it.
func (m *Model) Start(mode Mode) tea.Cmd {
	m.fb.mode = mode
	m.fb.password = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// SetStatus shows a status line under the form. Used for both the
// signup confirmation message and error feedback.
func (m *Model) SetStatus(status string, isError bool) {
	m.status = status
	m.isError = isError
}

// Update handles messages for the auth view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+s" {
		// Switch between login and signup.
		next := ModeSignup
		if m.fb.mode == ModeSignup {
			next = ModeLogin
		}
		m.status = ""
		cmd := m.Start(next)
		return m, cmd
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		email := strings.TrimSpace(strings.ToLower(m.fb.email))
		password := m.fb.password
		mode := m.fb.mode
		// Re-arm the form so a failed attempt can be retried.
		rearm := m.Start(mode)
		return m, tea.Batch(rearm, func() tea.Msg {
			if mode == ModeSignup {
				return SignupSubmitMsg{Email: email, Password: password}
			}
			return LoginSubmitMsg{Email: email, Password: password}
		})
	}

	return m, cmd
}

// View renders the auth view.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Log In"
	hint := "ctrl+s sign up instead"
	if m.fb.mode == ModeSignup {
		titleText = "Sign Up"
		hint = "ctrl+s log in instead"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{
		titleStyle.Render(titleText),
		m.form.View(),
		theme.HelpStyle.Render(hint),
	}

	if m.status != "" {
		statusStyle := lipgloss.NewStyle().Foreground(theme.ColorGreen)
		if m.isError {
			statusStyle = statusStyle.Foreground(theme.ColorRed)
		}
		parts = append(parts, statusStyle.Render(m.status))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.PanelStyle.Render(content))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	confirm := "Log In"
	if m.fb.mode == ModeSignup {
		confirm = "Create Account"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validateRequired("password")),
		).Title(confirm),
	).WithWidth(48)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(s, "@") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}
