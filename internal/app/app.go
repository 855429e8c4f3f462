package app

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/achievify/goaltrack/internal/api"
	"github.com/achievify/goaltrack/internal/engine"
	"github.com/achievify/goaltrack/internal/keys"
	"github.com/achievify/goaltrack/internal/model"
	"github.com/achievify/goaltrack/internal/quote"
	"github.com/achievify/goaltrack/internal/reminder"
	"github.com/achievify/goaltrack/internal/session"
	"github.com/achievify/goaltrack/internal/theme"
	"github.com/achievify/goaltrack/internal/ui"
	"github.com/achievify/goaltrack/internal/ui/authview"
	"github.com/achievify/goaltrack/internal/ui/goalform"
	"github.com/achievify/goaltrack/internal/ui/goallist"
	helpview "github.com/achievify/goaltrack/internal/ui/help"
	"github.com/achievify/goaltrack/internal/ui/statsview"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewAuth
	ViewList
	ViewForm
	ViewStats
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, the
// session lifecycle, and access to the goal engine.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	cfg          *model.AppConfig
	cfgPath      string

	sessions  *session.Manager
	client    *api.Client
	engine    *engine.Engine
	scheduler *reminder.Scheduler
	quotes    *quote.Client
	keys      *keys.KeyMap

	authView  authview.Model
	goalList  goallist.Model
	goalForm  goalform.Model
	statsView statsview.Model
	helpView  helpview.Model

	ready  bool
	status string
	quote  string
}

// New creates the root application model.
func New(
	cfg *model.AppConfig,
	cfgPath string,
	sessions *session.Manager,
	client *api.Client,
	eng *engine.Engine,
	scheduler *reminder.Scheduler,
	quotes *quote.Client,
) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView: ViewLoading,
		cfg:         cfg,
		cfgPath:     cfgPath,
		sessions:    sessions,
		client:      client,
		engine:      eng,
		scheduler:   scheduler,
		quotes:      quotes,
		keys:        k,
		authView:    authview.New(80, 24),
		goalList:    goallist.New(eng.Store(), k, 80, 24),
		goalForm:    goalform.New(80, 24),
		statsView:   statsview.New(eng.Store(), 80, 24),
		helpView:    helpview.New(k, 80, 24),
	}
}

// Init restores any persisted session and starts listening for
// reminder firings.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.restoreSession(),
		m.waitForReminder(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.authView.SetSize(contentWidth, contentHeight)
		m.goalList.SetSize(contentWidth, contentHeight)
		m.goalForm.SetSize(contentWidth, contentHeight)
		m.statsView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case sessionRestoredMsg:
		if msg.session.Active() {
			m.currentView = ViewList
			return m, tea.Batch(
				m.refreshGoals(),
				m.fetchQuote(),
			)
		}
		m.currentView = ViewAuth
		cmd := m.authView.Start(authview.ModeLogin)
		return m, cmd

	case authview.LoginSubmitMsg:
		return m, m.login(msg.Email, msg.Password)

	case authview.SignupSubmitMsg:
		return m, m.signup(msg.Email, msg.Password)

	case loginResultMsg:
		if msg.err != nil {
			m.authView.SetStatus(userMessage(msg.err), true)
			return m, nil
		}
		m.authView.SetStatus("", false)
		m.currentView = ViewList
		m.status = ""
		return m, tea.Batch(m.refreshGoals(), m.fetchQuote())

	case signupResultMsg:
		if msg.err != nil {
			m.authView.SetStatus(userMessage(msg.err), true)
			return m, nil
		}
		m.authView.SetStatus(msg.message, false)
		cmd := m.authView.Start(authview.ModeLogin)
		return m, cmd

	case goalsRefreshedMsg:
		if msg.err != nil {
			return m.handleEngineError(msg.err)
		}
		return m, m.rederive()

	case mutationResultMsg:
		cmds := []tea.Cmd{m.rederive()}
		if msg.err != nil {
			next, cmd := m.handleEngineError(msg.err)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
			return next, tea.Batch(cmds...)
		}
		return m, tea.Batch(cmds...)

	case goallist.ToggleGoalMsg:
		return m, m.toggleGoal(msg.ID)

	case goallist.DeleteGoalMsg:
		return m, m.deleteGoal(msg.ID)

	case goallist.EditGoalMsg:
		m.previousView = m.currentView
		m.currentView = ViewForm
		cmd := m.goalForm.StartEdit(msg.Goal)
		return m, cmd

	case goallist.AdjustProgressMsg:
		return m, m.adjustProgress(msg.ID, msg.Delta)

	case goallist.RemindGoalMsg:
		return m, m.armReminder(msg.Goal)

	case goalform.GoalSubmittedMsg:
		m.currentView = ViewList
		return m, m.createGoal(msg.Draft)

	case goalform.GoalTextEditedMsg:
		m.currentView = ViewList
		return m, m.editGoalText(msg.ID, msg.Text)

	case goalform.GoalFormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case reminderArmedMsg:
		if msg.err != nil {
			m.status = "Reminder not set: " + msg.err.Error()
		} else {
			m.status = "Reminder set for 15 minutes before the due date"
		}
		return m, nil

	case reminderFiredMsg:
		m.status = fmt.Sprintf("⏰ Reminder: %s", msg.notification.Text)
		return m, m.waitForReminder()

	case exportResultMsg:
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
		} else {
			m.status = "Exported to " + msg.path
		}
		return m, nil

	case quoteLoadedMsg:
		// Best effort: a missing quote is not a condition worth
		// reporting.
		if msg.quote != nil {
			m.quote = fmt.Sprintf("%q — %s", msg.quote.Content, msg.quote.Author)
		}
		return m, nil

	case goallist.GoalsDerivedMsg:
		var cmd tea.Cmd
		m.goalList, cmd = m.goalList.Update(msg)
		return m, cmd

	case statsview.StatsDerivedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if handled, next, cmd := m.handleGlobalKeys(msg); handled {
			return next, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work regardless of the focused
// sub-view. Returns handled=false when the key should be delegated.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.scheduler.Stop()
		return true, m, tea.Quit
	}

	// Text inputs own the keyboard in these views.
	if m.currentView == ViewAuth || m.currentView == ViewForm || m.goalList.InSearch() {
		return false, m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.currentView == ViewList {
			m.scheduler.Stop()
			return true, m, tea.Quit
		}

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case key.Matches(msg, m.keys.Back):
		if m.currentView == ViewHelp || m.currentView == ViewStats {
			m.currentView = ViewList
			return true, m, nil
		}

	case key.Matches(msg, m.keys.New):
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewForm
			cmd := m.goalForm.StartCreate()
			return true, m, cmd
		}

	case key.Matches(msg, m.keys.Stats):
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewStats
			return true, m, m.statsView.Derive()
		}

	case key.Matches(msg, m.keys.Refresh):
		if m.currentView == ViewList {
			m.status = ""
			return true, m, m.refreshGoals()
		}

	case key.Matches(msg, m.keys.ClearCompleted):
		if m.currentView == ViewList {
			return true, m, m.clearCompleted()
		}

	case key.Matches(msg, m.keys.Export):
		if m.currentView == ViewList {
			return true, m, m.exportGoals()
		}

	case key.Matches(msg, m.keys.ThemeToggle):
		next, cmd := m.toggleTheme()
		return true, next, cmd

	case key.Matches(msg, m.keys.Logout):
		if m.currentView == ViewList {
			m.engine.Logout()
			m.currentView = ViewAuth
			m.status = ""
			cmd := tea.Batch(
				m.authView.Start(authview.ModeLogin),
				m.rederive(),
			)
			return true, m, cmd
		}
	}

	return false, m, nil
}

// toggleTheme flips the persisted display preference. This is a
// color-only change; the aggregates are re-derived so the chart
// re-renders with the new palette.
func (m Model) toggleTheme() (Model, tea.Cmd) {
	if m.cfg.Display.Theme == model.ThemeDark {
		m.cfg.Display.Theme = model.ThemeLight
	} else {
		m.cfg.Display.Theme = model.ThemeDark
	}
	theme.Apply(m.cfg.Display.Theme)
	if err := model.SaveConfig(m.cfgPath, m.cfg); err != nil {
		m.status = "Could not save theme preference"
	} else {
		m.status = "Theme: " + m.cfg.Display.Theme
	}
	return m, m.statsView.Derive()
}

// handleEngineError translates an engine failure into view state. An
// authorization failure has already cleared the session and store; the
// app's job is to return to the unauthenticated view.
func (m Model) handleEngineError(err error) (Model, tea.Cmd) {
	if api.IsAuthError(err) {
		m.currentView = ViewAuth
		m.status = ""
		m.authView.SetStatus("Session expired. Please log in again.", true)
		cmd := tea.Batch(
			m.authView.Start(authview.ModeLogin),
			m.rederive(),
		)
		return m, cmd
	}

	m.status = userMessage(err)
	return m, nil
}

// rederive refreshes both consumers of the store snapshot.
func (m Model) rederive() tea.Cmd {
	return tea.Batch(m.goalList.Derive(), m.statsView.Derive())
}

// userMessage maps the error taxonomy onto user-facing text.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if api.IsConnectivityError(err) {
		return "Couldn't connect to server. Is it running?"
	}
	var remoteErr *api.RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.Message
	}
	var validationErr *engine.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return err.Error()
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAuth:
		m.authView, cmd = m.authView.Update(msg)
	case ViewList:
		m.goalList, cmd = m.goalList.Update(msg)
	case ViewForm:
		m.goalForm, cmd = m.goalForm.Update(msg)
	case ViewStats:
		m.statsView, cmd = m.statsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Goaltrack", m.sessionLabel())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewAuth:
		return m.authView.View()
	case ViewList:
		return m.goalList.View()
	case ViewForm:
		return m.goalForm.View()
	case ViewStats:
		return m.statsView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return "Loading..."
	}
}

// sessionLabel returns the header's right-hand label.
func (m Model) sessionLabel() string {
	if s := m.sessions.Current(); s.Active() {
		return "Welcome, " + s.Email
	}
	return "not logged in"
}

// statusLine picks the status bar content: a transient status message
// wins over the quote, which wins over key hints.
func (m Model) statusLine() string {
	if m.status != "" {
		return m.status
	}

	switch m.currentView {
	case ViewAuth:
		return "enter submit | ctrl+s switch login/signup | ctrl+c quit"
	case ViewForm:
		return "enter submit | esc cancel"
	case ViewStats:
		return "esc back | T toggle theme"
	case ViewHelp:
		return "? close help | esc back"
	default:
		if m.quote != "" {
			return m.quote
		}
		return m.goalList.FilterSummary() +
			" | n new | / search | f filter | tab sort | ? help"
	}
}
