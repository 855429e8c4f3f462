package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/achievify/goaltrack/internal/engine"
	"github.com/achievify/goaltrack/internal/export"
	"github.com/achievify/goaltrack/internal/model"
	"github.com/achievify/goaltrack/internal/quote"
	"github.com/achievify/goaltrack/internal/reminder"
)

// sessionRestoredMsg carries the session loaded from durable storage.
type sessionRestoredMsg struct {
	session model.Session
}

// loginResultMsg is sent after a login attempt.
type loginResultMsg struct{ err error }

// signupResultMsg is sent after a signup attempt.
type signupResultMsg struct {
	message string
	err     error
}

// goalsRefreshedMsg is sent after a full refetch of the collection.
type goalsRefreshedMsg struct{ err error }

// mutationResultMsg is sent after any optimistic mutation settles.
type mutationResultMsg struct{ err error }

// exportResultMsg is sent after a CSV export attempt.
type exportResultMsg struct {
	path string
	err  error
}

// reminderArmedMsg is sent after trying to schedule a reminder.
type reminderArmedMsg struct{ err error }

// reminderFiredMsg carries a fired reminder notification.
type reminderFiredMsg struct {
	notification reminder.Notification
}

// quoteLoadedMsg carries the quote of the day, when one was available.
type quoteLoadedMsg struct {
	quote *quote.Quote
}

// restoreSession loads the persisted token and identity.
func (m Model) restoreSession() tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		return sessionRestoredMsg{session: sessions.Restore()}
	}
}

// login authenticates and establishes the session on success.
func (m Model) login(email, password string) tea.Cmd {
	client := m.client
	sessions := m.sessions
	return func() tea.Msg {
		resp, err := client.Login(context.Background(), email, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		if err := sessions.Establish(resp.Token, resp.Email); err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{}
	}
}

// signup registers a new account; the user still logs in afterwards.
func (m Model) signup(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		resp, err := client.Signup(context.Background(), email, password)
		if err != nil {
			return signupResultMsg{err: err}
		}
		return signupResultMsg{message: resp.Message}
	}
}

// refreshGoals re-synchronizes the store with the server.
func (m Model) refreshGoals() tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		return goalsRefreshedMsg{err: eng.Refresh(context.Background())}
	}
}

// createGoal sends a validated draft to the server and absorbs the
// returned entity.
func (m Model) createGoal(draft engine.Draft) tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		_, err := eng.Create(context.Background(), draft)
		return mutationResultMsg{err: err}
	}
}

// toggleGoal flips completion optimistically, then pushes the change.
func (m Model) toggleGoal(id string) tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		return mutationResultMsg{err: eng.ToggleComplete(context.Background(), id)}
	}
}

// editGoalText replaces a goal's text optimistically.
func (m Model) editGoalText(id, text string) tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		return mutationResultMsg{err: eng.EditText(context.Background(), id, text)}
	}
}

// adjustProgress steps a measurable goal's current value by delta.
func (m Model) adjustProgress(id string, delta float64) tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		goal, ok := eng.Store().Get(id)
		if !ok {
			return mutationResultMsg{err: &engine.ValidationError{Message: "unknown goal"}}
		}
		value := goal.CurrentValue + delta
		if value < 0 {
			value = 0
		}
		if value > goal.TargetValue {
			value = goal.TargetValue
		}
		return mutationResultMsg{err: eng.AdjustProgress(context.Background(), id, value)}
	}
}

// deleteGoal removes a goal optimistically.
func (m Model) deleteGoal(id string) tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		return mutationResultMsg{err: eng.Delete(context.Background(), id)}
	}
}

// clearCompleted removes all completed goals as one concurrent batch.
func (m Model) clearCompleted() tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		return mutationResultMsg{err: eng.ClearCompleted(context.Background())}
	}
}

// exportGoals dumps the current snapshot to a CSV file.
func (m Model) exportGoals() tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		path, err := export.ToFile(eng.Store().Snapshot())
		return exportResultMsg{path: path, err: err}
	}
}

// armReminder schedules a one-shot reminder for the goal.
func (m Model) armReminder(goal model.Goal) tea.Cmd {
	scheduler := m.scheduler
	return func() tea.Msg {
		_, err := scheduler.Schedule(goal)
		return reminderArmedMsg{err: err}
	}
}

// waitForReminder blocks on the scheduler's delivery channel. After
// each firing the app re-subscribes, poller style.
func (m Model) waitForReminder() tea.Cmd {
	ch := m.scheduler.Notifications()
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return reminderFiredMsg{notification: n}
	}
}

// fetchQuote loads the quote of the day, best effort.
func (m Model) fetchQuote() tea.Cmd {
	quotes := m.quotes
	return func() tea.Msg {
		q, err := quotes.Fetch(context.Background())
		if err != nil {
			return quoteLoadedMsg{}
		}
		return quoteLoadedMsg{quote: q}
	}
}
