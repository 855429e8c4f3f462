// Package reminder arms one-shot local notifications relative to a
// goal's due date. Reminders live only in process memory: a scheduled
// reminder is lost if the client exits before it fires.
package reminder

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/achievify/goaltrack/internal/model"
)

// Lead is how long before the due date a reminder fires.
const Lead = 15 * time.Minute

// Scheduling errors surfaced directly to the user.
var (
	ErrNoDueDate = errors.New("goal has no due date")
	ErrInPast    = errors.New("reminder time is already in the past")
)

// Notification is delivered when an armed reminder fires.
type Notification struct {
	// RunID identifies the scheduler run that produced this firing.
	RunID string

	// GoalID and Text reference the goal the reminder was armed for.
	GoalID string
	Text   string

	FiredAt time.Time
}

// Scheduler arms one-shot timers and delivers their firings on a
// channel. Re-arming the same goal creates an additional independent
// timer; runs are never deduplicated.
type Scheduler struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	ch      chan Notification
	enabled bool
	stopped bool

	// now is swappable for tests.
	now func() time.Time
}

// NewScheduler creates a scheduler. When enabled is false, armed
// timers still fire but their notifications are suppressed, matching a
// denied notification permission.
func NewScheduler(enabled bool) *Scheduler {
	return &Scheduler{
		timers:  make(map[string]*time.Timer),
		ch:      make(chan Notification, 16),
		enabled: enabled,
		now:     time.Now,
	}
}

// SetEnabled toggles notification delivery for timers that fire from
// now on.
func (s *Scheduler) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
}

// Schedule arms a reminder for the goal and returns the run id. It
// fails fast, with no timer created, when the goal has no due date or
// the computed fire time has already passed.
func (s *Scheduler) Schedule(goal model.Goal) (string, error) {
	if goal.DueDate == nil {
		return "", ErrNoDueDate
	}

	fireAt := goal.DueDate.Add(-Lead)
	delay := fireAt.Sub(s.now())
	if delay <= 0 {
		return "", ErrInPast
	}

	runID := uuid.NewString()
	n := Notification{RunID: runID, GoalID: goal.ID, Text: goal.Text}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return "", errors.New("scheduler stopped")
	}
	s.timers[runID] = time.AfterFunc(delay, func() {
		s.fire(n)
	})
	return runID, nil
}

// fire delivers a notification unless delivery is disabled. The send
// never blocks the timer goroutine.
func (s *Scheduler) fire(n Notification) {
	s.mu.Lock()
	delete(s.timers, n.RunID)
	enabled := s.enabled && !s.stopped
	s.mu.Unlock()

	if !enabled {
		return
	}

	n.FiredAt = s.now()
	select {
	case s.ch <- n:
	default:
		// Drop rather than block if the consumer fell behind.
	}
}

// Pending returns the number of armed timers.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Notifications exposes the delivery channel. Consumers receive from
// it in a loop, re-subscribing after each value.
func (s *Scheduler) Notifications() <-chan Notification {
	return s.ch
}

// Stop cancels every armed timer and suppresses further deliveries.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
