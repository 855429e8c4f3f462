package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achievify/goaltrack/internal/model"
)

func dueAt(t time.Time) *model.Date {
	d := model.Date{Time: t}
	return &d
}

func TestScheduleRequiresDueDate(t *testing.T) {
	s := NewScheduler(true)
	defer s.Stop()

	_, err := s.Schedule(model.Goal{ID: "g1", Text: "walk"})

	assert.ErrorIs(t, err, ErrNoDueDate)
	assert.Equal(t, 0, s.Pending())
}

func TestScheduleRejectsPastFireTime(t *testing.T) {
	s := NewScheduler(true)
	defer s.Stop()

	// Due in five minutes: the fire time (due minus lead) has passed.
	_, err := s.Schedule(model.Goal{
		ID: "g1", Text: "walk",
		DueDate: dueAt(time.Now().Add(5 * time.Minute)),
	})

	assert.ErrorIs(t, err, ErrInPast)
	assert.Equal(t, 0, s.Pending())
}

func TestScheduleFiresAndDelivers(t *testing.T) {
	s := NewScheduler(true)
	defer s.Stop()

	// Pin "now" so the timer delay is tiny without shrinking the lead.
	due := time.Now().Add(20 * time.Millisecond)
	s.now = func() time.Time { return due.Add(-Lead - 20*time.Millisecond) }

	runID, err := s.Schedule(model.Goal{ID: "g1", Text: "walk", DueDate: dueAt(due)})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Pending())

	select {
	case n := <-s.Notifications():
		assert.Equal(t, runID, n.RunID)
		assert.Equal(t, "g1", n.GoalID)
		assert.Equal(t, "walk", n.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("reminder never fired")
	}
	assert.Equal(t, 0, s.Pending())
}

func TestReArmingCreatesIndependentRuns(t *testing.T) {
	s := NewScheduler(true)
	defer s.Stop()

	goal := model.Goal{
		ID: "g1", Text: "walk",
		DueDate: dueAt(time.Now().Add(time.Hour)),
	}

	first, err := s.Schedule(goal)
	require.NoError(t, err)
	second, err := s.Schedule(goal)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, s.Pending())
}

func TestDisabledSchedulerSuppressesDelivery(t *testing.T) {
	s := NewScheduler(false)
	defer s.Stop()

	s.now = func() time.Time { return time.Now().Add(-Lead - 10*time.Millisecond) }
	_, err := s.Schedule(model.Goal{
		ID: "g1", Text: "walk",
		DueDate: dueAt(time.Now()),
	})
	require.NoError(t, err)

	select {
	case <-s.Notifications():
		t.Fatal("disabled scheduler delivered a notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStopCancelsArmedTimers(t *testing.T) {
	s := NewScheduler(true)

	_, err := s.Schedule(model.Goal{
		ID: "g1", Text: "walk",
		DueDate: dueAt(time.Now().Add(time.Hour)),
	})
	require.NoError(t, err)

	s.Stop()

	assert.Equal(t, 0, s.Pending())
	_, err = s.Schedule(model.Goal{
		ID: "g2", Text: "run",
		DueDate: dueAt(time.Now().Add(time.Hour)),
	})
	assert.Error(t, err)
}
