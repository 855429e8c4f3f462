package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/achievify/goaltrack/internal/model"
	"github.com/achievify/goaltrack/internal/view"
)

func TestUpsertKeepsOneEntityPerID(t *testing.T) {
	s := New()

	s.Upsert(model.Goal{ID: "g1", Text: "read a book"})
	s.Upsert(model.Goal{ID: "g1", Text: "read two books"})

	assert.Equal(t, 1, s.Len())
	g, ok := s.Get("g1")
	assert.True(t, ok)
	assert.Equal(t, "read two books", g.Text)
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	s := New()
	s.Upsert(model.Goal{ID: "g1"})

	s.Remove("nope")
	s.Remove("g1")
	s.Remove("g1")

	assert.Equal(t, 0, s.Len())
}

func TestReplaceAllSwapsCollection(t *testing.T) {
	s := New()
	s.Upsert(model.Goal{ID: "old"})

	s.ReplaceAll([]model.Goal{
		{ID: "a", Text: "run"},
		{ID: "b", Text: "swim"},
	})

	assert.Equal(t, 2, s.Len())
	_, ok := s.Get("old")
	assert.False(t, ok)
	_, ok = s.Get("a")
	assert.True(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New()
	s.Upsert(model.Goal{ID: "g1", Text: "original"})

	snap := s.Snapshot()
	snap[0].Text = "mutated"

	g, _ := s.Get("g1")
	assert.Equal(t, "original", g.Text)
}

func TestSnapshotOrderIsDeterministic(t *testing.T) {
	s := New()
	for i := 0; i < 12; i++ {
		s.Upsert(model.Goal{ID: fmt.Sprintf("g%02d", i), Text: "step"})
	}

	first := s.Snapshot()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Snapshot())
	}
	// Without timestamps the creation order is the id order.
	assert.Equal(t, "g00", first[0].ID)
	assert.Equal(t, "g11", first[11].ID)
}

func TestSnapshotKeepsTiedGoalsStableAcrossDerives(t *testing.T) {
	s := New()
	for i := 0; i < 12; i++ {
		s.Upsert(model.Goal{
			ID:       fmt.Sprintf("g%02d", i),
			Text:     "step",
			Priority: model.PriorityMedium,
		})
	}

	params := view.Params{Sort: view.SortPriority}
	first := view.Apply(s.Snapshot(), params)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, view.Apply(s.Snapshot(), params))
	}

	// An unrelated mutation must not reshuffle the tied goals.
	g, _ := s.Get("g05")
	g.Completed = true
	s.Upsert(g)
	next := view.Apply(s.Snapshot(), params)
	for i := range next {
		assert.Equal(t, first[i].ID, next[i].ID)
	}
}

func TestClearEmptiesStore(t *testing.T) {
	s := New()
	s.Upsert(model.Goal{ID: "g1"})
	s.Upsert(model.Goal{ID: "g2"})

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Snapshot())
}
