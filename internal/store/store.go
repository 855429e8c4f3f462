// Package store holds the authoritative in-memory goal collection for
// the active session. It is the single owner of the canonical state;
// ordering is always produced downstream by the view pipeline, never
// assumed from storage order.
package store

import (
	"sort"
	"sync"

	"github.com/achievify/goaltrack/internal/model"
)

// GoalStore maps goal ids to goals. All access is guarded because
// Bubble Tea commands complete on their own goroutines.
type GoalStore struct {
	mu    sync.RWMutex
	goals map[string]model.Goal
}

// New creates an empty goal store.
func New() *GoalStore {
	return &GoalStore{goals: make(map[string]model.Goal)}
}

// ReplaceAll swaps in a whole new collection. Used for the initial
// load and for reconciliation after a failed mutation.
func (s *GoalStore) ReplaceAll(goals []model.Goal) {
	next := make(map[string]model.Goal, len(goals))
	for _, g := range goals {
		next[g.ID] = g
	}

	s.mu.Lock()
	s.goals = next
	s.mu.Unlock()
}

// Upsert inserts the goal if its id is unseen, else overwrites the
// existing entry. At most one entity per id ever exists.
func (s *GoalStore) Upsert(g model.Goal) {
	s.mu.Lock()
	s.goals[g.ID] = g
	s.mu.Unlock()
}

// Remove deletes the goal by id. Removing an absent id is a no-op.
func (s *GoalStore) Remove(id string) {
	s.mu.Lock()
	delete(s.goals, id)
	s.mu.Unlock()
}

// Get returns the goal with the given id, if present.
func (s *GoalStore) Get(id string) (model.Goal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[id]
	return g, ok
}

// Snapshot returns a copy of the collection in creation order. Callers
// own the returned slice. The order is deterministic: repeated
// snapshots of an unchanged store are identical, so the view
// pipeline's stable sorts keep goals tied on a sort key in a fixed
// relative order across re-derives.
func (s *GoalStore) Snapshot() []model.Goal {
	s.mu.RLock()
	goals := make([]model.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		goals = append(goals, g)
	}
	s.mu.RUnlock()

	sort.Slice(goals, func(i, j int) bool {
		a, b := goals[i], goals[j]
		if ak, bk := a.SortKey(), b.SortKey(); ak != bk {
			return ak < bk
		}
		return a.ID < b.ID
	})
	return goals
}

// Len returns the number of goals held.
func (s *GoalStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.goals)
}

// Clear empties the store. Used on logout; there is no per-item
// teardown.
func (s *GoalStore) Clear() {
	s.mu.Lock()
	s.goals = make(map[string]model.Goal)
	s.mu.Unlock()
}
