// Package engine implements the optimistic-update protocol between the
// in-memory goal store and the remote API: mutations are applied
// locally before the network call resolves, and any remote failure is
// reconciled by re-fetching the authoritative collection rather than
// undoing individual fields.
package engine

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/achievify/goaltrack/internal/api"
	"github.com/achievify/goaltrack/internal/model"
	"github.com/achievify/goaltrack/internal/session"
	"github.com/achievify/goaltrack/internal/store"
)

// ValidationError is a local, pre-network rejection. It never reaches
// the API client and leaves the store untouched.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Draft holds the user-supplied fields for a new goal. The id is
// assigned by the server.
type Draft struct {
	Text         string
	Category     model.Category
	Priority     model.Priority
	DueDate      *model.Date
	IsMeasurable bool
	CurrentValue float64
	TargetValue  float64
}

// Engine coordinates the goal store, the API client, and the session.
type Engine struct {
	store    *store.GoalStore
	client   *api.Client
	sessions *session.Manager
}

// New creates an engine over the given collaborators.
func New(s *store.GoalStore, c *api.Client, sm *session.Manager) *Engine {
	return &Engine{store: s, client: c, sessions: sm}
}

// Store exposes the underlying goal store for view derivation.
func (e *Engine) Store() *store.GoalStore {
	return e.store
}

// Refresh re-synchronizes the store with the server's collection. It
// is non-mutating from the server's point of view: on failure the
// prior local state is left intact.
func (e *Engine) Refresh(ctx context.Context) error {
	goals, err := e.client.ListGoals(ctx)
	if err != nil {
		e.handleAuthFailure(err)
		return err
	}

	for i := range goals {
		normalize(&goals[i])
	}
	e.store.ReplaceAll(goals)
	return nil
}

// Create validates the draft, sends it to the server, and absorbs the
// returned entity into the store. Creation is the one mutation without
// an optimistic step: the id is unknown until the server assigns it,
// and a local placeholder id is never invented.
func (e *Engine) Create(ctx context.Context, draft Draft) (*model.Goal, error) {
	text := strings.TrimSpace(draft.Text)
	if text == "" {
		return nil, &ValidationError{Message: "goal text cannot be empty"}
	}
	if draft.IsMeasurable {
		if draft.TargetValue <= 0 {
			return nil, &ValidationError{Message: "target value must be greater than zero"}
		}
		if draft.CurrentValue < 0 || draft.CurrentValue > draft.TargetValue {
			return nil, &ValidationError{Message: "current value must be between zero and the target"}
		}
	}

	body := api.GoalCreate{
		Text:         text,
		DueDate:      draft.DueDate,
		Category:     string(model.NormalizeCategory(draft.Category)),
		Priority:     string(model.NormalizePriority(draft.Priority)),
		IsMeasurable: draft.IsMeasurable,
		CurrentValue: draft.CurrentValue,
		TargetValue:  draft.TargetValue,
	}

	created, err := e.client.CreateGoal(ctx, body)
	if err != nil {
		e.handleAuthFailure(err)
		return nil, err
	}

	normalize(created)
	e.store.Upsert(*created)
	return created, nil
}

// ToggleComplete flips a goal's completion state locally, then pushes
// the change. A remote failure reconciles the whole store.
func (e *Engine) ToggleComplete(ctx context.Context, id string) error {
	goal, ok := e.store.Get(id)
	if !ok {
		return &ValidationError{Message: "unknown goal"}
	}

	completed := !goal.Completed
	goal.Completed = completed
	e.store.Upsert(goal)

	_, err := e.client.UpdateGoal(ctx, id, api.GoalUpdate{Completed: &completed})
	return e.reconcileOnFailure(ctx, err)
}

// EditText replaces a goal's text locally, then pushes the change.
func (e *Engine) EditText(ctx context.Context, id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return &ValidationError{Message: "goal text cannot be empty"}
	}

	goal, ok := e.store.Get(id)
	if !ok {
		return &ValidationError{Message: "unknown goal"}
	}
	if goal.Text == text {
		return nil
	}

	goal.Text = text
	e.store.Upsert(goal)

	_, err := e.client.UpdateGoal(ctx, id, api.GoalUpdate{Text: &text})
	return e.reconcileOnFailure(ctx, err)
}

// AdjustProgress sets a measurable goal's current value. Completion is
// derived locally as currentValue == targetValue and pushed as part of
// the same update, so the flip is visible before the call resolves.
func (e *Engine) AdjustProgress(ctx context.Context, id string, value float64) error {
	goal, ok := e.store.Get(id)
	if !ok {
		return &ValidationError{Message: "unknown goal"}
	}
	if !goal.IsMeasurable {
		return &ValidationError{Message: "goal is not measurable"}
	}
	if value < 0 || value > goal.TargetValue {
		return &ValidationError{Message: "current value must be between zero and the target"}
	}

	completed := value == goal.TargetValue
	goal.CurrentValue = value
	goal.Completed = completed
	e.store.Upsert(goal)

	_, err := e.client.UpdateGoal(ctx, id, api.GoalUpdate{
		CurrentValue: &value,
		Completed:    &completed,
	})
	return e.reconcileOnFailure(ctx, err)
}

// Delete removes a goal locally, then remotely.
func (e *Engine) Delete(ctx context.Context, id string) error {
	e.store.Remove(id)
	err := e.client.DeleteGoal(ctx, id)
	return e.reconcileOnFailure(ctx, err)
}

// ClearCompleted removes every completed goal. The deletes are issued
// concurrently and awaited jointly; the store is then re-synchronized
// with a single refetch regardless of outcome, so a partial failure
// never leaves an interleaved half-reconciled state.
func (e *Engine) ClearCompleted(ctx context.Context) error {
	var ids []string
	for _, g := range e.store.Snapshot() {
		if g.Completed {
			ids = append(ids, g.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	for _, id := range ids {
		e.store.Remove(id)
	}

	var group errgroup.Group
	for _, id := range ids {
		group.Go(func() error {
			return e.client.DeleteGoal(ctx, id)
		})
	}
	batchErr := group.Wait()

	if api.IsAuthError(batchErr) {
		e.forceLogout()
		return batchErr
	}

	// Re-fetch to be sure, even when every delete succeeded.
	if err := e.Refresh(ctx); err != nil && batchErr == nil {
		return err
	}
	return batchErr
}

// Logout clears the session and the cached collection.
func (e *Engine) Logout() {
	e.forceLogout()
}

// reconcileOnFailure resolves a failed mutating call. An authorization
// failure clears the session and store with no refetch, since no
// session remains to refetch with. Any other failure discards the
// optimistic change by re-fetching the authoritative collection.
func (e *Engine) reconcileOnFailure(ctx context.Context, callErr error) error {
	if callErr == nil {
		return nil
	}

	if api.IsAuthError(callErr) {
		e.forceLogout()
		return callErr
	}

	if goals, err := e.client.ListGoals(ctx); err == nil {
		for i := range goals {
			normalize(&goals[i])
		}
		e.store.ReplaceAll(goals)
	}
	return callErr
}

// handleAuthFailure clears the session and store when err is an
// authorization failure.
func (e *Engine) handleAuthFailure(err error) {
	if api.IsAuthError(err) {
		e.forceLogout()
	}
}

func (e *Engine) forceLogout() {
	e.sessions.Clear()
	e.store.Clear()
}

// normalize maps unrecognized enum values from the server onto their
// defaults.
func normalize(g *model.Goal) {
	g.Category = model.NormalizeCategory(g.Category)
	g.Priority = model.NormalizePriority(g.Priority)
}
