package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achievify/goaltrack/internal/api"
	"github.com/achievify/goaltrack/internal/model"
	"github.com/achievify/goaltrack/internal/session"
	"github.com/achievify/goaltrack/internal/store"
)

// fakeServer records requests and serves canned goal responses, enough
// to stand in for the REST API in engine tests.
type fakeServer struct {
	mu         sync.Mutex
	listCalls  int
	updates    map[string]api.GoalUpdate
	deletes    []string
	listBody   []model.Goal
	failPuts   bool
	failDelete bool
	status     int
}

func newFakeServer() *fakeServer {
	return &fakeServer{updates: make(map[string]api.GoalUpdate), status: http.StatusBadRequest}
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/goals":
		f.listCalls++
		json.NewEncoder(w).Encode(f.listBody)

	case r.Method == http.MethodPost && r.URL.Path == "/goals":
		var body api.GoalCreate
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(model.Goal{
			ID:           "srv-1",
			Text:         body.Text,
			Category:     model.Category(body.Category),
			Priority:     model.Priority(body.Priority),
			IsMeasurable: body.IsMeasurable,
			CurrentValue: body.CurrentValue,
			TargetValue:  body.TargetValue,
		})

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/goals/"):
		id := strings.TrimPrefix(r.URL.Path, "/goals/")
		var body api.GoalUpdate
		json.NewDecoder(r.Body).Decode(&body)
		f.updates[id] = body
		if f.failPuts {
			w.WriteHeader(f.status)
			w.Write([]byte(`{"error":"update rejected"}`))
			return
		}
		json.NewEncoder(w).Encode(model.Goal{ID: id})

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/goals/"):
		f.deletes = append(f.deletes, strings.TrimPrefix(r.URL.Path, "/goals/"))
		if f.failDelete {
			w.WriteHeader(f.status)
			w.Write([]byte(`{"error":"delete rejected"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeServer) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeServer) deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deletes...)
}

func newTestEngine(t *testing.T, fake *fakeServer) (*Engine, *store.GoalStore, *session.Manager) {
	t.Helper()

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	sessions := session.NewManagerWithKeyring(keyring.NewArrayKeyring(nil))
	require.NoError(t, sessions.Establish("tok-test", "user@example.com"))

	s := store.New()
	client := api.NewClient(srv.URL, sessions)
	return New(s, client, sessions), s, sessions
}

func TestCreateRejectsInvalidDraftBeforeNetwork(t *testing.T) {
	fake := newFakeServer()
	e, s, _ := newTestEngine(t, fake)

	_, err := e.Create(context.Background(), Draft{
		Text:         "drink water",
		IsMeasurable: true,
		TargetValue:  0,
	})

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, fake.listCount())
}

func TestCreateRejectsCurrentValueOutOfRange(t *testing.T) {
	fake := newFakeServer()
	e, s, _ := newTestEngine(t, fake)

	_, err := e.Create(context.Background(), Draft{
		Text:         "read pages",
		IsMeasurable: true,
		CurrentValue: 9,
		TargetValue:  5,
	})

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, s.Len())
}

func TestCreateAbsorbsServerAssignedID(t *testing.T) {
	fake := newFakeServer()
	e, s, _ := newTestEngine(t, fake)

	created, err := e.Create(context.Background(), Draft{
		Text:     "  learn chess  ",
		Category: model.CategoryLearning,
		Priority: model.PriorityHigh,
	})

	require.NoError(t, err)
	assert.Equal(t, "srv-1", created.ID)
	assert.Equal(t, "learn chess", created.Text)

	g, ok := s.Get("srv-1")
	assert.True(t, ok)
	assert.Equal(t, model.CategoryLearning, g.Category)
}

func TestToggleCompleteIsOptimistic(t *testing.T) {
	fake := newFakeServer()
	e, s, _ := newTestEngine(t, fake)
	s.Upsert(model.Goal{ID: "g1", Text: "walk"})

	err := e.ToggleComplete(context.Background(), "g1")

	require.NoError(t, err)
	g, _ := s.Get("g1")
	assert.True(t, g.Completed)

	fake.mu.Lock()
	update := fake.updates["g1"]
	fake.mu.Unlock()
	require.NotNil(t, update.Completed)
	assert.True(t, *update.Completed)
}

func TestFailedToggleReconcilesFromServer(t *testing.T) {
	fake := newFakeServer()
	fake.failPuts = true
	fake.listBody = []model.Goal{{ID: "g1", Text: "walk", Completed: false}}

	e, s, _ := newTestEngine(t, fake)
	s.Upsert(model.Goal{ID: "g1", Text: "walk"})

	err := e.ToggleComplete(context.Background(), "g1")

	assert.Error(t, err)
	// Optimistic flip was discarded by the refetch.
	g, ok := s.Get("g1")
	assert.True(t, ok)
	assert.False(t, g.Completed)
	assert.Equal(t, 1, fake.listCount())
}

func TestAdjustProgressDerivesCompletionLocally(t *testing.T) {
	fake := newFakeServer()
	e, s, _ := newTestEngine(t, fake)
	s.Upsert(model.Goal{
		ID: "g1", Text: "read pages",
		IsMeasurable: true, CurrentValue: 4, TargetValue: 5,
	})

	err := e.AdjustProgress(context.Background(), "g1", 5)

	require.NoError(t, err)
	g, _ := s.Get("g1")
	assert.True(t, g.Completed)
	assert.Equal(t, 5.0, g.CurrentValue)

	fake.mu.Lock()
	update := fake.updates["g1"]
	fake.mu.Unlock()
	require.NotNil(t, update.Completed)
	assert.True(t, *update.Completed)
	require.NotNil(t, update.CurrentValue)
	assert.Equal(t, 5.0, *update.CurrentValue)
}

func TestAdjustProgressRejectsOutOfRange(t *testing.T) {
	fake := newFakeServer()
	e, s, _ := newTestEngine(t, fake)
	s.Upsert(model.Goal{ID: "g1", IsMeasurable: true, TargetValue: 5})

	var vErr *ValidationError
	assert.ErrorAs(t, e.AdjustProgress(context.Background(), "g1", -1), &vErr)
	assert.ErrorAs(t, e.AdjustProgress(context.Background(), "g1", 6), &vErr)

	g, _ := s.Get("g1")
	assert.Zero(t, g.CurrentValue)
}

func TestAdjustProgressRejectsNonMeasurable(t *testing.T) {
	fake := newFakeServer()
	e, s, _ := newTestEngine(t, fake)
	s.Upsert(model.Goal{ID: "g1", Text: "call mom"})

	var vErr *ValidationError
	assert.ErrorAs(t, e.AdjustProgress(context.Background(), "g1", 1), &vErr)
}

func TestEditTextSkipsUnchangedText(t *testing.T) {
	fake := newFakeServer()
	e, s, _ := newTestEngine(t, fake)
	s.Upsert(model.Goal{ID: "g1", Text: "walk"})

	err := e.EditText(context.Background(), "g1", "  walk  ")

	require.NoError(t, err)
	fake.mu.Lock()
	_, pushed := fake.updates["g1"]
	fake.mu.Unlock()
	assert.False(t, pushed)
}

func TestAuthFailureClearsSessionWithoutRefetch(t *testing.T) {
	fake := newFakeServer()
	fake.failPuts = true
	fake.status = http.StatusUnauthorized

	e, s, sessions := newTestEngine(t, fake)
	s.Upsert(model.Goal{ID: "g1", Text: "walk"})

	err := e.ToggleComplete(context.Background(), "g1")

	assert.True(t, api.IsAuthError(err))
	assert.Empty(t, sessions.Token())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, fake.listCount())
}

func TestRefreshFailureLeavesStoreIntact(t *testing.T) {
	srv := httptest.NewServer(newFakeServer())
	srv.Close() // nothing listening any more

	s := store.New()
	s.Upsert(model.Goal{ID: "g1", Text: "walk"})

	sessions := session.NewManagerWithKeyring(keyring.NewArrayKeyring(nil))
	e := New(s, api.NewClient(srv.URL, sessions), sessions)

	err := e.Refresh(context.Background())

	assert.True(t, api.IsConnectivityError(err))
	assert.Equal(t, 1, s.Len())
}

func TestRefreshNormalizesUnknownEnums(t *testing.T) {
	fake := newFakeServer()
	fake.listBody = []model.Goal{
		{ID: "g1", Text: "walk", Category: "Chores", Priority: "urgent"},
	}
	e, s, _ := newTestEngine(t, fake)

	require.NoError(t, e.Refresh(context.Background()))

	g, _ := s.Get("g1")
	assert.Equal(t, model.CategoryOther, g.Category)
	assert.Equal(t, model.PriorityMedium, g.Priority)
}

func TestDeleteRemovesLocallyFirst(t *testing.T) {
	fake := newFakeServer()
	e, s, _ := newTestEngine(t, fake)
	s.Upsert(model.Goal{ID: "g1", Text: "walk"})

	err := e.Delete(context.Background(), "g1")

	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, []string{"g1"}, fake.deleted())
}

func TestClearCompletedDeletesAndRefetches(t *testing.T) {
	fake := newFakeServer()
	fake.listBody = []model.Goal{{ID: "c", Text: "keep", Completed: false}}

	e, s, _ := newTestEngine(t, fake)
	s.ReplaceAll([]model.Goal{
		{ID: "a", Completed: true},
		{ID: "b", Completed: true},
		{ID: "c", Completed: false},
	})

	err := e.ClearCompleted(context.Background())

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, fake.deleted())
	// Always re-synchronized from the server afterwards.
	assert.Equal(t, 1, fake.listCount())
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("c")
	assert.True(t, ok)
}

func TestClearCompletedWithNothingToDo(t *testing.T) {
	fake := newFakeServer()
	e, s, _ := newTestEngine(t, fake)
	s.Upsert(model.Goal{ID: "a", Completed: false})

	err := e.ClearCompleted(context.Background())

	require.NoError(t, err)
	assert.Empty(t, fake.deleted())
	assert.Equal(t, 0, fake.listCount())
}

func TestClearCompletedPartialFailureStillRefetches(t *testing.T) {
	fake := newFakeServer()
	fake.failDelete = true
	fake.listBody = []model.Goal{
		{ID: "a", Completed: true},
		{ID: "b", Completed: false},
	}

	e, s, _ := newTestEngine(t, fake)
	s.ReplaceAll([]model.Goal{
		{ID: "a", Completed: true},
		{ID: "b", Completed: false},
	})

	err := e.ClearCompleted(context.Background())

	assert.Error(t, err)
	// The failed delete came back via the refetch.
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, fake.listCount())
}

func TestLogoutClearsSessionAndStore(t *testing.T) {
	fake := newFakeServer()
	e, s, sessions := newTestEngine(t, fake)
	s.Upsert(model.Goal{ID: "g1"})

	e.Logout()

	assert.Empty(t, sessions.Token())
	assert.Equal(t, 0, s.Len())
}
