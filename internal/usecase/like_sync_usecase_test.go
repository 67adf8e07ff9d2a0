package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/mikiasgoitom/likesync/internal/domain/entity"
	"github.com/mikiasgoitom/likesync/internal/infrastructure/gate"
	"github.com/mikiasgoitom/likesync/internal/infrastructure/store"
	"github.com/mikiasgoitom/likesync/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engine struct {
	store  *store.LikeStateStore
	gate   *gate.RequestGate
	api    *fakeLikeAPI
	sync   *usecase.LikeSyncUsecase
	sleeps []time.Duration
}

func newEngine(t *testing.T, api *fakeLikeAPI) *engine {
	t.Helper()
	e := &engine{
		store: store.NewLikeStateStore(),
		gate:  gate.NewRequestGate(time.Second),
		api:   api,
	}
	executor := usecase.NewMutationExecutor(api, noopLogger{}, 3, time.Second)
	executor.SetSleep(func(ctx context.Context, d time.Duration) error {
		e.sleeps = append(e.sleeps, d)
		return ctx.Err()
	})
	resolver := usecase.NewConflictResolver(e.store, api)
	e.sync = usecase.NewLikeSyncUsecase(e.store, e.gate, executor, resolver, noopLogger{})
	return e
}

func TestToggleCommitsServerValues(t *testing.T) {
	// Scenario: like an unliked item, server confirms with count 5.
	e := newEngine(t, &fakeLikeAPI{script: []fakeResult{
		{summary: &entity.LikeSummary{Liked: true, Count: 5}},
	}})

	summary, err := e.sync.Toggle(context.Background(), "r1", false)
	require.NoError(t, err)
	assert.Equal(t, &entity.LikeSummary{Liked: true, Count: 5}, summary)

	st := e.sync.Get("r1")
	assert.Equal(t, entity.LikeState{Liked: true, Count: 5}, st)
	assert.Equal(t, 1, e.api.likeCalls)
}

func TestToggleRollsBackAfterExhaustedServerErrors(t *testing.T) {
	// Scenario: server returns 500 on all three attempts.
	e := newEngine(t, &fakeLikeAPI{script: []fakeResult{
		{err: fmt.Errorf("%w: status 500", entity.ErrServer)},
	}})
	e.sync.Preload([]entity.PreloadItem{{ID: "r1", Liked: false, Count: 3}})

	_, err := e.sync.Toggle(context.Background(), "r1", false)
	assert.ErrorIs(t, err, entity.ErrServer)
	assert.Equal(t, 3, e.api.likeCalls)

	st := e.sync.Get("r1")
	assert.False(t, st.Liked)
	assert.Equal(t, 3, st.Count)
	assert.False(t, st.IsLoading)
	assert.Equal(t, "Server error - please try again", st.Error)
}

func TestToggleRollbackRestoresPreCallCount(t *testing.T) {
	e := newEngine(t, &fakeLikeAPI{script: []fakeResult{
		{err: &entity.TerminalError{Status: http.StatusNotFound}},
	}})
	e.sync.Preload([]entity.PreloadItem{{ID: "r1", Liked: false, Count: 10}})

	_, err := e.sync.Toggle(context.Background(), "r1", false)
	var term *entity.TerminalError
	require.True(t, errors.As(err, &term))

	st := e.sync.Get("r1")
	assert.Equal(t, entity.LikeState{Liked: false, Count: 10, Error: "Item not found"}, st)
}

func TestSecondToggleWhileFirstInFlight(t *testing.T) {
	// Scenario: second toggle on the same item before the first resolves.
	api := &fakeLikeAPI{
		script:  []fakeResult{{summary: &entity.LikeSummary{Liked: true, Count: 1}}},
		entered: make(chan struct{}, 1),
		proceed: make(chan struct{}),
	}
	e := newEngine(t, api)

	done := make(chan error, 1)
	go func() {
		_, err := e.sync.Toggle(context.Background(), "r1", false)
		done <- err
	}()
	<-api.entered

	// The optimistic flip is already visible while the call is in flight.
	st := e.sync.Get("r1")
	assert.True(t, st.Liked)
	assert.Equal(t, 1, st.Count)
	assert.True(t, st.IsLoading)

	_, err := e.sync.Toggle(context.Background(), "r1", true)
	assert.ErrorIs(t, err, entity.ErrAlreadyInFlight)

	// The rejected call must not have disturbed the optimistic state.
	assert.Equal(t, st, e.sync.Get("r1"))

	close(api.proceed)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.likeCalls, "only one call reaches the network")
}

func TestToggleWithinIntervalIsRateLimited(t *testing.T) {
	e := newEngine(t, &fakeLikeAPI{script: []fakeResult{
		{summary: &entity.LikeSummary{Liked: true, Count: 1}},
	}})
	now := time.Now()
	e.gate.SetClock(func() time.Time { return now })

	_, err := e.sync.Toggle(context.Background(), "r1", false)
	require.NoError(t, err)
	committed := e.sync.Get("r1")

	now = now.Add(300 * time.Millisecond)
	_, err = e.sync.Toggle(context.Background(), "r1", true)
	var rl *entity.RateLimitedError
	require.True(t, errors.As(err, &rl))
	assert.Greater(t, rl.Wait, time.Duration(0))

	// Rejected calls never touch the store.
	assert.Equal(t, committed, e.sync.Get("r1"))
}

func TestToggleThrottledThenCommitted(t *testing.T) {
	// Scenario: 429 with Retry-After 2 on the first attempt, 200 on the second.
	e := newEngine(t, &fakeLikeAPI{script: []fakeResult{
		{err: &entity.RateLimitedError{Wait: 2 * time.Second}},
		{summary: &entity.LikeSummary{Liked: true, Count: 8}},
	}})

	summary, err := e.sync.Toggle(context.Background(), "r1", false)
	require.NoError(t, err)
	assert.Equal(t, 8, summary.Count)
	assert.Equal(t, []time.Duration{2 * time.Second}, e.sleeps)
	assert.Equal(t, entity.LikeState{Liked: true, Count: 8}, e.sync.Get("r1"))
}

func TestIsLoadingClearsOnEveryOutcome(t *testing.T) {
	success := newEngine(t, &fakeLikeAPI{script: []fakeResult{
		{summary: &entity.LikeSummary{Liked: true, Count: 1}},
	}})
	_, _ = success.sync.Toggle(context.Background(), "r1", false)
	assert.False(t, success.sync.Get("r1").IsLoading)

	failure := newEngine(t, &fakeLikeAPI{script: []fakeResult{
		{err: entity.ErrAuthRequired},
	}})
	_, _ = failure.sync.Toggle(context.Background(), "r1", false)
	assert.False(t, failure.sync.Get("r1").IsLoading)
}

func TestToggleAuthRequiredSurfacesDistinctly(t *testing.T) {
	e := newEngine(t, &fakeLikeAPI{script: []fakeResult{
		{err: entity.ErrAuthRequired},
	}})

	_, err := e.sync.Toggle(context.Background(), "r1", false)
	assert.ErrorIs(t, err, entity.ErrAuthRequired)
	assert.Equal(t, "Authentication required - please log in", e.sync.Get("r1").Error)
}

func TestRefreshOverwritesState(t *testing.T) {
	e := newEngine(t, &fakeLikeAPI{script: []fakeResult{
		{summary: &entity.LikeSummary{Liked: true, Count: 7}},
	}})
	e.store.Update("r1", func(st entity.LikeState) entity.LikeState {
		st.Error = "Server error - please try again"
		st.IsLoading = true
		return st
	})

	summary, err := e.sync.Refresh(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, 7, summary.Count)
	assert.Equal(t, entity.LikeState{Liked: true, Count: 7}, e.sync.Get("r1"))
	assert.Equal(t, 1, e.api.getCalls)
}

func TestRefreshIsIdempotent(t *testing.T) {
	e := newEngine(t, &fakeLikeAPI{script: []fakeResult{
		{summary: &entity.LikeSummary{Liked: true, Count: 7}},
	}})

	_, err := e.sync.Refresh(context.Background(), "r1")
	require.NoError(t, err)
	first := e.sync.Get("r1")

	_, err = e.sync.Refresh(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, first, e.sync.Get("r1"))
}

func TestPreloadSeedsOnlyAbsentItems(t *testing.T) {
	e := newEngine(t, &fakeLikeAPI{})

	e.sync.Preload([]entity.PreloadItem{{ID: "r2", Liked: true, Count: 9}})
	assert.Equal(t, entity.LikeState{Liked: true, Count: 9}, e.sync.Get("r2"))
	assert.Zero(t, e.api.calls(), "preload makes no network calls")

	// A second preload with different values is a no-op.
	e.sync.Preload([]entity.PreloadItem{{ID: "r2", Liked: false, Count: 1}})
	assert.Equal(t, entity.LikeState{Liked: true, Count: 9}, e.sync.Get("r2"))
}

func TestClearError(t *testing.T) {
	e := newEngine(t, &fakeLikeAPI{script: []fakeResult{
		{err: &entity.TerminalError{Status: http.StatusConflict}},
	}})

	_, err := e.sync.Toggle(context.Background(), "r1", false)
	require.Error(t, err)
	require.NotEmpty(t, e.sync.Get("r1").Error)

	e.sync.ClearError("r1")
	st := e.sync.Get("r1")
	assert.Empty(t, st.Error)
	assert.False(t, st.Liked, "clearing the error keeps the rolled back state")
}

func TestSubscribeReplaysAndFollowsItem(t *testing.T) {
	e := newEngine(t, &fakeLikeAPI{script: []fakeResult{
		{summary: &entity.LikeSummary{Liked: true, Count: 4}},
	}})
	e.sync.Preload([]entity.PreloadItem{{ID: "r1", Liked: false, Count: 3}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	states := e.sync.Subscribe(ctx, "r1")

	select {
	case st := <-states:
		assert.Equal(t, entity.LikeState{Liked: false, Count: 3}, st)
	case <-time.After(time.Second):
		t.Fatal("expected an immediate replay of the current state")
	}

	_, err := e.sync.Toggle(context.Background(), "r1", false)
	require.NoError(t, err)

	deadline := time.After(time.Second)
	for {
		select {
		case st := <-states:
			if (st == entity.LikeState{Liked: true, Count: 4}) {
				return
			}
		case <-deadline:
			t.Fatal("expected the committed state on the stream")
		}
	}
}

func TestGateReleasedAfterFailureAllowsRetryLater(t *testing.T) {
	e := newEngine(t, &fakeLikeAPI{script: []fakeResult{
		{err: &entity.TerminalError{Status: http.StatusBadRequest}},
		{summary: &entity.LikeSummary{Liked: true, Count: 1}},
	}})
	now := time.Now()
	e.gate.SetClock(func() time.Time { return now })

	_, err := e.sync.Toggle(context.Background(), "r1", false)
	require.Error(t, err)

	// Once the interval has passed the key must be admissible again.
	now = now.Add(2 * time.Second)
	_, err = e.sync.Toggle(context.Background(), "r1", false)
	assert.NoError(t, err)
}
