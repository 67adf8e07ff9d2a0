package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mikiasgoitom/likesync/internal/domain/entity"
	"github.com/mikiasgoitom/likesync/internal/infrastructure/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsDefaultForAbsentKey(t *testing.T) {
	s := store.NewLikeStateStore()
	st := s.Get("r1")
	assert.Equal(t, entity.DefaultLikeState(), st)
}

func TestUpdateCreatesEntryLazily(t *testing.T) {
	s := store.NewLikeStateStore()
	s.Update("r1", func(st entity.LikeState) entity.LikeState {
		st.Liked = true
		st.Count++
		return st
	})
	st := s.Get("r1")
	assert.True(t, st.Liked)
	assert.Equal(t, 1, st.Count)
}

func TestSetIfAbsent(t *testing.T) {
	s := store.NewLikeStateStore()
	seeded := s.SetIfAbsent("r2", entity.LikeState{Liked: true, Count: 9})
	assert.True(t, seeded)
	assert.Equal(t, entity.LikeState{Liked: true, Count: 9}, s.Get("r2"))

	// A second seed with different values is a no-op.
	seeded = s.SetIfAbsent("r2", entity.LikeState{Liked: false, Count: 1})
	assert.False(t, seeded)
	assert.Equal(t, entity.LikeState{Liked: true, Count: 9}, s.Get("r2"))
}

func TestConcurrentUpdatesOnDistinctKeys(t *testing.T) {
	s := store.NewLikeStateStore()
	const workers = 50
	const iterations = 20

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("item-%d", i)
			for j := 0; j < iterations; j++ {
				s.Update(key, func(st entity.LikeState) entity.LikeState {
					st.Count++
					return st
				})
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		assert.Equal(t, iterations, s.Get(fmt.Sprintf("item-%d", i)).Count)
	}
}

func TestConcurrentUpdatesOnSameKeyLoseNothing(t *testing.T) {
	s := store.NewLikeStateStore()
	const workers = 20
	const iterations = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				s.Update("shared", func(st entity.LikeState) entity.LikeState {
					st.Count++
					return st
				})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*iterations, s.Get("shared").Count)
}

func TestSubscribeReplaysLatestSnapshot(t *testing.T) {
	s := store.NewLikeStateStore()
	s.Update("r1", func(st entity.LikeState) entity.LikeState {
		st.Count = 5
		return st
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := s.Subscribe(ctx)

	select {
	case snap := <-ch:
		assert.Equal(t, 5, snap["r1"].Count)
	case <-time.After(time.Second):
		t.Fatal("expected an immediate snapshot replay")
	}
}

func TestSubscribeReceivesSubsequentMutations(t *testing.T) {
	s := store.NewLikeStateStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := s.Subscribe(ctx)

	// Drain the replay snapshot.
	require.NotNil(t, <-ch)

	s.Update("r1", func(st entity.LikeState) entity.LikeState {
		st.Liked = true
		return st
	})

	select {
	case snap := <-ch:
		assert.True(t, snap["r1"].Liked)
	case <-time.After(time.Second):
		t.Fatal("expected a snapshot after the update")
	}
}

func TestSubscribeClosesOnCancel(t *testing.T) {
	s := store.NewLikeStateStore()
	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Subscribe(ctx)
	<-ch
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("expected the stream to close after cancel")
		}
	}
}

func TestSlowSubscriberStillSeesLatest(t *testing.T) {
	s := store.NewLikeStateStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := s.Subscribe(ctx)

	// Overflow the subscriber buffer without reading.
	for i := 0; i < 100; i++ {
		s.Update("r1", func(st entity.LikeState) entity.LikeState {
			st.Count++
			return st
		})
	}

	var last map[string]entity.LikeState
	timeout := time.After(time.Second)
drain:
	for {
		select {
		case snap := <-ch:
			last = snap
			if snap["r1"].Count == 100 {
				break drain
			}
		case <-timeout:
			break drain
		}
	}
	require.NotNil(t, last)
	assert.Equal(t, 100, last["r1"].Count)
}
