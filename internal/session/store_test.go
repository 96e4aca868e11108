package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/cart-tracker/internal/cart"
	"github.com/rogerio-castellano/cart-tracker/internal/models"
)

var product1 = models.Product{ID: 1, Name: "Product 1", Price: 10}

func TestStore_CreateAndDispatch(t *testing.T) {
	s := NewStore(time.Minute)
	id := s.Create()

	state, err := s.State(id)
	require.NoError(t, err)
	assert.Equal(t, cart.EmptyState(), state)

	state, err = s.Dispatch(id, cart.AddItem{Product: product1})
	require.NoError(t, err)
	assert.Equal(t, 10.0, state.Total)

	again, err := s.State(id)
	require.NoError(t, err)
	assert.Equal(t, state, again)
}

func TestStore_UnknownSession(t *testing.T) {
	s := NewStore(time.Minute)

	_, err := s.State("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = s.Dispatch("nope", cart.ClearCart{})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.False(t, s.Delete("nope"))
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	s := NewStore(time.Minute)
	a, b := s.Create(), s.Create()
	require.NotEqual(t, a, b)

	_, err := s.Dispatch(a, cart.AddItem{Product: product1})
	require.NoError(t, err)

	stateB, err := s.State(b)
	require.NoError(t, err)
	assert.Empty(t, stateB.Items)
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.Delete(a))
	assert.Equal(t, 1, s.Len())
}

func TestStore_ConcurrentDispatchIsSerialized(t *testing.T) {
	s := NewStore(time.Minute)
	id := s.Create()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Dispatch(id, cart.AddItem{Product: product1})
		}()
	}
	wg.Wait()

	state, err := s.State(id)
	require.NoError(t, err)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 100, state.Items[0].Quantity)
	assert.Equal(t, 1000.0, state.Total)
}

func TestStore_Cleanup(t *testing.T) {
	now := time.Date(2025, 7, 3, 10, 0, 0, 0, time.UTC)
	s := NewStore(10 * time.Minute)
	s.now = func() time.Time { return now }

	idle := s.Create()
	active := s.Create()

	now = now.Add(8 * time.Minute)
	_, err := s.Dispatch(active, cart.ClearCart{})
	require.NoError(t, err)

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 1, s.Cleanup())

	_, err = s.State(idle)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.State(active)
	assert.NoError(t, err)
}

func TestStore_CleanupSkipsBusySessions(t *testing.T) {
	var clockMu sync.Mutex
	now := time.Date(2025, 7, 3, 10, 0, 0, 0, time.UTC)
	s := NewStore(time.Minute)
	s.now = func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		return now
	}

	idle := s.Create()
	busy := s.Create()

	clockMu.Lock()
	now = now.Add(10 * time.Minute)
	clockMu.Unlock()

	entered := make(chan struct{})
	release := make(chan struct{})
	applied := make(chan error, 1)
	go func() {
		_, err := s.Apply(busy, func(st models.CartState) models.CartState {
			close(entered)
			<-release
			return st
		})
		applied <- err
	}()
	<-entered

	removed := make(chan int, 1)
	go func() { removed <- s.Cleanup() }()

	select {
	case n := <-removed:
		assert.Equal(t, 1, n)
	case <-time.After(time.Second):
		close(release)
		t.Fatal("cleanup blocked on a busy session")
	}

	_, err := s.State(idle)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	close(release)
	require.NoError(t, <-applied)
	assert.Zero(t, s.Cleanup())
	_, err = s.State(busy)
	assert.NoError(t, err)
}

func TestStore_CleanupDisabledWithoutTTL(t *testing.T) {
	s := NewStore(0)
	s.now = func() time.Time { return time.Unix(0, 0) }
	s.Create()
	s.now = time.Now
	assert.Zero(t, s.Cleanup())
	assert.Equal(t, 1, s.Len())
}

func TestStore_StartCleanupLoopStopsWithContext(t *testing.T) {
	s := NewStore(time.Nanosecond)
	s.Create()

	ctx, cancel := context.WithCancel(context.Background())
	removed := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		s.StartCleanupLoop(ctx, time.Millisecond, func(n int) {
			select {
			case removed <- n:
			default:
			}
		})
		close(done)
	}()

	select {
	case n := <-removed:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup loop did not run")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}
