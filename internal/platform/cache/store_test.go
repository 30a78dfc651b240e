package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresEntriesAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)
	store := NewStore[int](time.Minute)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "leaderboard:10", 42)
	if got, ok := store.Get(context.Background(), "leaderboard:10"); !ok || got != 42 {
		t.Fatalf("expected cached value, got=%d ok=%v", got, ok)
	}

	now = now.Add(time.Minute)
	if _, ok := store.Get(context.Background(), "leaderboard:10"); ok {
		t.Fatalf("expected entry to expire")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", store.Len())
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore[string](0)
	ctx := context.Background()
	store.Set(ctx, "leaderboard:10", "a")
	store.Set(ctx, "leaderboard:25", "b")
	store.Set(ctx, "competitions", "c")

	store.DeletePrefix(ctx, "leaderboard:")

	if _, ok := store.Get(ctx, "leaderboard:10"); ok {
		t.Fatalf("expected leaderboard:10 to be removed")
	}
	if _, ok := store.Get(ctx, "competitions"); !ok {
		t.Fatalf("expected unrelated key to survive")
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", errUnexpectedValue
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, errUnexpectedValue) {
		t.Fatalf("expected loader error, got %v", err)
	}
	got, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil || got != "ok" {
		t.Fatalf("expected retry to load value, got=%q err=%v", got, err)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
