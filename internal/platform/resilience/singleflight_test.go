package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroup_DoCollapsesConcurrentCalls(t *testing.T) {
	var g Group[string]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			got, err, _ := g.Do("recompute", func() (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil || got != "ok" {
				t.Errorf("unexpected result %q, %v", got, err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestGroup_DoReturnsZeroValueOnError(t *testing.T) {
	var g Group[[]int]
	boom := errors.New("boom")

	got, err, shared := g.Do("k", func() ([]int, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got != nil || shared {
		t.Fatalf("unexpected value %v shared=%t", got, shared)
	}
}
