package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/predipto/internal/domain/result"
)

type ResultRepository struct {
	mu    sync.RWMutex
	items map[int64]result.Result
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{items: make(map[int64]result.Result)}
}

func (r *ResultRepository) Get(_ context.Context, matchID int64) (result.Result, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchID]
	return item, ok, nil
}

func (r *ResultRepository) Upsert(_ context.Context, item result.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.MatchID] = item
	return nil
}

func (r *ResultRepository) List(_ context.Context) ([]result.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.Result, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })
	return out, nil
}
