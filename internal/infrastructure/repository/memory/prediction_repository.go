package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/predipto/internal/domain/prediction"
)

type PredictionRepository struct {
	mu    sync.RWMutex
	items map[string]prediction.Prediction
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{items: make(map[string]prediction.Prediction)}
}

func (r *PredictionRepository) Get(_ context.Context, userID string, matchID int64) (prediction.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[prediction.BuildID(userID, matchID)]
	if !ok {
		return prediction.Prediction{}, false, nil
	}
	return item, true, nil
}

func (r *PredictionRepository) Upsert(_ context.Context, item prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = prediction.BuildID(item.UserID, item.MatchID)
	r.items[item.ID] = item
	return nil
}

func (r *PredictionRepository) ListByUser(_ context.Context, userID string) ([]prediction.Prediction, error) {
	return r.filter(func(p prediction.Prediction) bool { return p.UserID == userID }), nil
}

func (r *PredictionRepository) ListByMatch(_ context.Context, matchID int64) ([]prediction.Prediction, error) {
	return r.filter(func(p prediction.Prediction) bool { return p.MatchID == matchID }), nil
}

func (r *PredictionRepository) filter(keep func(prediction.Prediction) bool) []prediction.Prediction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
