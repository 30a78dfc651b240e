package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/predipto/internal/domain/prediction"
	"github.com/riskibarqy/predipto/internal/domain/scoring"
)

// PointsRepository keys rows like predictions so a rescore overwrites.
type PointsRepository struct {
	mu    sync.RWMutex
	items map[string]scoring.Points
}

func NewPointsRepository() *PointsRepository {
	return &PointsRepository{items: make(map[string]scoring.Points)}
}

func (r *PointsRepository) UpsertPoints(_ context.Context, points scoring.Points) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[prediction.BuildID(points.UserID, points.MatchID)] = points
	return nil
}

func (r *PointsRepository) GetPoints(_ context.Context, userID string, matchID int64) (scoring.Points, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[prediction.BuildID(userID, matchID)]
	return item, ok, nil
}

func (r *PointsRepository) ListPointsByUser(_ context.Context, userID string) ([]scoring.Points, error) {
	return r.filter(func(p scoring.Points) bool { return p.UserID == userID }), nil
}

func (r *PointsRepository) ListPointsByMatch(_ context.Context, matchID int64) ([]scoring.Points, error) {
	return r.filter(func(p scoring.Points) bool { return p.MatchID == matchID }), nil
}

func (r *PointsRepository) filter(keep func(scoring.Points) bool) []scoring.Points {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Points, 0)
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchID != out[j].MatchID {
			return out[i].MatchID < out[j].MatchID
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}
