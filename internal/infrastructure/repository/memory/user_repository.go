package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/predipto/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.Profile
}

func NewUserRepository(seed []user.Profile) *UserRepository {
	items := make(map[string]user.Profile, len(seed))
	for _, item := range seed {
		items[item.UserID] = item
	}
	return &UserRepository{items: items}
}

func (r *UserRepository) Get(_ context.Context, userID string) (user.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID]
	return item, ok, nil
}

func (r *UserRepository) Create(_ context.Context, profile user.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[profile.UserID]; exists {
		return fmt.Errorf("user %s already exists", profile.UserID)
	}
	r.items[profile.UserID] = profile
	return nil
}

func (r *UserRepository) Update(_ context.Context, profile user.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.items[profile.UserID]
	if !exists {
		return fmt.Errorf("user %s not found", profile.UserID)
	}
	// Totals are owned by SetTotalPoints.
	profile.TotalPoints = current.TotalPoints
	r.items[profile.UserID] = profile
	return nil
}

func (r *UserRepository) SetTotalPoints(_ context.Context, userID string, totalPoints int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.items[userID]
	if !exists {
		return nil
	}
	current.TotalPoints = totalPoints
	r.items[userID] = current
	return nil
}

func (r *UserRepository) ListTopByPoints(_ context.Context, limit int) ([]user.Profile, error) {
	r.mu.RLock()
	out := make([]user.Profile, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	r.mu.RUnlock()

	user.SortByStanding(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
