package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/riskibarqy/predipto/internal/domain/result"
	"github.com/riskibarqy/predipto/internal/domain/user"
	basecache "github.com/riskibarqy/predipto/internal/platform/cache"
)

type cachedLookup[T any] struct {
	value  T
	exists bool
}

// ResultRepository caches result lookups. Results are read on every
// prediction write and change only when an admin records a score.
type ResultRepository struct {
	next  result.Repository
	byID  *basecache.Store[cachedLookup[result.Result]]
	lists *basecache.Store[[]result.Result]
}

func NewResultRepository(next result.Repository, ttl time.Duration) *ResultRepository {
	return &ResultRepository{
		next:  next,
		byID:  basecache.NewStore[cachedLookup[result.Result]](ttl),
		lists: basecache.NewStore[[]result.Result](ttl),
	}
}

func (r *ResultRepository) Get(ctx context.Context, matchID int64) (result.Result, bool, error) {
	key := "result:id:" + strconv.FormatInt(matchID, 10)
	cached, err := r.byID.GetOrLoad(ctx, key, func(ctx context.Context) (cachedLookup[result.Result], error) {
		item, exists, err := r.next.Get(ctx, matchID)
		if err != nil {
			return cachedLookup[result.Result]{}, err
		}
		return cachedLookup[result.Result]{value: item, exists: exists}, nil
	})
	if err != nil {
		return result.Result{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *ResultRepository) Upsert(ctx context.Context, item result.Result) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.byID.Delete(ctx, "result:id:"+strconv.FormatInt(item.MatchID, 10))
	r.lists.DeletePrefix(ctx, "result:list")
	return nil
}

func (r *ResultRepository) List(ctx context.Context) ([]result.Result, error) {
	items, err := r.lists.GetOrLoad(ctx, "result:list", func(ctx context.Context) ([]result.Result, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]result.Result(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]result.Result(nil), items...), nil
}

// UserRepository caches profile lookups by user id. Writes go through and
// drop the cached profile.
type UserRepository struct {
	next     user.Repository
	profiles *basecache.Store[cachedLookup[user.Profile]]
}

func NewUserRepository(next user.Repository, ttl time.Duration) *UserRepository {
	return &UserRepository{next: next, profiles: basecache.NewStore[cachedLookup[user.Profile]](ttl)}
}

func (r *UserRepository) Get(ctx context.Context, userID string) (user.Profile, bool, error) {
	cached, err := r.profiles.GetOrLoad(ctx, "user:id:"+userID, func(ctx context.Context) (cachedLookup[user.Profile], error) {
		item, exists, err := r.next.Get(ctx, userID)
		if err != nil {
			return cachedLookup[user.Profile]{}, err
		}
		return cachedLookup[user.Profile]{value: item, exists: exists}, nil
	})
	if err != nil {
		return user.Profile{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *UserRepository) Create(ctx context.Context, profile user.Profile) error {
	defer r.forget(ctx, profile.UserID)
	return r.next.Create(ctx, profile)
}

func (r *UserRepository) Update(ctx context.Context, profile user.Profile) error {
	defer r.forget(ctx, profile.UserID)
	return r.next.Update(ctx, profile)
}

func (r *UserRepository) SetTotalPoints(ctx context.Context, userID string, totalPoints int) error {
	defer r.forget(ctx, userID)
	return r.next.SetTotalPoints(ctx, userID, totalPoints)
}

func (r *UserRepository) RefreshTotalPoints(ctx context.Context, userID string) (int, error) {
	refresher, ok := r.next.(user.TotalRefresher)
	if !ok {
		return 0, errors.ErrUnsupported
	}
	defer r.forget(ctx, userID)
	return refresher.RefreshTotalPoints(ctx, userID)
}

// ListTopByPoints is not cached here; the leaderboard service owns that cache.
func (r *UserRepository) ListTopByPoints(ctx context.Context, limit int) ([]user.Profile, error) {
	return r.next.ListTopByPoints(ctx, limit)
}

func (r *UserRepository) forget(ctx context.Context, userID string) {
	r.profiles.Delete(ctx, "user:id:"+userID)
}
