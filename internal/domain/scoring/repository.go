package scoring

import "context"

// Repository persists computed points, keyed by (user, match).
type Repository interface {
	UpsertPoints(ctx context.Context, points Points) error
	GetPoints(ctx context.Context, userID string, matchID int64) (Points, bool, error)
	ListPointsByUser(ctx context.Context, userID string) ([]Points, error)
	ListPointsByMatch(ctx context.Context, matchID int64) ([]Points, error)
}
