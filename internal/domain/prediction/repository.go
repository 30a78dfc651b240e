package prediction

import "context"

// Repository describes prediction persistence needs from use cases.
type Repository interface {
	Get(ctx context.Context, userID string, matchID int64) (Prediction, bool, error)
	Upsert(ctx context.Context, item Prediction) error
	ListByUser(ctx context.Context, userID string) ([]Prediction, error)
	ListByMatch(ctx context.Context, matchID int64) ([]Prediction, error)
}
