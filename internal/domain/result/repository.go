package result

import "context"

// Repository describes result persistence needs from use cases.
type Repository interface {
	Get(ctx context.Context, matchID int64) (Result, bool, error)
	Upsert(ctx context.Context, item Result) error
	List(ctx context.Context) ([]Result, error)
}
