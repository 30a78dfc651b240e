package user

import "context"

// Repository describes user profile persistence needs from use cases.
type Repository interface {
	Get(ctx context.Context, userID string) (Profile, bool, error)
	Create(ctx context.Context, profile Profile) error
	Update(ctx context.Context, profile Profile) error
	SetTotalPoints(ctx context.Context, userID string, totalPoints int) error
	ListTopByPoints(ctx context.Context, limit int) ([]Profile, error)
}

// TotalRefresher is implemented by stores that can derive a user's total from
// the stored points rows in one statement. Implementations may return
// errors.ErrUnsupported when the backing store cannot.
type TotalRefresher interface {
	RefreshTotalPoints(ctx context.Context, userID string) (int, error)
}
