package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/predipto/internal/domain/user"
	qb "github.com/riskibarqy/predipto/internal/platform/querybuilder"
)

var ErrUserExists = errors.New("user already exists")

type UserRepository struct {
	db *sqlx.DB
}

var _ user.TotalRefresher = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Get(ctx context.Context, userID string) (user.Profile, bool, error) {
	query, args, err := qb.Select("*").From("users").
		Where(qb.Eq("user_id", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.Profile{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Profile{}, false, nil
		}
		return user.Profile{}, false, fmt.Errorf("get user: %w", err)
	}
	return userFromRow(row), true, nil
}

func (r *UserRepository) Create(ctx context.Context, profile user.Profile) error {
	model := userInsertModel{
		UserID:      profile.UserID,
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		TotalPoints: profile.TotalPoints,
		IsAdmin:     profile.IsAdmin,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}

	query, args, err := qb.InsertModel("users", model, "")
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user=%s", ErrUserExists, profile.UserID)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update writes the editable profile fields; totals and the admin flag are
// left untouched.
func (r *UserRepository) Update(ctx context.Context, profile user.Profile) error {
	query, args, err := qb.Update("users").
		Set("display_name", profile.DisplayName).
		Set("email", profile.Email).
		Set("updated_at", profile.UpdatedAt).
		Where(qb.Eq("user_id", profile.UserID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepository) SetTotalPoints(ctx context.Context, userID string, totalPoints int) error {
	query, args, err := qb.Update("users").
		Set("total_points", totalPoints).
		SetRaw("updated_at", "NOW()").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set total points query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set total points: %w", err)
	}
	return nil
}

const refreshTotalPointsQuery = `UPDATE users
SET total_points = (SELECT COALESCE(SUM(points), 0) FROM prediction_points WHERE user_id = $1),
    updated_at = NOW()
WHERE user_id = $1
RETURNING total_points`

// RefreshTotalPoints re-sums the user's points rows inside the UPDATE so
// concurrent scorers cannot overwrite each other with stale totals. Unknown
// users are a no-op.
func (r *UserRepository) RefreshTotalPoints(ctx context.Context, userID string) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, refreshTotalPointsQuery, userID); err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("refresh total points: %w", err)
	}
	return total, nil
}

func (r *UserRepository) ListTopByPoints(ctx context.Context, limit int) ([]user.Profile, error) {
	query, args, err := qb.Select("*").From("users").
		OrderBy("total_points DESC", "LOWER(display_name)", "user_id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list top users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list top users: %w", err)
	}

	out := make([]user.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, userFromRow(row))
	}
	return out, nil
}

func userFromRow(row userTableModel) user.Profile {
	return user.Profile{
		UserID:      row.UserID,
		Email:       row.Email,
		DisplayName: row.DisplayName,
		TotalPoints: row.TotalPoints,
		IsAdmin:     row.IsAdmin,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
