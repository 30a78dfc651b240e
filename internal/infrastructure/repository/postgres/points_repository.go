package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/predipto/internal/domain/scoring"
	qb "github.com/riskibarqy/predipto/internal/platform/querybuilder"
)

type PointsRepository struct {
	db *sqlx.DB
}

func NewPointsRepository(db *sqlx.DB) *PointsRepository {
	return &PointsRepository{db: db}
}

func (r *PointsRepository) UpsertPoints(ctx context.Context, points scoring.Points) error {
	model := pointsTableModel{
		UserID:       points.UserID,
		MatchID:      points.MatchID,
		Points:       points.Points,
		Tier:         string(points.Tier),
		CalculatedAt: points.CalculatedAt,
	}

	query, args, err := qb.InsertModel("prediction_points", model, `ON CONFLICT (user_id, match_id)
DO UPDATE SET
    points = EXCLUDED.points,
    tier = EXCLUDED.tier,
    calculated_at = EXCLUDED.calculated_at`)
	if err != nil {
		return fmt.Errorf("build upsert points query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert points: %w", err)
	}
	return nil
}

func (r *PointsRepository) GetPoints(ctx context.Context, userID string, matchID int64) (scoring.Points, bool, error) {
	query, args, err := qb.Select("*").From("prediction_points").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("match_id", matchID),
		).
		ToSQL()
	if err != nil {
		return scoring.Points{}, false, fmt.Errorf("build get points query: %w", err)
	}

	var row pointsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.Points{}, false, nil
		}
		return scoring.Points{}, false, fmt.Errorf("get points: %w", err)
	}
	return pointsFromRow(row), true, nil
}

func (r *PointsRepository) ListPointsByUser(ctx context.Context, userID string) ([]scoring.Points, error) {
	return r.list(ctx, "list points by user", qb.Eq("user_id", userID))
}

func (r *PointsRepository) ListPointsByMatch(ctx context.Context, matchID int64) ([]scoring.Points, error) {
	return r.list(ctx, "list points by match", qb.Eq("match_id", matchID))
}

func (r *PointsRepository) list(ctx context.Context, op string, condition qb.Condition) ([]scoring.Points, error) {
	query, args, err := qb.Select("*").From("prediction_points").
		Where(condition).
		OrderBy("match_id", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []pointsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]scoring.Points, 0, len(rows))
	for _, row := range rows {
		out = append(out, pointsFromRow(row))
	}
	return out, nil
}

func pointsFromRow(row pointsTableModel) scoring.Points {
	return scoring.Points{
		UserID:       row.UserID,
		MatchID:      row.MatchID,
		Points:       row.Points,
		Tier:         scoring.Tier(row.Tier),
		CalculatedAt: row.CalculatedAt,
	}
}
