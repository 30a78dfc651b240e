package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/predipto/internal/domain/prediction"
	qb "github.com/riskibarqy/predipto/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Get(ctx context.Context, userID string, matchID int64) (prediction.Prediction, bool, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("match_id", matchID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("build get prediction query: %w", err)
	}

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("get prediction: %w", err)
	}

	return predictionFromRow(row), true, nil
}

func (r *PredictionRepository) Upsert(ctx context.Context, item prediction.Prediction) error {
	insertModel := predictionInsertModel{
		PublicID:  prediction.BuildID(item.UserID, item.MatchID),
		UserID:    item.UserID,
		MatchID:   item.MatchID,
		HomeScore: item.HomeScore,
		AwayScore: item.AwayScore,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}

	query, args, err := qb.InsertModel("predictions", insertModel, `ON CONFLICT (user_id, match_id)
DO UPDATE SET
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert prediction query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID string) ([]prediction.Prediction, error) {
	return r.list(ctx, "list predictions by user", qb.Eq("user_id", userID))
}

func (r *PredictionRepository) ListByMatch(ctx context.Context, matchID int64) ([]prediction.Prediction, error) {
	return r.list(ctx, "list predictions by match", qb.Eq("match_id", matchID))
}

func (r *PredictionRepository) list(ctx context.Context, op string, condition qb.Condition) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(condition).
		OrderBy("match_id", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, predictionFromRow(row))
	}
	return out, nil
}

func predictionFromRow(row predictionTableModel) prediction.Prediction {
	return prediction.Prediction{
		ID:        row.PublicID,
		UserID:    row.UserID,
		MatchID:   row.MatchID,
		HomeScore: row.HomeScore,
		AwayScore: row.AwayScore,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
