package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/predipto/internal/domain/result"
	qb "github.com/riskibarqy/predipto/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) Get(ctx context.Context, matchID int64) (result.Result, bool, error) {
	query, args, err := qb.Select("*").From("match_results").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return result.Result{}, false, fmt.Errorf("build get result query: %w", err)
	}

	var row resultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.Result{}, false, nil
		}
		return result.Result{}, false, fmt.Errorf("get result: %w", err)
	}

	return resultFromRow(row), true, nil
}

func (r *ResultRepository) Upsert(ctx context.Context, item result.Result) error {
	model := resultTableModel{
		MatchID:   item.MatchID,
		HomeScore: item.HomeScore,
		AwayScore: item.AwayScore,
		CreatedBy: item.CreatedBy,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}

	query, args, err := qb.InsertModel("match_results", model, `ON CONFLICT (match_id)
DO UPDATE SET
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    created_by = EXCLUDED.created_by,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert result query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}
	return nil
}

func (r *ResultRepository) List(ctx context.Context) ([]result.Result, error) {
	query, args, err := qb.Select("*").From("match_results").
		OrderBy("match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list results query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	out := make([]result.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultFromRow(row))
	}
	return out, nil
}

func resultFromRow(row resultTableModel) result.Result {
	return result.Result{
		MatchID:   row.MatchID,
		HomeScore: row.HomeScore,
		AwayScore: row.AwayScore,
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
