package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/riskibarqy/predipto/internal/domain/scoring"
)

type lsPredictionsCmd struct {
	UserID string `arg:"" help:"User ID whose predictions are listed."`
}

func (c *lsPredictionsCmd) Run(tc *toolContext) error {
	predictions, err := tc.services.Predictions.ListByUser(tc.ctx, c.UserID)
	if err != nil {
		return err
	}
	points, err := tc.services.Scoring.ListPointsByUser(tc.ctx, c.UserID)
	if err != nil {
		return err
	}

	byMatch := make(map[int64]scoring.Points, len(points))
	for _, row := range points {
		byMatch[row.MatchID] = row
	}

	t := newTable(tc.out)
	t.AppendHeader(table.Row{"Match", "Prediction", "Tier", "Points"})
	total := 0
	for _, item := range predictions {
		row := table.Row{item.MatchID, fmt.Sprintf("%d-%d", item.HomeScore, item.AwayScore), "pending", "-"}
		if awarded, ok := byMatch[item.MatchID]; ok {
			row[2] = string(awarded.Tier)
			row[3] = awarded.Points
			total += awarded.Points
		}
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{"", "", "Total", total})
	t.Render()
	return nil
}
