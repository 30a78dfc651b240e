package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/riskibarqy/predipto/internal/usecase"
)

type leaderboardCmd struct {
	Limit int `help:"Number of rows to print." default:"10"`
}

func (c *leaderboardCmd) Run(tc *toolContext) error {
	entries, err := tc.services.Leaderboard.Top(tc.ctx, c.Limit)
	if err != nil {
		return err
	}

	renderLeaderboard(tc.out, entries)
	return nil
}

func renderLeaderboard(out io.Writer, entries []usecase.LeaderboardEntry) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Rank", "Player", "User ID", "Points"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 4, Align: alignRight},
	})
	for _, entry := range entries {
		t.AppendRow(table.Row{entry.Rank, entry.DisplayName, entry.UserID, entry.TotalPoints})
	}
	t.Render()
}
