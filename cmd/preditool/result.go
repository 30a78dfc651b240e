package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/riskibarqy/predipto/internal/usecase"
)

type recordResultCmd struct {
	As        string `help:"User ID of the admin recording the result." env:"PREDITOOL_ADMIN" required:""`
	MatchID   int64  `arg:"" help:"Match ID."`
	HomeScore int    `arg:"" help:"Final home score."`
	AwayScore int    `arg:"" help:"Final away score."`
}

func (c *recordResultCmd) Run(tc *toolContext) error {
	report, err := tc.services.Results.Record(tc.ctx, usecase.RecordResultInput{
		ActorUserID: c.As,
		MatchID:     c.MatchID,
		HomeScore:   c.HomeScore,
		AwayScore:   c.AwayScore,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(tc.out, "match %d recorded as %d-%d\n", report.MatchID, report.Result.Home, report.Result.Away)
	renderMatchReports(tc.out, []usecase.MatchScoringReport{report})
	return nil
}

type lsResultsCmd struct{}

func (c *lsResultsCmd) Run(tc *toolContext) error {
	results, err := tc.services.Results.List(tc.ctx)
	if err != nil {
		return err
	}

	t := newTable(tc.out)
	t.AppendHeader(table.Row{"Match", "Score", "Recorded By", "Recorded At"})
	for _, item := range results {
		t.AppendRow(table.Row{
			item.MatchID,
			fmt.Sprintf("%d-%d", item.HomeScore, item.AwayScore),
			item.CreatedBy,
			item.CreatedAt.UTC().Format("2006-01-02 15:04"),
		})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(results)})
	t.Render()
	return nil
}
