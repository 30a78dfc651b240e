package main

import (
	"fmt"

	"github.com/riskibarqy/predipto/internal/usecase"
	"github.com/schollz/progressbar/v3"
)

type recomputeCmd struct {
	NoProgress bool `help:"Do not display a progress bar."`
}

func (c *recomputeCmd) Run(tc *toolContext) error {
	results, err := tc.services.Results.List(tc.ctx)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if c.NoProgress {
		bar = progressbar.NewOptions(len(results), progressbar.OptionSetVisibility(false))
	} else {
		bar = progressbar.NewOptions(len(results),
			progressbar.OptionSetWriter(tc.out),
			progressbar.OptionSetDescription("scoring matches"),
			progressbar.OptionShowCount(),
		)
	}

	report, err := tc.services.Scoring.RecomputeAll(tc.ctx, usecase.RecomputeOptions{
		OnMatchScored: func(usecase.MatchScoringReport) {
			_ = bar.Add(1)
		},
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}

	fmt.Fprintf(tc.out, "\nrescored %d match(es), %d user total(s) rebuilt in %dms\n",
		len(report.Matches), report.UsersUpdated, report.DurationMs)
	renderMatchReports(tc.out, report.Matches)
	return nil
}
