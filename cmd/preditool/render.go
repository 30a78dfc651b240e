package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/riskibarqy/predipto/internal/domain/scoring"
	"github.com/riskibarqy/predipto/internal/usecase"
)

const alignRight = text.AlignRight

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	return t
}

var reportTiers = []scoring.Tier{
	scoring.TierExact,
	scoring.TierGoalDifference,
	scoring.TierOutcome,
	scoring.TierMiss,
}

func renderMatchReports(out io.Writer, reports []usecase.MatchScoringReport) {
	if len(reports) == 0 {
		return
	}

	t := newTable(out)
	header := table.Row{"Match", "Result", "Scored"}
	for _, tier := range reportTiers {
		header = append(header, string(tier))
	}
	t.AppendHeader(header)
	for _, report := range reports {
		row := table.Row{report.MatchID, formatScoreline(report.Result), report.PredictionsScored}
		for _, tier := range reportTiers {
			row = append(row, report.TierCounts[tier])
		}
		t.AppendRow(row)
	}
	t.Render()
}

func formatScoreline(s scoring.Scoreline) string {
	return fmt.Sprintf("%d-%d", s.Home, s.Away)
}
