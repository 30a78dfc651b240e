package scoring

import (
	"errors"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		predicted Scoreline
		actual    Scoreline
		want      int
		wantTier  Tier
	}{
		{name: "exact match", predicted: Scoreline{2, 1}, actual: Scoreline{2, 1}, want: 20, wantTier: TierExact},
		{name: "same goal difference", predicted: Scoreline{3, 1}, actual: Scoreline{2, 0}, want: 15, wantTier: TierGoalDifference},
		{name: "home win different margin", predicted: Scoreline{1, 0}, actual: Scoreline{3, 1}, want: 10, wantTier: TierOutcome},
		{name: "draw counts as goal difference", predicted: Scoreline{1, 1}, actual: Scoreline{2, 2}, want: 15, wantTier: TierGoalDifference},
		{name: "wrong winner", predicted: Scoreline{2, 0}, actual: Scoreline{0, 1}, want: -10, wantTier: TierMiss},
		{name: "away win different margin", predicted: Scoreline{0, 3}, actual: Scoreline{1, 2}, want: 10, wantTier: TierOutcome},
		{name: "predicted draw actual home win", predicted: Scoreline{0, 0}, actual: Scoreline{1, 0}, want: -10, wantTier: TierMiss},
		{name: "goalless exact", predicted: Scoreline{0, 0}, actual: Scoreline{0, 0}, want: 20, wantTier: TierExact},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.predicted, tc.actual); got != tc.wantTier {
				t.Fatalf("unexpected tier: got=%s want=%s", got, tc.wantTier)
			}
			if got := Score(tc.predicted, tc.actual); got != tc.want {
				t.Fatalf("unexpected points: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestScore_TotalOverSmallDomain(t *testing.T) {
	allowed := map[int]struct{}{PointsExact: {}, PointsGoalDifference: {}, PointsOutcome: {}, PointsMiss: {}}

	const maxGoals = 8
	for ph := 0; ph <= maxGoals; ph++ {
		for pa := 0; pa <= maxGoals; pa++ {
			for ah := 0; ah <= maxGoals; ah++ {
				for aa := 0; aa <= maxGoals; aa++ {
					p := Scoreline{ph, pa}
					a := Scoreline{ah, aa}

					matches := 0
					if p == a {
						matches++
					}
					if p != a && p.GoalDifference() == a.GoalDifference() {
						matches++
					}
					if p.GoalDifference() != a.GoalDifference() && p.Outcome() == a.Outcome() {
						matches++
					}
					if p.Outcome() != a.Outcome() {
						matches++
					}
					if matches != 1 {
						t.Fatalf("expected exactly one tier for %v vs %v, got %d", p, a, matches)
					}

					got := Score(p, a)
					if _, ok := allowed[got]; !ok {
						t.Fatalf("unexpected points %d for %v vs %v", got, p, a)
					}
					if again := Score(p, a); again != got {
						t.Fatalf("score is not stable for %v vs %v: %d then %d", p, a, got, again)
					}
				}
			}
		}
	}
}

func TestScoreline_Outcome(t *testing.T) {
	if got := (Scoreline{Home: 3, Away: 1}).Outcome(); got != OutcomeHomeWin {
		t.Fatalf("expected home win, got %s", got)
	}
	if got := (Scoreline{Home: 0, Away: 2}).Outcome(); got != OutcomeAwayWin {
		t.Fatalf("expected away win, got %s", got)
	}
	if got := (Scoreline{Home: 4, Away: 4}).Outcome(); got != OutcomeDraw {
		t.Fatalf("expected draw, got %s", got)
	}
}

func TestBounds_Validate(t *testing.T) {
	b := DefaultBounds()

	if err := b.Validate(Scoreline{Home: 0, Away: 99}); err != nil {
		t.Fatalf("expected bounds to accept edge values: %v", err)
	}
	if err := b.Validate(Scoreline{Home: -1, Away: 0}); !errors.Is(err, ErrScoreOutOfRange) {
		t.Fatalf("expected ErrScoreOutOfRange for negative home, got %v", err)
	}
	if err := b.Validate(Scoreline{Home: 1, Away: 100}); !errors.Is(err, ErrScoreOutOfRange) {
		t.Fatalf("expected ErrScoreOutOfRange for away above max, got %v", err)
	}

	narrow := Bounds{Min: 0, Max: 20}
	if err := narrow.Validate(Scoreline{Home: 21, Away: 0}); !errors.Is(err, ErrScoreOutOfRange) {
		t.Fatalf("expected narrow bounds to reject 21, got %v", err)
	}
}

func TestBounds_Normalize(t *testing.T) {
	if got := (Bounds{Min: -5, Max: 10}).Normalize(); got.Min != 0 || got.Max != 10 {
		t.Fatalf("unexpected normalized bounds: %+v", got)
	}
	if got := (Bounds{Min: 5, Max: 2}).Normalize(); got != DefaultBounds() {
		t.Fatalf("expected default bounds for inverted range, got %+v", got)
	}
}

func TestSumPoints(t *testing.T) {
	rows := []Points{
		{UserID: "u-1", MatchID: 1, Points: 20},
		{UserID: "u-1", MatchID: 2, Points: -10},
		{UserID: "u-2", MatchID: 1, Points: 15},
		{UserID: "u-1", MatchID: 3, Points: 10},
	}

	got := SumPoints("u-1", rows)
	if got.TotalPoints != 20 || got.Matches != 3 {
		t.Fatalf("unexpected total: %+v", got)
	}
	if empty := SumPoints("u-3", rows); empty.TotalPoints != 0 || empty.Matches != 0 {
		t.Fatalf("expected zero total, got %+v", empty)
	}
}
