package scoring

// Scoreline is a final (or forecast) score of one match.
type Scoreline struct {
	Home int
	Away int
}

type Outcome string

const (
	OutcomeHomeWin Outcome = "HOME_WIN"
	OutcomeAwayWin Outcome = "AWAY_WIN"
	OutcomeDraw    Outcome = "DRAW"
)

func (s Scoreline) GoalDifference() int {
	return s.Home - s.Away
}

func (s Scoreline) Outcome() Outcome {
	switch diff := s.GoalDifference(); {
	case diff > 0:
		return OutcomeHomeWin
	case diff < 0:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}

// Tier is the bucket a prediction falls into once compared with the actual result.
type Tier string

const (
	TierExact          Tier = "EXACT"
	TierGoalDifference Tier = "GOAL_DIFFERENCE"
	TierOutcome        Tier = "OUTCOME"
	TierMiss           Tier = "MISS"
)

const (
	PointsExact          = 20
	PointsGoalDifference = 15
	PointsOutcome        = 10
	PointsMiss           = -10
)

func (t Tier) Points() int {
	switch t {
	case TierExact:
		return PointsExact
	case TierGoalDifference:
		return PointsGoalDifference
	case TierOutcome:
		return PointsOutcome
	default:
		return PointsMiss
	}
}

// Classify evaluates the tiers in order; the first one that matches wins.
// Equal goal difference implies an equal outcome, so TierOutcome is only
// reached for a correct winner/draw with a different margin.
func Classify(predicted, actual Scoreline) Tier {
	if predicted == actual {
		return TierExact
	}
	if predicted.GoalDifference() == actual.GoalDifference() {
		return TierGoalDifference
	}
	if predicted.Outcome() == actual.Outcome() {
		return TierOutcome
	}
	return TierMiss
}

// Score returns the points awarded for predicted against actual.
// It performs no validation and is safe for concurrent use.
func Score(predicted, actual Scoreline) int {
	return Classify(predicted, actual).Points()
}
