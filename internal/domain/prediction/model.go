package prediction

import (
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/predipto/internal/domain/scoring"
)

// Prediction is one user's forecast for one match. A user holds at most one
// prediction per match; resubmitting replaces the scoreline.
type Prediction struct {
	ID        string
	UserID    string
	MatchID   int64
	HomeScore int
	AwayScore int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BuildID returns the storage key of a user's prediction for a match.
func BuildID(userID string, matchID int64) string {
	return userID + "_" + strconv.FormatInt(matchID, 10)
}

func (p Prediction) Scoreline() scoring.Scoreline {
	return scoring.Scoreline{Home: p.HomeScore, Away: p.AwayScore}
}

func (p Prediction) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("prediction user id is required")
	}
	if p.MatchID <= 0 {
		return fmt.Errorf("prediction match id must be > 0")
	}
	if p.ID != BuildID(p.UserID, p.MatchID) {
		return fmt.Errorf("prediction id %q does not match user and match", p.ID)
	}

	return nil
}
