package result

import (
	"fmt"
	"time"

	"github.com/riskibarqy/predipto/internal/domain/scoring"
)

// Result is the admin-entered final score of a match. Points are only
// derived once a result exists.
type Result struct {
	MatchID   int64
	HomeScore int
	AwayScore int
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}

func (r Result) Scoreline() scoring.Scoreline {
	return scoring.Scoreline{Home: r.HomeScore, Away: r.AwayScore}
}

func (r Result) Validate() error {
	if r.MatchID <= 0 {
		return fmt.Errorf("result match id must be > 0")
	}
	if r.CreatedBy == "" {
		return fmt.Errorf("result author is required")
	}

	return nil
}
