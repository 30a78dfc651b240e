package scoring

import "time"

// Points is the cached award of one user for one match.
type Points struct {
	UserID       string
	MatchID      int64
	Points       int
	Tier         Tier
	CalculatedAt time.Time
}

// UserTotal is the sum of every Points row owned by a user.
type UserTotal struct {
	UserID      string
	TotalPoints int
	Matches     int
}

// SumPoints rebuilds a user total from its points rows.
func SumPoints(userID string, rows []Points) UserTotal {
	total := UserTotal{UserID: userID}
	for _, row := range rows {
		if row.UserID != userID {
			continue
		}
		total.TotalPoints += row.Points
		total.Matches++
	}
	return total
}
