package user

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Principal is the authenticated caller as reported by the identity provider.
type Principal struct {
	UserID string
	Email  string
}

// Profile is the game-side view of a user.
type Profile struct {
	UserID      string
	Email       string
	DisplayName string
	TotalPoints int
	IsAdmin     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DefaultDisplayName returns the local part of an e-mail address.
func DefaultDisplayName(email string) string {
	email = strings.TrimSpace(email)
	if idx := strings.Index(email, "@"); idx >= 0 {
		return email[:idx]
	}
	return email
}

func (p Profile) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(p.DisplayName) == "" {
		return fmt.Errorf("display name is required")
	}

	return nil
}

// SortByStanding orders profiles by total points descending, then by display
// name ignoring case, then by user id.
func SortByStanding(profiles []Profile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		if profiles[i].TotalPoints != profiles[j].TotalPoints {
			return profiles[i].TotalPoints > profiles[j].TotalPoints
		}
		left, right := strings.ToLower(profiles[i].DisplayName), strings.ToLower(profiles[j].DisplayName)
		if left != right {
			return left < right
		}
		return profiles[i].UserID < profiles[j].UserID
	})
}
