package match

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusTimed     = "TIMED"
	StatusLive      = "LIVE"
	StatusInPlay    = "IN_PLAY"
	StatusPaused    = "PAUSED"
	StatusFinished  = "FINISHED"
	StatusPostponed = "POSTPONED"
	StatusSuspended = "SUSPENDED"
	StatusCancelled = "CANCELLED"
)

// Competition is a tournament or league exposed by the match provider.
type Competition struct {
	ID     int64
	Name   string
	Code   string
	Type   string
	Emblem string
}

type Team struct {
	ID        int64
	Name      string
	ShortName string
	TLA       string
	Crest     string
}

// Match is one fixture as exposed to players. Scores are nil until the
// provider reports them.
type Match struct {
	ID          int64
	Competition Competition
	KickoffAt   time.Time
	Status      string
	Matchday    int
	Stage       string
	Group       string
	HomeTeam    Team
	AwayTeam    Team
	HomeScore   *int
	AwayScore   *int
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsUpcomingStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusScheduled, StatusTimed:
		return true
	default:
		return false
	}
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusLive, StatusInPlay, StatusPaused:
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinished
}

func IsCancelledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCancelled, StatusPostponed, StatusSuspended:
		return true
	default:
		return false
	}
}
