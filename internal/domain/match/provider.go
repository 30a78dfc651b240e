package match

import "context"

// Provider is an upstream source of competitions, matches and teams.
type Provider interface {
	ListCompetitions(ctx context.Context) ([]Competition, error)
	ListMatchesByCompetition(ctx context.Context, competitionID int64) ([]Match, error)
	ListUpcomingMatches(ctx context.Context) ([]Match, error)
	GetTeam(ctx context.Context, teamID int64) (Team, bool, error)
}
