package httpapi

import (
	"time"

	"github.com/riskibarqy/predipto/internal/domain/match"
	"github.com/riskibarqy/predipto/internal/domain/prediction"
	"github.com/riskibarqy/predipto/internal/domain/result"
	"github.com/riskibarqy/predipto/internal/domain/scoring"
	"github.com/riskibarqy/predipto/internal/domain/user"
	"github.com/riskibarqy/predipto/internal/usecase"
)

// scoreRequest is shared by prediction and result submissions. Pointers make
// a missing field fail validation instead of silently reading as zero. Range
// checks belong to the configured scoring.Bounds in the services.
type scoreRequest struct {
	HomeScore *int `json:"homeScore" validate:"required"`
	AwayScore *int `json:"awayScore" validate:"required"`
}

type registerUserRequest struct {
	DisplayName string `json:"displayName" validate:"omitempty,max=50"`
}

type updateUserRequest struct {
	DisplayName string `json:"displayName" validate:"required,max=50"`
}

type competitionDTO struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code,omitempty"`
	Type   string `json:"type,omitempty"`
	Emblem string `json:"emblem,omitempty"`
}

type teamDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName,omitempty"`
	TLA       string `json:"tla,omitempty"`
	Crest     string `json:"crest,omitempty"`
}

type matchDTO struct {
	ID          int64          `json:"id"`
	Competition competitionDTO `json:"competition"`
	KickoffAt   string         `json:"utcDate"`
	Status      string         `json:"status"`
	Matchday    int            `json:"matchday,omitempty"`
	Stage       string         `json:"stage,omitempty"`
	Group       string         `json:"group,omitempty"`
	HomeTeam    teamDTO        `json:"homeTeam"`
	AwayTeam    teamDTO        `json:"awayTeam"`
	HomeScore   *int           `json:"homeScore"`
	AwayScore   *int           `json:"awayScore"`
}

type predictionDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	MatchID   int64  `json:"matchId"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type resultDTO struct {
	MatchID   int64  `json:"matchId"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	CreatedBy string `json:"createdBy,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type pointsDTO struct {
	UserID       string `json:"userId"`
	MatchID      int64  `json:"matchId"`
	Scored       bool   `json:"scored"`
	Points       int    `json:"points"`
	Tier         string `json:"tier,omitempty"`
	CalculatedAt string `json:"calculatedAt,omitempty"`
}

type profileDTO struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	TotalPoints int    `json:"totalPoints"`
	IsAdmin     bool   `json:"isAdmin"`
	CreatedAt   string `json:"createdAt"`
}

type leaderboardEntryDTO struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	TotalPoints int    `json:"totalPoints"`
}

type scoringReportDTO struct {
	MatchID           int64          `json:"matchId"`
	HomeScore         int            `json:"homeScore"`
	AwayScore         int            `json:"awayScore"`
	PredictionsScored int            `json:"predictionsScored"`
	UsersUpdated      int            `json:"usersUpdated"`
	Tiers             map[string]int `json:"tiers"`
	DurationMs        int64          `json:"durationMs"`
}

type recomputeReportDTO struct {
	MatchesScored     int   `json:"matchesScored"`
	PredictionsScored int   `json:"predictionsScored"`
	UsersUpdated      int   `json:"usersUpdated"`
	DurationMs        int64 `json:"durationMs"`
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func competitionToDTO(v match.Competition) competitionDTO {
	return competitionDTO{ID: v.ID, Name: v.Name, Code: v.Code, Type: v.Type, Emblem: v.Emblem}
}

func teamToDTO(v match.Team) teamDTO {
	return teamDTO{ID: v.ID, Name: v.Name, ShortName: v.ShortName, TLA: v.TLA, Crest: v.Crest}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, v := range items {
		out = append(out, matchDTO{
			ID:          v.ID,
			Competition: competitionToDTO(v.Competition),
			KickoffAt:   formatTime(v.KickoffAt),
			Status:      v.Status,
			Matchday:    v.Matchday,
			Stage:       v.Stage,
			Group:       v.Group,
			HomeTeam:    teamToDTO(v.HomeTeam),
			AwayTeam:    teamToDTO(v.AwayTeam),
			HomeScore:   v.HomeScore,
			AwayScore:   v.AwayScore,
		})
	}
	return out
}

func predictionToDTO(v prediction.Prediction) predictionDTO {
	return predictionDTO{
		ID:        v.ID,
		UserID:    v.UserID,
		MatchID:   v.MatchID,
		HomeScore: v.HomeScore,
		AwayScore: v.AwayScore,
		CreatedAt: formatTime(v.CreatedAt),
		UpdatedAt: formatTime(v.UpdatedAt),
	}
}

func resultToDTO(v result.Result) resultDTO {
	return resultDTO{
		MatchID:   v.MatchID,
		HomeScore: v.HomeScore,
		AwayScore: v.AwayScore,
		CreatedBy: v.CreatedBy,
		CreatedAt: formatTime(v.CreatedAt),
		UpdatedAt: formatTime(v.UpdatedAt),
	}
}

func pointsToDTO(v scoring.Points) pointsDTO {
	return pointsDTO{
		UserID:       v.UserID,
		MatchID:      v.MatchID,
		Scored:       true,
		Points:       v.Points,
		Tier:         string(v.Tier),
		CalculatedAt: formatTime(v.CalculatedAt),
	}
}

func profileToDTO(v user.Profile) profileDTO {
	return profileDTO{
		UserID:      v.UserID,
		Email:       v.Email,
		DisplayName: v.DisplayName,
		TotalPoints: v.TotalPoints,
		IsAdmin:     v.IsAdmin,
		CreatedAt:   formatTime(v.CreatedAt),
	}
}

func scoringReportToDTO(v usecase.MatchScoringReport) scoringReportDTO {
	tiers := make(map[string]int, len(v.TierCounts))
	for tier, count := range v.TierCounts {
		tiers[string(tier)] = count
	}
	return scoringReportDTO{
		MatchID:           v.MatchID,
		HomeScore:         v.Result.Home,
		AwayScore:         v.Result.Away,
		PredictionsScored: v.PredictionsScored,
		UsersUpdated:      v.UsersUpdated,
		Tiers:             tiers,
		DurationMs:        v.DurationMs,
	}
}

func recomputeReportToDTO(v usecase.RecomputeReport) recomputeReportDTO {
	predictions := 0
	for _, item := range v.Matches {
		predictions += item.PredictionsScored
	}
	return recomputeReportDTO{
		MatchesScored:     len(v.Matches),
		PredictionsScored: predictions,
		UsersUpdated:      v.UsersUpdated,
		DurationMs:        v.DurationMs,
	}
}
