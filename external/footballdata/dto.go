package footballdata

import (
	"strings"
	"time"

	"github.com/riskibarqy/predipto/internal/domain/match"
)

type competitionsEnvelope struct {
	Count        int                 `json:"count"`
	Competitions []competitionPayload `json:"competitions"`
}

type matchesEnvelope struct {
	Matches []matchPayload `json:"matches"`
}

type competitionPayload struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Type   string `json:"type"`
	Emblem string `json:"emblem"`
}

type teamPayload struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Crest     string `json:"crest"`
}

type scorePayload struct {
	Winner   *string `json:"winner"`
	FullTime struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"fullTime"`
}

type matchPayload struct {
	ID          int64              `json:"id"`
	UTCDate     string             `json:"utcDate"`
	Status      string             `json:"status"`
	Matchday    *int               `json:"matchday"`
	Stage       string             `json:"stage"`
	Group       *string            `json:"group"`
	Competition competitionPayload `json:"competition"`
	HomeTeam    teamPayload        `json:"homeTeam"`
	AwayTeam    teamPayload        `json:"awayTeam"`
	Score       scorePayload       `json:"score"`
}

func (p competitionPayload) toDomain() match.Competition {
	return match.Competition{
		ID:     p.ID,
		Name:   strings.TrimSpace(p.Name),
		Code:   strings.TrimSpace(p.Code),
		Type:   strings.TrimSpace(p.Type),
		Emblem: strings.TrimSpace(p.Emblem),
	}
}

func (p teamPayload) toDomain() match.Team {
	return match.Team{
		ID:        p.ID,
		Name:      strings.TrimSpace(p.Name),
		ShortName: strings.TrimSpace(p.ShortName),
		TLA:       strings.TrimSpace(p.TLA),
		Crest:     strings.TrimSpace(p.Crest),
	}
}

func (p matchPayload) toDomain() (match.Match, bool) {
	if p.ID <= 0 {
		return match.Match{}, false
	}
	kickoff, err := time.Parse(time.RFC3339, strings.TrimSpace(p.UTCDate))
	if err != nil {
		return match.Match{}, false
	}

	out := match.Match{
		ID:          p.ID,
		Competition: p.Competition.toDomain(),
		KickoffAt:   kickoff.UTC(),
		Status:      match.NormalizeStatus(p.Status),
		Stage:       strings.TrimSpace(p.Stage),
		HomeTeam:    p.HomeTeam.toDomain(),
		AwayTeam:    p.AwayTeam.toDomain(),
		HomeScore:   p.Score.FullTime.Home,
		AwayScore:   p.Score.FullTime.Away,
	}
	if p.Matchday != nil {
		out.Matchday = *p.Matchday
	}
	if p.Group != nil {
		out.Group = strings.TrimSpace(*p.Group)
	}
	return out, true
}

func mapMatches(items []matchPayload) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		if mapped, ok := item.toDomain(); ok {
			out = append(out, mapped)
		}
	}
	return out
}
