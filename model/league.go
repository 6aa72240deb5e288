package model

import (
	"strings"
	"time"
)

// League is the metadata for one fantasy competition instance, scoped to a
// single season. Key is the provider's composite identifier, e.g.
// "461.l.621700", where the numeric prefix identifies the game (sport+season).
type League struct {
	Key         string    `json:"league_key"`
	Name        string    `json:"name"`
	Season      int       `json:"season"`
	CurrentWeek int       `json:"current_week"`
	StartWeek   int       `json:"start_week"`
	EndWeek     int       `json:"end_week"`
	StartDate   time.Time `json:"start_date"`
	NumTeams    int       `json:"num_teams"`
	ScoringType string    `json:"scoring_type"`
}

// An NFL season that started in year Y is over by the end of February of Y+1.
const seasonEndMonth = time.February

// IsPriorSeason reports whether the league's season is definitely complete.
// Data from a completed season is immutable and safe to cache forever.
// Anything that cannot be confirmed (zero season, missing week fields) is
// treated as an active season so stale data is never served by mistake.
func (l *League) IsPriorSeason(now time.Time) bool {
	if l == nil || l.Season == 0 {
		return false
	}
	if l.Season < now.Year()-1 {
		return true
	}
	if l.Season == now.Year()-1 && now.Month() > seasonEndMonth {
		return true
	}
	if l.CurrentWeek > 0 && l.EndWeek > 0 && l.CurrentWeek >= l.EndWeek {
		return true
	}
	return false
}

// SeasonID returns the game-id prefix of a league key ("461" for
// "461.l.621700"). Yahoo allocates a fresh game id per sport per season, so
// the prefix identifies the season for grouping purposes. Returns "" when the
// key has no usable numeric prefix.
func SeasonID(leagueKey string) string {
	prefix, _, found := strings.Cut(leagueKey, ".")
	if !found || prefix == "" {
		return ""
	}
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return prefix
}

// Game is one provider game entry: a sport and season combination that
// leagues hang off of.
type Game struct {
	Key    string `json:"game_key"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Season string `json:"season"`
	Type   string `json:"type"`
}

func (g *Game) IsFootball() bool {
	return g.Code == "nfl"
}
