package controller

import (
	"context"
	"fmt"
	"math"

	"github.com/bgiblin084/yahoo-fantasy-stats/model"
)

// GetTeamStandings returns the standings table enriched with the expected
// record derived from weekly beats-the-field percentages. Nicknames are
// resolved on every call, including cache hits, so a corrected CSV row takes
// effect without a refresh.
func (c *controller) GetTeamStandings(ctx context.Context, leagueKey string, refresh bool) ([]model.TeamStanding, error) {
	if !refresh {
		var cached []model.TeamStanding
		if c.cache.Get(leagueKey, cacheTeamsStats, &cached) {
			c.applyNicknames(cached, leagueKey)
			return cached, nil
		}
	}

	l, err := c.GetLeagueInfo(ctx, leagueKey, refresh)
	if err != nil {
		return nil, err
	}

	httpClient, err := c.httpClient(ctx)
	if err != nil {
		return nil, err
	}

	teams, err := c.yahoo.GetStandings(httpClient, leagueKey)
	if err != nil {
		return nil, fmt.Errorf("error getting standings for %s: %w", leagueKey, err)
	}

	performance, err := c.GetWeeklyPerformance(ctx, leagueKey, refresh)
	if err != nil {
		return nil, err
	}
	expected := expectedRecords(performance, l.CurrentWeek)

	standings := make([]model.TeamStanding, 0, len(teams))
	for _, t := range teams {
		s := model.TeamStanding{Team: t, LeagueKey: leagueKey}
		if e, ok := expected[t.Key]; ok {
			s.ExpectedWins = e.wins
			s.ExpectedLosses = e.losses
			if total := e.wins + e.losses; total > 0 {
				s.ExpectedWinPercentage = round3(float64(e.wins) / float64(total) * 100)
				s.WinPercentageDifference = round3(t.WinPercentage - s.ExpectedWinPercentage)
			}
		}
		standings = append(standings, s)
	}

	if l.IsPriorSeason(c.clock.Now()) {
		c.cache.Set(leagueKey, cacheTeamsStats, standings)
	}
	c.applyNicknames(standings, leagueKey)
	return standings, nil
}

// GetMultiLeagueStandings aggregates the standings of several leagues into
// one table, e.g. for comparing the same group of managers across seasons.
func (c *controller) GetMultiLeagueStandings(ctx context.Context, leagueKeys []string, refresh bool) ([]model.TeamStanding, error) {
	all := make([]model.TeamStanding, 0, len(leagueKeys)*12)
	for _, key := range leagueKeys {
		standings, err := c.GetTeamStandings(ctx, key, refresh)
		if err != nil {
			return nil, err
		}
		all = append(all, standings...)
	}
	return all, nil
}

func (c *controller) applyNicknames(standings []model.TeamStanding, leagueKey string) {
	for i := range standings {
		standings[i].ManagerNickname = c.resolveNickname(standings[i].Name, leagueKey, standings[i].ManagerNickname)
	}
}

// expectedRecord is the luck-adjusted record: a week scoring above the
// field's median counts as an expected win, below as an expected loss, and
// exactly the median as neither.
type expectedRecord struct {
	wins   int
	losses int
}

// expectedRecords buckets each team's completed weeks by whether its
// beats-the-field percentage was above or below 50. The current, still
// incomplete week is excluded.
func expectedRecords(performance []model.WeeklyPerformance, currentWeek int) map[string]expectedRecord {
	out := make(map[string]expectedRecord)
	for _, p := range performance {
		if currentWeek > 0 && p.Week >= currentWeek {
			continue
		}
		e := out[p.TeamKey]
		switch {
		case p.BeatsFieldPct > 50:
			e.wins++
		case p.BeatsFieldPct < 50:
			e.losses++
		}
		out[p.TeamKey] = e
	}
	return out
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
