package controller

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bgiblin084/yahoo-fantasy-stats/model"
)

// GetWeeklyMatchups fetches every played week's scoreboard and fills in the
// beats-the-field percentage on both sides of each matchup.
func (c *controller) GetWeeklyMatchups(ctx context.Context, leagueKey string, refresh bool) ([]model.Matchup, error) {
	l, err := c.GetLeagueInfo(ctx, leagueKey, refresh)
	if err != nil {
		return nil, err
	}
	prior := l.IsPriorSeason(c.clock.Now())

	if !refresh && prior {
		var cached []model.Matchup
		if c.cache.Get(leagueKey, cacheWeeklyData, &cached) {
			return cached, nil
		}
	}

	httpClient, err := c.httpClient(ctx)
	if err != nil {
		return nil, err
	}

	start, end := weekRange(l)
	matchups := make([]model.Matchup, 0, (end-start+1)*6)
	for week := start; week <= end; week++ {
		wk, err := c.yahoo.GetScoreboard(httpClient, leagueKey, week)
		if err != nil {
			return nil, fmt.Errorf("error getting scoreboard for %s week %d: %w", leagueKey, week, err)
		}
		matchups = append(matchups, wk...)
	}
	applyBeatsField(matchups)

	if prior {
		c.cache.Set(leagueKey, cacheWeeklyData, matchups)
	}
	return matchups, nil
}

// GetWeeklyPerformance flattens the weekly matchups into one scoring line
// per team per week, ordered by week and then by beats-the-field percentage.
func (c *controller) GetWeeklyPerformance(ctx context.Context, leagueKey string, refresh bool) ([]model.WeeklyPerformance, error) {
	l, err := c.GetLeagueInfo(ctx, leagueKey, refresh)
	if err != nil {
		return nil, err
	}
	prior := l.IsPriorSeason(c.clock.Now())

	if !refresh && prior {
		var cached []model.WeeklyPerformance
		if c.cache.Get(leagueKey, cacheWeeklyPerformance, &cached) {
			return cached, nil
		}
	}

	matchups, err := c.GetWeeklyMatchups(ctx, leagueKey, refresh)
	if err != nil {
		return nil, err
	}
	rows := performanceRows(matchups)

	if prior {
		c.cache.Set(leagueKey, cacheWeeklyPerformance, rows)
	}
	return rows, nil
}

// weekRange returns the playable week span of a league, never reaching past
// the current week.
func weekRange(l *model.League) (int, int) {
	start := l.StartWeek
	if start < 1 {
		start = 1
	}
	end := l.EndWeek
	if end < 1 {
		end = l.CurrentWeek
	}
	if l.CurrentWeek > 0 && end > l.CurrentWeek {
		end = l.CurrentWeek
	}
	return start, end
}

// applyBeatsField computes, for every matchup side, the share of the other
// teams that week that scored strictly less. 100 means the week's top score,
// 0 the bottom. Tied teams do not beat each other, so an all-way tie is 0
// across the board.
func applyBeatsField(matchups []model.Matchup) {
	scores := make(map[int][]float64)
	for _, m := range matchups {
		scores[m.Week] = append(scores[m.Week], m.TeamA.Points, m.TeamB.Points)
	}
	for _, m := range matchups {
		m.TeamA.BeatsFieldPct = beatsField(m.TeamA.Points, scores[m.Week])
		m.TeamB.BeatsFieldPct = beatsField(m.TeamB.Points, scores[m.Week])
	}
}

// beatsField is the percentile of points within the week's field of scores.
// The team's own score is part of field, so the denominator excludes it.
func beatsField(points float64, field []float64) float64 {
	if len(field) <= 1 {
		return 0
	}
	beaten := 0
	for _, p := range field {
		if points > p {
			beaten++
		}
	}
	return round3(float64(beaten) / float64(len(field)-1) * 100)
}

func performanceRows(matchups []model.Matchup) []model.WeeklyPerformance {
	rows := make([]model.WeeklyPerformance, 0, len(matchups)*2)
	seen := make(map[string]bool)
	add := func(week int, tr *model.TeamResult) {
		k := fmt.Sprintf("%d|%s", week, tr.TeamKey)
		if seen[k] {
			return
		}
		seen[k] = true
		rows = append(rows, model.WeeklyPerformance{
			Week:          week,
			TeamKey:       tr.TeamKey,
			TeamName:      tr.TeamName,
			Points:        tr.Points,
			BeatsFieldPct: tr.BeatsFieldPct,
		})
	}
	for _, m := range matchups {
		add(m.Week, m.TeamA)
		add(m.Week, m.TeamB)
	}

	sort.Slice(rows, func(a, b int) bool {
		if rows[a].Week != rows[b].Week {
			return rows[a].Week < rows[b].Week
		}
		if rows[a].BeatsFieldPct != rows[b].BeatsFieldPct {
			return rows[a].BeatsFieldPct > rows[b].BeatsFieldPct
		}
		return strings.Compare(rows[a].TeamKey, rows[b].TeamKey) < 0
	})
	return rows
}
