package controller

import (
	"context"
	"fmt"

	"github.com/bgiblin084/yahoo-fantasy-stats/model"
)

func (c *controller) GetLeagueInfo(ctx context.Context, leagueKey string, refresh bool) (*model.League, error) {
	if !refresh {
		var l model.League
		if c.cache.Get(leagueKey, cacheLeagueInfo, &l) {
			return &l, nil
		}
	}

	httpClient, err := c.httpClient(ctx)
	if err != nil {
		return nil, err
	}

	l, err := c.yahoo.GetLeagueInfo(httpClient, leagueKey)
	if err != nil {
		return nil, fmt.Errorf("error getting league info for %s: %w", leagueKey, err)
	}

	if l.IsPriorSeason(c.clock.Now()) {
		c.cache.Set(leagueKey, cacheLeagueInfo, l)
	}
	return l, nil
}

// ListLeagues discovers all of the user's football leagues across every
// season the provider still reports.
func (c *controller) ListLeagues(ctx context.Context) ([]model.League, error) {
	httpClient, err := c.httpClient(ctx)
	if err != nil {
		return nil, err
	}

	games, err := c.yahoo.GetGames(httpClient)
	if err != nil {
		return nil, fmt.Errorf("error listing games: %w", err)
	}

	leagues := make([]model.League, 0, 8)
	for _, g := range games {
		if !g.IsFootball() {
			continue
		}
		ls, err := c.yahoo.GetLeagues(httpClient, g.Key)
		if err != nil {
			return nil, fmt.Errorf("error listing leagues for game %s: %w", g.Key, err)
		}
		leagues = append(leagues, ls...)
	}
	return leagues, nil
}

// resolveNickname runs the CSV-backed resolver for one team, deriving the
// season from the league key's game prefix.
func (c *controller) resolveNickname(teamName, leagueKey, raw string) string {
	season := model.SeasonID(leagueKey)
	if season == "" {
		return raw
	}
	return c.nicknames.Resolve(teamName, leagueKey, season, raw)
}
