package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/bgiblin084/yahoo-fantasy-stats/cache"
	"github.com/bgiblin084/yahoo-fantasy-stats/model"
	"github.com/bgiblin084/yahoo-fantasy-stats/nickname"
	"github.com/bgiblin084/yahoo-fantasy-stats/yahoo"
	"github.com/itbasis/go-clock"
	"golang.org/x/oauth2"
)

// C encapsulates business logic without worrying about any web layers.
// The refresh flag bypasses cache reads; cache writes only ever happen for
// completed seasons, whose data can no longer change.
type C interface {
	GetLeagueInfo(ctx context.Context, leagueKey string, refresh bool) (*model.League, error)
	ListLeagues(ctx context.Context) ([]model.League, error)
	GetTeamStandings(ctx context.Context, leagueKey string, refresh bool) ([]model.TeamStanding, error)
	GetWeeklyMatchups(ctx context.Context, leagueKey string, refresh bool) ([]model.Matchup, error)
	GetWeeklyPerformance(ctx context.Context, leagueKey string, refresh bool) ([]model.WeeklyPerformance, error)
	GetWeeklyLedger(ctx context.Context, leagueKey string, refresh bool) ([]model.WeeklyLedgerEntry, error)
	GetMultiLeagueStandings(ctx context.Context, leagueKeys []string, refresh bool) ([]model.TeamStanding, error)
	ClearCache(leagueKey string) int

	OAuthStart() (string, error)
	OAuthExchange(ctx context.Context, state, code string) error
}

// Cache data types. One file per (league, type).
const (
	cacheLeagueInfo        = "league_info"
	cacheTeamsStats        = "teams_stats"
	cacheWeeklyData        = "weekly_data"
	cacheWeeklyPerformance = "weekly_performance"
	cacheWeeklyStats       = "weekly_stats"
)

type controller struct {
	clock       clock.Clock
	yahoo       *yahoo.Client
	cache       *cache.Store
	nicknames   *nickname.Mapper
	yahooConfig *oauth2.Config
	tokens      *tokenStore
	oauthStates map[string]time.Time
}

func New(clock clock.Clock, yahooClient *yahoo.Client, cache *cache.Store, nicknames *nickname.Mapper, yahooConfig *oauth2.Config, tokenFile string) (C, error) {
	c := &controller{
		clock:       clock,
		yahoo:       yahooClient,
		cache:       cache,
		nicknames:   nicknames,
		yahooConfig: yahooConfig,
		tokens:      newTokenStore(tokenFile),
		oauthStates: make(map[string]time.Time),
	}
	return c, nil
}

// httpClient builds the client used for provider calls. With no oauth config
// the default client is used, which only works against a test server.
func (c *controller) httpClient(ctx context.Context) (*http.Client, error) {
	if c.yahooConfig == nil {
		return http.DefaultClient, nil
	}

	t, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	return c.yahooConfig.Client(ctx, t), nil
}

func (c *controller) ClearCache(leagueKey string) int {
	return c.cache.Clear(leagueKey)
}
