package yahoo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bgiblin084/yahoo-fantasy-stats/model"
)

const YahooURL = "https://fantasysports.yahooapis.com"

// ErrLeagueNotFound is returned when the provider answers successfully but
// the envelope carries no league, which is how Yahoo reports an unknown or
// inaccessible league key.
var ErrLeagueNotFound = errors.New("league not found")

type Client struct {
	url string
}

func New() (*Client, error) {
	return &Client{url: YahooURL}, nil
}

func NewForTest(url string) *Client {
	return &Client{url: url}
}

func (c *Client) GetLeagueInfo(httpClient *http.Client, leagueKey string) (*model.League, error) {
	envelope, err := c.yahooRequest(httpClient, "/fantasy/v2/league/%s", leagueKey)
	if err != nil {
		return nil, err
	}

	l := parseLeagueInfo(envelope)
	if l == nil {
		return nil, fmt.Errorf("%w: %s", ErrLeagueNotFound, leagueKey)
	}
	return l, nil
}

func (c *Client) GetTeams(httpClient *http.Client, leagueKey string) ([]model.Team, error) {
	envelope, err := c.yahooRequest(httpClient, "/fantasy/v2/league/%s/teams", leagueKey)
	if err != nil {
		return nil, err
	}
	return parseTeams(envelope), nil
}

func (c *Client) GetStandings(httpClient *http.Client, leagueKey string) ([]model.Team, error) {
	envelope, err := c.yahooRequest(httpClient, "/fantasy/v2/league/%s/standings", leagueKey)
	if err != nil {
		return nil, err
	}
	return parseStandings(envelope), nil
}

func (c *Client) GetTransactions(httpClient *http.Client, leagueKey string) ([]model.Transaction, error) {
	envelope, err := c.yahooRequest(httpClient, "/fantasy/v2/league/%s/transactions", leagueKey)
	if err != nil {
		return nil, err
	}
	return parseTransactions(envelope), nil
}

func (c *Client) GetScoreboard(httpClient *http.Client, leagueKey string, week int) ([]model.Matchup, error) {
	envelope, err := c.yahooRequest(httpClient, "/fantasy/v2/league/%s/scoreboard;week=%d", leagueKey, week)
	if err != nil {
		return nil, err
	}
	return parseScoreboard(envelope, week), nil
}

func (c *Client) GetGames(httpClient *http.Client) ([]model.Game, error) {
	envelope, err := c.yahooRequest(httpClient, "/fantasy/v2/users;use_login=1/games")
	if err != nil {
		return nil, err
	}
	return parseGames(envelope), nil
}

func (c *Client) GetLeagues(httpClient *http.Client, gameKey string) ([]model.League, error) {
	envelope, err := c.yahooRequest(httpClient, "/fantasy/v2/users;use_login=1/games;game_keys=%s/leagues", gameKey)
	if err != nil {
		return nil, err
	}
	return parseLeagues(envelope, gameKey), nil
}

func (c *Client) yahooRequest(httpClient *http.Client, format string, args ...any) (Node, error) {
	path := fmt.Sprintf(format, args...)
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s%s?format=json", c.url, path), nil)
	if err != nil {
		return Node{}, fmt.Errorf("error creating http request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return Node{}, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Node{}, fmt.Errorf("unexpected status code from yahoo: %d", resp.StatusCode)
	}

	var envelope Node
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Node{}, fmt.Errorf("error parsing response from yahoo: %w", err)
	}
	return envelope, nil
}
