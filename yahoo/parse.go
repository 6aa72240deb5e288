package yahoo

import (
	"math"
	"strconv"
	"time"

	"github.com/bgiblin084/yahoo-fantasy-stats/model"
)

// The parsers in this file turn raw Yahoo envelopes into model types. Shape
// problems are never errors: an envelope that does not contain a recognizable
// container parses to an empty result, and individual malformed entities are
// skipped. Only the client reports errors, and only for transport problems.

// leagueSection locates the league container inside an envelope and returns
// the node carrying the league's own fields plus the node holding the named
// subresource (standings, teams, transactions, scoreboard).
func leagueSection(envelope Node, name string) (info Node, section Node) {
	return containerSection(envelope.Field("fantasy_content").Field("league"), "league", name)
}

// containerSection resolves the provider's container encodings in priority
// order: a direct object holding the subresource, a list of parts where the
// first part is the entity's fields, or a numeric-keyed wrapper nesting the
// container again under its own name.
func containerSection(c Node, container, name string) (info Node, section Node) {
	switch {
	case c.IsArray():
		info = c.Index(0)
		for _, part := range c.Items() {
			if s := part.Field(name); s.Exists() {
				section = s
				break
			}
		}
	case c.IsObject():
		if s := c.Field(name); s.Exists() {
			return c, s
		}
		if c.Field("league_key").Exists() || c.Field("transaction_key").Exists() {
			return c, Node{}
		}
		for _, wrapped := range c.Items() {
			if inner := wrapped.Field(container); inner.Exists() {
				return containerSection(inner, container, name)
			}
			if s := wrapped.Field(name); s.Exists() {
				return wrapped, s
			}
		}
	}
	return info, section
}

func parseLeagueInfo(envelope Node) *model.League {
	info, _ := leagueSection(envelope, "league_key")
	f := info.Flatten()
	if f["league_key"] == "" {
		return nil
	}
	l := &model.League{
		Key:         f["league_key"],
		Name:        stringOr(f, "name"),
		Season:      atoi(f["season"]),
		CurrentWeek: atoi(f["current_week"]),
		StartWeek:   atoi(f["start_week"]),
		EndWeek:     atoi(f["end_week"]),
		NumTeams:    atoi(f["num_teams"]),
		ScoringType: f["scoring_type"],
	}
	if d, err := time.Parse(time.DateOnly, f["start_date"]); err == nil {
		l.StartDate = d
	}
	return l
}

func parseTeams(envelope Node) []model.Team {
	_, teams := leagueSection(envelope, "teams")
	return teamsFrom(teams)
}

func parseStandings(envelope Node) []model.Team {
	_, standings := leagueSection(envelope, "standings")
	return teamsFrom(findField(standings, "teams"))
}

func teamsFrom(teamsNode Node) []model.Team {
	teams := make([]model.Team, 0, 12)
	for _, item := range teamsNode.Items() {
		tn := item.Field("team")
		if !tn.Exists() {
			continue
		}
		f := tn.Flatten("managers")
		if f["team_key"] == "" {
			continue
		}
		t := model.Team{
			Key:             f["team_key"],
			ID:              stringOr(f, "team_id"),
			Name:            stringOr(f, "name"),
			ManagerNickname: model.ValueUnavailable,
			DraftGrade:      stringOr(f, "draft_grade"),
			Moves:           atoi(f["number_of_moves"]),
			Trades:          atoi(f["number_of_trades"]),
			FAABBalance:     atoi(f["faab_balance"]),
			Rank:            atoi(f["rank"]),
			Wins:            atoi(f["wins"]),
			Losses:          atoi(f["losses"]),
			Ties:            atoi(f["ties"]),
			PointsFor:       atof(f["points_for"]),
			PointsAgainst:   atof(f["points_against"]),
			WinPercentage:   winPercentage(f["percentage"]),
		}
		if nick := managerNickname(tn); nick != "" {
			t.ManagerNickname = nick
		}
		teams = append(teams, t)
	}
	return teams
}

// managerNickname digs the first manager's nickname out of the team's
// managers collection, which is a peer collection of {"manager": {...}}
// wrappers in either collection encoding.
func managerNickname(team Node) string {
	for _, item := range findField(team, "managers").Items() {
		mgr := item.Field("manager")
		if !mgr.Exists() {
			mgr = item
		}
		if nick := mgr.Flatten()["nickname"]; nick != "" {
			return nick
		}
	}
	return ""
}

func parseTransactions(envelope Node) []model.Transaction {
	_, section := leagueSection(envelope, "transactions")
	out := make([]model.Transaction, 0, 32)
	for _, item := range section.Items() {
		tn := item.Field("transaction")
		if !tn.Exists() {
			continue
		}
		if t, ok := parseTransaction(tn); ok {
			out = append(out, t)
		}
	}
	return out
}

func parseTransaction(tn Node) (model.Transaction, bool) {
	f := tn.Flatten("players")
	if f["transaction_key"] == "" && f["transaction_id"] == "" {
		return model.Transaction{}, false
	}
	t := model.Transaction{
		Key:           stringOr(f, "transaction_key"),
		ID:            stringOr(f, "transaction_id"),
		Type:          stringOr(f, "type"),
		Status:        stringOr(f, "status"),
		FAABBid:       atoi(f["faab_bid"]),
		TraderTeamKey: f["trader_team_key"],
		TradeeTeamKey: f["tradee_team_key"],
		TeamKeys:      transactionTeamKeys(tn),
	}
	if ts := atoi64(f["timestamp"]); ts > 0 {
		t.Timestamp = time.Unix(ts, 0)
	}
	return t, true
}

// transactionTeamKeys collects the source and destination teams of every
// player movement record inside the transaction.
func transactionTeamKeys(tn Node) []string {
	seen := make(map[string]bool)
	keys := make([]string, 0, 2)
	for _, p := range findField(tn, "players").Items() {
		pl := p.Field("player")
		if !pl.Exists() {
			continue
		}
		td := findField(pl, "transaction_data")
		// transaction_data is a single object for drops but a one-element
		// list for adds.
		records := td.Items()
		if td.IsObject() && len(records) == 0 {
			records = []Node{td}
		}
		for _, rec := range records {
			fd := rec.Flatten()
			key := fd["destination_team_key"]
			if key == "" {
				key = fd["source_team_key"]
			}
			if key != "" && !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	return keys
}

func parseScoreboard(envelope Node, week int) []model.Matchup {
	_, sb := leagueSection(envelope, "scoreboard")
	out := make([]model.Matchup, 0, 6)
	for _, item := range findField(sb, "matchups").Items() {
		mn := item.Field("matchup")
		if !mn.Exists() {
			continue
		}
		sides := matchupSides(mn)
		if len(sides) != 2 {
			continue
		}
		m := model.Matchup{Week: week, TeamA: sides[0], TeamB: sides[1]}
		switch {
		case sides[0].Points > sides[1].Points:
			m.Winner = sides[0].TeamName
		case sides[1].Points > sides[0].Points:
			m.Winner = sides[1].TeamName
		default:
			m.Winner = "Tie"
		}
		out = append(out, m)
	}
	return out
}

func matchupSides(mn Node) []*model.TeamResult {
	sides := make([]*model.TeamResult, 0, 2)
	for _, item := range findField(mn, "teams").Items() {
		tn := item.Field("team")
		if !tn.Exists() {
			continue
		}
		// Points come out of team_points explicitly because the flat map
		// would collide with team_projected_points' "total".
		f := tn.Flatten("managers", "team_points", "team_projected_points")
		if f["team_key"] == "" {
			continue
		}
		sides = append(sides, &model.TeamResult{
			TeamKey:  f["team_key"],
			TeamName: stringOr(f, "name"),
			Points:   atof(findField(tn, "team_points").Flatten()["total"]),
		})
	}
	return sides
}

func parseGames(envelope Node) []model.Game {
	games := make([]model.Game, 0, 4)
	for _, item := range userGames(envelope).Items() {
		gn := item.Field("game")
		if !gn.Exists() {
			continue
		}
		f := gn.Flatten("leagues")
		if f["game_key"] == "" {
			continue
		}
		games = append(games, model.Game{
			Key:    f["game_key"],
			Code:   f["code"],
			Name:   f["name"],
			Season: f["season"],
			Type:   f["type"],
		})
	}
	return games
}

func parseLeagues(envelope Node, gameKey string) []model.League {
	for _, item := range userGames(envelope).Items() {
		gn := item.Field("game")
		if !gn.Exists() {
			continue
		}
		if gn.Flatten("leagues")["game_key"] != gameKey {
			continue
		}
		return leaguesFrom(findField(gn, "leagues"))
	}
	return nil
}

// userGames finds the games collection of the first (only) user in a users
// envelope. The user container is a two-part list: profile fields first,
// games second.
func userGames(envelope Node) Node {
	users := envelope.Field("fantasy_content").Field("users")
	for _, item := range users.Items() {
		un := item.Field("user")
		if !un.Exists() {
			un = item
		}
		if g := findField(un, "games"); g.Exists() {
			return g
		}
	}
	return Node{}
}

func leaguesFrom(ln Node) []model.League {
	leagues := make([]model.League, 0, 4)
	for _, item := range ln.Items() {
		l := item.Field("league")
		if !l.Exists() {
			continue
		}
		f := l.Flatten()
		if f["league_key"] == "" {
			continue
		}
		lg := model.League{
			Key:         f["league_key"],
			Name:        stringOr(f, "name"),
			Season:      atoi(f["season"]),
			CurrentWeek: atoi(f["current_week"]),
			StartWeek:   atoi(f["start_week"]),
			EndWeek:     atoi(f["end_week"]),
			NumTeams:    atoi(f["num_teams"]),
			ScoringType: f["scoring_type"],
		}
		if d, err := time.Parse(time.DateOnly, f["start_date"]); err == nil {
			lg.StartDate = d
		}
		leagues = append(leagues, lg)
	}
	return leagues
}

// stringOr returns the field value, or the unavailable sentinel when the
// provider omitted it.
func stringOr(f map[string]string, key string) string {
	if v := f[key]; v != "" {
		return v
	}
	return model.ValueUnavailable
}

// atoi parses a numeric field, returning 0 on anything unparseable.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func atoi64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func atof(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// winPercentage normalizes the provider's win percentage, which arrives as a
// 0-1 fraction, to the 0-100 scale the rest of the app uses. Rounded to three
// decimals to keep the fraction-to-percent conversion stable.
func winPercentage(s string) float64 {
	f := atof(s)
	if f <= 1.0 {
		f *= 100
	}
	return math.Round(f*1000) / 1000
}
