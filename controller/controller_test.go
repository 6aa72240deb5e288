package controller

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bgiblin084/yahoo-fantasy-stats/cache"
	"github.com/bgiblin084/yahoo-fantasy-stats/model"
	"github.com/bgiblin084/yahoo-fantasy-stats/nickname"
	"github.com/bgiblin084/yahoo-fantasy-stats/testutils"
	"github.com/bgiblin084/yahoo-fantasy-stats/yahoo"
	"github.com/itbasis/go-clock"
)

type testEnv struct {
	ctrl         C
	fakeYahoo    *testutils.FakeYahooServer
	nicknameFile string
}

// newTestEnv wires a controller against the fake Yahoo server. The mock
// clock is set well past the fixture league's 2023 season so it classifies
// as prior and exercises the caching paths. No oauth config is set, which
// makes the controller use the default http client against the fake server.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fakeYahoo := testutils.NewFakeYahooServer()
	t.Cleanup(fakeYahoo.Close)

	mock := clock.NewMock()
	mock.Set(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC))

	store, err := cache.New(t.TempDir(), mock)
	if err != nil {
		t.Fatalf("error creating cache store: %v", err)
	}

	nicknameFile := filepath.Join(t.TempDir(), "nicknames.csv")
	mapper, err := nickname.New(nicknameFile)
	if err != nil {
		t.Fatalf("error creating nickname mapper: %v", err)
	}

	tokenFile := filepath.Join(t.TempDir(), "token.json")
	ctrl, err := New(mock, yahoo.NewForTest(fakeYahoo.URL()), store, mapper, nil, tokenFile)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}

	return &testEnv{ctrl: ctrl, fakeYahoo: fakeYahoo, nicknameFile: nicknameFile}
}

func TestGetLeagueInfo(t *testing.T) {
	env := newTestEnv(t)

	l, err := env.ctrl.GetLeagueInfo(context.Background(), testutils.YahooLeagueKey, false)
	if err != nil {
		t.Fatalf("error getting league info: %v", err)
	}

	if l.Key != testutils.YahooLeagueKey || l.Name != "Test League" {
		t.Errorf("league = %+v", l)
	}
	if l.Season != 2023 || l.CurrentWeek != 3 || l.StartWeek != 1 || l.EndWeek != 3 || l.NumTeams != 4 {
		t.Errorf("league fields = %+v", l)
	}
	if !l.StartDate.Equal(time.Date(2023, time.September, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start date = %v", l.StartDate)
	}
}

func TestGetLeagueInfoUnknownLeague(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.ctrl.GetLeagueInfo(context.Background(), "390.l.100", false); err == nil {
		t.Errorf("expected an error for an unknown league")
	}
}

func TestGetTeamStandings(t *testing.T) {
	env := newTestEnv(t)

	standings, err := env.ctrl.GetTeamStandings(context.Background(), testutils.YahooLeagueKey, false)
	if err != nil {
		t.Fatalf("error getting standings: %v", err)
	}
	if len(standings) != 4 {
		t.Fatalf("got %d standings rows, expected 4", len(standings))
	}

	byName := make(map[string]model.TeamStanding)
	for _, s := range standings {
		byName[s.Name] = s
	}

	foxes := byName["Foxes"]
	if foxes.Rank != 1 || foxes.Wins != 3 || foxes.DraftGrade != "A" {
		t.Errorf("Foxes = %+v", foxes)
	}
	if foxes.ExpectedWins != 2 || foxes.ExpectedLosses != 0 || foxes.ExpectedWinPercentage != 100 {
		t.Errorf("Foxes expected record = %+v", foxes)
	}
	if foxes.WinPercentageDifference != 0 {
		t.Errorf("Foxes difference = %v, expected 0", foxes.WinPercentageDifference)
	}

	// Hawks won week 1 big and lost week 2: a 1-1 expected record, even
	// with the actual record at 1-1-1.
	hawks := byName["Hawks"]
	if hawks.ExpectedWins != 1 || hawks.ExpectedLosses != 1 {
		t.Errorf("Hawks expected record = %+v", hawks)
	}

	wolves := byName["Wolves"]
	if wolves.ExpectedWins != 0 || wolves.ExpectedLosses != 2 {
		t.Errorf("Wolves expected record = %+v", wolves)
	}
	if wolves.WinPercentageDifference != 16.7 {
		t.Errorf("Wolves difference = %v, expected 16.7", wolves.WinPercentageDifference)
	}
}

func TestStandingsNicknames(t *testing.T) {
	env := newTestEnv(t)

	standings, err := env.ctrl.GetTeamStandings(context.Background(), testutils.YahooLeagueKey, false)
	if err != nil {
		t.Fatalf("error getting standings: %v", err)
	}

	byName := make(map[string]model.TeamStanding)
	for _, s := range standings {
		byName[s.Name] = s
	}

	if got := byName["Hawks"].ManagerNickname; got != "Alice" {
		t.Errorf("Hawks nickname = %q, expected Alice", got)
	}
	// The hidden manager gets a placeholder, and a row to fill in.
	if got := byName["Ravens"].ManagerNickname; got != nickname.Placeholder {
		t.Errorf("Ravens nickname = %q, expected %q", got, nickname.Placeholder)
	}
	b, err := os.ReadFile(env.nicknameFile)
	if err != nil {
		t.Fatalf("error reading nickname file: %v", err)
	}
	if !strings.Contains(string(b), "Ravens,461.l.621700,461,FIXME") {
		t.Errorf("nickname file missing placeholder row: %s", b)
	}

	// Filling in the row takes effect on the next call without a refresh.
	edited := strings.Replace(string(b), "FIXME", "Bob", 1)
	if err := os.WriteFile(env.nicknameFile, []byte(edited), 0o644); err != nil {
		t.Fatalf("error editing nickname file: %v", err)
	}
	mapper, err := nickname.New(env.nicknameFile)
	if err != nil {
		t.Fatalf("error reloading mapper: %v", err)
	}
	if got := mapper.Resolve("Ravens", testutils.YahooLeagueKey, "461", model.HiddenNickname); got != "Bob" {
		t.Errorf("resolved nickname = %q, expected Bob", got)
	}
}

func TestGetWeeklyMatchups(t *testing.T) {
	env := newTestEnv(t)

	matchups, err := env.ctrl.GetWeeklyMatchups(context.Background(), testutils.YahooLeagueKey, false)
	if err != nil {
		t.Fatalf("error getting matchups: %v", err)
	}
	if len(matchups) != 6 {
		t.Fatalf("got %d matchups, expected 6", len(matchups))
	}

	week1 := matchups[0]
	if week1.Week != 1 || week1.Winner != "Hawks" {
		t.Errorf("first matchup = %+v", week1)
	}
	if week1.TeamA.BeatsFieldPct != 100 {
		t.Errorf("Hawks week 1 beats-field = %v, expected 100", week1.TeamA.BeatsFieldPct)
	}
	if week1.TeamB.BeatsFieldPct != 0 {
		t.Errorf("Ravens week 1 beats-field = %v, expected 0", week1.TeamB.BeatsFieldPct)
	}

	var week3Tie *model.Matchup
	for i := range matchups {
		if matchups[i].Week == 3 && matchups[i].TeamA.TeamName == "Hawks" {
			week3Tie = &matchups[i]
		}
	}
	if week3Tie == nil || week3Tie.Winner != "Tie" {
		t.Errorf("week 3 Hawks/Wolves matchup = %+v, expected a tie", week3Tie)
	}
}

func TestGetWeeklyPerformance(t *testing.T) {
	env := newTestEnv(t)

	rows, err := env.ctrl.GetWeeklyPerformance(context.Background(), testutils.YahooLeagueKey, false)
	if err != nil {
		t.Fatalf("error getting performance: %v", err)
	}
	if len(rows) != 12 {
		t.Fatalf("got %d rows, expected 12", len(rows))
	}

	// Week 1 ordered best-first: Hawks, Foxes, Wolves, Ravens.
	expectedWeek1 := []string{"Hawks", "Foxes", "Wolves", "Ravens"}
	for i, name := range expectedWeek1 {
		if rows[i].Week != 1 || rows[i].TeamName != name {
			t.Errorf("row %d = %s week %d, expected %s week 1", i, rows[i].TeamName, rows[i].Week, name)
		}
	}
	for _, r := range rows {
		if r.BeatsFieldPct < 0 || r.BeatsFieldPct > 100 {
			t.Errorf("%s week %d beats-field %v outside [0,100]", r.TeamName, r.Week, r.BeatsFieldPct)
		}
	}
}

func TestGetWeeklyLedger(t *testing.T) {
	env := newTestEnv(t)

	entries, err := env.ctrl.GetWeeklyLedger(context.Background(), testutils.YahooLeagueKey, false)
	if err != nil {
		t.Fatalf("error getting ledger: %v", err)
	}
	if len(entries) != 12 {
		t.Fatalf("got %d entries, expected 12 (4 teams x 3 weeks)", len(entries))
	}

	get := func(name string, week int) model.WeeklyLedgerEntry {
		for _, e := range entries {
			if e.TeamName == name && e.Week == week {
				return e
			}
		}
		t.Fatalf("no entry for %s week %d", name, week)
		return model.WeeklyLedgerEntry{}
	}

	// Hawks' week 1 add/drop with a 12 bid carries through all weeks.
	for week := 1; week <= 3; week++ {
		e := get("Hawks", week)
		if e.Moves != 1 || e.Trades != 0 || e.FAABBalance != 88 {
			t.Errorf("Hawks week %d = %+v", week, e)
		}
	}

	// The week 2 trade shows up for both sides from week 2 on.
	for _, name := range []string{"Ravens", "Foxes"} {
		if e := get(name, 1); e.Trades != 0 {
			t.Errorf("%s week 1 = %+v", name, e)
		}
		for week := 2; week <= 3; week++ {
			e := get(name, week)
			if e.Trades != 1 || e.Moves != 0 || e.FAABBalance != 100 {
				t.Errorf("%s week %d = %+v", name, week, e)
			}
		}
	}

	// Wolves' zero-bid week 3 add counts a move but spends nothing.
	if e := get("Wolves", 2); e.Moves != 0 {
		t.Errorf("Wolves week 2 = %+v", e)
	}
	if e := get("Wolves", 3); e.Moves != 1 || e.FAABBalance != 100 {
		t.Errorf("Wolves week 3 = %+v", e)
	}
}

func TestPriorSeasonCaching(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.ctrl.GetTeamStandings(ctx, testutils.YahooLeagueKey, false)
	if err != nil {
		t.Fatalf("error getting standings: %v", err)
	}
	if _, err := env.ctrl.GetWeeklyLedger(ctx, testutils.YahooLeagueKey, false); err != nil {
		t.Fatalf("error getting ledger: %v", err)
	}

	// The 2023 season is long over, so everything must now come from the
	// cache even with the provider gone.
	env.fakeYahoo.Close()

	second, err := env.ctrl.GetTeamStandings(ctx, testutils.YahooLeagueKey, false)
	if err != nil {
		t.Fatalf("error getting standings from cache: %v", err)
	}
	if len(second) != len(first) {
		t.Errorf("cached standings has %d rows, expected %d", len(second), len(first))
	}
	if _, err := env.ctrl.GetWeeklyLedger(ctx, testutils.YahooLeagueKey, false); err != nil {
		t.Errorf("error getting ledger from cache: %v", err)
	}

	// A forced refresh bypasses the cache and must fail without a provider.
	if _, err := env.ctrl.GetTeamStandings(ctx, testutils.YahooLeagueKey, true); err == nil {
		t.Errorf("expected an error on refresh with the provider down")
	}
}

func TestClearCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.ctrl.GetTeamStandings(ctx, testutils.YahooLeagueKey, false); err != nil {
		t.Fatalf("error getting standings: %v", err)
	}

	if removed := env.ctrl.ClearCache(testutils.YahooLeagueKey); removed == 0 {
		t.Errorf("ClearCache removed nothing after a cached call")
	}

	env.fakeYahoo.Close()
	if _, err := env.ctrl.GetTeamStandings(ctx, testutils.YahooLeagueKey, false); err == nil {
		t.Errorf("expected an error after clearing the cache with the provider down")
	}
}

func TestListLeagues(t *testing.T) {
	env := newTestEnv(t)

	leagues, err := env.ctrl.ListLeagues(context.Background())
	if err != nil {
		t.Fatalf("error listing leagues: %v", err)
	}
	// The baseball game is filtered out.
	if len(leagues) != 1 {
		t.Fatalf("got %d leagues, expected 1", len(leagues))
	}
	if leagues[0].Key != testutils.YahooLeagueKey || leagues[0].Season != 2023 {
		t.Errorf("league = %+v", leagues[0])
	}
}

func TestGetMultiLeagueStandings(t *testing.T) {
	env := newTestEnv(t)

	standings, err := env.ctrl.GetMultiLeagueStandings(context.Background(), []string{testutils.YahooLeagueKey}, false)
	if err != nil {
		t.Fatalf("error getting multi-league standings: %v", err)
	}
	if len(standings) != 4 {
		t.Fatalf("got %d rows, expected 4", len(standings))
	}
	for _, s := range standings {
		if s.LeagueKey != testutils.YahooLeagueKey {
			t.Errorf("row league key = %q", s.LeagueKey)
		}
	}
}
