package controller

import (
	"testing"

	"github.com/bgiblin084/yahoo-fantasy-stats/model"
)

func matchup(week int, aKey string, aPts float64, bKey string, bPts float64) model.Matchup {
	return model.Matchup{
		Week:  week,
		TeamA: &model.TeamResult{TeamKey: aKey, TeamName: aKey, Points: aPts},
		TeamB: &model.TeamResult{TeamKey: bKey, TeamName: bKey, Points: bPts},
	}
}

func TestApplyBeatsField(t *testing.T) {
	matchups := []model.Matchup{
		matchup(1, "t.1", 120.5, "t.2", 98.0),
		matchup(1, "t.3", 101.2, "t.4", 99.9),
	}
	applyBeatsField(matchups)

	expected := map[string]float64{
		"t.1": 100,
		"t.3": round3(100.0 * 2 / 3),
		"t.4": round3(100.0 / 3),
		"t.2": 0,
	}
	for _, m := range matchups {
		for _, side := range []*model.TeamResult{m.TeamA, m.TeamB} {
			if side.BeatsFieldPct != expected[side.TeamKey] {
				t.Errorf("%s BeatsFieldPct = %v, expected %v", side.TeamKey, side.BeatsFieldPct, expected[side.TeamKey])
			}
			if side.BeatsFieldPct < 0 || side.BeatsFieldPct > 100 {
				t.Errorf("%s BeatsFieldPct = %v outside [0,100]", side.TeamKey, side.BeatsFieldPct)
			}
		}
	}
}

func TestApplyBeatsFieldTwoTeamLeague(t *testing.T) {
	matchups := []model.Matchup{matchup(1, "t.1", 110, "t.2", 90)}
	applyBeatsField(matchups)

	if m := matchups[0]; m.TeamA.BeatsFieldPct != 100 || m.TeamB.BeatsFieldPct != 0 {
		t.Errorf("got %v/%v, expected 100/0", m.TeamA.BeatsFieldPct, m.TeamB.BeatsFieldPct)
	}
}

func TestApplyBeatsFieldAllTied(t *testing.T) {
	matchups := []model.Matchup{
		matchup(1, "t.1", 100, "t.2", 100),
		matchup(1, "t.3", 100, "t.4", 100),
	}
	applyBeatsField(matchups)

	for _, m := range matchups {
		for _, side := range []*model.TeamResult{m.TeamA, m.TeamB} {
			if side.BeatsFieldPct != 0 {
				t.Errorf("%s BeatsFieldPct = %v, expected 0 for a full tie", side.TeamKey, side.BeatsFieldPct)
			}
		}
	}
}

func TestApplyBeatsFieldWeeksAreIndependent(t *testing.T) {
	matchups := []model.Matchup{
		matchup(1, "t.1", 50, "t.2", 60),
		matchup(2, "t.1", 150, "t.2", 60),
	}
	applyBeatsField(matchups)

	if got := matchups[0].TeamA.BeatsFieldPct; got != 0 {
		t.Errorf("week 1 t.1 = %v, expected 0", got)
	}
	if got := matchups[1].TeamA.BeatsFieldPct; got != 100 {
		t.Errorf("week 2 t.1 = %v, expected 100", got)
	}
}

func TestPerformanceRows(t *testing.T) {
	matchups := []model.Matchup{
		matchup(1, "t.1", 120.5, "t.2", 98.0),
		matchup(1, "t.3", 101.2, "t.4", 99.9),
		matchup(2, "t.1", 90, "t.2", 110),
	}
	applyBeatsField(matchups)
	rows := performanceRows(matchups)

	if len(rows) != 6 {
		t.Fatalf("got %d rows, expected 6", len(rows))
	}
	// Ordered by week, then best percentile first.
	expectedOrder := []string{"t.1", "t.3", "t.4", "t.2", "t.2", "t.1"}
	for i, r := range rows {
		if r.TeamKey != expectedOrder[i] {
			t.Errorf("row %d = %s (week %d), expected %s", i, r.TeamKey, r.Week, expectedOrder[i])
		}
	}
}

func TestExpectedRecords(t *testing.T) {
	performance := []model.WeeklyPerformance{
		{Week: 1, TeamKey: "t.1", BeatsFieldPct: 100},
		{Week: 1, TeamKey: "t.2", BeatsFieldPct: 0},
		{Week: 2, TeamKey: "t.1", BeatsFieldPct: round3(100.0 / 3)},
		{Week: 2, TeamKey: "t.2", BeatsFieldPct: round3(100.0 * 2 / 3)},
		// Exactly the median counts toward neither bucket.
		{Week: 3, TeamKey: "t.1", BeatsFieldPct: 50},
		{Week: 3, TeamKey: "t.2", BeatsFieldPct: 50},
		// The current week is excluded entirely.
		{Week: 4, TeamKey: "t.1", BeatsFieldPct: 100},
		{Week: 4, TeamKey: "t.2", BeatsFieldPct: 0},
	}

	records := expectedRecords(performance, 4)

	if e := records["t.1"]; e.wins != 1 || e.losses != 1 {
		t.Errorf("t.1 = %d-%d, expected 1-1", e.wins, e.losses)
	}
	if e := records["t.2"]; e.wins != 1 || e.losses != 1 {
		t.Errorf("t.2 = %d-%d, expected 1-1", e.wins, e.losses)
	}
}

func TestExpectedRecordsNoCurrentWeek(t *testing.T) {
	performance := []model.WeeklyPerformance{
		{Week: 1, TeamKey: "t.1", BeatsFieldPct: 100},
		{Week: 2, TeamKey: "t.1", BeatsFieldPct: 100},
	}
	// Zero current week means nothing is excluded.
	records := expectedRecords(performance, 0)
	if e := records["t.1"]; e.wins != 2 || e.losses != 0 {
		t.Errorf("t.1 = %d-%d, expected 2-0", e.wins, e.losses)
	}
}
