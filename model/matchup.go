package model

// TeamResult is one side of a weekly head-to-head matchup.
type TeamResult struct {
	TeamKey  string  `json:"team_key"`
	TeamName string  `json:"team_name"`
	Points   float64 `json:"points"`
	// BeatsFieldPct is the share of the other teams this side outscored
	// that week, 0-100. Derived after all scoreboards for the week are in,
	// never read off the wire.
	BeatsFieldPct float64 `json:"beats_field_pct"`
}

type Matchup struct {
	Week   int         `json:"week"`
	TeamA  *TeamResult `json:"team_a"`
	TeamB  *TeamResult `json:"team_b"`
	Winner string      `json:"winner"` // winning team name, "Tie" on equal scores
}

// WeeklyPerformance is one team's scoring line for one week.
type WeeklyPerformance struct {
	Week          int     `json:"week"`
	TeamKey       string  `json:"team_key"`
	TeamName      string  `json:"team_name"`
	Points        float64 `json:"points"`
	BeatsFieldPct float64 `json:"beats_field_pct"`
}
