package model

// ValueUnavailable marks a field the provider response did not include.
const ValueUnavailable = "N/A"

// HiddenNickname is the sentinel Yahoo returns for managers who have hidden
// their identity from the public API.
const HiddenNickname = "--hidden--"

// Team is one franchise in a league, carrying the roster-activity counters
// and the standings snapshot the provider reports for it.
type Team struct {
	Key             string  `json:"team_key"`
	ID              string  `json:"team_id"`
	Name            string  `json:"name"`
	ManagerNickname string  `json:"manager_nickname"`
	DraftGrade      string  `json:"draft_grade"`
	Moves           int     `json:"number_of_moves"`
	Trades          int     `json:"number_of_trades"`
	FAABBalance     int     `json:"faab_balance"`
	Rank            int     `json:"rank"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	Ties            int     `json:"ties"`
	PointsFor       float64 `json:"points_for"`
	PointsAgainst   float64 `json:"points_against"`
	WinPercentage   float64 `json:"win_percentage"` // 0-100
}

// TeamStanding is one row of the exposed standings table: the provider
// snapshot plus the luck-adjusted expected record derived from weekly
// beats-the-field percentages.
type TeamStanding struct {
	Team
	LeagueKey               string  `json:"league_key"`
	ExpectedWins            int     `json:"expected_wins"`
	ExpectedLosses          int     `json:"expected_losses"`
	ExpectedWinPercentage   float64 `json:"expected_win_percentage"`
	WinPercentageDifference float64 `json:"win_percentage_difference"`
}
