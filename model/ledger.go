package model

// StartingFAABBudget is the waiver-bid endowment every team begins the
// season with.
const StartingFAABBudget = 100

// WeeklyLedgerEntry is the cumulative transaction state of one team as of
// the end of one week. Counters never decrease from week to week and the
// FAAB balance never climbs back toward the endowment.
type WeeklyLedgerEntry struct {
	TeamKey     string `json:"team_key"`
	TeamName    string `json:"team_name"`
	Week        int    `json:"week"`
	Moves       int    `json:"moves"`
	Trades      int    `json:"trades"`
	FAABBalance int    `json:"faab_balance"`
}
