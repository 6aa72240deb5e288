package model

import (
	"sort"
	"strings"
	"time"
)

// Transaction types as the provider reports them.
const (
	TransactionAdd     = "add"
	TransactionDrop    = "drop"
	TransactionAddDrop = "add/drop"
	TransactionTrade   = "trade"
)

// StatusSuccessful is the only transaction status that spends FAAB.
const StatusSuccessful = "successful"

type Transaction struct {
	Key       string    `json:"transaction_key"`
	ID        string    `json:"transaction_id"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	FAABBid   int       `json:"faab_bid"`
	// TeamKeys are the teams referenced by the transaction's player
	// movement records (sources and destinations), deduplicated.
	TeamKeys []string `json:"team_keys"`
	// TraderTeamKey and TradeeTeamKey are set only for trades.
	TraderTeamKey string `json:"trader_team_key,omitempty"`
	TradeeTeamKey string `json:"tradee_team_key,omitempty"`
}

// IsMove reports whether the transaction counts against the roster-move
// counter. Trades are counted separately.
func (t *Transaction) IsMove() bool {
	return t.Type == TransactionAdd || t.Type == TransactionDrop || t.Type == TransactionAddDrop
}

// AffectedTeams returns the sorted, deduplicated team keys the transaction
// touches, restricted to teams of the given league. Trades resolve through
// the trader/tradee pair; everything else resolves through the player
// movement records. Commissioner actions with no team reference resolve to
// an empty slice.
func (t *Transaction) AffectedTeams(leagueKey string) []string {
	keys := t.TeamKeys
	if t.Type == TransactionTrade {
		keys = []string{t.TraderTeamKey, t.TradeeTeamKey}
	}

	prefix := leagueKey + "."
	seen := make(map[string]bool, len(keys))
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] || !strings.HasPrefix(k, prefix) {
			continue
		}
		seen[k] = true
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}
