package model

import (
	"reflect"
	"testing"
)

const testLeagueKey = "461.l.621700"

func TestAffectedTeams(t *testing.T) {
	tests := map[string]struct {
		txn      Transaction
		expected []string
	}{
		"add with destination": {
			txn:      Transaction{Type: TransactionAdd, TeamKeys: []string{"461.l.621700.t.4"}},
			expected: []string{"461.l.621700.t.4"},
		},
		"add drop same team deduplicated": {
			txn: Transaction{
				Type:     TransactionAddDrop,
				TeamKeys: []string{"461.l.621700.t.1", "461.l.621700.t.1"},
			},
			expected: []string{"461.l.621700.t.1"},
		},
		"trade uses trader and tradee": {
			txn: Transaction{
				Type:          TransactionTrade,
				TeamKeys:      []string{"461.l.621700.t.9"},
				TraderTeamKey: "461.l.621700.t.2",
				TradeeTeamKey: "461.l.621700.t.3",
			},
			expected: []string{"461.l.621700.t.2", "461.l.621700.t.3"},
		},
		"foreign league keys excluded": {
			txn: Transaction{
				Type:     TransactionAdd,
				TeamKeys: []string{"390.l.100.t.1", "461.l.621700.t.2"},
			},
			expected: []string{"461.l.621700.t.2"},
		},
		"commissioner action with no teams": {
			txn:      Transaction{Type: "commish"},
			expected: []string{},
		},
		"empty keys skipped": {
			txn:      Transaction{Type: TransactionTrade},
			expected: []string{},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := tc.txn.AffectedTeams(testLeagueKey)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("AffectedTeams() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestIsMove(t *testing.T) {
	tests := map[string]struct {
		txnType  string
		expected bool
	}{
		"add":      {txnType: TransactionAdd, expected: true},
		"drop":     {txnType: TransactionDrop, expected: true},
		"add/drop": {txnType: TransactionAddDrop, expected: true},
		"trade":    {txnType: TransactionTrade, expected: false},
		"commish":  {txnType: "commish", expected: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			txn := Transaction{Type: tc.txnType}
			if got := txn.IsMove(); got != tc.expected {
				t.Errorf("IsMove() = %v, expected %v", got, tc.expected)
			}
		})
	}
}
