package controller

import (
	"context"
	"fmt"
	"sort"

	"github.com/bgiblin084/yahoo-fantasy-stats/model"
)

// GetWeeklyLedger folds the league's full transaction log into cumulative
// per-team counters for every week of the season so far.
func (c *controller) GetWeeklyLedger(ctx context.Context, leagueKey string, refresh bool) ([]model.WeeklyLedgerEntry, error) {
	l, err := c.GetLeagueInfo(ctx, leagueKey, refresh)
	if err != nil {
		return nil, err
	}
	prior := l.IsPriorSeason(c.clock.Now())

	if !refresh && prior {
		var cached []model.WeeklyLedgerEntry
		if c.cache.Get(leagueKey, cacheWeeklyStats, &cached) {
			return cached, nil
		}
	}

	httpClient, err := c.httpClient(ctx)
	if err != nil {
		return nil, err
	}

	teams, err := c.yahoo.GetTeams(httpClient, leagueKey)
	if err != nil {
		return nil, fmt.Errorf("error getting teams for %s: %w", leagueKey, err)
	}
	txns, err := c.yahoo.GetTransactions(httpClient, leagueKey)
	if err != nil {
		return nil, fmt.Errorf("error getting transactions for %s: %w", leagueKey, err)
	}

	// Without a start date there is no way to place transactions into
	// weeks; the ledger still lists every team at its endowment.
	var aligner *model.WeekAligner
	if !l.StartDate.IsZero() {
		aligner = model.NewWeekAligner(l.StartDate)
	}

	start, end := weekRange(l)
	entries := buildWeeklyLedger(leagueKey, teams, txns, aligner, start, end)

	if prior {
		c.cache.Set(leagueKey, cacheWeeklyStats, entries)
	}
	return entries, nil
}

// buildWeeklyLedger assigns each transaction to a week and propagates it
// forward: a move in week w is reflected in w and every later week, so each
// week's row is the cumulative state as of that week. FAAB is debited from
// the endowment only for successful positive bids. Transactions outside the
// week range, without a timestamp, or with no resolvable team are skipped.
func buildWeeklyLedger(leagueKey string, teams []model.Team, txns []model.Transaction, aligner *model.WeekAligner, startWeek, endWeek int) []model.WeeklyLedgerEntry {
	if endWeek < startWeek {
		return []model.WeeklyLedgerEntry{}
	}

	type counters struct {
		moves     int
		trades    int
		faabSpent int
	}
	table := make(map[int]map[string]*counters, endWeek-startWeek+1)
	for w := startWeek; w <= endWeek; w++ {
		table[w] = make(map[string]*counters, len(teams))
		for _, t := range teams {
			table[w][t.Key] = &counters{}
		}
	}

	ordered := make([]model.Transaction, len(txns))
	copy(ordered, txns)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Timestamp.Before(ordered[b].Timestamp)
	})

	for _, txn := range ordered {
		if aligner == nil || txn.Timestamp.IsZero() {
			continue
		}
		week := aligner.Week(txn.Timestamp)
		if week < startWeek || week > endWeek {
			continue
		}
		for _, teamKey := range txn.AffectedTeams(leagueKey) {
			for w := week; w <= endWeek; w++ {
				cnt, ok := table[w][teamKey]
				if !ok {
					continue
				}
				switch {
				case txn.IsMove():
					cnt.moves++
				case txn.Type == model.TransactionTrade:
					cnt.trades++
				}
				if txn.FAABBid > 0 && txn.Status == model.StatusSuccessful {
					cnt.faabSpent += txn.FAABBid
				}
			}
		}
	}

	entries := make([]model.WeeklyLedgerEntry, 0, (endWeek-startWeek+1)*len(teams))
	for w := startWeek; w <= endWeek; w++ {
		for _, t := range teams {
			cnt := table[w][t.Key]
			entries = append(entries, model.WeeklyLedgerEntry{
				TeamKey:     t.Key,
				TeamName:    t.Name,
				Week:        w,
				Moves:       cnt.moves,
				Trades:      cnt.trades,
				FAABBalance: model.StartingFAABBudget - cnt.faabSpent,
			})
		}
	}
	return entries
}
