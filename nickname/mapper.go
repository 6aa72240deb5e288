// Package nickname maintains a human-editable CSV table that maps teams
// whose managers hide their identity to a real nickname.
package nickname

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/bgiblin084/yahoo-fantasy-stats/model"
)

// Placeholder is written for a hidden identity with no stored mapping yet.
// It stands out in both the CSV and the rendered tables so a human knows to
// fill in the real nickname.
const Placeholder = "FIXME"

const DefaultFile = "manager_nicknames.csv"

var header = []string{"team_name", "league_key", "season", "manager_nickname"}

type key struct {
	teamName  string
	leagueKey string
	season    string
}

// Mapper resolves manager nicknames through a CSV file that survives across
// runs and may be edited by hand between them. Lookups are exact-match on
// the trimmed (team name, league key, season) tuple.
type Mapper struct {
	mu       sync.Mutex
	path     string
	mappings map[key]string
}

func New(path string) (*Mapper, error) {
	if path == "" {
		path = DefaultFile
	}
	m := &Mapper{path: path, mappings: make(map[key]string)}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := m.save(); err != nil {
			return nil, fmt.Errorf("error creating nickname file: %w", err)
		}
		return m, nil
	}

	mappings, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	m.mappings = mappings
	return m, nil
}

func loadFile(path string) (map[key]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening nickname file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading nickname file: %w", err)
	}

	mappings := make(map[key]string)
	if len(rows) == 0 || !reflect.DeepEqual(rows[0], header) {
		return nil, fmt.Errorf("nickname file %s has an unexpected header", path)
	}
	for _, row := range rows[1:] {
		k := key{
			teamName:  strings.TrimSpace(row[0]),
			leagueKey: strings.TrimSpace(row[1]),
			season:    strings.TrimSpace(row[2]),
		}
		mappings[k] = strings.TrimSpace(row[3])
	}
	return mappings, nil
}

// Resolve maps a raw provider nickname to a display nickname. Real nicknames
// pass through untouched. Hidden or unavailable values consult the table; an
// unmapped hidden identity gets a placeholder row written so the next person
// to open the CSV sees exactly which entry needs filling in.
func (m *Mapper) Resolve(teamName, leagueKey, season, raw string) string {
	if raw != "" && raw != model.HiddenNickname && raw != model.ValueUnavailable {
		return raw
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	k := key{
		teamName:  strings.TrimSpace(teamName),
		leagueKey: strings.TrimSpace(leagueKey),
		season:    strings.TrimSpace(season),
	}
	if mapped, ok := m.mappings[k]; ok && mapped != "" {
		return mapped
	}

	// Only a confirmed hidden identity with a complete key earns a
	// placeholder row. Merely missing data stays as-is.
	if raw != model.HiddenNickname ||
		k.teamName == "" || k.teamName == model.ValueUnavailable ||
		k.leagueKey == "" || k.season == "" {
		return raw
	}

	m.mappings[k] = Placeholder
	if err := m.save(); err != nil {
		log.Printf("error saving nickname mappings: %v", err)
	}
	return Placeholder
}

// Set records a mapping directly, for manual corrections through code
// rather than the CSV.
func (m *Mapper) Set(teamName, leagueKey, season, nickname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key{
		teamName:  strings.TrimSpace(teamName),
		leagueKey: strings.TrimSpace(leagueKey),
		season:    strings.TrimSpace(season),
	}
	if k.teamName == "" || k.leagueKey == "" || k.season == "" {
		return fmt.Errorf("incomplete nickname key: %q/%q/%q", teamName, leagueKey, season)
	}
	m.mappings[k] = strings.TrimSpace(nickname)
	return m.save()
}

// save writes the table back, first merging rows that appeared in the file
// since it was loaded. In-memory values win on conflict, except that a real
// nickname on disk always beats an in-memory placeholder: a human filling in
// a FIXME row while the app is running must not get clobbered.
func (m *Mapper) save() error {
	if onDisk, err := loadFile(m.path); err == nil {
		for k, v := range onDisk {
			cur, ok := m.mappings[k]
			if !ok || (cur == Placeholder && v != "" && v != Placeholder) {
				m.mappings[k] = v
			}
		}
	}

	keys := make([]key, 0, len(m.mappings))
	for k := range m.mappings {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].leagueKey != keys[b].leagueKey {
			return keys[a].leagueKey < keys[b].leagueKey
		}
		if keys[a].teamName != keys[b].teamName {
			return keys[a].teamName < keys[b].teamName
		}
		return keys[a].season < keys[b].season
	})

	f, err := os.Create(m.path)
	if err != nil {
		return fmt.Errorf("error creating nickname file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("error writing nickname header: %w", err)
	}
	for _, k := range keys {
		row := []string{k.teamName, k.leagueKey, k.season, m.mappings[k]}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("error writing nickname row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
