package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/itbasis/go-clock"
)

const DefaultDir = "yahoo_fantasy_cache"

// Store is a read-through file cache addressed by (league key, data type).
// One JSON document per pair, replaced wholesale on write. The store is
// season-agnostic: deciding whether an entry may be written at all belongs
// to the caller.
type Store struct {
	dir   string
	clock clock.Clock
}

func New(dir string, clock clock.Clock) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating cache directory: %w", err)
	}
	return &Store{dir: dir, clock: clock}, nil
}

type document struct {
	LeagueKey string          `json:"league_key"`
	DataType  string          `json:"data_type"`
	CachedAt  time.Time       `json:"cached_at"`
	Data      json.RawMessage `json:"data"`
}

// path derives the cache slot for a key pair. The league key is hashed so
// provider identifiers never need to be filesystem-safe, and the same pair
// always lands on the same file across runs.
func (s *Store) path(leagueKey, dataType string) string {
	sum := md5.Sum([]byte(leagueKey))
	name := fmt.Sprintf("%s_%s.json", hex.EncodeToString(sum[:])[:8], sanitize(dataType))
	return filepath.Join(s.dir, name)
}

func sanitize(s string) string {
	return strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(s)
}

// Get loads a cached payload into out. A missing, unreadable, or corrupted
// entry is reported as a miss, never an error.
func (s *Store) Get(leagueKey, dataType string, out any) bool {
	b, err := os.ReadFile(s.path(leagueKey, dataType))
	if err != nil {
		return false
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		log.Printf("ignoring corrupt cache entry %s/%s: %v", leagueKey, dataType, err)
		return false
	}
	if doc.Data == nil {
		return false
	}
	if err := json.Unmarshal(doc.Data, out); err != nil {
		log.Printf("ignoring unreadable cache entry %s/%s: %v", leagueKey, dataType, err)
		return false
	}
	return true
}

// Set stores a payload. Failures are reported but never fatal: caching is
// best-effort and must not block the computation that produced the data.
func (s *Store) Set(leagueKey, dataType string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("error marshaling cache entry %s/%s: %v", leagueKey, dataType, err)
		return false
	}
	doc := document{
		LeagueKey: leagueKey,
		DataType:  dataType,
		CachedAt:  s.clock.Now().UTC(),
		Data:      data,
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Printf("error marshaling cache document %s/%s: %v", leagueKey, dataType, err)
		return false
	}
	if err := os.WriteFile(s.path(leagueKey, dataType), b, 0o644); err != nil {
		log.Printf("error writing cache entry %s/%s: %v", leagueKey, dataType, err)
		return false
	}
	return true
}

// Clear removes cache entries. With a league key it removes only that
// league's entries, otherwise everything. Returns the number of files
// removed.
func (s *Store) Clear(leagueKey string) int {
	pattern := "*.json"
	if leagueKey != "" {
		sum := md5.Sum([]byte(leagueKey))
		pattern = hex.EncodeToString(sum[:])[:8] + "_*.json"
	}
	matches, err := filepath.Glob(filepath.Join(s.dir, pattern))
	if err != nil {
		return 0
	}
	removed := 0
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			log.Printf("error removing cache entry %s: %v", m, err)
			continue
		}
		removed++
	}
	return removed
}
