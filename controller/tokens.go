package controller

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"golang.org/x/oauth2"
)

const DefaultTokenFile = "yahoo_token.json"

// tokenStore persists the single Yahoo OAuth token between runs.
type tokenStore struct {
	mu   sync.Mutex
	path string
}

func newTokenStore(path string) *tokenStore {
	if path == "" {
		path = DefaultTokenFile
	}
	return &tokenStore{path: path}
}

func (s *tokenStore) Load() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("error reading token file: %w", err)
	}
	var t oauth2.Token
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("error parsing token file: %w", err)
	}
	if t.AccessToken == "" {
		return nil, fmt.Errorf("token file %s has no access token", s.path)
	}
	return &t, nil
}

func (s *tokenStore) Save(t *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling token: %w", err)
	}
	// Tokens are credentials, keep them out of other users' reach.
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("error writing token file: %w", err)
	}
	return nil
}
