// package tokens persists refresh tokens between runs as a flat JSON file.
package tokens

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Store is a file-backed mapping of account key to refresh token.
//
// The file holds a single JSON object with keys like "account1_refresh_token";
// it is human-inspectable and can be deleted for a manual reset. Every save
// rewrites the file in full. Concurrent runs of the tool against the same
// file are not guarded against.
type Store struct {
	path   string
	mu     sync.Mutex
	tokens map[string]string
}

// NewStore creates a Store backed by the file at path, loading any existing
// contents. A missing file is treated as an empty store.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, tokens: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	if err := json.Unmarshal(data, &s.tokens); err != nil {
		return nil, fmt.Errorf("failed to parse token file %s: %w", path, err)
	}

	return s, nil
}

func tokenKey(accountKey string) string {
	return accountKey + "_refresh_token"
}

// Get returns the stored refresh token for an account key, if any.
func (s *Store) Get(accountKey string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[tokenKey(accountKey)]
	return token, ok
}

// Set replaces the refresh token for an account key and rewrites the file.
// Tokens are always replaced, never merged.
func (s *Store) Set(accountKey, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[tokenKey(accountKey)] = refreshToken
	return s.save()
}

// Delete removes a stale entry and rewrites the file. Deleting an absent key
// is a no-op.
func (s *Store) Delete(accountKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[tokenKey(accountKey)]; !ok {
		return nil
	}

	delete(s.tokens, tokenKey(accountKey))
	return s.save()
}

// Path returns the backing file path, for user-facing guidance messages.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.tokens, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}
