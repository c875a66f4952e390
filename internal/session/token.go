// Package session supplies the bearer token attached to every backend
// call. Authentication itself is an external collaborator: finnadmin only
// stores the token handed to it (env var or `finnadmin auth login`) and
// exposes it through a TokenSource.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoToken is returned when no session token is available anywhere.
var ErrNoToken = errors.New("no session token: set FINNADMIN_TOKEN or run `finnadmin auth login`")

// TokenSource yields the current bearer token.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a fixed token, used for --token flags and tests.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token() (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

// Store resolves the token from the environment first, then from the
// token file written by `auth login`.
type Store struct {
	path string
}

// DefaultTokenPath returns ~/.finnadmin/token.
func DefaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".finnadmin", "token")
	}
	return filepath.Join(home, ".finnadmin", "token")
}

// NewStore creates a store backed by the given token file path.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultTokenPath()
	}
	return &Store{path: path}
}

// Token implements TokenSource.
func (s *Store) Token() (string, error) {
	if tok := os.Getenv("FINNADMIN_TOKEN"); tok != "" {
		return tok, nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	tok := strings.TrimSpace(string(data))
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// Save writes the token file with owner-only permissions.
func (s *Store) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("refusing to save an empty token")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Clear removes the token file. Missing file is fine.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
