// Package session owns the locally persisted auth session: a sqlite-backed
// key-value store holding the bearer token, and the login/logout/signup
// flows around it.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// TokenKey is the fixed key the bearer token is stored under.
const TokenKey = "auth_token"

// Store is the persistent local key-value store. Values are JSON-encoded
// strings. Implements transport.TokenSource.
type Store struct {
	db *sql.DB
}

// NewStore opens (and migrates) the session database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create session db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping session database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate session database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Token returns the persisted bearer token. No active session yields an
// empty token and a nil error.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.getItem(ctx, TokenKey)
}

// SetToken persists the bearer token under the fixed key.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.setItem(ctx, TokenKey, token)
}

// ClearToken removes the persisted token. Idempotent: clearing an absent
// token is not an error.
func (s *Store) ClearToken(ctx context.Context) error {
	return s.removeItem(ctx, TokenKey)
}

func (s *Store) getItem(ctx context.Context, key string) (string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_items WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session item %q: %w", key, err)
	}

	var value string
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return "", fmt.Errorf("decode session item %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) setItem(ctx context.Context, key, value string) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode session item %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session_items (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, string(encoded))
	if err != nil {
		return fmt.Errorf("write session item %q: %w", key, err)
	}
	return nil
}

func (s *Store) removeItem(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM session_items WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove session item %q: %w", key, err)
	}
	return nil
}
