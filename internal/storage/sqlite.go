// Package storage provides persistence for game saves.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-clicker/internal/core"
)

// Store manages the SQLite database connection for save persistence.
// Saves are keyed by (profile, key) so one file can hold many players.
type Store struct {
	db *sql.DB
}

// SaveEntry describes one stored save.
type SaveEntry struct {
	Profile   string
	Key       string
	Size      int
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// One writer at a time; concurrent sessions would otherwise hit SQLITE_BUSY
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			profile TEXT NOT NULL,
			key TEXT NOT NULL,
			payload TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (profile, key)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the state saved for profile under key.
// Returns ErrNotFound if the row is absent or its payload does not parse.
func (s *Store) Load(profile, key string) (core.GameState, error) {
	payload, err := s.LoadRaw(profile, key)
	if err != nil {
		return core.GameState{}, err
	}
	return Decode(payload)
}

// LoadRaw returns the stored payload for profile under key.
func (s *Store) LoadRaw(profile, key string) ([]byte, error) {
	var payload string
	err := s.db.QueryRow(
		"SELECT payload FROM saves WHERE profile = ? AND key = ?",
		profile, key,
	).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query save: %w", err)
	}
	return []byte(payload), nil
}

// Save writes st for profile under key. Last writer wins.
func (s *Store) Save(profile, key string, st core.GameState) error {
	payload, err := Encode(st)
	if err != nil {
		return err
	}
	return s.SaveRaw(profile, key, payload)
}

// SaveRaw writes an encoded payload as-is.
func (s *Store) SaveRaw(profile, key string, payload []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (profile, key, payload, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (profile, key) DO UPDATE SET
		   payload = excluded.payload,
		   updated_at = excluded.updated_at`,
		profile, key, string(payload),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save state: %w", err)
	}
	return nil
}

// Delete removes the save for profile under key. Deleting nothing is not an error.
func (s *Store) Delete(profile, key string) error {
	_, err := s.db.Exec("DELETE FROM saves WHERE profile = ? AND key = ?", profile, key)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	return nil
}

// Saves lists every stored save, most recently updated first.
func (s *Store) Saves() ([]SaveEntry, error) {
	rows, err := s.db.Query(
		`SELECT profile, key, LENGTH(payload), updated_at
		 FROM saves
		 ORDER BY updated_at DESC, profile ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var entries []SaveEntry
	for rows.Next() {
		var e SaveEntry
		var updatedAt any
		if err := rows.Scan(&e.Profile, &e.Key, &e.Size, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := updatedAt.(type) {
		case time.Time:
			e.UpdatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.UpdatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Profile returns a Slot bound to one profile.
func (s *Store) Profile(name string) *Slot {
	return &Slot{store: s, profile: name}
}

// Slot is a Store view scoped to a single profile.
type Slot struct {
	store   *Store
	profile string
}

// Name returns the profile name.
func (p *Slot) Name() string {
	return p.profile
}

// Load returns the profile's state under key.
func (p *Slot) Load(key string) (core.GameState, error) {
	return p.store.Load(p.profile, key)
}

// Save writes the profile's state under key.
func (p *Slot) Save(key string, st core.GameState) error {
	return p.store.Save(p.profile, key, st)
}
