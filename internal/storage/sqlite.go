package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

const kvTable = "kv"

// SQLiteKV stores values in a single key/value table
type SQLiteKV struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSQLiteKV opens the sqlite database at path and creates the table if needed
func NewSQLiteKV(path string, log zerolog.Logger) (*SQLiteKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		`CREATE TABLE IF NOT EXISTS ` + kvTable + ` (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to prepare database: %w", err)
		}
	}

	return &SQLiteKV{
		db:  db,
		log: log.With().Str("component", "sqlite-store").Logger(),
	}, nil
}

func (s *SQLiteKV) Get(key string) (string, bool) {
	var value string
	err := sq.Select("value").
		From(kvTable).
		Where(sq.Eq{"key": key}).
		RunWith(s.db).
		QueryRow().
		Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Read failed, treating key as absent")
		return "", false
	}
	return value, true
}

func (s *SQLiteKV) Set(key, value string) error {
	_, err := sq.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		RunWith(s.db).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Keys lists every stored key, oldest write first
func (s *SQLiteKV) Keys() ([]string, error) {
	rows, err := sq.Select("key").
		From(kvTable).
		OrderBy("updated_at", "key").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Close closes the database
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
