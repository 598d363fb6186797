package arena

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get for an unknown match id.
var ErrNotFound = errors.New("match not found")

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	id TEXT PRIMARY KEY,
	started_at DATETIME,
	ended_at DATETIME,
	player1 TEXT,
	player2 TEXT,
	winner INTEGER,
	score1 INTEGER,
	score2 INTEGER,
	turns INTEGER,
	termination TEXT,
	log_json TEXT
);
`

// Store keeps finished matches in a sqlite file.
type Store struct {
	db *sqlx.DB
}

// OpenStore opens (and creates if needed) the database at path.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Save(ctx context.Context, rec *MatchRecord) error {
	row := *rec
	row.StartedAt = rec.StartedAt.UTC()
	row.EndedAt = rec.EndedAt.UTC()
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO matches (id, started_at, ended_at, player1, player2, winner, score1, score2, turns, termination, log_json)
		VALUES (:id, :started_at, :ended_at, :player1, :player2, :winner, :score1, :score2, :turns, :termination, :log_json)
	`, row)
	if err != nil {
		return fmt.Errorf("save match %s: %w", rec.ID, err)
	}
	return nil
}

// List returns the most recent matches first. The move log is left empty;
// limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, started_at, ended_at, player1, player2, winner, score1, score2, turns, termination, '' AS log_json
		FROM matches
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		if err := rows.StructScan(&rec); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get loads one match including its move log.
func (s *Store) Get(ctx context.Context, id string) (*MatchRecord, error) {
	var rec MatchRecord
	err := s.db.GetContext(ctx, &rec, `SELECT * FROM matches WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get match %s: %w", id, err)
	}
	return &rec, nil
}

// Moves decodes the stored move log.
func (rec *MatchRecord) Moves() ([]TurnRecord, error) {
	var turns []TurnRecord
	if rec.LogJSON == "" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(rec.LogJSON), &turns); err != nil {
		return nil, fmt.Errorf("decode log of %s: %w", rec.ID, err)
	}
	return turns, nil
}
