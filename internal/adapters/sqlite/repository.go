package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/johnmikes100/concierge/internal/ports"
	"github.com/johnmikes100/concierge/internal/survey"
)

// Repository stores in-progress survey sessions. Rows hold the controller
// snapshot as JSON and are removed once a submission succeeds.
type Repository struct {
	db *sql.DB
}

// New opens the SQLite database and creates the sessions table if needed.
func New(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Repository{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS survey_sessions (
	id         TEXT PRIMARY KEY,
	snapshot   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

func (r *Repository) Close() error { return r.db.Close() }

// ── Sessions ──────────────────────────────────────────────────────────────────

func (r *Repository) CreateSession(ctx context.Context, id string, snap survey.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	now := time.Now()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO survey_sessions (id, snapshot, created_at, updated_at)
		VALUES (?,?,?,?)`, id, string(raw), now, now)
	return err
}

func (r *Repository) GetSession(ctx context.Context, id string) (survey.Snapshot, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT snapshot FROM survey_sessions WHERE id=?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return survey.Snapshot{}, ports.ErrSessionNotFound
	}
	if err != nil {
		return survey.Snapshot{}, err
	}
	var snap survey.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return survey.Snapshot{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return snap, nil
}

func (r *Repository) SaveSession(ctx context.Context, id string, snap survey.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE survey_sessions SET snapshot=?, updated_at=? WHERE id=?`,
		string(raw), time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ports.ErrSessionNotFound
	}
	return nil
}

func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM survey_sessions WHERE id=?`, id)
	return err
}
