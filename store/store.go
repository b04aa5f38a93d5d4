// Package store persists planning runs in SQLite so the dashboard can list
// and replay them.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/xid"

	"github.com/bububa/travel-agents/travel"
)

// ErrNotFound is returned when no run exists under the requested id.
var ErrNotFound = errors.New("run not found")

// Run is one persisted planning run.
type Run struct {
	ID           string             `json:"id"`
	Query        string             `json:"query"`
	Mode         travel.Mode        `json:"mode"`
	Destination  string             `json:"destination"`
	Markdown     string             `json:"markdown"`
	Result       *travel.PlanResult `json:"result,omitempty"`
	InputTokens  int                `json:"input_tokens"`
	OutputTokens int                `json:"output_tokens"`
	CreatedAt    time.Time          `json:"created_at"`
}

// Summary is the listing view of a run, without the heavy payloads.
type Summary struct {
	ID           string      `json:"id"`
	Query        string      `json:"query"`
	Mode         travel.Mode `json:"mode"`
	Destination  string      `json:"destination"`
	InputTokens  int         `json:"input_tokens"`
	OutputTokens int         `json:"output_tokens"`
	CreatedAt    time.Time   `json:"created_at"`
}

// NewRun wraps a plan result for persistence under a fresh id.
func NewRun(query string, mode travel.Mode, result *travel.PlanResult) *Run {
	run := &Run{
		ID:        xid.New().String(),
		Query:     query,
		Mode:      mode,
		Result:    result,
		CreatedAt: time.Now(),
	}
	if result != nil {
		run.Markdown = result.Markdown
		run.InputTokens = result.Usage.InputTokens
		run.OutputTokens = result.Usage.OutputTokens
		if result.Plan != nil {
			run.Destination = result.Plan.Destination
		}
	}
	return run
}

// Store keeps runs in a SQLite database.
type Store struct {
	db *sql.DB
}

// New opens (and migrates) the database at path.
func New(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists the run.
func (s *Store) Save(ctx context.Context, run *Run) error {
	payload, err := json.Marshal(run.Result)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, query, mode, destination, markdown, result, input_tokens, output_tokens, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Query, run.Mode, run.Destination, run.Markdown, string(payload),
		run.InputTokens, run.OutputTokens, run.CreatedAt.UTC())
	return err
}

// Get loads one run with its full result payload.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, query, mode, destination, markdown, result, input_tokens, output_tokens, created_at
		FROM runs WHERE id = ?`, id)
	run := new(Run)
	var payload string
	err := row.Scan(&run.ID, &run.Query, &run.Mode, &run.Destination, &run.Markdown, &payload,
		&run.InputTokens, &run.OutputTokens, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if payload != "" && payload != "null" {
		run.Result = new(travel.PlanResult)
		if err := json.Unmarshal([]byte(payload), run.Result); err != nil {
			return nil, err
		}
	}
	return run, nil
}

// List returns run summaries, newest first, capped at limit (0 means all).
func (s *Store) List(ctx context.Context, limit int) ([]*Summary, error) {
	query := `
		SELECT id, query, mode, destination, input_tokens, output_tokens, created_at
		FROM runs ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Summary
	for rows.Next() {
		item := new(Summary)
		if err := rows.Scan(&item.ID, &item.Query, &item.Mode, &item.Destination,
			&item.InputTokens, &item.OutputTokens, &item.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Delete removes one run.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
