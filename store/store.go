// Package store persists form submissions in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested submission does not exist.
var ErrNotFound = sql.ErrNoRows

// Submission is one accepted form post.
type Submission struct {
	ID        string
	Form      string
	Name      string
	Email     string
	Phone     string
	Payload   url.Values
	IP        string
	CreatedAt time.Time
}

// Store wraps a SQLite database of submissions.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the inbox read while a submission is written; busy_timeout
	// makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db, now: time.Now}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS submissions (
    id TEXT PRIMARY KEY,
    form TEXT NOT NULL,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    payload TEXT NOT NULL,
    ip TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS submissions_created_at ON submissions (created_at DESC);
`)
	return err
}

// SaveSubmission inserts sub, assigning an id and timestamp when unset, and
// returns the stored record.
func (s *Store) SaveSubmission(ctx context.Context, sub Submission) (Submission, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = s.now()
	}
	sub.CreatedAt = sub.CreatedAt.UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, form, name, email, phone, payload, ip, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Form, sub.Name, sub.Email, sub.Phone, sub.Payload.Encode(), sub.IP, sub.CreatedAt.UnixNano())
	if err != nil {
		return Submission{}, fmt.Errorf("store: save submission: %w", err)
	}
	return sub, nil
}

// ListSubmissions returns submissions newest first. An empty form lists all
// forms; limit <= 0 means no limit.
func (s *Store) ListSubmissions(ctx context.Context, form string, limit int) ([]Submission, error) {
	q := `SELECT id, form, name, email, phone, payload, ip, created_at FROM submissions`
	var args []any
	if form != "" {
		q += ` WHERE form = ?`
		args = append(args, form)
	}
	q += ` ORDER BY created_at DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// GetSubmission returns a submission by id.
func (s *Store) GetSubmission(ctx context.Context, id string) (Submission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, form, name, email, phone, payload, ip, created_at FROM submissions WHERE id = ?`, id)
	return scanSubmission(row)
}

// DeleteSubmission removes a submission by id. Deleting an unknown id
// returns ErrNotFound.
func (s *Store) DeleteSubmission(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = ?`, id)
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

// CountByForm returns the number of stored submissions per form.
func (s *Store) CountByForm(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT form, COUNT(*) FROM submissions GROUP BY form`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var form string
		var n int
		if err := rows.Scan(&form, &n); err != nil {
			return nil, err
		}
		counts[form] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(r scanner) (Submission, error) {
	var (
		sub     Submission
		payload string
		created int64
	)
	if err := r.Scan(&sub.ID, &sub.Form, &sub.Name, &sub.Email, &sub.Phone, &payload, &sub.IP, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, ErrNotFound
		}
		return Submission{}, err
	}
	values, err := url.ParseQuery(payload)
	if err != nil {
		return Submission{}, fmt.Errorf("store: decode payload of %s: %w", sub.ID, err)
	}
	sub.Payload = values
	sub.CreatedAt = time.Unix(0, created).UTC()
	return sub, nil
}
