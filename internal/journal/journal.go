// Package journal keeps an optional local audit log of tool invocations in
// sqlite. It records what was asked and what batch was submitted, never
// document content, so the adapter stays stateless with respect to the
// documents themselves.
package journal

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one recorded tool invocation.
type Entry struct {
	ID         string
	Time       time.Time
	Tool       string
	DocumentID string
	OpCount    int
	Fields     string
	Outcome    string // "ok" or the error code
	Detail     string
}

type Journal struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

func New(path string) *Journal {
	return &Journal{path: path}
}

func (j *Journal) Init(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", j.path)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return err
	}
	schema := `
CREATE TABLE IF NOT EXISTS invocations (
  id TEXT PRIMARY KEY,
  ts_unix INTEGER NOT NULL,
  tool TEXT NOT NULL,
  document_id TEXT NOT NULL DEFAULT '',
  op_count INTEGER NOT NULL DEFAULT 0,
  fields TEXT NOT NULL DEFAULT '',
  outcome TEXT NOT NULL,
  detail TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_invocations_document_id ON invocations(document_id);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return err
	}
	j.db = db
	return nil
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

// Record appends one invocation. The entry id and timestamp are filled in
// here when absent.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return sql.ErrConnDone
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	_, err := j.db.ExecContext(ctx, `
INSERT INTO invocations (id, ts_unix, tool, document_id, op_count, fields, outcome, detail)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Time.Unix(), e.Tool, e.DocumentID, e.OpCount, e.Fields, e.Outcome, e.Detail)
	return err
}

// Recent returns up to limit entries, newest first. Used by the CLI status
// output.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil, sql.ErrConnDone
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx, `
SELECT id, ts_unix, tool, document_id, op_count, fields, outcome, detail
FROM invocations ORDER BY ts_unix DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.ID, &ts, &e.Tool, &e.DocumentID, &e.OpCount, &e.Fields, &e.Outcome, &e.Detail); err != nil {
			return nil, err
		}
		e.Time = time.Unix(ts, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}
