// Package store persists generated documents in SQLite. The store is
// append-only: documents are added and queried by exact metadata match,
// never updated or deleted.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/segmentio/ksuid"
	_ "modernc.org/sqlite"

	"adforge/pkg/cache"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	text       TEXT NOT NULL,
	metadata   TEXT NOT NULL DEFAULT '{}',
	session_id TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_session ON documents(session_id);
CREATE INDEX IF NOT EXISTS idx_documents_created ON documents(created_at);
`

// Document is one stored text with its metadata.
type Document struct {
	ID        string
	Text      string
	Metadata  map[string]string
	SessionID string
	CreatedAt time.Time
}

// Result is a query match. Distance is always 0: every match is exact.
type Result struct {
	Document
	Distance float64
}

// Stats summarizes the store's contents.
type Stats struct {
	TotalDocuments   int `json:"total_documents"`
	Sessions         int `json:"sessions"`
	SessionDocuments int `json:"session_documents,omitempty"`
}

// Store is a SQLite-backed document store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at path. ":memory:" opens a private
// in-memory database.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Add appends one document per text and returns their generated ids.
// metas may be nil, or must have one entry per text.
func (s *Store) Add(ctx context.Context, texts []string, metas []map[string]string, sessionID string) ([]string, error) {
	if len(metas) != 0 && len(metas) != len(texts) {
		return nil, fmt.Errorf("got %d metadata entries for %d texts", len(metas), len(texts))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := toMillis(time.Now())
	ids := make([]string, 0, len(texts))
	for i, text := range texts {
		meta := map[string]string{}
		if len(metas) != 0 && metas[i] != nil {
			meta = metas[i]
		}
		encoded, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("marshal metadata: %w", err)
		}

		id := ksuid.New().String()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (id, text, metadata, session_id, created_at) VALUES (?, ?, ?, ?, ?)`,
			id, text, string(encoded), sessionID, now,
		); err != nil {
			return nil, fmt.Errorf("insert document: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return ids, nil
}

// Query returns documents whose metadata matches every filter key exactly,
// newest first. An empty filter matches everything. limit <= 0 means no
// limit.
func (s *Store) Query(ctx context.Context, filter map[string]string, limit int) ([]Result, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT id, text, metadata, session_id, created_at FROM documents`)

	if len(filter) > 0 {
		sb.WriteString(` WHERE `)
		first := true
		for key, want := range filter {
			if !first {
				sb.WriteString(` AND `)
			}
			first = false
			sb.WriteString(`json_extract(metadata, ?) = ?`)
			args = append(args, "$."+key, want)
		}
	}

	sb.WriteString(` ORDER BY created_at DESC, rowid DESC`)
	if limit > 0 {
		sb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			doc     Document
			rawMeta string
			created int64
		)
		if err := rows.Scan(&doc.ID, &doc.Text, &rawMeta, &doc.SessionID, &created); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		if err := json.Unmarshal([]byte(rawMeta), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
		doc.CreatedAt = fromMillis(created)
		results = append(results, Result{Document: doc})
	}
	return results, rows.Err()
}

// Stats reports document and session counts. A non-empty sessionID also
// fills SessionDocuments.
func (s *Store) Stats(ctx context.Context, sessionID string) (Stats, error) {
	var stats Stats
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT session_id) FROM documents WHERE session_id != ''`).Scan(&stats.Sessions); err != nil {
		return Stats{}, fmt.Errorf("count sessions: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents`).Scan(&stats.TotalDocuments); err != nil {
		return Stats{}, fmt.Errorf("count documents: %w", err)
	}

	if sessionID != "" {
		if err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM documents WHERE session_id = ?`,
			sessionID).Scan(&stats.SessionDocuments); err != nil {
			return Stats{}, fmt.Errorf("count session documents: %w", err)
		}
	}
	return stats, nil
}

// metadata keys used by the cache tier adapter.
const (
	metaSubject = "subject"
	metaPurpose = "purpose"
)

// Fetch implements cache.Store: the newest document whose subject and
// purpose both match the key exactly.
func (s *Store) Fetch(ctx context.Context, key cache.Key) (string, bool, error) {
	results, err := s.Query(ctx, map[string]string{
		metaSubject: key.Subject,
		metaPurpose: key.Purpose,
	}, 1)
	if err != nil {
		return "", false, err
	}
	if len(results) == 0 {
		return "", false, nil
	}
	return results[0].Text, true, nil
}

// Persist implements cache.Store by appending one document tagged with the
// key's subject and purpose. Older documents for the same key are kept.
func (s *Store) Persist(ctx context.Context, key cache.Key, value string) error {
	_, err := s.Add(ctx, []string{value}, []map[string]string{{
		metaSubject: key.Subject,
		metaPurpose: key.Purpose,
	}}, "")
	return err
}
