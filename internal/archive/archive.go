// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps saved analyses in a local SQLite database and
// indexes their summary terms for full-text search.
//
// Each analysis is stored as its YAML bundle, restored verbatim by Get,
// alongside one row per summary row. The summary rows feed an FTS5 index
// when the SQLite build provides it; otherwise searches fall back to a
// substring match.
package archive

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/enrichment-engine/internal/analysis"
	"github.com/pdiddy/enrichment-engine/pkg/types"
)

const (
	dbFile = "enrichment.db"

	// DefaultMaxResults bounds term searches when neither the caller nor
	// the config sets a limit.
	DefaultMaxResults = 20

	// Fixed width so stored timestamps sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Summary row kinds.
const (
	KindGene = "gene"
	KindTerm = "term"
)

// ErrNotFound is returned when no analysis has the requested id.
var ErrNotFound = errors.New("analysis not found")

// Archive manages the analysis archive database.
type Archive struct {
	db         *sql.DB
	maxResults int
	fts        bool
	now        func() time.Time
}

// Entry describes one archived analysis.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	GeneRows  int       `json:"gene_rows" yaml:"gene_rows"`
	TermRows  int       `json:"term_rows" yaml:"term_rows"`
}

// TermHit is a summary row matched by SearchTerms.
type TermHit struct {
	AnalysisID   string  `json:"analysis_id" yaml:"analysis_id"`
	AnalysisName string  `json:"analysis_name" yaml:"analysis_name"`
	Kind         string  `json:"kind" yaml:"kind"`
	Position     int     `json:"position" yaml:"position"`
	Cluster      string  `json:"cluster" yaml:"cluster"`
	Terms        string  `json:"terms" yaml:"terms"`
	Score        float64 `json:"score" yaml:"score"`
}

// Open opens or creates the archive database at cfg.Dir/enrichment.db and
// creates the schema if it does not exist.
func Open(cfg types.ArchiveConfig) (*Archive, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("archive directory is not set")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	a := &Archive{db: db, maxResults: maxResults, now: time.Now}
	if err := a.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return a, nil
}

// Close releases the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// FullText reports whether term searches use the FTS5 index.
func (a *Archive) FullText() bool {
	return a.fts
}

func (a *Archive) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TEXT NOT NULL,
			bundle TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS summary_rows (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id TEXT NOT NULL REFERENCES analyses(id) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			position INTEGER NOT NULL,
			cluster TEXT NOT NULL,
			terms TEXT NOT NULL,
			record_count INTEGER NOT NULL,
			score REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_summary_rows_analysis ON summary_rows(analysis_id)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := a.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := a.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='summary_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		a.fts = true
		return nil
	}

	_, err := a.db.Exec(`CREATE VIRTUAL TABLE summary_fts USING fts5(terms, content=summary_rows, content_rowid=rowid)`)
	if err != nil {
		if strings.Contains(err.Error(), "no such module") {
			// SQLite built without FTS5.
			return nil
		}
		return fmt.Errorf("creating FTS table: %w", err)
	}

	triggers := []string{
		`CREATE TRIGGER summary_rows_ai AFTER INSERT ON summary_rows BEGIN
			INSERT INTO summary_fts(rowid, terms) VALUES (new.rowid, new.terms);
		END`,
		`CREATE TRIGGER summary_rows_ad AFTER DELETE ON summary_rows BEGIN
			INSERT INTO summary_fts(summary_fts, rowid, terms) VALUES('delete', old.rowid, old.terms);
		END`,
	}
	for _, stmt := range triggers {
		if _, err := a.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	a.fts = true
	return nil
}

// Put stores an analysis under name and returns its new id.
func (a *Archive) Put(ctx context.Context, name string, an *types.Analysis) (string, error) {
	if an == nil {
		return "", fmt.Errorf("nil analysis")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("analysis name is empty")
	}

	var bundle bytes.Buffer
	if err := analysis.Encode(&bundle, an, analysis.FormatYAML); err != nil {
		return "", err
	}

	id := uuid.NewString()
	created := a.now().UTC().Format(timeLayout)

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO analyses (id, name, created_at, bundle) VALUES (?, ?, ?, ?)`,
		id, name, created, bundle.String(),
	); err != nil {
		return "", fmt.Errorf("inserting analysis: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO summary_rows (analysis_id, kind, position, cluster, terms, record_count, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, set := range []struct {
		kind string
		rows []types.SummaryRow
	}{
		{KindGene, an.GeneSummary},
		{KindTerm, an.TermSummary},
	} {
		for i, r := range set.rows {
			if _, err := stmt.ExecContext(ctx,
				id, set.kind, i, r.Cluster, r.Terms(), r.RecordCount, r.Score,
			); err != nil {
				return "", fmt.Errorf("inserting %s summary row %d: %w", set.kind, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing analysis: %w", err)
	}
	return id, nil
}

// Get restores the analysis stored under id.
func (a *Archive) Get(ctx context.Context, id string) (*types.Analysis, error) {
	var bundle string
	err := a.db.QueryRowContext(ctx, `SELECT bundle FROM analyses WHERE id = ?`, id).Scan(&bundle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading analysis %s: %w", id, err)
	}
	return analysis.Decode([]byte(bundle), analysis.FormatYAML)
}

// List returns every archived analysis, newest first.
func (a *Archive) List(ctx context.Context) ([]Entry, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT a.id, a.name, a.created_at,
			(SELECT count(*) FROM summary_rows s WHERE s.analysis_id = a.id AND s.kind = ?),
			(SELECT count(*) FROM summary_rows s WHERE s.analysis_id = a.id AND s.kind = ?)
		FROM analyses a
		ORDER BY a.created_at DESC, a.rowid DESC`,
		KindGene, KindTerm,
	)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.ID, &e.Name, &created, &e.GeneRows, &e.TermRows); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		if e.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("parsing created_at of %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SearchTerms finds summary rows whose terms match query, across all
// archived analyses. A limit of zero or less uses the archive default.
// With the FTS5 index, query uses FTS5 syntax and hits are ranked by
// relevance; without it, query is matched as a substring and hits come
// newest analysis first.
func (a *Archive) SearchTerms(ctx context.Context, query string, limit int) ([]TermHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if limit <= 0 {
		limit = a.maxResults
	}

	var (
		q    string
		args []any
	)
	if a.fts {
		q = `SELECT s.analysis_id, a.name, s.kind, s.position, s.cluster, s.terms, s.score
			FROM summary_fts
			JOIN summary_rows s ON s.rowid = summary_fts.rowid
			JOIN analyses a ON a.id = s.analysis_id
			WHERE summary_fts MATCH ?
			ORDER BY summary_fts.rank
			LIMIT ?`
		args = []any{query, limit}
	} else {
		q = `SELECT s.analysis_id, a.name, s.kind, s.position, s.cluster, s.terms, s.score
			FROM summary_rows s
			JOIN analyses a ON a.id = s.analysis_id
			WHERE s.terms LIKE ?
			ORDER BY a.created_at DESC, s.kind, s.position
			LIMIT ?`
		args = []any{"%" + query + "%", limit}
	}

	rows, err := a.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("searching terms: %w", err)
	}
	defer rows.Close()

	hits := []TermHit{}
	for rows.Next() {
		var h TermHit
		if err := rows.Scan(&h.AnalysisID, &h.AnalysisName, &h.Kind, &h.Position, &h.Cluster, &h.Terms, &h.Score); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Delete removes the analysis stored under id together with its summary rows.
func (a *Archive) Delete(ctx context.Context, id string) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM summary_rows WHERE analysis_id = ?`, id); err != nil {
		return fmt.Errorf("deleting summary rows: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting analysis: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting analysis: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return tx.Commit()
}
