// Package searchindex builds a disposable SQLite FTS5 side-index over a
// loaded RPGraph: scan rebuilds it after every graph write, and
// "rpg search --backend fts5" ranks with Query's bm25 scores instead of
// the default in-memory fuzzy match. The persisted system of record stays
// graph.json; the index here is pure cache - always rebuilt from the
// graph, never the other way around - and losing it (a stale path, a
// deleted file) is never a correctness problem, only a search-quality one
// until the next Rebuild.
package searchindex

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/userFRM/rpg-encoder-sub002/internal/graph"
	"github.com/userFRM/rpg-encoder-sub002/internal/storage"
)

const indexFileName = "searchindex.db"

const schemaSQL = `
CREATE VIRTUAL TABLE IF NOT EXISTS entity_fts USING fts5(
	id UNINDEXED,
	name,
	features,
	file UNINDEXED,
	hierarchy_path UNINDEXED
);
`

// Index wraps a connection to the on-disk FTS5 cache for one project.
type Index struct {
	db *sql.DB
}

// Path returns the on-disk location of the search index for a project
// root, alongside (but independent of) .rpg/graph.json.
func Path(projectRoot string) string {
	return filepath.Join(storage.Dir(projectRoot), indexFileName)
}

// Open creates (if absent) and opens the FTS5 index database for a
// project root.
func Open(projectRoot string) (*Index, error) {
	dir := storage.Dir(projectRoot)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("searchindex: create %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", Path(projectRoot))
	if err != nil {
		return nil, fmt.Errorf("searchindex: open: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("searchindex: create schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Close releases the underlying database connection.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Rebuild drops and repopulates the index from g's current contents. The
// caller decides when staleness matters enough to pay for a rebuild
// (typically: right after a scan, or lazily before the first search of a
// session); the index carries no revision bookkeeping of its own because
// graph.json's updated_at is already the single revision token.
func (idx *Index) Rebuild(ctx context.Context, g *graph.RPGraph) error {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("searchindex: begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entity_fts"); err != nil {
		return fmt.Errorf("searchindex: clear index: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entity_fts (id, name, features, file, hierarchy_path)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("searchindex: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range g.OrderedEntityIDs() {
		e := g.Entities[id]
		if _, err := stmt.ExecContext(ctx, e.ID, e.Name, strings.Join(e.SemanticFeatures, " "), e.File, e.HierarchyPath); err != nil {
			return fmt.Errorf("searchindex: insert %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// Match is one BM25-ranked full-text hit.
type Match struct {
	EntityID string
	Score    float64
}

// Query runs a BM25-ranked FTS5 match over name and semantic_features,
// returning up to limit hits ordered best-first (FTS5's bm25() is
// negative-is-better; Score here is negated so higher is better, matching
// nav.SearchResult's ranking convention).
func (idx *Index) Query(ctx context.Context, query string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := idx.db.QueryContext(ctx, `
		SELECT id, bm25(entity_fts, 0, 1.0, 0.5) AS rank
		FROM entity_fts
		WHERE entity_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, ftsQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("searchindex: query: %w", err)
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.EntityID, &m.Score); err != nil {
			return nil, fmt.Errorf("searchindex: scan: %w", err)
		}
		m.Score = -m.Score
		out = append(out, m)
	}
	return out, rows.Err()
}

// ftsQuery turns a free-text query into an FTS5 MATCH expression: each
// whitespace-separated term becomes a prefix match so partial identifiers
// ("hand" matching "HandleRequest") behave the way nav.Search's substring
// ranking already does outside the index.
func ftsQuery(q string) string {
	fields := strings.Fields(q)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, `"`, "")
		if f == "" {
			continue
		}
		terms = append(terms, fmt.Sprintf(`"%s"*`, f))
	}
	if len(terms) == 0 {
		return `""`
	}
	return strings.Join(terms, " ")
}
