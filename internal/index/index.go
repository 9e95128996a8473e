// Package index maintains a persistent SQLite index of discovered test
// specifications (name, file path, tags). Tag-scoped runs consult the
// index to avoid parsing every spec file in the tree; the index command
// rebuilds it.
package index

import (
	"database/sql"
	"fmt"
	"sort"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

// schema is applied on open. Idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS tests (
    name TEXT PRIMARY KEY,
    path TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS test_tags (
    name TEXT NOT NULL,
    tag  TEXT NOT NULL,
    PRIMARY KEY (name, tag),
    FOREIGN KEY (name) REFERENCES tests(name) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_test_tags_tag ON test_tags(tag);
`

// Entry is one indexed test.
type Entry struct {
	Name string
	Path string
	Tags []string
}

// Index is a handle to the test index database.
type Index struct {
	db *sql.DB
}

// Open opens (creating if necessary) the index database at path. Use
// ":memory:" for an ephemeral index in tests.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}
	// A :memory: database exists per connection; pin the pool to one so
	// every query sees the same data.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize index schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Close releases the database handle.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// Rebuild atomically replaces the index contents with the given entries.
func (ix *Index) Rebuild(entries []Entry) error {
	tx, err := ix.db.Begin()
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM test_tags`); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tests`); err != nil {
		return fmt.Errorf("clear tests: %w", err)
	}

	insertTest, err := tx.Prepare(`INSERT INTO tests (name, path) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare test insert: %w", err)
	}
	defer insertTest.Close()

	insertTag, err := tx.Prepare(`INSERT INTO test_tags (name, tag) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare tag insert: %w", err)
	}
	defer insertTag.Close()

	for _, entry := range entries {
		if _, err := insertTest.Exec(entry.Name, entry.Path); err != nil {
			return fmt.Errorf("index test %q: %w", entry.Name, err)
		}
		for _, tag := range entry.Tags {
			if _, err := insertTag.Exec(entry.Name, tag); err != nil {
				return fmt.Errorf("index tag %q for %q: %w", tag, entry.Name, err)
			}
		}
	}

	return tx.Commit()
}

// PathsByTags returns the file paths of tests carrying at least one of
// the given tags, sorted for determinism.
func (ix *Index) PathsByTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return ix.Paths()
	}

	query := `SELECT DISTINCT t.path
	          FROM tests t JOIN test_tags tt ON tt.name = t.name
	          WHERE tt.tag IN (?` + repeat(",?", len(tags)-1) + `)`
	args := make([]any, len(tags))
	for i, tag := range tags {
		args[i] = tag
	}

	rows, err := ix.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query by tags: %w", err)
	}
	defer rows.Close()

	return collectStrings(rows)
}

// Paths returns every indexed file path, sorted.
func (ix *Index) Paths() ([]string, error) {
	rows, err := ix.db.Query(`SELECT path FROM tests`)
	if err != nil {
		return nil, fmt.Errorf("query paths: %w", err)
	}
	defer rows.Close()

	return collectStrings(rows)
}

// Names returns every indexed test name, sorted.
func (ix *Index) Names() ([]string, error) {
	rows, err := ix.db.Query(`SELECT name FROM tests`)
	if err != nil {
		return nil, fmt.Errorf("query names: %w", err)
	}
	defer rows.Close()

	return collectStrings(rows)
}

// Tags returns every distinct tag, sorted.
func (ix *Index) Tags() ([]string, error) {
	rows, err := ix.db.Query(`SELECT DISTINCT tag FROM test_tags`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	return collectStrings(rows)
}

// Count returns the number of indexed tests.
func (ix *Index) Count() (int, error) {
	var n int
	if err := ix.db.QueryRow(`SELECT COUNT(*) FROM tests`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tests: %w", err)
	}
	return n, nil
}

func collectStrings(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
