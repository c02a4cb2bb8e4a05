package registry

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Cache persists fetched registries in SQLite for offline exports.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates a SQLite registry cache at the given path.
func OpenCache(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS labs (
			acronym TEXT PRIMARY KEY,
			recid TEXT,
			manager TEXT,
			uid TEXT,
			liaison TEXT
		);

		-- position keeps the registry order of homonyms; entry holds the
		-- registry triple [affiliation id, authority id, [labs]]
		CREATE TABLE IF NOT EXISTS authors (
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			entry TEXT NOT NULL,
			PRIMARY KEY (name, position)
		);

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Save replaces the cached registries with r.
func (c *Cache) Save(r *Registries) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM labs"); err != nil {
		return fmt.Errorf("clearing labs table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM authors"); err != nil {
		return fmt.Errorf("clearing authors table: %w", err)
	}

	labStmt, err := tx.Prepare(`INSERT INTO labs (acronym, recid, manager, uid, liaison) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing labs insert: %w", err)
	}
	defer labStmt.Close()

	for acronym, lab := range r.Labs {
		if _, err := labStmt.Exec(acronym, lab.RecID.String(), lab.Manager, lab.UID.String(), lab.Liaison); err != nil {
			return fmt.Errorf("inserting lab %s: %w", acronym, err)
		}
	}

	authorStmt, err := tx.Prepare(`INSERT INTO authors (name, position, entry) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing authors insert: %w", err)
	}
	defer authorStmt.Close()

	for name, entries := range r.Authors {
		for i, e := range entries {
			entry, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("encoding author %s: %w", name, err)
			}
			if _, err := authorStmt.Exec(name, i, string(entry)); err != nil {
				return fmt.Errorf("inserting author %s: %w", name, err)
			}
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('fetched_at', ?)`,
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("recording fetch time: %w", err)
	}

	return tx.Commit()
}

// FetchedAt returns when the cache was last saved. ok is false for a cache
// that was never filled.
func (c *Cache) FetchedAt() (t time.Time, ok bool, err error) {
	var value string
	err = c.db.QueryRow(`SELECT value FROM meta WHERE key = 'fetched_at'`).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading fetch time: %w", err)
	}
	t, err = time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing fetch time: %w", err)
	}
	return t, true, nil
}

// Load reads both registries back. It returns ErrEmptyCache if the cache
// was never saved.
func (c *Cache) Load() (*Registries, error) {
	if _, ok, err := c.FetchedAt(); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrEmptyCache
	}

	labs, err := c.loadLabs()
	if err != nil {
		return nil, err
	}
	authors, err := c.loadAuthors()
	if err != nil {
		return nil, err
	}
	return &Registries{Labs: labs, Authors: authors}, nil
}

func (c *Cache) loadLabs() (Labs, error) {
	rows, err := c.db.Query(`SELECT acronym, recid, manager, uid, liaison FROM labs`)
	if err != nil {
		return nil, fmt.Errorf("querying labs: %w", err)
	}
	defer rows.Close()

	labs := Labs{}
	for rows.Next() {
		var acronym, recid, uid string
		var lab Lab
		if err := rows.Scan(&acronym, &recid, &lab.Manager, &uid, &lab.Liaison); err != nil {
			return nil, fmt.Errorf("scanning lab: %w", err)
		}
		lab.RecID = FlexibleString(recid)
		lab.UID = FlexibleString(uid)
		labs[acronym] = lab
	}
	return labs, rows.Err()
}

func (c *Cache) loadAuthors() (Authors, error) {
	rows, err := c.db.Query(`SELECT name, entry FROM authors ORDER BY name, position`)
	if err != nil {
		return nil, fmt.Errorf("querying authors: %w", err)
	}
	defer rows.Close()

	authors := Authors{}
	for rows.Next() {
		var name, entry string
		if err := rows.Scan(&name, &entry); err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}
		var e AuthorEntry
		if err := json.Unmarshal([]byte(entry), &e); err != nil {
			return nil, fmt.Errorf("parsing author %s: %w", name, err)
		}
		authors[name] = append(authors[name], e)
	}
	return authors, rows.Err()
}
