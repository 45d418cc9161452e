package quarantine

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// CatalogDB records what each run converted and why anything failed.
type CatalogDB struct {
	db *sql.DB
}

// Failure describes a sprite container that failed during a run.
type Failure struct {
	Path  string
	Stage string
	Error string
}

var schema = []string{
	"CREATE TABLE IF NOT EXISTS run (id INTEGER PRIMARY KEY NOT NULL, started TEXT NOT NULL)",
	"CREATE TABLE IF NOT EXISTS file (id INTEGER PRIMARY KEY NOT NULL, run_id INTEGER NOT NULL, path TEXT NOT NULL, palette TEXT, sprites INTEGER NOT NULL, stage TEXT, error TEXT, FOREIGN KEY(run_id) REFERENCES run(id))",
	"CREATE TABLE IF NOT EXISTS output (file_id INTEGER NOT NULL, idx INTEGER NOT NULL, path TEXT NOT NULL, FOREIGN KEY(file_id) REFERENCES file(id))",
}

// NewCatalogDB opens, creating if necessary, the catalog in file.
func NewCatalogDB(file string) (*CatalogDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err = db.Exec(stmt); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &CatalogDB{
		db: db,
	}, nil
}

// Close closes the catalog.
func (db *CatalogDB) Close() error {
	return db.db.Close()
}

// NewRun records the start of a run and returns its id.
func (db *CatalogDB) NewRun(started time.Time) (int64, error) {
	result, err := db.db.Exec("INSERT INTO run (started) VALUES (?)", started.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// LastRun returns the id of the most recent run, or zero if there are none.
func (db *CatalogDB) LastRun() (int64, error) {
	var id sql.NullInt64
	if err := db.db.QueryRow("SELECT MAX(id) FROM run").Scan(&id); err != nil {
		return 0, err
	}
	return id.Int64, nil
}

// AddResult records the outcome of converting one sprite container.
func (db *CatalogDB) AddResult(run int64, r *Result) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var palette, stage, msg sql.NullString
	if r.Palette != "" {
		palette.String, palette.Valid = r.Palette, true
	}
	if r.Err != nil {
		msg.String, msg.Valid = r.Err.Error(), true
		var fe *FileError
		if errors.As(r.Err, &fe) {
			stage.String, stage.Valid = fe.Stage.String(), true
		}
	}

	result, err := tx.Exec("INSERT INTO file (run_id, path, palette, sprites, stage, error) VALUES (?, ?, ?, ?, ?, ?)", run, r.Path, palette, r.Sprites, stage, msg)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	for i, out := range r.Outputs {
		if out == "" {
			continue
		}
		if _, err := tx.Exec("INSERT INTO output (file_id, idx, path) VALUES (?, ?, ?)", id, i, out); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Failures returns the sprite containers that failed during run, ordered by
// path.
func (db *CatalogDB) Failures(run int64) ([]Failure, error) {
	rows, err := db.db.Query("SELECT path, stage, error FROM file WHERE run_id = ? AND error IS NOT NULL ORDER BY path", run)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var failures []Failure
	for rows.Next() {
		var f Failure
		var stage sql.NullString
		if err := rows.Scan(&f.Path, &stage, &f.Error); err != nil {
			return nil, err
		}
		f.Stage = stage.String
		failures = append(failures, f)
	}
	return failures, rows.Err()
}

// Outputs returns every file written for the sprite container path during
// run, in sprite order.
func (db *CatalogDB) Outputs(run int64, path string) ([]string, error) {
	rows, err := db.db.Query("SELECT o.path FROM output AS o JOIN file AS f ON o.file_id = f.id WHERE f.run_id = ? AND f.path = ? ORDER BY o.idx", run, path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outputs []string
	for rows.Next() {
		var out string
		if err := rows.Scan(&out); err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, rows.Err()
}
