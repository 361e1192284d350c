// Package sqlitestore keeps the task list in a single SQLite file.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/store"
)

// DefaultFileName is used when no path is configured.
const DefaultFileName = "tasks.db"

const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	position INTEGER PRIMARY KEY,
	id INTEGER NOT NULL UNIQUE,
	name TEXT NOT NULL,
	note TEXT NOT NULL DEFAULT ''
);`

// Store persists the ordered list as rows keyed by position. The database
// is opened per call so an absent file stays absent until the first save.
type Store struct {
	path string
}

func New(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultFileName
	}
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

func (s *Store) Load() ([]model.Task, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("stat: %w", err)
	}
	db, err := open(s.path, "ro")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id, name, note FROM tasks ORDER BY position;`)
	if err != nil {
		return nil, &store.CorruptDataError{Path: s.path, Err: err}
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		var id sql.NullInt64
		var name, note sql.NullString
		if err := rows.Scan(&id, &name, &note); err != nil {
			return nil, &store.CorruptDataError{Path: s.path, Err: err}
		}
		if !id.Valid || !name.Valid {
			return nil, &store.CorruptDataError{
				Path: s.path,
				Err:  fmt.Errorf("record %d: missing id or name", len(tasks)),
			}
		}
		t.ID, t.Name, t.Note = int(id.Int64), name.String, note.String
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &store.CorruptDataError{Path: s.path, Err: err}
	}
	return tasks, nil
}

// Save rewrites every row inside one transaction.
func (s *Store) Save(tasks []model.Task) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &store.PersistenceError{Path: s.path, Err: err}
		}
	}
	db, err := open(s.path, "rwc")
	if err != nil {
		return &store.PersistenceError{Path: s.path, Err: err}
	}
	defer db.Close()

	if err := replaceAll(db, tasks); err != nil {
		return &store.PersistenceError{Path: s.path, Err: err}
	}
	return nil
}

func replaceAll(db *sql.DB, tasks []model.Task) error {
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks;`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO tasks (position, id, name, note) VALUES (?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, t := range tasks {
		if _, err := stmt.Exec(i, t.ID, t.Name, t.Note); err != nil {
			return fmt.Errorf("insert task %d: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

func open(path, mode string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn(path, mode))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func dsn(path, mode string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", mode)
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
