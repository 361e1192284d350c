// Package store owns the task list and keeps it in sync with its backing file.
//
// Every mutation is applied in memory first and then the whole list is
// written back through the Backend. Callers only ever receive copies.
package store

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasks/internal/model"
)

// Backend reads and writes the full ordered task list.
//
// Load returns an empty list when nothing has been saved yet and a
// *CorruptDataError when the stored content cannot be decoded.
type Backend interface {
	Load() ([]model.Task, error)
	Save(tasks []model.Task) error
	Path() string
}

// Store is the single authority over task data.
type Store struct {
	backend Backend
	logger  *log.Logger
	tasks   []model.Task
}

// Option configures a Store.
type Option func(*Store)

// WithLogger routes store diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns an empty store over b. Call Load to read existing data.
func New(b Backend, opts ...Option) *Store {
	s := &Store{
		backend: b,
		logger:  log.New(io.Discard),
		tasks:   []model.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open returns a store over b populated from its backing file.
func Open(b Backend, opts ...Option) (*Store, error) {
	s := New(b, opts...)
	if _, err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path is the location of the backing file.
func (s *Store) Path() string { return s.backend.Path() }

// Load replaces the in-memory list with the backing file's content.
// On error the current list is left untouched.
func (s *Store) Load() ([]model.Task, error) {
	tasks, err := s.backend.Load()
	if err != nil {
		return nil, err
	}
	if err := Validate(tasks); err != nil {
		return nil, &CorruptDataError{Path: s.backend.Path(), Err: err}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	s.tasks = tasks
	s.logger.Debug("loaded tasks", "path", s.backend.Path(), "count", len(tasks))
	return s.Tasks(), nil
}

// Save writes the current list to the backing file.
func (s *Store) Save() error {
	if err := s.backend.Save(s.tasks); err != nil {
		var pe *PersistenceError
		if !errors.As(err, &pe) {
			err = &PersistenceError{Path: s.backend.Path(), Err: err}
		}
		s.logger.Debug("persist failed", "path", s.backend.Path(), "err", err)
		return err
	}
	s.logger.Debug("persisted tasks", "path", s.backend.Path(), "count", len(s.tasks))
	return nil
}

// Tasks returns a snapshot of the list in store order.
func (s *Store) Tasks() []model.Task {
	return slices.Clone(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id int) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, &NotFoundError{ID: id}
	}
	return s.tasks[i], nil
}

// Add appends a task named name. A blank name is ignored: ok is false and
// nothing changes. Once the largest id is math.MaxInt, Add fails with
// ErrIDsExhausted and nothing changes either. A *PersistenceError is
// returned alongside the new task when the write fails.
func (s *Store) Add(name string) (task model.Task, ok bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Task{}, false, nil
	}
	id, err := s.nextID()
	if err != nil {
		return model.Task{}, false, err
	}
	task = model.Task{ID: id, Name: name}
	s.tasks = append(s.tasks, task)
	return task, true, s.Save()
}

// Edit replaces the name and note of the task with the given id, keeping its
// position. A blank name leaves the current name in place.
func (s *Store) Edit(id int, name, note string) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, &NotFoundError{ID: id}
	}
	if name = strings.TrimSpace(name); name != "" {
		s.tasks[i].Name = name
	}
	s.tasks[i].Note = strings.TrimSpace(note)
	return s.tasks[i], s.Save()
}

// Delete removes the task with the given id. A missing id is not an error
// and the list is still written back.
func (s *Store) Delete(id int) error {
	s.tasks = slices.DeleteFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
	return s.Save()
}

// Search returns the tasks whose name contains query, ignoring case, in
// store order. A blank query matches everything.
func (s *Store) Search(query string) []model.Task {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if strings.Contains(strings.ToLower(t.Name), q) {
			out = append(out, t)
		}
	}
	return out
}

// SortBy reorders the list in place with a stable sort and persists the new
// order. Name comparison ignores case.
func (s *Store) SortBy(key SortKey, dir Direction) ([]model.Task, error) {
	order, err := compareFunc(key, dir)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(s.tasks, order)
	return s.Tasks(), s.Save()
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

func (s *Store) nextID() (int, error) {
	maxID := 0
	for _, t := range s.tasks {
		maxID = max(maxID, t.ID)
	}
	if maxID == math.MaxInt {
		return 0, ErrIDsExhausted
	}
	return maxID + 1, nil
}

// Validate checks the invariants every stored list must hold: positive
// unique ids and non-blank names.
func Validate(tasks []model.Task) error {
	seen := make(map[int]struct{}, len(tasks))
	for i, t := range tasks {
		if t.ID <= 0 {
			return fmt.Errorf("record %d: id must be positive, got %d", i, t.ID)
		}
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("record %d: name is blank", i)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("record %d: duplicate id %d", i, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
