package store

import (
	"errors"
	"fmt"
)

// ErrIDsExhausted means no id above the current largest one fits in an int.
var ErrIDsExhausted = errors.New("no task ids left")

// CorruptDataError reports a backing file that exists but does not hold a
// valid ordered set of task records. There is no recovery path for it.
type CorruptDataError struct {
	Path string
	Err  error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt task data in %s: %v", e.Path, e.Err)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

// PersistenceError reports a failed write of the task list. The in-memory
// list stays valid; only the last write is lost.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NotFoundError reports a lookup of an id no task carries.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}
