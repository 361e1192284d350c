package jsonstore

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking; fine for a local single-user tool.

// DefaultFileName is used when no path is configured.
const DefaultFileName = "tasks.json"

//go:embed tasks.schema.json
var schemaText string

var schema = jsonschema.MustCompileString("tasks.schema.json", schemaText)

// Store keeps the task list as a JSON array in one file.
type Store struct {
	path string
}

// New returns a JSON backend for path. An empty path means DefaultFileName
// in the working directory.
func New(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultFileName
	}
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the file. A missing file is an empty list.
func (s *Store) Load() ([]model.Task, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if err := validate(b); err != nil {
		return nil, &store.CorruptDataError{Path: s.path, Err: err}
	}
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, &store.CorruptDataError{Path: s.path, Err: fmt.Errorf("json unmarshal: %w", err)}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// Save replaces the file with tasks. The data goes to a temporary file in
// the same directory first and is renamed over the target, so a failed
// write never leaves a truncated list behind.
func (s *Store) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return &store.PersistenceError{Path: s.path, Err: fmt.Errorf("json marshal: %w", err)}
	}
	b = append(b, '\n')
	if err := writeAtomic(s.path, b); err != nil {
		return &store.PersistenceError{Path: s.path, Err: err}
	}
	return nil
}

// writeAtomic keeps the mode of an existing file at path; new files get 0644.
func writeAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// validate checks raw file content against the embedded record schema.
func validate(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}
	if dec.More() {
		return errors.New("trailing data after task list")
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return errors.New(strings.Join(schemaMessages(ve), "; "))
		}
		return err
	}
	return nil
}

func schemaMessages(err *jsonschema.ValidationError) []string {
	if len(err.Causes) == 0 {
		loc := pointerToPath(err.InstanceLocation)
		if loc == "" {
			return []string{err.Message}
		}
		return []string{loc + ": " + err.Message}
	}
	var out []string
	for _, cause := range err.Causes {
		out = append(out, schemaMessages(cause)...)
	}
	return out
}

// pointerToPath turns "/2/name" into "[2].name".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
