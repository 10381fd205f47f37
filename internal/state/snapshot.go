// internal/state/snapshot.go
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath is the snapshot location used when none is configured.
const DefaultPath = "stale.json"

// ErrCorruptSnapshot marks a snapshot file that exists but is not
// a JSON array of strings.
var ErrCorruptSnapshot = errors.New("state: corrupt snapshot")

// Store owns the snapshot file: the stale set recorded by the last run.
// At most one process may use a given path at a time. No locking.
type Store struct {
	path string
}

// NewStore creates a store for path (DefaultPath if empty).
func NewStore(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the snapshot file path.
func (st *Store) Path() string {
	return st.path
}

// Load reads the known stale set.
// A missing file is the first-run case and yields an empty set.
// A present but unparsable file is an error wrapping ErrCorruptSnapshot.
func (st *Store) Load() (Set, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewSet(), nil
		}
		return nil, fmt.Errorf("state: read snapshot %q: %w", st.path, err)
	}

	names, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrCorruptSnapshot, st.path, err)
	}

	return NewSet(names...), nil
}

// Save replaces the snapshot with s.
// The file is written next to the target and renamed over it,
// so a failed write never leaves a truncated snapshot behind.
func (st *Store) Save(s Set) error {
	data, err := encode(s)
	if err != nil {
		return fmt.Errorf("state: encode snapshot: %w", err)
	}

	dir := filepath.Dir(st.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("state: create snapshot directory %q: %w", dir, err)
	}

	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("state: write temp snapshot %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, st.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("state: replace snapshot %q: %w", st.path, err)
	}

	return nil
}

// ---- wire format: JSON array of strings ----

func encode(s Set) ([]byte, error) {
	// Sorted() never returns nil, so an empty set encodes as [] not null.
	data, err := json.Marshal(s.Sorted())
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func decode(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty file")
	}
	if trimmed[0] != '[' {
		return nil, errors.New("not a JSON array")
	}

	// Pointers keep null elements distinguishable from "".
	var elems []*string
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(elems))
	for i, n := range elems {
		if n == nil {
			return nil, fmt.Errorf("element %d is null", i)
		}
		names = append(names, *n)
	}
	return names, nil
}
