package input

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Store persists the binding table as an action-name → code-list mapping
type Store interface {
	// Load returns the stored mapping, an error wrapping fs.ErrNotExist when nothing is stored
	Load() (map[string][]string, error)
	// Save replaces the stored mapping
	Save(map[string][]string) error
}

// keymapFile is the on-disk TOML document
type keymapFile struct {
	Bindings map[string][]string `toml:"bindings"`
}

// FileStore keeps bindings in a TOML file
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path; the file is created on first save
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path
func (s *FileStore) Path() string { return s.path }

// Load parses the keymap file
func (s *FileStore) Load() (map[string][]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("keymap read: %w", err)
	}

	var doc keymapFile
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}
	if doc.Bindings == nil {
		return nil, fmt.Errorf("keymap %s: missing [bindings] table: %w", s.path, fs.ErrNotExist)
	}
	return doc.Bindings, nil
}

// Save writes the keymap through a temp file and rename so a crash never leaves a torn file
func (s *FileStore) Save(bindings map[string][]string) error {
	data, err := toml.Marshal(keymapFile{Bindings: bindings})
	if err != nil {
		return fmt.Errorf("keymap encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("keymap dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".keymap-*.toml")
	if err != nil {
		return fmt.Errorf("keymap temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("keymap write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("keymap close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("keymap rename: %w", err)
	}
	return nil
}

// MemoryStore keeps bindings in memory, for headless hosts and tests
type MemoryStore struct {
	mu    sync.Mutex
	data  map[string][]string
	saves int
	err   error
}

// NewMemoryStore creates a store, optionally pre-seeded with raw data
func NewMemoryStore(seed map[string][]string) *MemoryStore {
	return &MemoryStore{data: cloneRaw(seed)}
}

// Load returns a copy of the stored mapping
func (s *MemoryStore) Load() (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, fs.ErrNotExist
	}
	return cloneRaw(s.data), nil
}

// Save stores a copy of bindings unless a failure was injected
func (s *MemoryStore) Save(bindings map[string][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.data = cloneRaw(bindings)
	s.saves++
	return nil
}

// Saves returns the number of successful saves
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// FailWith makes subsequent saves return err (nil clears)
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func cloneRaw(src map[string][]string) map[string][]string {
	if src == nil {
		return nil
	}
	out := make(map[string][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// encodeTable converts a table to its persisted form
func encodeTable(t Table) map[string][]string {
	out := make(map[string][]string, ActionCount)
	for _, a := range Actions() {
		codes := make([]string, 0, len(t[a]))
		for _, c := range t[a] {
			codes = append(codes, string(c))
		}
		out[a.String()] = codes
	}
	return out
}

// MergeStored overlays stored entries onto the default table
// Unknown action names and empty or blank code lists are skipped
func MergeStored(raw map[string][]string) Table {
	result := DefaultTable()
	for name, codes := range raw {
		a, ok := ParseAction(name)
		if !ok {
			continue
		}
		// Canonical key wins over a legacy alias of the same action
		if name != a.String() {
			if _, canonical := raw[a.String()]; canonical {
				continue
			}
		}
		parsed := make([]Code, 0, len(codes))
		for _, c := range codes {
			if c == "" {
				continue
			}
			parsed = append(parsed, Code(c))
		}
		if len(parsed) == 0 {
			continue
		}
		result[a] = parsed
	}
	return result
}

// isMissing reports whether err means nothing was stored yet
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
