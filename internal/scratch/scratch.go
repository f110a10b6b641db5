// Package scratch manages short-lived probe files used when querying an
// external tooling process. Files live in a dedicated directory under
// the system temp dir so a crashed run can be cleaned up afterwards.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const dirName = "ngxtract-scratch"

// Manager creates and removes probe files. All methods are safe for
// concurrent use.
type Manager struct {
	dir string

	mu      sync.Mutex
	created map[string]struct{}
}

func NewManager() *Manager {
	return &Manager{
		dir:     filepath.Join(os.TempDir(), dirName),
		created: make(map[string]struct{}),
	}
}

// Dir returns the scratch directory path. It may not exist yet.
func (m *Manager) Dir() string { return m.dir }

// Create writes content to a fresh uniquely named .ts file and returns
// its path.
func (m *Manager) Create(content string) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	path := filepath.Join(m.dir, "probe-"+uuid.NewString()+".ts")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write scratch file: %w", err)
	}
	m.mu.Lock()
	m.created[path] = struct{}{}
	m.mu.Unlock()
	return path, nil
}

// Remove deletes one scratch file. Removing a file that is already gone
// is not an error.
func (m *Manager) Remove(path string) error {
	m.mu.Lock()
	delete(m.created, path)
	m.mu.Unlock()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove scratch file: %w", err)
	}
	return nil
}

// CleanupAll removes every probe file in the scratch directory,
// including leftovers from earlier runs. The first error is returned
// but removal continues past it.
func (m *Manager) CleanupAll() error {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read scratch dir: %w", err)
	}

	var firstErr error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "probe-") {
			continue
		}
		path := filepath.Join(m.dir, entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
		m.mu.Lock()
		delete(m.created, path)
		m.mu.Unlock()
	}
	return firstErr
}
