package scratch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateAndRemove(t *testing.T) {
	m := NewManager()
	t.Cleanup(func() { m.CleanupAll() })

	path, err := m.Create("export class Probe {}")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if filepath.Dir(path) != m.Dir() {
		t.Fatalf("probe %s not under scratch dir %s", path, m.Dir())
	}
	if !strings.HasPrefix(filepath.Base(path), "probe-") || !strings.HasSuffix(path, ".ts") {
		t.Fatalf("unexpected probe name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "export class Probe {}" {
		t.Fatalf("unexpected content: %q", data)
	}

	if err := m.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected probe to be gone")
	}
}

func TestRemoveMissingFileIsNoError(t *testing.T) {
	m := NewManager()
	if err := m.Remove(filepath.Join(m.Dir(), "probe-gone.ts")); err != nil {
		t.Fatalf("removing an absent probe must not error: %v", err)
	}
}

func TestCreateUniqueNames(t *testing.T) {
	m := NewManager()
	t.Cleanup(func() { m.CleanupAll() })

	a, err := m.Create("a")
	if err != nil {
		t.Fatalf("Create a: %v", err)
	}
	b, err := m.Create("b")
	if err != nil {
		t.Fatalf("Create b: %v", err)
	}
	if a == b {
		t.Fatal("expected unique probe names")
	}
}

func TestCleanupAll(t *testing.T) {
	m := NewManager()

	for i := 0; i < 3; i++ {
		if _, err := m.Create("content"); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	// A leftover from a crashed earlier run.
	stale := filepath.Join(m.Dir(), "probe-stale.ts")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Unrelated files are not touched.
	other := filepath.Join(m.Dir(), "keep.txt")
	if err := os.WriteFile(other, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(other) })

	if err := m.CleanupAll(); err != nil {
		t.Fatalf("CleanupAll: %v", err)
	}

	entries, err := os.ReadDir(m.Dir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "probe-") {
			t.Fatalf("probe %s survived CleanupAll", entry.Name())
		}
	}
	if _, err := os.Stat(other); err != nil {
		t.Fatal("unrelated file must survive CleanupAll")
	}
}

func TestCleanupAllMissingDir(t *testing.T) {
	m := NewManager()
	os.RemoveAll(m.Dir())
	if err := m.CleanupAll(); err != nil {
		t.Fatalf("CleanupAll on a missing dir must not error: %v", err)
	}
}
