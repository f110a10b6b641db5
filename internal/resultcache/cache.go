// Package resultcache provides an on-disk cache for analysis results.
//
// Scaffolding tools tend to invoke ngxtract repeatedly for the same
// extraction while the user iterates, so a run whose template, component
// source and config are all unchanged can reuse the previous result.
//
// The cache is intentionally conservative: if ANY check fails, the whole
// analysis runs from scratch. There are no partial invalidation
// shortcuts, because a component edit can change the type of any binding
// and we don't track a finer dependency graph.
package resultcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SchemaVersion is bumped when the cache format or the result format
// changes. A mismatch forces a fresh analysis, ensuring binary upgrades
// don't replay stale results.
const SchemaVersion = 1

// Entry records what was true when an analysis last ran successfully,
// plus the result it produced.
type Entry struct {
	// V is the schema version. Must match SchemaVersion or the entry is
	// invalid.
	V int `json:"v"`

	// TemplateHash is the SHA-256 hex digest of the template text.
	TemplateHash string `json:"templateHash"`

	// ComponentHash is the SHA-256 hex digest of the parent component
	// source file.
	ComponentHash string `json:"componentHash"`

	// ConfigHash is the SHA-256 hex digest of the effective config.
	ConfigHash string `json:"configHash"`

	// Result is the serialized analysis result, stored verbatim.
	Result json.RawMessage `json:"result"`
}

// New creates an Entry with the current schema version.
func New(templateHash, componentHash, configHash string, result json.RawMessage) *Entry {
	return &Entry{
		V:             SchemaVersion,
		TemplateHash:  templateHash,
		ComponentHash: componentHash,
		ConfigHash:    configHash,
		Result:        result,
	}
}

// DefaultDir returns the cache directory under the system temp dir.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), "ngxtract-cache")
}

// CachePath derives the entry file path for a component inside dir. The
// name is a digest of the component path, so components with equal base
// names in different directories never collide.
func CachePath(dir, componentPath string) string {
	h := sha256.Sum256([]byte(componentPath))
	return filepath.Join(dir, hex.EncodeToString(h[:8])+".json")
}

// Load reads and parses a cache entry from disk.
// Returns nil if the file doesn't exist, is unreadable, or is invalid
// JSON. Callers should treat nil as "cache miss" and run the analysis.
func Load(path string) *Entry {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil
	}

	return &e
}

// Save writes the entry to disk atomically (write to temp, rename).
// Returns an error if the write fails, but callers may choose to log and
// continue (a failed save just means the next run won't benefit).
func Save(path string, entry *Entry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory %s: %w", dir, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing cache temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming cache file: %w", err)
	}

	return nil
}

// Delete removes the entry file from disk. Errors are ignored (the file
// may not exist).
func Delete(path string) {
	os.Remove(path)
}

// IsValid checks whether the entry can be trusted to skip analysis. ALL
// hashes must match and none may be empty: an empty hash means the input
// could not be read, and an unreadable input is never a cache hit.
func (e *Entry) IsValid(templateHash, componentHash, configHash string) bool {
	if e == nil {
		return false
	}

	if e.V != SchemaVersion {
		return false
	}

	if templateHash == "" || componentHash == "" || configHash == "" {
		return false
	}

	return e.TemplateHash == templateHash &&
		e.ComponentHash == componentHash &&
		e.ConfigHash == configHash
}

// HashBytes computes the SHA-256 hex digest of a byte slice.
func HashBytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// HashFile computes the SHA-256 hex digest of a file's contents.
// Returns empty string if the file doesn't exist or can't be read.
func HashFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return HashBytes(data)
}
