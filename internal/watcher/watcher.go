// Package watcher re-runs analysis when the watched template or
// component files change. It polls file metadata instead of using OS
// notification APIs: the watch set is a handful of files, and polling
// behaves the same on every platform.
package watcher

import (
	"os"
	"sync"
	"time"
)

// Event represents a file change event.
type Event struct {
	Path string
	Op   string // "write", "remove", "create"
}

// DefaultPollInterval is the default polling interval for file change
// detection.
const DefaultPollInterval = 500 * time.Millisecond

// Watcher watches a fixed set of files for changes.
type Watcher struct {
	paths        []string
	debounce     time.Duration
	pollInterval time.Duration
	onChange     func(events []Event)

	mu      sync.Mutex
	pending []Event
	timer   *time.Timer
	stopCh  chan struct{}
}

// New creates a watcher over the given file paths. onChange receives the
// debounced batch of events.
func New(paths []string, debounce time.Duration, onChange func(events []Event)) *Watcher {
	return &Watcher{
		paths:        paths,
		debounce:     debounce,
		pollInterval: DefaultPollInterval,
		onChange:     onChange,
		stopCh:       make(chan struct{}),
	}
}

// SetPollInterval sets the polling interval for file change detection.
func (w *Watcher) SetPollInterval(d time.Duration) {
	w.pollInterval = d
}

// Watch starts polling for file changes. This is a blocking call that
// runs until Stop is called.
func (w *Watcher) Watch() error {
	snapshot := w.buildSnapshot()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return nil
		case <-ticker.C:
			newSnapshot := w.buildSnapshot()
			events := diff(snapshot, newSnapshot)
			if len(events) > 0 {
				w.mu.Lock()
				w.pending = append(w.pending, events...)
				if w.timer != nil {
					w.timer.Stop()
				}
				w.timer = time.AfterFunc(w.debounce, func() {
					w.mu.Lock()
					pending := w.pending
					w.pending = nil
					w.mu.Unlock()
					if len(pending) > 0 {
						w.onChange(pending)
					}
				})
				w.mu.Unlock()
			}
			snapshot = newSnapshot
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
}

type fileInfo struct {
	modTime time.Time
	size    int64
	exists  bool
}

func (w *Watcher) buildSnapshot() map[string]fileInfo {
	snap := make(map[string]fileInfo, len(w.paths))
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			snap[path] = fileInfo{}
			continue
		}
		snap[path] = fileInfo{modTime: info.ModTime(), size: info.Size(), exists: true}
	}
	return snap
}

func diff(old, current map[string]fileInfo) []Event {
	var events []Event
	for path, cur := range current {
		prev := old[path]
		switch {
		case cur.exists && !prev.exists:
			events = append(events, Event{Path: path, Op: "create"})
		case !cur.exists && prev.exists:
			events = append(events, Event{Path: path, Op: "remove"})
		case cur.exists && (cur.modTime != prev.modTime || cur.size != prev.size):
			events = append(events, Event{Path: path, Op: "write"})
		}
	}
	return events
}
