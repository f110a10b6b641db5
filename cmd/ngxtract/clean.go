package main

import (
	"fmt"
	"os"

	"github.com/ngxtract/ngxtract/internal/resultcache"
	"github.com/ngxtract/ngxtract/internal/scratch"
)

// runClean removes leftover probe files from runs that crashed before
// their deferred cleanup, plus the on-disk result cache.
func runClean(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "clean takes no arguments, got %v\n", args)
		return 1
	}

	sm := scratch.NewManager()
	if err := sm.CleanupAll(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "scratch directory %s cleaned\n", sm.Dir())

	cacheDir := resultcache.DefaultDir()
	if err := os.RemoveAll(cacheDir); err != nil {
		fmt.Fprintf(os.Stderr, "error: remove result cache: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "result cache %s cleaned\n", cacheDir)
	return 0
}
