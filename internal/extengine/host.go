// Package extengine infers binding types by asking an external
// tooling process for hover information over synthesized probe files.
// The process itself is behind the Host interface; everything here is
// protocol-agnostic.
package extengine

import "context"

// HoverPayload is one piece of hover content returned by a host. Hosts
// that speak markdown set IsMarkdown so the parser knows to look for
// fenced code blocks.
type HoverPayload struct {
	Content    string
	IsMarkdown bool
}

// Host is the contract an external tooling process must satisfy.
// Available is polled before every run so a host that dies mid-session
// is skipped rather than waited on.
type Host interface {
	Available() bool
	RequestTypeAtPosition(ctx context.Context, filePath string, line, character int) ([]HoverPayload, error)
}
