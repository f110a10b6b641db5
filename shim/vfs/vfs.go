// Package vfs re-exports the typescript-go virtual filesystem interface
// used by ngxtract.
package vfs

import "github.com/microsoft/typescript-go/internal/vfs"

type (
	FS          = vfs.FS
	Entries     = vfs.Entries
	FileInfo    = vfs.FileInfo
	WalkDirFunc = vfs.WalkDirFunc
)
