// Package osvfs re-exports the typescript-go OS filesystem implementation
// used by ngxtract.
package osvfs

import (
	"github.com/microsoft/typescript-go/internal/vfs"
	"github.com/microsoft/typescript-go/internal/vfs/osvfs"
)

// FS returns a vfs.FS backed by the host operating system.
func FS() vfs.FS {
	return osvfs.FS()
}
