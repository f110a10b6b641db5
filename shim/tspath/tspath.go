// Package tspath re-exports the typescript-go path helpers used by ngxtract.
package tspath

import "github.com/microsoft/typescript-go/internal/tspath"

type Path = tspath.Path

func NormalizePath(path string) string {
	return tspath.NormalizePath(path)
}

func ResolvePath(path string, paths ...string) string {
	return tspath.ResolvePath(path, paths...)
}
