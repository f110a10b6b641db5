// Package core re-exports the typescript-go core types used by ngxtract.
package core

import "github.com/microsoft/typescript-go/internal/core"

type ScriptKind = core.ScriptKind

const (
	ScriptKindTS  = core.ScriptKindTS
	ScriptKindTSX = core.ScriptKindTSX
)
