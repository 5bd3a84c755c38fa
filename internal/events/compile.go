// Package events defines the lifecycle events published while compiling a
// project. The context passed along with each event carries the run ID.
package events

import "time"

// CompileStart is emitted before a project is compiled.
type CompileStart struct {
	SchemaFiles   []string
	DocumentFiles []string
}

// CompileFinish is emitted after a project compilation ends.
type CompileFinish struct {
	Operations int
	Fragments  int
	Err        error
	Duration   time.Duration
}

// SchemaAssembleStart is emitted before the schema sources are assembled.
type SchemaAssembleStart struct {
	Files []string
}

// SchemaAssembleFinish is emitted after schema assembly.
type SchemaAssembleFinish struct {
	Files    []string
	Types    int
	Err      error
	Duration time.Duration
}

// DocumentBuildStart is emitted before an executable document is built.
type DocumentBuildStart struct {
	File string
}

// DocumentBuildFinish is emitted after an executable document is built.
type DocumentBuildFinish struct {
	File       string
	Operations int
	Fragments  int
	Err        error
	Duration   time.Duration
}
