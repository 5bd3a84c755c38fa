package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hanpama/gqlfront/internal/ast"
)

// Kind classifies where an error came from.
type Kind int

const (
	// Semantic errors are raised for documents that parse but are not valid
	// against the GraphQL rules or the schema.
	Semantic Kind = iota
	// Syntax errors are raised by the grammar front end.
	Syntax
	// Internal errors signal a mismatch between the grammar front end and the
	// lowering step. They are never caused by user input alone.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Semantic:
		return "semantic"
	case Syntax:
		return "syntax"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the single error type surfaced by the compiler core.
type Error struct {
	Kind     Kind               `json:"kind"`
	Message  string             `json:"message"`
	Location ast.SourceLocation `json:"location"`
	// Related holds secondary locations, e.g. the other side of a merge conflict.
	Related []ast.SourceLocation `json:"related,omitempty"`
	// File is the document the error was reported for.
	File string `json:"file,omitempty"`
}

func (e *Error) Error() string {
	loc := e.Location
	if loc.File == "" {
		loc.File = e.File
	}
	if loc.Line == 0 && loc.File == "" {
		return e.Message
	}
	if loc.Line == 0 {
		return loc.File + ": " + e.Message
	}
	return loc.String() + ": " + e.Message
}

// Errorf creates a semantic error at loc.
func Errorf(loc ast.SourceLocation, format string, args ...any) *Error {
	return &Error{Kind: Semantic, Message: fmt.Sprintf(format, args...), Location: loc}
}

// Internalf creates an internal error at loc.
func Internalf(loc ast.SourceLocation, format string, args ...any) *Error {
	return &Error{Kind: Internal, Message: fmt.Sprintf(format, args...), Location: loc}
}

// Syntaxf creates a syntax error at loc.
func Syntaxf(loc ast.SourceLocation, format string, args ...any) *Error {
	return &Error{Kind: Syntax, Message: fmt.Sprintf(format, args...), Location: loc}
}

// Wrap attaches the originating file to err. Errors that are not *Error are
// converted to semantic errors so that callers see a single error type.
func Wrap(file string, err error) error {
	if err == nil {
		return nil
	}
	var list List
	if errors.As(err, &list) {
		out := make(List, len(list))
		for i, e := range list {
			out[i] = withFile(file, e)
		}
		return out
	}
	var e *Error
	if errors.As(err, &e) {
		return withFile(file, e)
	}
	return &Error{Kind: Semantic, Message: err.Error(), File: file}
}

func withFile(file string, e *Error) *Error {
	c := *e
	if c.File == "" {
		c.File = file
	}
	if c.Location.File == "" && c.Location.Line != 0 {
		c.Location.File = file
	}
	return &c
}

// List is returned when errors are collected instead of failing fast.
type List []*Error

func (l List) Error() string {
	var b strings.Builder
	b.WriteString("errors found:\n")
	for _, e := range l {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return b.String()
}
