// Package ir builds the normalized executable representation of GraphQL
// operations and fragments against an assembled schema.
package ir

import (
	"github.com/hanpama/gqlfront/internal/ast"
	"github.com/hanpama/gqlfront/internal/schema"
)

// DocumentParseResult is the outcome of building one or more executable
// documents. UsedTypes is sorted.
type DocumentParseResult struct {
	Operations []*Operation `json:"operations"`
	Fragments  []*Fragment  `json:"fragments"`
	UsedTypes  []string     `json:"usedTypes"`
}

// SelectionSet is the merged content of a selection: fields keyed by
// response name, type-conditioned branches, and the named fragments spread
// into it.
type SelectionSet struct {
	Fields          []*Field          `json:"fields"`
	InlineFragments []*InlineFragment `json:"inlineFragments,omitempty"`
	FragmentRefs    []string          `json:"fragmentRefs,omitempty"`
}

// Field returns the field with the given response name, or nil.
func (s *SelectionSet) Field(responseName string) *Field {
	for _, f := range s.Fields {
		if f.ResponseName == responseName {
			return f
		}
	}
	return nil
}

type Operation struct {
	Name          string            `json:"name"`
	OperationType ast.OperationType `json:"operationType"`
	RootType      string            `json:"rootType"`
	Variables     []*Variable       `json:"variables"`
	SelectionSet
	File     string             `json:"file,omitempty"`
	Location ast.SourceLocation `json:"location"`
}

type Fragment struct {
	Name          string `json:"name"`
	TypeCondition string `json:"typeCondition"`
	// PossibleTypes lists the object types the fragment can apply to.
	PossibleTypes []string `json:"possibleTypes"`
	SelectionSet
	File     string             `json:"file,omitempty"`
	Location ast.SourceLocation `json:"location"`
}

type Field struct {
	ResponseName      string          `json:"responseName"`
	FieldName         string          `json:"fieldName"`
	ParentType        string          `json:"parentType"`
	Type              *schema.TypeRef `json:"type"`
	Description       string          `json:"description,omitempty"`
	IsDeprecated      bool            `json:"isDeprecated,omitempty"`
	DeprecationReason string          `json:"deprecationReason,omitempty"`
	Arguments         []*Argument     `json:"arguments,omitempty"`
	Conditions        []Condition     `json:"conditions,omitempty"`
	SelectionSet
	Location ast.SourceLocation `json:"location"`
}

// InlineFragment is a selection branch taken only when the runtime type is
// one of PossibleTypes.
type InlineFragment struct {
	TypeCondition string      `json:"typeCondition"`
	PossibleTypes []string    `json:"possibleTypes"`
	Conditions    []Condition `json:"conditions,omitempty"`
	SelectionSet
	Location ast.SourceLocation `json:"location"`
}

type Argument struct {
	Name  string          `json:"name"`
	Type  *schema.TypeRef `json:"type"`
	Value ast.Value       `json:"-"`
	// Literal is Value printed as GraphQL source.
	Literal string `json:"value"`
}

type Variable struct {
	Name         string             `json:"name"`
	Type         *schema.TypeRef    `json:"type"`
	DefaultValue ast.Value          `json:"-"`
	Default      string             `json:"defaultValue,omitempty"`
	Location     ast.SourceLocation `json:"location"`
}

// Condition gates a selection on a Boolean variable. The selection is taken
// when the variable is true, or false when Inverted is set (@skip).
type Condition struct {
	VariableName string `json:"variableName"`
	Inverted     bool   `json:"inverted,omitempty"`
}

func conditionsEqual(a, b []Condition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
