package ast

// Selection is implemented by *Field, *InlineFragment and *FragmentSpread.
type Selection interface {
	Loc() SourceLocation
	isSelection()
}

type Field struct {
	Alias        string
	Name         string
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet []Selection
	Location     SourceLocation
}

// ResponseName is the alias when present, the field name otherwise.
func (f *Field) ResponseName() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// Argument returns the named argument, or nil.
func (f *Field) Argument(name string) *Argument {
	for _, arg := range f.Arguments {
		if arg.Name == name {
			return arg
		}
	}
	return nil
}

type InlineFragment struct {
	// TypeCondition is empty when the fragment has no "on" clause.
	TypeCondition string
	Directives    []*Directive
	SelectionSet  []Selection
	Location      SourceLocation
}

type FragmentSpread struct {
	Name       string
	Directives []*Directive
	Location   SourceLocation
}

func (s *Field) Loc() SourceLocation          { return s.Location }
func (s *InlineFragment) Loc() SourceLocation { return s.Location }
func (s *FragmentSpread) Loc() SourceLocation { return s.Location }

func (*Field) isSelection()          {}
func (*InlineFragment) isSelection() {}
func (*FragmentSpread) isSelection() {}
