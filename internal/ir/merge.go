package ir

import (
	"github.com/hanpama/gqlfront/internal/ast"
)

// MergeFields merges incoming into base. Fields sharing a response name must
// agree on field name, type and arguments; their selections are merged
// recursively. The result keeps base order and appends new fields after it.
// Neither input is modified.
func MergeFields(base, incoming []*Field) ([]*Field, error) {
	if len(incoming) == 0 {
		return base, nil
	}
	partners := make(map[string]*Field, len(incoming))
	var added []*Field
	for _, f := range incoming {
		if findField(base, f.ResponseName) == nil {
			if prev := findField(added, f.ResponseName); prev != nil {
				merged, err := mergeField(prev, f)
				if err != nil {
					return nil, err
				}
				replaceField(added, merged)
				continue
			}
			added = append(added, f)
			continue
		}
		if prev := partners[f.ResponseName]; prev != nil {
			merged, err := mergeField(prev, f)
			if err != nil {
				return nil, err
			}
			partners[f.ResponseName] = merged
			continue
		}
		partners[f.ResponseName] = f
	}

	out := make([]*Field, 0, len(base)+len(added))
	for _, f := range base {
		partner, ok := partners[f.ResponseName]
		if !ok {
			out = append(out, f)
			continue
		}
		merged, err := mergeField(f, partner)
		if err != nil {
			return nil, err
		}
		out = append(out, merged)
	}
	return append(out, added...), nil
}

func mergeField(a, b *Field) (*Field, error) {
	if a.FieldName != b.FieldName {
		return nil, violationFieldNameConflict(a, b)
	}
	if !a.Type.Equal(b.Type) {
		return nil, violationFieldTypeConflict(a, b)
	}
	if !argumentsEqual(a.Arguments, b.Arguments) {
		return nil, violationFieldArgumentsConflict(a, b)
	}
	sel, err := MergeSelectionSets(a.SelectionSet, b.SelectionSet)
	if err != nil {
		return nil, err
	}
	merged := *a
	merged.SelectionSet = sel
	if !conditionsEqual(a.Conditions, b.Conditions) {
		merged.Conditions = nil
	}
	return &merged, nil
}

// MergeInlineFragments merges incoming branches into base, matching them by
// type condition. Order follows the same contract as MergeFields.
func MergeInlineFragments(base, incoming []*InlineFragment) ([]*InlineFragment, error) {
	if len(incoming) == 0 {
		return base, nil
	}
	out := append([]*InlineFragment(nil), base...)
	for _, frag := range incoming {
		i := findInlineFragment(out, frag.TypeCondition)
		if i < 0 {
			out = append(out, frag)
			continue
		}
		sel, err := MergeSelectionSets(out[i].SelectionSet, frag.SelectionSet)
		if err != nil {
			return nil, err
		}
		merged := *out[i]
		merged.SelectionSet = sel
		if !conditionsEqual(out[i].Conditions, frag.Conditions) {
			merged.Conditions = nil
		}
		out[i] = &merged
	}
	return out, nil
}

// MergeSelectionSets merges fields, branches and fragment references of two
// selection sets.
func MergeSelectionSets(a, b SelectionSet) (SelectionSet, error) {
	fields, err := MergeFields(a.Fields, b.Fields)
	if err != nil {
		return SelectionSet{}, err
	}
	frags, err := MergeInlineFragments(a.InlineFragments, b.InlineFragments)
	if err != nil {
		return SelectionSet{}, err
	}
	return SelectionSet{
		Fields:          fields,
		InlineFragments: frags,
		FragmentRefs:    unionStrings(a.FragmentRefs, b.FragmentRefs),
	}, nil
}

func argumentsEqual(a, b []*Argument) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		var match *Argument
		for _, y := range b {
			if y.Name == x.Name {
				match = y
				break
			}
		}
		if match == nil || ast.ValueString(x.Value) != ast.ValueString(match.Value) {
			return false
		}
	}
	return true
}

func findField(fields []*Field, responseName string) *Field {
	for _, f := range fields {
		if f.ResponseName == responseName {
			return f
		}
	}
	return nil
}

func replaceField(fields []*Field, f *Field) {
	for i := range fields {
		if fields[i].ResponseName == f.ResponseName {
			fields[i] = f
			return
		}
	}
}

func findInlineFragment(frags []*InlineFragment, typeCondition string) int {
	for i, f := range frags {
		if f.TypeCondition == typeCondition {
			return i
		}
	}
	return -1
}

func unionStrings(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	out := append([]string(nil), a...)
	for _, s := range b {
		if !containsString(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
