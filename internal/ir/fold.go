package ir

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/hanpama/gqlfront/internal/diag"
)

// Fold concatenates per-document results in order. Operation and fragment
// names must be unique across all of them.
func Fold(results ...*DocumentParseResult) (*DocumentParseResult, error) {
	out := &DocumentParseResult{}
	used := treeset.NewWithStringComparator()
	operations := map[string]bool{}
	fragments := map[string]bool{}
	for _, r := range results {
		if r == nil {
			continue
		}
		for _, op := range r.Operations {
			if operations[op.Name] {
				return nil, diag.Wrap(op.File, violationDuplicateOperation(op.Name, op.Location))
			}
			operations[op.Name] = true
			out.Operations = append(out.Operations, op)
		}
		for _, frag := range r.Fragments {
			if fragments[frag.Name] {
				return nil, diag.Wrap(frag.File, violationDuplicateFragment(frag.Name, frag.Location))
			}
			fragments[frag.Name] = true
			out.Fragments = append(out.Fragments, frag)
		}
		for _, name := range r.UsedTypes {
			used.Add(name)
		}
	}
	out.UsedTypes = setStrings(used)
	return out, nil
}
