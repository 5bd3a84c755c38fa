package ir

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/hanpama/gqlfront/internal/ast"
	"github.com/hanpama/gqlfront/internal/schema"
)

type Options struct {
	// Fragments visible to spreads in the document, usually collected from
	// every document of a compilation with CollectFragments. When nil the
	// document's own fragments are used.
	Fragments map[string]*ast.FragmentDefinition
	// File is recorded on built operations and fragments.
	File string
}

type builder struct {
	schema    *schema.Schema
	fragments map[string]*ast.FragmentDefinition
	usedTypes *treeset.Set
	file      string

	// per definition
	values    *ValueValidator
	spreading []string
}

// Build resolves the operations and fragments of an executable document
// against s. It stops at the first error.
func Build(s *schema.Schema, doc *ast.Document, opts Options) (*DocumentParseResult, error) {
	fragments := opts.Fragments
	if fragments == nil {
		var err error
		if fragments, err = CollectFragments(doc); err != nil {
			return nil, err
		}
	}
	b := &builder{
		schema:    s,
		fragments: fragments,
		usedTypes: treeset.NewWithStringComparator(),
		file:      opts.File,
	}

	result := &DocumentParseResult{}
	for _, def := range doc.Definitions {
		switch def := def.(type) {
		case *ast.OperationDefinition:
			for _, prev := range result.Operations {
				if def.Name != "" && prev.Name == def.Name {
					return nil, violationDuplicateOperation(def.Name, def.Location)
				}
			}
			op, err := b.buildOperation(def)
			if err != nil {
				return nil, err
			}
			result.Operations = append(result.Operations, op)
		case *ast.FragmentDefinition:
			frag, err := b.buildFragment(def)
			if err != nil {
				return nil, err
			}
			result.Fragments = append(result.Fragments, frag)
		default:
			return nil, violationNotExecutable(def)
		}
	}
	result.UsedTypes = setStrings(b.usedTypes)
	return result, nil
}

// CollectFragments indexes the fragment definitions of docs by name.
func CollectFragments(docs ...*ast.Document) (map[string]*ast.FragmentDefinition, error) {
	out := map[string]*ast.FragmentDefinition{}
	for _, doc := range docs {
		if err := AddFragments(out, doc); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AddFragments adds the fragment definitions of doc to fragments. A name
// that is already present is an error.
func AddFragments(fragments map[string]*ast.FragmentDefinition, doc *ast.Document) error {
	for _, def := range doc.Definitions {
		frag, ok := def.(*ast.FragmentDefinition)
		if !ok {
			continue
		}
		if _, dup := fragments[frag.Name]; dup {
			return violationDuplicateFragment(frag.Name, frag.Location)
		}
		fragments[frag.Name] = frag
	}
	return nil
}

func (b *builder) buildOperation(def *ast.OperationDefinition) (*Operation, error) {
	if def.Name == "" {
		return nil, violationAnonymousOperation(def.Location)
	}
	root := b.schema.RootType(def.Operation)
	if root == nil {
		return nil, violationNoRootType(def.Operation, def.Location)
	}
	if def.Operation == ast.Query {
		root = schema.WithIntrospectionFields(root)
	}
	b.values = &ValueValidator{Schema: b.schema, Variables: map[string]*Variable{}}
	b.spreading = nil

	op := &Operation{
		Name:          def.Name,
		OperationType: def.Operation,
		RootType:      root.Name,
		File:          b.file,
		Location:      def.Location,
	}
	for _, vd := range def.VariableDefinitions {
		v, err := b.buildVariable(vd)
		if err != nil {
			return nil, err
		}
		op.Variables = append(op.Variables, v)
	}
	if _, _, err := b.directives(def.Directives, operationLocation(def.Operation)); err != nil {
		return nil, err
	}

	sel, err := b.selectionSet(root, def.SelectionSet, def.Location)
	if err != nil {
		return nil, err
	}
	op.SelectionSet = sel
	return op, nil
}

func (b *builder) buildVariable(def *ast.VariableDefinition) (*Variable, error) {
	if _, dup := b.values.Variables[def.Name]; dup {
		return nil, violationDuplicateVariable(def.Name, def.Location)
	}
	typ := schema.FromAST(def.Type)
	named := b.schema.Types[typ.GetNamedType()]
	if named == nil {
		return nil, violationTypeNotFound(typ.GetNamedType(), def.Type.Loc())
	}
	if !named.Kind.IsInput() {
		return nil, violationVariableNotInput(def.Name, typ, def.Location)
	}
	if _, _, err := b.directives(def.Directives, "VARIABLE_DEFINITION"); err != nil {
		return nil, err
	}
	b.useInputType(named)

	v := &Variable{Name: def.Name, Type: typ, Location: def.Location}
	// Defaults of nullable variables are not carried.
	if def.DefaultValue != nil && typ.IsNonNull() {
		constant := &ValueValidator{Schema: b.schema, Const: true}
		if err := constant.Validate("$"+def.Name, typ, def.DefaultValue, true); err != nil {
			return nil, err
		}
		v.DefaultValue = def.DefaultValue
		v.Default = ast.ValueString(def.DefaultValue)
	}
	b.values.Variables[def.Name] = v
	return v, nil
}

func (b *builder) buildFragment(def *ast.FragmentDefinition) (*Fragment, error) {
	t, err := b.compositeType(def.TypeCondition, def.Location)
	if err != nil {
		return nil, err
	}
	b.values = &ValueValidator{Schema: b.schema}
	b.spreading = []string{def.Name}
	if _, _, err := b.directives(def.Directives, "FRAGMENT_DEFINITION"); err != nil {
		return nil, err
	}
	sel, err := b.selectionSet(t, def.SelectionSet, def.Location)
	if err != nil {
		return nil, err
	}
	return &Fragment{
		Name:          def.Name,
		TypeCondition: t.Name,
		PossibleTypes: b.schema.PossibleTypes(t),
		SelectionSet:  sel,
		File:          b.file,
		Location:      def.Location,
	}, nil
}

// selectionSet resolves sels against parent and merges the result.
func (b *builder) selectionSet(parent *schema.Type, sels []ast.Selection, loc ast.SourceLocation) (SelectionSet, error) {
	var set SelectionSet
	hasFragments, explicitTypename := false, false
	for _, sel := range sels {
		var err error
		switch sel := sel.(type) {
		case *ast.Field:
			if sel.ResponseName() == schema.TypenameField {
				explicitTypename = true
			}
			err = b.addField(&set, parent, sel)
		case *ast.InlineFragment:
			hasFragments = true
			err = b.addInlineFragment(&set, parent, sel)
		case *ast.FragmentSpread:
			hasFragments = true
			err = b.addFragmentSpread(&set, parent, sel)
		default:
			panic("unreachable")
		}
		if err != nil {
			return SelectionSet{}, err
		}
	}
	if hasFragments && !explicitTypename {
		set.Fields = withTypename(set.Fields, parent, loc)
	}
	if len(set.Fields) == 0 {
		return SelectionSet{}, violationEmptySelection(parent.Name, loc)
	}
	return set, nil
}

// withTypename moves __typename to the front of fields, synthesizing it when
// absent.
func withTypename(fields []*Field, parent *schema.Type, loc ast.SourceLocation) []*Field {
	typename := &Field{
		ResponseName: schema.TypenameField,
		FieldName:    schema.TypenameField,
		ParentType:   parent.Name,
		Type:         schema.TypenameFieldDef().Type,
		Location:     loc,
	}
	out := make([]*Field, 0, len(fields)+1)
	out = append(out, typename)
	for _, f := range fields {
		if f.ResponseName == schema.TypenameField {
			out[0] = f
			continue
		}
		out = append(out, f)
	}
	return out
}

func (b *builder) addField(set *SelectionSet, parent *schema.Type, sel *ast.Field) error {
	conds, skip, err := b.directives(sel.Directives, "FIELD")
	if err != nil || skip {
		return err
	}
	def := b.fieldDefinition(parent, sel.Name)
	if def == nil {
		return violationUnknownField(sel.Name, parent.Name, sel.Location)
	}
	args, err := b.arguments(sel.Arguments, def.Arguments, parent.Name+"."+def.Name, sel.Location)
	if err != nil {
		return err
	}

	named := b.schema.Types[def.Type.GetNamedType()]
	if named == nil {
		return violationTypeNotFound(def.Type.GetNamedType(), sel.Location)
	}
	b.usedTypes.Add(named.Name)

	f := &Field{
		ResponseName:      sel.ResponseName(),
		FieldName:         def.Name,
		ParentType:        parent.Name,
		Type:              def.Type,
		Description:       def.Description,
		IsDeprecated:      def.IsDeprecated,
		DeprecationReason: def.DeprecationReason,
		Arguments:         args,
		Conditions:        conds,
		Location:          sel.Location,
	}
	switch {
	case named.Kind.IsComposite():
		if len(sel.SelectionSet) == 0 {
			return violationMissingSelection(sel.Name, def.Type.String(), sel.Location)
		}
		if f.SelectionSet, err = b.selectionSet(named, sel.SelectionSet, sel.Location); err != nil {
			return err
		}
	case len(sel.SelectionSet) > 0:
		return violationLeafSelection(sel.Name, def.Type.String(), sel.Location)
	}

	fields, err := MergeFields(set.Fields, []*Field{f})
	if err != nil {
		return err
	}
	set.Fields = fields
	return nil
}

func (b *builder) fieldDefinition(parent *schema.Type, name string) *schema.Field {
	if name == schema.TypenameField {
		return schema.TypenameFieldDef()
	}
	return parent.Field(name)
}

func (b *builder) addInlineFragment(set *SelectionSet, parent *schema.Type, sel *ast.InlineFragment) error {
	conds, skip, err := b.directives(sel.Directives, "INLINE_FRAGMENT")
	if err != nil || skip {
		return err
	}
	t := parent
	if sel.TypeCondition != "" {
		if t, err = b.compositeType(sel.TypeCondition, sel.Location); err != nil {
			return err
		}
		if !b.schema.TypesOverlap(t, parent) {
			return violationFragmentNotApplicable("", t.Name, parent.Name, sel.Location)
		}
	}
	sub, err := b.selectionSet(t, sel.SelectionSet, sel.Location)
	if err != nil {
		return err
	}
	return b.addBranch(set, parent, t, conds, sub, sel.Location)
}

func (b *builder) addFragmentSpread(set *SelectionSet, parent *schema.Type, sel *ast.FragmentSpread) error {
	conds, skip, err := b.directives(sel.Directives, "FRAGMENT_SPREAD")
	if err != nil || skip {
		return err
	}
	def, ok := b.fragments[sel.Name]
	if !ok {
		return violationUnknownFragment(sel.Name, sel.Location)
	}
	for i, name := range b.spreading {
		if name == sel.Name {
			return violationFragmentCycle(sel.Name, append(append([]string(nil), b.spreading[i+1:]...), sel.Name), sel.Location)
		}
	}
	t, err := b.compositeType(def.TypeCondition, def.Location)
	if err != nil {
		return err
	}
	if !b.schema.TypesOverlap(t, parent) {
		return violationFragmentNotApplicable(sel.Name, t.Name, parent.Name, sel.Location)
	}

	b.spreading = append(b.spreading, sel.Name)
	sub, err := b.selectionSet(t, def.SelectionSet, def.Location)
	b.spreading = b.spreading[:len(b.spreading)-1]
	if err != nil {
		return err
	}
	set.FragmentRefs = unionStrings(set.FragmentRefs, append([]string{sel.Name}, sub.FragmentRefs...))
	return b.addBranch(set, parent, t, conds, sub, sel.Location)
}

// addBranch folds a fragment selection into set. A fragment on the parent
// type without conditions is transparent; anything else stays a separate
// branch.
func (b *builder) addBranch(set *SelectionSet, parent, t *schema.Type, conds []Condition, sub SelectionSet, loc ast.SourceLocation) error {
	b.usedTypes.Add(t.Name)
	if t.Name == parent.Name && len(conds) == 0 {
		merged, err := MergeSelectionSets(*set, sub)
		if err != nil {
			return err
		}
		*set = merged
		return nil
	}
	if b.schema.IsSubType(schema.NamedType(parent.Name), schema.NamedType(t.Name)) {
		decorate(sub.Fields, parent)
	}
	frags, err := MergeInlineFragments(set.InlineFragments, []*InlineFragment{{
		TypeCondition: t.Name,
		PossibleTypes: b.schema.PossibleTypes(t),
		Conditions:    conds,
		SelectionSet:  sub,
		Location:      loc,
	}})
	if err != nil {
		return err
	}
	set.InlineFragments = frags
	return nil
}

// decorate gives fields of a branch on a supertype the description and
// deprecation of the more specific parent type.
func decorate(fields []*Field, specific *schema.Type) {
	for i, f := range fields {
		def := specific.Field(f.FieldName)
		if def == nil {
			continue
		}
		c := *f
		c.ParentType = specific.Name
		c.Description = def.Description
		c.IsDeprecated = def.IsDeprecated
		c.DeprecationReason = def.DeprecationReason
		fields[i] = &c
	}
}

func (b *builder) compositeType(name string, loc ast.SourceLocation) (*schema.Type, error) {
	t := b.schema.Types[name]
	if t == nil {
		return nil, violationTypeNotFound(name, loc)
	}
	if !t.Kind.IsComposite() {
		return nil, violationNotCompositeType(name, loc)
	}
	return t, nil
}

func (b *builder) arguments(args []*ast.Argument, defs []*schema.InputValue, owner string, loc ast.SourceLocation) ([]*Argument, error) {
	var out []*Argument
	for _, arg := range args {
		var def *schema.InputValue
		for _, d := range defs {
			if d.Name == arg.Name {
				def = d
				break
			}
		}
		if def == nil {
			return nil, violationUnknownArgument(arg.Name, owner, arg.Location)
		}
		for _, prev := range out {
			if prev.Name == arg.Name {
				return nil, violationDuplicateArgument(arg.Name, arg.Location)
			}
		}
		if err := b.values.Validate(arg.Name, def.Type, arg.Value, true); err != nil {
			return nil, err
		}
		if named := b.schema.Types[def.Type.GetNamedType()]; named != nil {
			b.useInputType(named)
		}
		out = append(out, &Argument{
			Name:    arg.Name,
			Type:    def.Type,
			Value:   arg.Value,
			Literal: ast.ValueString(arg.Value),
		})
	}
	for _, def := range defs {
		if !def.Type.IsNonNull() || def.DefaultValue != nil {
			continue
		}
		provided := false
		for _, arg := range out {
			if arg.Name == def.Name {
				provided = true
			}
		}
		if !provided {
			return nil, violationMissingArgument(def.Name, owner, def.Type, loc)
		}
	}
	return out, nil
}

// directives validates directive uses at location and turns @skip and
// @include into conditions. skip is true when a literal argument excludes
// the selection.
func (b *builder) directives(dirs []*ast.Directive, location string) (conds []Condition, skip bool, err error) {
	seen := map[string]bool{}
	for _, d := range dirs {
		def := b.schema.Directives[d.Name]
		if def == nil {
			return nil, false, violationUnknownDirective(d.Name, d.Location)
		}
		if !def.HasLocation(location) {
			return nil, false, violationDirectiveLocation(d.Name, location, d.Location)
		}
		if seen[d.Name] && !def.IsRepeatable {
			return nil, false, violationDirectiveNotRepeatable(d.Name, d.Location)
		}
		seen[d.Name] = true
		if _, err := b.arguments(d.Arguments, def.Arguments, "@"+d.Name, d.Location); err != nil {
			return nil, false, err
		}
		if d.Name != "skip" && d.Name != "include" {
			continue
		}
		inverted := d.Name == "skip"
		arg := d.Argument("if")
		if arg == nil {
			continue
		}
		switch v := arg.Value.(type) {
		case *ast.BooleanValue:
			if v.Value == inverted {
				skip = true
			}
		case *ast.Variable:
			conds = append(conds, Condition{VariableName: v.Name, Inverted: inverted})
		}
	}
	return conds, skip, nil
}

// useInputType records an input type and every type reachable through its
// input fields.
func (b *builder) useInputType(t *schema.Type) {
	if b.usedTypes.Contains(t.Name) {
		return
	}
	b.usedTypes.Add(t.Name)
	for _, f := range t.InputFields {
		if named := b.schema.Types[f.Type.GetNamedType()]; named != nil {
			b.useInputType(named)
		}
	}
}

func operationLocation(op ast.OperationType) string {
	switch op {
	case ast.Query:
		return "QUERY"
	case ast.Mutation:
		return "MUTATION"
	case ast.Subscription:
		return "SUBSCRIPTION"
	default:
		panic("unreachable")
	}
}

func setStrings(set *treeset.Set) []string {
	out := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(string))
	}
	return out
}
