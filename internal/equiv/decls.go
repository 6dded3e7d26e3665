package equiv

import "github.com/decleq/decleq/internal/ast"

// checkDecls dispatches one worklist pair to its per-kind rule. Different
// kinds are never equivalent: a free function does not match a constructor
// even with an identical signature.
func (c *Context) checkDecls(pair declPair) bool {
	d0 := c.a.Decl(pair.a)
	d1 := c.b.Decl(pair.b)
	if d0.Kind != d1.Kind {
		return false
	}
	switch d0.Kind {
	case ast.DeclVariable:
		// Variables are located by name upstream; only the type matters.
		return c.typesEquivalent(d0.Type, d1.Type)
	case ast.DeclField:
		// Field names participate: two fields of the same type are only
		// the same field when the names agree, which is what makes
		// reordered members detectable.
		return d0.Name == d1.Name && c.typesEquivalent(d0.Type, d1.Type)
	case ast.DeclFunction, ast.DeclMethod, ast.DeclConstructor, ast.DeclConversion:
		return c.functionsEquivalent(d0, d1)
	case ast.DeclRecord, ast.DeclTemplateSpec:
		return c.recordsEquivalent(d0, d1)
	case ast.DeclClassTemplate:
		return c.classTemplatesEquivalent(d0, d1)
	case ast.DeclNamespace:
		return c.namespacesEquivalent(d0, d1)
	default:
		return false
	}
}

// recordsEquivalent covers records and class template specializations:
// same name, same template arguments (specializations), same ordered base
// list with matching virtual flags, same ordered field list. A forward
// declaration is equivalent to any record sharing its name and arguments.
// Methods are not part of record identity here; they are compared when a
// method pair itself is queried.
func (c *Context) recordsEquivalent(d0, d1 *ast.Decl) bool {
	if d0.Name != d1.Name {
		return false
	}
	if d0.Kind == ast.DeclTemplateSpec {
		if len(d0.TemplateArgs) != len(d1.TemplateArgs) {
			return false
		}
		for i := range d0.TemplateArgs {
			if !c.typesEquivalent(d0.TemplateArgs[i], d1.TemplateArgs[i]) {
				return false
			}
		}
	}
	if d0.IsForward || d1.IsForward {
		return true
	}

	if len(d0.Bases) != len(d1.Bases) {
		return false
	}
	for i := range d0.Bases {
		if d0.Bases[i].IsVirtual != d1.Bases[i].IsVirtual {
			return false
		}
		if !c.typesEquivalent(d0.Bases[i].Type, d1.Bases[i].Type) {
			return false
		}
	}

	fields0 := c.fieldsOf(c.a, d0)
	fields1 := c.fieldsOf(c.b, d1)
	if len(fields0) != len(fields1) {
		return false
	}
	for i := range fields0 {
		if !c.enqueue(fields0[i], fields1[i]) {
			return false
		}
	}
	return true
}

func (c *Context) fieldsOf(t *ast.Tree, d *ast.Decl) []ast.DeclID {
	var fields []ast.DeclID
	for _, id := range d.Members {
		if t.Decl(id).Kind == ast.DeclField {
			fields = append(fields, id)
		}
	}
	return fields
}

// classTemplatesEquivalent compares a primary class template by name,
// parameter count and pattern record.
func (c *Context) classTemplatesEquivalent(d0, d1 *ast.Decl) bool {
	if d0.Name != d1.Name {
		return false
	}
	if len(d0.TemplateParams) != len(d1.TemplateParams) {
		return false
	}
	return c.enqueue(d0.Pattern, d1.Pattern)
}

// namespacesEquivalent compares namespaces by member population. The
// default policy treats members as an unordered set keyed by name and
// kind; the ordered policy compares them positionally like record fields.
func (c *Context) namespacesEquivalent(d0, d1 *ast.Decl) bool {
	if d0.Name != d1.Name {
		return false
	}
	if len(d0.Members) != len(d1.Members) {
		return false
	}

	if c.policy.OrderedNamespaces {
		for i := range d0.Members {
			if !c.enqueue(d0.Members[i], d1.Members[i]) {
				return false
			}
		}
		return true
	}

	// Greedy name+kind matching. Overload sets with identical names pair
	// up first-come first-served, which is as far as an unordered policy
	// can see without full backtracking.
	claimed := make([]bool, len(d1.Members))
	for _, m0 := range d0.Members {
		decl0 := c.a.Decl(m0)
		found := false
		for j, m1 := range d1.Members {
			if claimed[j] {
				continue
			}
			decl1 := c.b.Decl(m1)
			if decl0.Kind != decl1.Kind || decl0.Name != decl1.Name {
				continue
			}
			claimed[j] = true
			if !c.enqueue(m0, m1) {
				return false
			}
			found = true
			break
		}
		if !found {
			return false
		}
	}
	return true
}

// functionsEquivalent covers free functions, methods, constructors and
// conversion operators. The physical split between an in-class declaration
// and an out-of-line definition carries no weight: both sides are compared
// on whatever node carries the full signature and qualifier set.
func (c *Context) functionsEquivalent(d0, d1 *ast.Decl) bool {
	// A conversion operator's name is a rendered spelling of its target
	// type; identity lives in the type itself, compared below.
	if d0.Kind != ast.DeclConversion && d0.Name != d1.Name {
		return false
	}
	if !c.typesEquivalent(d0.Return, d1.Return) {
		return false
	}
	if len(d0.Params) != len(d1.Params) {
		return false
	}
	for i := range d0.Params {
		if !c.typesEquivalent(d0.Params[i], d1.Params[i]) {
			return false
		}
	}
	if d0.Variadic != d1.Variadic {
		return false
	}
	if !c.exceptionSpecsEquivalent(d0.Except, d1.Except) {
		return false
	}
	if d0.Kind == ast.DeclFunction {
		return true
	}

	// Method-level attributes.
	if d0.IsConst != d1.IsConst ||
		d0.IsStatic != d1.IsStatic ||
		d0.IsVirtual != d1.IsVirtual ||
		d0.IsPure != d1.IsPure ||
		d0.IsDeleted != d1.IsDeleted ||
		d0.IsDefaulted != d1.IsDefaulted ||
		d0.RefQual != d1.RefQual ||
		d0.Access != d1.Access {
		return false
	}

	switch d0.Kind {
	case ast.DeclConstructor:
		return d0.IsExplicit == d1.IsExplicit
	case ast.DeclConversion:
		return c.typesEquivalent(d0.Type, d1.Type)
	}
	return true
}
