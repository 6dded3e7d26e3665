package equiv

import "github.com/decleq/decleq/internal/ast"

// typesEquivalent compares two types structurally. Qualifiers must match
// exactly at every nesting level, pointer and reference kinds never mix,
// and named references expand into declaration obligations on the worklist
// instead of being resolved inline.
func (c *Context) typesEquivalent(t0, t1 *ast.Type) bool {
	if t0 == nil || t1 == nil {
		return t0 == nil && t1 == nil
	}
	if t0.Kind != t1.Kind {
		return false
	}
	switch t0.Kind {
	case ast.TypeBuiltin:
		return c.builtinsEquivalent(t0, t1)
	case ast.TypeQualified:
		if t0.Const != t1.Const || t0.Volatile != t1.Volatile {
			return false
		}
		return c.typesEquivalent(t0.Inner, t1.Inner)
	case ast.TypePointer, ast.TypeLValueRef, ast.TypeRValueRef:
		return c.typesEquivalent(t0.Inner, t1.Inner)
	case ast.TypeNamed:
		return c.enqueue(t0.Target, t1.Target)
	default:
		return false
	}
}

// builtinsEquivalent compares builtin kinds and effective signedness.
// Unspecified signedness collapses to signed for every kind except plain
// char, which stays a kind of its own unless the policy collapses it. The
// reference behavior collapsed char only at the top level of a query; this
// engine applies one rule in all contexts.
func (c *Context) builtinsEquivalent(t0, t1 *ast.Type) bool {
	if t0.Builtin != t1.Builtin {
		return false
	}
	return c.effectiveSign(t0) == c.effectiveSign(t1)
}

func (c *Context) effectiveSign(t *ast.Type) ast.Signedness {
	if t.Sign != ast.SignUnspecified {
		return t.Sign
	}
	if t.Builtin == ast.BuiltinChar && !c.policy.CollapseCharSign {
		return ast.SignUnspecified
	}
	return ast.SignSigned
}

// exceptionSpecsEquivalent compares exception specifications by shape.
// Every spelled shape is distinct from every other: absent, throw(),
// throw(...), noexcept, noexcept(true) and noexcept(false) never cross.
// Dynamic throw lists additionally compare their thrown types in order.
func (c *Context) exceptionSpecsEquivalent(e0, e1 ast.ExceptionSpec) bool {
	if e0.Kind != e1.Kind {
		return false
	}
	if e0.Kind != ast.ExceptDynamic {
		return true
	}
	if len(e0.Thrown) != len(e1.Thrown) {
		return false
	}
	for i := range e0.Thrown {
		if !c.typesEquivalent(e0.Thrown[i], e1.Thrown[i]) {
			return false
		}
	}
	return true
}
