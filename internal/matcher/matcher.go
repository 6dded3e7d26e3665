package matcher

import (
	"fmt"

	"github.com/decleq/decleq/internal/ast"
)

// Query selects a declaration inside one tree. An empty Name matches any
// declaration of the kind (useful for constructors and conversion
// operators, which are usually located by kind alone).
type Query struct {
	Kind           ast.DeclKind
	Name           string
	DefinitionOnly bool
}

// DeclMatcher locates one declaration inside a tree. First-match or
// last-match behavior is the matcher's concern, never the engine's.
type DeclMatcher interface {
	Match(t *ast.Tree, q Query) (ast.DeclID, error)
}

type firstMatcherImpl struct{}

type lastMatcherImpl struct{}

// NewFirstMatcher returns a matcher yielding the first declaration in tree
// order that satisfies the query.
func NewFirstMatcher() DeclMatcher {
	return &firstMatcherImpl{}
}

// NewLastMatcher returns a matcher yielding the last satisfying declaration.
func NewLastMatcher() DeclMatcher {
	return &lastMatcherImpl{}
}

func (m *firstMatcherImpl) Match(t *ast.Tree, q Query) (ast.DeclID, error) {
	for id := 0; id < t.Len(); id++ {
		if matches(t.Decl(ast.DeclID(id)), q) {
			return ast.DeclID(id), nil
		}
	}
	return ast.NoDecl, notFound(t, q)
}

func (m *lastMatcherImpl) Match(t *ast.Tree, q Query) (ast.DeclID, error) {
	for id := t.Len() - 1; id >= 0; id-- {
		if matches(t.Decl(ast.DeclID(id)), q) {
			return ast.DeclID(id), nil
		}
	}
	return ast.NoDecl, notFound(t, q)
}

func matches(d *ast.Decl, q Query) bool {
	if d.Kind != q.Kind {
		return false
	}
	if q.Name != "" && d.Name != q.Name {
		return false
	}
	if q.DefinitionOnly && !isDefinition(d) {
		return false
	}
	return true
}

// isDefinition mirrors the front-end notion of "this node defines the
// entity": a body for function-like declarations, a complete type for
// records.
func isDefinition(d *ast.Decl) bool {
	switch d.Kind {
	case ast.DeclRecord, ast.DeclTemplateSpec:
		return !d.IsForward
	case ast.DeclFunction, ast.DeclMethod, ast.DeclConstructor, ast.DeclConversion:
		return d.IsDefinition
	default:
		return true
	}
}

func notFound(t *ast.Tree, q Query) error {
	if q.Name == "" {
		return fmt.Errorf("no %s declaration found in %s", q.Kind, t.Name())
	}
	return fmt.Errorf("%s %q not found in %s", q.Kind, q.Name, t.Name())
}
