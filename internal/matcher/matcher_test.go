package matcher

import (
	"strings"
	"testing"

	"github.com/decleq/decleq/internal/ast"
)

func buildTree(t *testing.T) *ast.Tree {
	t.Helper()
	tree := ast.NewTree("test.cc")
	intType := ast.NewBuiltin(ast.BuiltinInt, ast.SignUnspecified)

	tree.Add(ast.Decl{Kind: ast.DeclVariable, Name: "x", Type: intType})
	tree.Add(ast.Decl{Kind: ast.DeclFunction, Name: "foo", Return: intType})
	tree.Add(ast.Decl{Kind: ast.DeclFunction, Name: "foo", Return: intType, IsDefinition: true})
	tree.Add(ast.Decl{Kind: ast.DeclRecord, Name: "A", IsForward: true})
	tree.Add(ast.Decl{Kind: ast.DeclRecord, Name: "B"})
	return tree
}

func TestFirstMatcher_Match_ByKindAndName(t *testing.T) {
	tree := buildTree(t)
	id, err := NewFirstMatcher().Match(tree, Query{Kind: ast.DeclFunction, Name: "foo"})
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if tree.Decl(id).IsDefinition {
		t.Fatalf("first matcher should return the prototype, got the definition")
	}
}

func TestLastMatcher_Match_ByKindAndName(t *testing.T) {
	tree := buildTree(t)
	id, err := NewLastMatcher().Match(tree, Query{Kind: ast.DeclFunction, Name: "foo"})
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if !tree.Decl(id).IsDefinition {
		t.Fatalf("last matcher should return the definition")
	}
}

func TestFirstMatcher_Match_EmptyNameMatchesAnyOfKind(t *testing.T) {
	tree := buildTree(t)
	id, err := NewFirstMatcher().Match(tree, Query{Kind: ast.DeclRecord})
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if tree.Decl(id).Name != "A" {
		t.Fatalf("want first record A, got %q", tree.Decl(id).Name)
	}
}

func TestFirstMatcher_Match_DefinitionOnly(t *testing.T) {
	tree := buildTree(t)

	id, err := NewFirstMatcher().Match(tree, Query{Kind: ast.DeclFunction, Name: "foo", DefinitionOnly: true})
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if !tree.Decl(id).IsDefinition {
		t.Fatalf("definition-only query returned a prototype")
	}

	// Forward records are filtered out the same way.
	id, err = NewFirstMatcher().Match(tree, Query{Kind: ast.DeclRecord, DefinitionOnly: true})
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if tree.Decl(id).Name != "B" {
		t.Fatalf("want record B, got %q", tree.Decl(id).Name)
	}
}

func TestMatcher_Match_NotFound(t *testing.T) {
	tree := buildTree(t)

	_, err := NewFirstMatcher().Match(tree, Query{Kind: ast.DeclNamespace, Name: "NS"})
	if err == nil {
		t.Fatalf("want not-found error")
	}
	if !strings.Contains(err.Error(), "NS") || !strings.Contains(err.Error(), "test.cc") {
		t.Fatalf("error should name the query and the tree, got %v", err)
	}

	_, err = NewLastMatcher().Match(tree, Query{Kind: ast.DeclConstructor})
	if err == nil {
		t.Fatalf("want not-found error for kind-only query")
	}
}
