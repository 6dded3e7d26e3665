package ast

import "fmt"

// DeclID identifies a declaration inside one Tree. IDs are only meaningful
// within their owning tree; comparing IDs across trees is never valid.
type DeclID int32

// NoDecl is the zero value for "no declaration".
const NoDecl DeclID = -1

// Tree is an arena of declarations produced by parsing one translation unit.
// Nodes are appended while the front-end builds the tree and must be treated
// as immutable afterwards.
type Tree struct {
	name  string
	decls []Decl
}

// NewTree creates an empty tree. The name is informational (usually the
// source file name) and shows up in lookup errors.
func NewTree(name string) *Tree {
	return &Tree{name: name}
}

// Name returns the tree's source name.
func (t *Tree) Name() string { return t.name }

// Len returns the number of declarations in the tree.
func (t *Tree) Len() int { return len(t.decls) }

// Add appends a declaration and returns its ID.
func (t *Tree) Add(d Decl) DeclID {
	t.decls = append(t.decls, d)
	return DeclID(len(t.decls) - 1)
}

// Decl returns the declaration for id. A dangling ID is a front-end contract
// violation and panics rather than producing a wrong verdict downstream.
func (t *Tree) Decl(id DeclID) *Decl {
	if id < 0 || int(id) >= len(t.decls) {
		panic(fmt.Sprintf("ast: decl id %d out of range for tree %q (%d decls)", id, t.name, len(t.decls)))
	}
	return &t.decls[id]
}
