// Package equiv implements structural equivalence between declarations from
// two independently parsed trees. The comparison is driven by an explicit
// pair worklist with an assumed-equivalent set, so mutually recursive and
// self-referential hierarchies terminate without language-level recursion
// through declarations.
package equiv

import (
	"github.com/decleq/decleq/internal/ast"
)

// Policy holds the two equivalence knobs that the reference behavior left
// unresolved. The defaults pick the consistent side of each.
type Policy struct {
	// CollapseCharSign treats plain char as equivalent to signed char in
	// every context. The default keeps them distinct in every context.
	CollapseCharSign bool

	// OrderedNamespaces makes namespace member comparison order-sensitive
	// like record fields. The default matches members by name and kind
	// regardless of position.
	OrderedNamespaces bool
}

// declPair keys the memo and worklist: one ID per side, never mixed.
type declPair struct {
	a ast.DeclID
	b ast.DeclID
}

// Context is a comparison session over one pair of trees. It may be reused
// for several queries against the same trees; the negative memo carries
// over, the per-query bookkeeping does not. A Context is single-owner and
// not safe for concurrent use.
type Context struct {
	a      *ast.Tree
	b      *ast.Tree
	policy Policy

	// nonEquivalent caches negative verdicts for the session.
	nonEquivalent map[declPair]struct{}

	// assumed holds every pair enqueued during the current query. A pair
	// seen here again is provisionally equivalent; the enclosing
	// comparison's other obligations catch real differences.
	assumed map[declPair]struct{}

	queue []declPair
}

// NewContext creates a session comparing declarations of tree a against
// declarations of tree b.
func NewContext(a, b *ast.Tree, policy Policy) *Context {
	return &Context{
		a:             a,
		b:             b,
		policy:        policy,
		nonEquivalent: make(map[declPair]struct{}),
	}
}

// DeclsEquivalent reports whether d0 (in tree a) and d1 (in tree b) denote
// the same structural entity.
func (c *Context) DeclsEquivalent(d0, d1 ast.DeclID) bool {
	c.assumed = make(map[declPair]struct{})
	c.queue = c.queue[:0]
	if !c.enqueue(d0, d1) {
		return false
	}
	return c.run()
}

// TypesEquivalent reports whether two types, each belonging to its side's
// tree, are structurally equivalent. Named references expand through the
// same worklist as declaration queries.
func (c *Context) TypesEquivalent(t0, t1 *ast.Type) bool {
	c.assumed = make(map[declPair]struct{})
	c.queue = c.queue[:0]
	if !c.typesEquivalent(t0, t1) {
		return false
	}
	return c.run()
}

// enqueue registers a pair obligation. It reports false when the pair is
// already known non-equivalent, true otherwise. Pairs already assumed in
// this query are not re-queued; that is the cycle breaker.
func (c *Context) enqueue(d0, d1 ast.DeclID) bool {
	key := declPair{a: d0, b: d1}
	if _, bad := c.nonEquivalent[key]; bad {
		return false
	}
	if _, seen := c.assumed[key]; seen {
		return true
	}
	c.assumed[key] = struct{}{}
	c.queue = append(c.queue, key)
	return true
}

// run drains the worklist. The first pair found non-equivalent is recorded
// and fails the whole query.
func (c *Context) run() bool {
	for len(c.queue) > 0 {
		pair := c.queue[0]
		c.queue = c.queue[1:]
		if !c.checkDecls(pair) {
			c.nonEquivalent[pair] = struct{}{}
			return false
		}
	}
	return true
}
