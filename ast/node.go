// Package ast models a .NET-dialect regular expression as a tree of nodes
// that render back to exactly the pattern text they were parsed from.
//
// Trees are never edited in place. AddNode, ReplaceNode and RemoveNode
// rebuild the affected path and return a fresh tree, so nodes handed out
// earlier keep describing the tree they came from.
package ast

import (
	"errors"
	"slices"
)

// ErrInvalidArgument reports misuse of a node constructor.
var ErrInvalidArgument = errors.New("invalid argument")

// Node is an element of a pattern tree.
//
// The set of implementations is closed: every concrete type lives in this
// package and is created through its New* constructor.
type Node interface {
	// String renders the node, its prefix and all descendants.
	String() string

	// ChildNodes returns the children in order. The slice is a copy.
	ChildNodes() []Node

	// Parent is nil for a root and for a node used as a prefix.
	Parent() Node

	Prefix() *CommentNode
	SetPrefix(p *CommentNode)

	// Span returns the byte offset and length of the node inside the
	// rendering of its whole tree. The prefix is not part of the span.
	Span() (start, length int)

	AddNode(n Node, returnRoot bool) Node
	ReplaceNode(old, n Node, returnRoot bool) Node
	RemoveNode(old Node, returnRoot bool) Node

	base() *nodeBase
	// clone returns a childless, prefixless node with the same own state.
	clone() Node
	// render writes the node's own text; the prefix is written by the caller.
	render(w *writer)
}

type nodeBase struct {
	self     Node
	parent   Node
	children []Node
	prefix   *CommentNode
}

func (b *nodeBase) init(self Node, children []Node) {
	b.self = self
	for _, c := range children {
		b.adopt(c)
	}
}

func (b *nodeBase) base() *nodeBase { return b }

// attach appends c, which must be a node nobody else owns.
func (b *nodeBase) attach(c Node) {
	c.base().parent = b.self
	b.children = append(b.children, c)
}

// adopt attaches c by identity unless it already belongs to another tree,
// in which case a copy is attached instead.
func (b *nodeBase) adopt(c Node) {
	if c == nil {
		return
	}
	if c.Parent() != nil || isOwnedPrefix(c) {
		c = Copy(c)
	}
	b.attach(c)
}

func isOwnedPrefix(n Node) bool {
	c, ok := n.(*CommentNode)
	return ok && c.owner != nil
}

func (b *nodeBase) ChildNodes() []Node { return slices.Clone(b.children) }

func (b *nodeBase) Parent() Node { return b.parent }

func (b *nodeBase) Prefix() *CommentNode { return b.prefix }

// SetPrefix installs p as the comment rendered before this node. A comment
// that already prefixes another node is copied first.
func (b *nodeBase) SetPrefix(p *CommentNode) {
	if b.prefix != nil && b.prefix.owner == b.self {
		b.prefix.owner = nil
	}
	if p != nil && ((p.owner != nil && p.owner != b.self) || p.parent != nil) {
		p = copyPrefix(p)
	}
	if p != nil {
		p.owner = b.self
	}
	b.prefix = p
}

func (b *nodeBase) String() string {
	w := &writer{}
	w.node(b.self)
	return w.String()
}

// AddNode returns a copy of this node with n appended as its last child.
// n itself becomes part of the new tree. With returnRoot set the edit is
// carried up through every ancestor and the new root is returned.
func (b *nodeBase) AddNode(n Node, returnRoot bool) Node {
	parent := b.parent
	c := Copy(b.self)
	c.base().adopt(b.outside(n))
	return propagate(b.self, parent, c, returnRoot)
}

// ReplaceNode returns a copy of this subtree in which old is replaced by n.
func (b *nodeBase) ReplaceNode(old, n Node, returnRoot bool) Node {
	parent := b.parent
	c := shell(b.self)
	cb := c.base()
	for _, child := range b.children {
		if child == old {
			cb.adopt(b.outside(n))
			continue
		}
		cb.attach(child.ReplaceNode(old, n, false))
	}
	return propagate(b.self, parent, c, returnRoot)
}

// RemoveNode returns a copy of this subtree without old. A prefix carried by
// old moves to the following sibling, or onto an Empty node left in old's
// place when there is no following sibling.
func (b *nodeBase) RemoveNode(old Node, returnRoot bool) Node {
	parent := b.parent
	c := shell(b.self)
	cb := c.base()
	var orphan *CommentNode
	for _, child := range b.children {
		if child == old {
			if p := child.Prefix(); p != nil {
				orphan = copyPrefix(p)
			}
			continue
		}
		next := child.RemoveNode(old, false)
		if orphan != nil {
			graftPrefix(next, orphan)
			orphan = nil
		}
		cb.attach(next)
	}
	if orphan != nil {
		e := NewEmpty()
		e.SetPrefix(orphan)
		cb.attach(e)
	}
	return propagate(b.self, parent, c, returnRoot)
}

// propagate replaces self by c in parent and so on up to the root. parent
// is read before the edit so that nothing attached during it is followed.
func propagate(self, parent, c Node, returnRoot bool) Node {
	if returnRoot && parent != nil {
		return parent.ReplaceNode(self, c, true)
	}
	return c
}

// outside returns n, or a copy of it when n is the root of b's own tree.
// Any other node of the tree has a parent and is copied by adopt.
func (b *nodeBase) outside(n Node) Node {
	if n != nil && n == Root(b.self) {
		return Copy(n)
	}
	return n
}

// graftPrefix hangs p below the innermost link of the prefix chain of the
// node n's text starts with, so p renders first.
func graftPrefix(n Node, p *CommentNode) {
	// an operator's prefix renders after its operand; go to the leading node
	for {
		if _, ok := n.(postfix); !ok || len(n.base().children) == 0 {
			break
		}
		n = n.base().children[0]
	}
	if n.Prefix() == nil {
		n.SetPrefix(p)
		return
	}
	last := n.Prefix()
	for last.Prefix() != nil {
		last = last.Prefix()
	}
	last.SetPrefix(p)
}

func copyPrefix(p *CommentNode) *CommentNode {
	if p == nil {
		return nil
	}
	c := NewComment(p.comment)
	c.SetPrefix(copyPrefix(p.prefix))
	return c
}

// shell copies n's own state and prefix chain but none of its children.
func shell(n Node) Node {
	c := n.clone()
	c.SetPrefix(copyPrefix(n.Prefix()))
	return c
}

// Copy returns a deep copy of n with no parent. No node of the result is
// shared with n's tree, prefixes included.
func Copy(n Node) Node {
	c := shell(n)
	cb := c.base()
	for _, child := range n.base().children {
		cb.attach(Copy(child))
	}
	return c
}

// Root returns the top of the tree n belongs to. For a prefix comment the
// walk continues through the node it prefixes.
func Root(n Node) Node {
	for {
		if p := n.Parent(); p != nil {
			n = p
			continue
		}
		if c, ok := n.(*CommentNode); ok && c.owner != nil {
			n = c.owner
			continue
		}
		return n
	}
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the node just visited. Prefixes are not visited.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.base().children {
		Walk(c, fn)
	}
}

// At follows a path of child indexes down from n.
func At(n Node, path ...int) (Node, bool) {
	for _, i := range path {
		children := n.base().children
		if i < 0 || i >= len(children) {
			return nil, false
		}
		n = children[i]
	}
	return n, true
}
