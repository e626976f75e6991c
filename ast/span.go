package ast

import "strings"

// writer renders nodes and, when target is set, records where the target's
// own text begins and ends.
type writer struct {
	strings.Builder
	target     Node
	start, end int
	found      bool
	// bare suppresses the prefix of this one node.
	bare Node
}

// postfix is implemented by operators written after their operand: the
// quantifiers and Lazy. Their prefix sits between the operand and the
// operator, and their span covers the operator only.
type postfix interface {
	Node
	postfix()
}

func (w *writer) str(s string) { w.WriteString(s) }

func (w *writer) node(n Node) {
	if _, ok := n.(postfix); !ok {
		w.prefix(n)
	}
	if n == w.target {
		w.start = w.Len()
	}
	n.render(w)
	if n == w.target {
		w.end = w.Len()
		w.found = true
	}
}

func (w *writer) prefix(n Node) {
	if p := n.Prefix(); p != nil && n != w.bare {
		w.node(p)
	}
}

// operator is called by a postfix node once its operand is written: it
// writes the node's prefix and moves the recorded start up to the operator.
func (w *writer) operator(n Node) {
	w.prefix(n)
	if n == w.target {
		w.start = w.Len()
	}
}

func (w *writer) nodes(ns []Node) {
	for _, n := range ns {
		w.node(n)
	}
}

func (w *writer) join(ns []Node, sep string) {
	for i, n := range ns {
		if i > 0 {
			w.str(sep)
		}
		w.node(n)
	}
}

// Span locates the node by rendering its whole tree. The start points just
// past the node's prefix chain, so a prefix comment ends exactly where the
// node it prefixes begins. A quantifier owns only its operator.
func (b *nodeBase) Span() (int, int) {
	w := &writer{target: b.self}
	w.node(Root(b.self))
	if !w.found {
		return 0, 0
	}
	return w.start, w.end - w.start
}
