package ast

// Anchor is implemented by the zero-width position assertions.
type Anchor interface {
	Node
	anchor()
}

type anchorBase struct{ nodeBase }

func (*anchorBase) anchor() {}

// StartOfStringNode is \A.
type StartOfStringNode struct{ anchorBase }

func NewStartOfString() *StartOfStringNode {
	n := &StartOfStringNode{}
	n.init(n, nil)
	return n
}

func (n *StartOfStringNode) clone() Node       { return NewStartOfString() }
func (n *StartOfStringNode) render(w *writer) { w.str(`\A`) }

// EndOfStringNode is \z.
type EndOfStringNode struct{ anchorBase }

func NewEndOfString() *EndOfStringNode {
	n := &EndOfStringNode{}
	n.init(n, nil)
	return n
}

func (n *EndOfStringNode) clone() Node       { return NewEndOfString() }
func (n *EndOfStringNode) render(w *writer) { w.str(`\z`) }

// EndOfStringZNode is \Z: end of input or before a final newline.
type EndOfStringZNode struct{ anchorBase }

func NewEndOfStringZ() *EndOfStringZNode {
	n := &EndOfStringZNode{}
	n.init(n, nil)
	return n
}

func (n *EndOfStringZNode) clone() Node       { return NewEndOfStringZ() }
func (n *EndOfStringZNode) render(w *writer) { w.str(`\Z`) }

// StartOfLineNode is ^.
type StartOfLineNode struct{ anchorBase }

func NewStartOfLine() *StartOfLineNode {
	n := &StartOfLineNode{}
	n.init(n, nil)
	return n
}

func (n *StartOfLineNode) clone() Node       { return NewStartOfLine() }
func (n *StartOfLineNode) render(w *writer) { w.str("^") }

// EndOfLineNode is $.
type EndOfLineNode struct{ anchorBase }

func NewEndOfLine() *EndOfLineNode {
	n := &EndOfLineNode{}
	n.init(n, nil)
	return n
}

func (n *EndOfLineNode) clone() Node       { return NewEndOfLine() }
func (n *EndOfLineNode) render(w *writer) { w.str("$") }

// WordBoundaryNode is \b outside a character class.
type WordBoundaryNode struct{ anchorBase }

func NewWordBoundary() *WordBoundaryNode {
	n := &WordBoundaryNode{}
	n.init(n, nil)
	return n
}

func (n *WordBoundaryNode) clone() Node       { return NewWordBoundary() }
func (n *WordBoundaryNode) render(w *writer) { w.str(`\b`) }

// NonWordBoundaryNode is \B.
type NonWordBoundaryNode struct{ anchorBase }

func NewNonWordBoundary() *NonWordBoundaryNode {
	n := &NonWordBoundaryNode{}
	n.init(n, nil)
	return n
}

func (n *NonWordBoundaryNode) clone() Node       { return NewNonWordBoundary() }
func (n *NonWordBoundaryNode) render(w *writer) { w.str(`\B`) }

// ContiguousMatchNode is \G.
type ContiguousMatchNode struct{ anchorBase }

func NewContiguousMatch() *ContiguousMatchNode {
	n := &ContiguousMatchNode{}
	n.init(n, nil)
	return n
}

func (n *ContiguousMatchNode) clone() Node       { return NewContiguousMatch() }
func (n *ContiguousMatchNode) render(w *writer) { w.str(`\G`) }
