package ast

import (
	"fmt"
	"strconv"
)

// Quantifier is implemented by the repetition operators. A quantifier has
// exactly one child, the node being repeated, which renders before the
// operator itself. A quantifier's prefix renders between the two.
type Quantifier interface {
	Node
	quantifier()
}

type quantifierBase struct{ nodeBase }

func (*quantifierBase) quantifier() {}
func (*quantifierBase) postfix()    {}

// Quantified returns the repeated node.
func (q *quantifierBase) Quantified() Node {
	if len(q.children) == 0 {
		return nil
	}
	return q.children[0]
}

func one(child Node) []Node {
	if child == nil {
		return nil
	}
	return []Node{child}
}

// QuantifierStarNode is *.
type QuantifierStarNode struct{ quantifierBase }

func NewQuantifierStar(child Node) *QuantifierStarNode {
	n := &QuantifierStarNode{}
	n.init(n, one(child))
	return n
}

func (n *QuantifierStarNode) clone() Node { return NewQuantifierStar(nil) }
func (n *QuantifierStarNode) render(w *writer) {
	w.nodes(n.children)
	w.operator(n)
	w.str("*")
}

// QuantifierPlusNode is +.
type QuantifierPlusNode struct{ quantifierBase }

func NewQuantifierPlus(child Node) *QuantifierPlusNode {
	n := &QuantifierPlusNode{}
	n.init(n, one(child))
	return n
}

func (n *QuantifierPlusNode) clone() Node { return NewQuantifierPlus(nil) }
func (n *QuantifierPlusNode) render(w *writer) {
	w.nodes(n.children)
	w.operator(n)
	w.str("+")
}

// QuantifierQuestionMarkNode is ?.
type QuantifierQuestionMarkNode struct{ quantifierBase }

func NewQuantifierQuestionMark(child Node) *QuantifierQuestionMarkNode {
	n := &QuantifierQuestionMarkNode{}
	n.init(n, one(child))
	return n
}

func (n *QuantifierQuestionMarkNode) clone() Node { return NewQuantifierQuestionMark(nil) }
func (n *QuantifierQuestionMarkNode) render(w *writer) {
	w.nodes(n.children)
	w.operator(n)
	w.str("?")
}

// count is a repetition count as written in the pattern. The text is kept
// so that {05} renders as {05}.
type count struct {
	value int
	text  string
}

func parseCount(text string) (count, error) {
	if text == "" {
		return count{}, fmt.Errorf("%w: empty quantifier count", ErrInvalidArgument)
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return count{}, fmt.Errorf("%w: quantifier count %q is not a number", ErrInvalidArgument, text)
		}
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return count{}, fmt.Errorf("%w: quantifier count %q: %v", ErrInvalidArgument, text, err)
	}
	return count{value: v, text: text}, nil
}

// QuantifierNNode is {n}.
type QuantifierNNode struct {
	quantifierBase
	n count
}

// NewQuantifierN builds {text}. text must be a run of decimal digits.
func NewQuantifierN(text string, child Node) (*QuantifierNNode, error) {
	c, err := parseCount(text)
	if err != nil {
		return nil, err
	}
	return newQuantifierN(c, child), nil
}

func newQuantifierN(c count, child Node) *QuantifierNNode {
	n := &QuantifierNNode{n: c}
	n.init(n, one(child))
	return n
}

func (n *QuantifierNNode) N() int           { return n.n.value }
func (n *QuantifierNNode) OriginalN() string { return n.n.text }
func (n *QuantifierNNode) clone() Node       { return newQuantifierN(n.n, nil) }
func (n *QuantifierNNode) render(w *writer) {
	w.nodes(n.children)
	w.operator(n)
	w.str("{" + n.n.text + "}")
}

// QuantifierNOrMoreNode is {n,}.
type QuantifierNOrMoreNode struct {
	quantifierBase
	n count
}

func NewQuantifierNOrMore(text string, child Node) (*QuantifierNOrMoreNode, error) {
	c, err := parseCount(text)
	if err != nil {
		return nil, err
	}
	return newQuantifierNOrMore(c, child), nil
}

func newQuantifierNOrMore(c count, child Node) *QuantifierNOrMoreNode {
	n := &QuantifierNOrMoreNode{n: c}
	n.init(n, one(child))
	return n
}

func (n *QuantifierNOrMoreNode) N() int           { return n.n.value }
func (n *QuantifierNOrMoreNode) OriginalN() string { return n.n.text }
func (n *QuantifierNOrMoreNode) clone() Node       { return newQuantifierNOrMore(n.n, nil) }
func (n *QuantifierNOrMoreNode) render(w *writer) {
	w.nodes(n.children)
	w.operator(n)
	w.str("{" + n.n.text + ",}")
}

// QuantifierNMNode is {n,m}. n > m is accepted here; rejecting it is the
// parser's business.
type QuantifierNMNode struct {
	quantifierBase
	n, m count
}

func NewQuantifierNM(nText, mText string, child Node) (*QuantifierNMNode, error) {
	n, err := parseCount(nText)
	if err != nil {
		return nil, err
	}
	m, err := parseCount(mText)
	if err != nil {
		return nil, err
	}
	return newQuantifierNM(n, m, child), nil
}

func newQuantifierNM(n, m count, child Node) *QuantifierNMNode {
	q := &QuantifierNMNode{n: n, m: m}
	q.init(q, one(child))
	return q
}

func (n *QuantifierNMNode) N() int           { return n.n.value }
func (n *QuantifierNMNode) M() int           { return n.m.value }
func (n *QuantifierNMNode) OriginalN() string { return n.n.text }
func (n *QuantifierNMNode) OriginalM() string { return n.m.text }
func (n *QuantifierNMNode) clone() Node       { return newQuantifierNM(n.n, n.m, nil) }
func (n *QuantifierNMNode) render(w *writer) {
	w.nodes(n.children)
	w.operator(n)
	w.str("{" + n.n.text + "," + n.m.text + "}")
}

// LazyNode makes its quantifier child lazy by appending ?. Like a
// quantifier it owns only the ? it adds.
type LazyNode struct{ nodeBase }

func NewLazy(q Quantifier) *LazyNode {
	n := &LazyNode{}
	if q != nil {
		n.init(n, []Node{q})
	} else {
		n.init(n, nil)
	}
	return n
}

func (*LazyNode) postfix()      {}
func (n *LazyNode) clone() Node { return NewLazy(nil) }
func (n *LazyNode) render(w *writer) {
	w.nodes(n.children)
	w.operator(n)
	w.str("?")
}
