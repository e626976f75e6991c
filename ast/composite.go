package ast

// ConcatenationNode matches its children one after another.
type ConcatenationNode struct{ nodeBase }

func NewConcatenation(children ...Node) *ConcatenationNode {
	n := &ConcatenationNode{}
	n.init(n, children)
	return n
}

func (n *ConcatenationNode) clone() Node       { return NewConcatenation() }
func (n *ConcatenationNode) render(w *writer) { w.nodes(n.children) }

// AlternationNode matches any one of its children.
type AlternationNode struct{ nodeBase }

func NewAlternation(children ...Node) *AlternationNode {
	n := &AlternationNode{}
	n.init(n, children)
	return n
}

func (n *AlternationNode) clone() Node       { return NewAlternation() }
func (n *AlternationNode) render(w *writer) { w.join(n.children, "|") }

// CharacterClassNode is a bracketed set: [abc], [^a-z], [a-z-[aeiou]].
// Its first child is the member set; an optional second child is the
// subtracted class.
type CharacterClassNode struct {
	nodeBase
	negated bool
}

func NewCharacterClass(set *CharacterClassCharacterSetNode, negated bool) *CharacterClassNode {
	return NewCharacterClassWithSubtraction(set, nil, negated)
}

func NewCharacterClassWithSubtraction(set *CharacterClassCharacterSetNode, subtraction *CharacterClassNode, negated bool) *CharacterClassNode {
	var children []Node
	if set != nil {
		children = append(children, set)
	}
	if subtraction != nil {
		children = append(children, subtraction)
	}
	n := &CharacterClassNode{negated: negated}
	n.init(n, children)
	return n
}

func (n *CharacterClassNode) Negated() bool { return n.negated }

func (n *CharacterClassNode) CharacterSet() *CharacterClassCharacterSetNode {
	for _, c := range n.children {
		if s, ok := c.(*CharacterClassCharacterSetNode); ok {
			return s
		}
	}
	return nil
}

func (n *CharacterClassNode) Subtraction() *CharacterClassNode {
	for _, c := range n.children {
		if s, ok := c.(*CharacterClassNode); ok {
			return s
		}
	}
	return nil
}

func (n *CharacterClassNode) clone() Node {
	c := &CharacterClassNode{negated: n.negated}
	c.init(c, nil)
	return c
}

func (n *CharacterClassNode) render(w *writer) {
	w.str("[")
	if n.negated {
		w.str("^")
	}
	for _, c := range n.children {
		if _, ok := c.(*CharacterClassNode); ok {
			w.str("-")
		}
		w.node(c)
	}
	w.str("]")
}

// CharacterClassCharacterSetNode holds the members of a character class.
type CharacterClassCharacterSetNode struct{ nodeBase }

func NewCharacterClassCharacterSet(members ...Node) *CharacterClassCharacterSetNode {
	n := &CharacterClassCharacterSetNode{}
	n.init(n, members)
	return n
}

func (n *CharacterClassCharacterSetNode) clone() Node       { return NewCharacterClassCharacterSet() }
func (n *CharacterClassCharacterSetNode) render(w *writer) { w.nodes(n.children) }

// CharacterClassRangeNode is start-end inside a class.
type CharacterClassRangeNode struct{ nodeBase }

func NewCharacterClassRange(start, end Node) *CharacterClassRangeNode {
	n := &CharacterClassRangeNode{}
	n.init(n, []Node{start, end})
	return n
}

func (n *CharacterClassRangeNode) clone() Node { return NewCharacterClassRange(nil, nil) }

func (n *CharacterClassRangeNode) render(w *writer) { w.join(n.children, "-") }
