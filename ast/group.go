package ast

// Group is implemented by every parenthesised construct.
type Group interface {
	Node
	group()
}

type groupBase struct{ nodeBase }

func (*groupBase) group() {}

// CaptureGroupNode is a numbered capture: (...).
type CaptureGroupNode struct{ groupBase }

func NewCaptureGroup(children ...Node) *CaptureGroupNode {
	n := &CaptureGroupNode{}
	n.init(n, children)
	return n
}

func (n *CaptureGroupNode) clone() Node { return NewCaptureGroup() }
func (n *CaptureGroupNode) render(w *writer) {
	w.str("(")
	w.nodes(n.children)
	w.str(")")
}

// NonCaptureGroupNode is (?:...).
type NonCaptureGroupNode struct{ groupBase }

func NewNonCaptureGroup(children ...Node) *NonCaptureGroupNode {
	n := &NonCaptureGroupNode{}
	n.init(n, children)
	return n
}

func (n *NonCaptureGroupNode) clone() Node { return NewNonCaptureGroup() }
func (n *NonCaptureGroupNode) render(w *writer) {
	w.str("(?:")
	w.nodes(n.children)
	w.str(")")
}

// NamedGroupNode is (?<name>...) or (?'name'...).
type NamedGroupNode struct {
	groupBase
	name      string
	useQuotes bool
}

func NewNamedGroup(name string, useQuotes bool, children ...Node) *NamedGroupNode {
	n := &NamedGroupNode{name: name, useQuotes: useQuotes}
	n.init(n, children)
	return n
}

func (n *NamedGroupNode) Name() string    { return n.name }
func (n *NamedGroupNode) UseQuotes() bool { return n.useQuotes }
func (n *NamedGroupNode) clone() Node     { return NewNamedGroup(n.name, n.useQuotes) }
func (n *NamedGroupNode) render(w *writer) {
	w.str("(?" + quoteName(n.name, n.useQuotes))
	w.nodes(n.children)
	w.str(")")
}

// BalancingGroupNode is (?<name-balanced>...). The name may be empty.
type BalancingGroupNode struct {
	groupBase
	name         string
	balancedName string
	useQuotes    bool
}

func NewBalancingGroup(name, balancedName string, useQuotes bool, children ...Node) *BalancingGroupNode {
	n := &BalancingGroupNode{name: name, balancedName: balancedName, useQuotes: useQuotes}
	n.init(n, children)
	return n
}

func (n *BalancingGroupNode) Name() string         { return n.name }
func (n *BalancingGroupNode) BalancedName() string { return n.balancedName }
func (n *BalancingGroupNode) UseQuotes() bool      { return n.useQuotes }

func (n *BalancingGroupNode) clone() Node {
	return NewBalancingGroup(n.name, n.balancedName, n.useQuotes)
}

func (n *BalancingGroupNode) render(w *writer) {
	w.str("(?" + quoteName(n.name+"-"+n.balancedName, n.useQuotes))
	w.nodes(n.children)
	w.str(")")
}

func quoteName(name string, useQuotes bool) string {
	if useQuotes {
		return "'" + name + "'"
	}
	return "<" + name + ">"
}

// AtomicGroupNode is (?>...).
type AtomicGroupNode struct{ groupBase }

func NewAtomicGroup(children ...Node) *AtomicGroupNode {
	n := &AtomicGroupNode{}
	n.init(n, children)
	return n
}

func (n *AtomicGroupNode) clone() Node { return NewAtomicGroup() }
func (n *AtomicGroupNode) render(w *writer) {
	w.str("(?>")
	w.nodes(n.children)
	w.str(")")
}

// LookaroundGroupNode is one of (?=...), (?!...), (?<=...), (?<!...).
type LookaroundGroupNode struct {
	groupBase
	lookahead bool
	positive  bool
}

func NewLookaroundGroup(lookahead, positive bool, children ...Node) *LookaroundGroupNode {
	n := &LookaroundGroupNode{lookahead: lookahead, positive: positive}
	n.init(n, children)
	return n
}

func (n *LookaroundGroupNode) Lookahead() bool { return n.lookahead }
func (n *LookaroundGroupNode) Positive() bool  { return n.positive }

func (n *LookaroundGroupNode) clone() Node {
	return NewLookaroundGroup(n.lookahead, n.positive)
}

func (n *LookaroundGroupNode) render(w *writer) {
	w.str("(?")
	if !n.lookahead {
		w.str("<")
	}
	if n.positive {
		w.str("=")
	} else {
		w.str("!")
	}
	w.nodes(n.children)
	w.str(")")
}

// ConditionalGroupNode is (?(condition)yes|no). The first child is the
// condition group, the second the branch taken on each outcome.
type ConditionalGroupNode struct{ groupBase }

func NewConditionalGroup(condition Group, body Node) *ConditionalGroupNode {
	var children []Node
	if condition != nil {
		children = append(children, condition)
	}
	if body != nil {
		children = append(children, body)
	}
	n := &ConditionalGroupNode{}
	n.init(n, children)
	return n
}

func (n *ConditionalGroupNode) clone() Node { return NewConditionalGroup(nil, nil) }
func (n *ConditionalGroupNode) render(w *writer) {
	w.str("(?")
	w.nodes(n.children)
	w.str(")")
}

// Condition returns the condition group, if still present.
func (n *ConditionalGroupNode) Condition() Group {
	if len(n.children) == 0 {
		return nil
	}
	g, _ := n.children[0].(Group)
	return g
}

// ModeModifierGroupNode sets options inline: (?i) applies to the rest of the
// enclosing group, (?i:...) only to its own children.
type ModeModifierGroupNode struct {
	groupBase
	modifiers string
}

func NewModeModifierGroup(modifiers string, children ...Node) *ModeModifierGroupNode {
	n := &ModeModifierGroupNode{modifiers: modifiers}
	n.init(n, children)
	return n
}

func (n *ModeModifierGroupNode) Modifiers() string { return n.modifiers }
func (n *ModeModifierGroupNode) clone() Node       { return NewModeModifierGroup(n.modifiers) }
func (n *ModeModifierGroupNode) render(w *writer) {
	w.str("(?" + n.modifiers)
	if len(n.children) > 0 {
		w.str(":")
		w.nodes(n.children)
	}
	w.str(")")
}

// CommentNode is an inline comment, (?#...). It has no children and is
// mostly found as the prefix of another node.
type CommentNode struct {
	groupBase
	comment string
	owner   Node
}

func NewComment(comment string) *CommentNode {
	n := &CommentNode{comment: comment}
	n.init(n, nil)
	return n
}

func (n *CommentNode) Comment() string   { return n.comment }
func (n *CommentNode) clone() Node       { return NewComment(n.comment) }
func (n *CommentNode) render(w *writer) { w.str("(?#" + n.comment + ")") }

// PrefixOf returns the node this comment is the prefix of.
func (n *CommentNode) PrefixOf() Node { return n.owner }
