package ast

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// CharacterNode is a single literal rune.
type CharacterNode struct {
	nodeBase
	ch rune
}

func NewCharacter(ch rune) *CharacterNode {
	n := &CharacterNode{ch: ch}
	n.init(n, nil)
	return n
}

func (n *CharacterNode) Char() rune        { return n.ch }
func (n *CharacterNode) clone() Node       { return NewCharacter(n.ch) }
func (n *CharacterNode) render(w *writer) { w.str(string(n.ch)) }

// AnyCharacterNode is the dot.
type AnyCharacterNode struct{ nodeBase }

func NewAnyCharacter() *AnyCharacterNode {
	n := &AnyCharacterNode{}
	n.init(n, nil)
	return n
}

func (n *AnyCharacterNode) clone() Node       { return NewAnyCharacter() }
func (n *AnyCharacterNode) render(w *writer) { w.str(".") }

// EmptyNode renders nothing. It holds a place in the tree, usually to carry
// a prefix comment that has no following node.
type EmptyNode struct{ nodeBase }

func NewEmpty() *EmptyNode {
	n := &EmptyNode{}
	n.init(n, nil)
	return n
}

func (n *EmptyNode) clone() Node    { return NewEmpty() }
func (n *EmptyNode) render(*writer) {}

// EscapeNode is a backslash followed by a single rune, e.g. \. or \n.
type EscapeNode struct {
	nodeBase
	escape string
}

func NewEscape(escape string) *EscapeNode {
	n := &EscapeNode{escape: escape}
	n.init(n, nil)
	return n
}

func (n *EscapeNode) Escape() string    { return n.escape }
func (n *EscapeNode) clone() Node       { return NewEscape(n.escape) }
func (n *EscapeNode) render(w *writer) { w.str(`\` + n.escape) }

var namedEscapes = map[rune]rune{
	'a': '\a',
	'b': '\b',
	'e': 0x1B,
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'v': '\v',
}

// Char returns the character the escape stands for. Letters with a
// conventional meaning (\n, \t, \e ...) map to their control character;
// anything else stands for itself.
func (n *EscapeNode) Char() rune {
	r, _ := utf8.DecodeRuneInString(n.escape)
	if c, ok := namedEscapes[r]; ok {
		return c
	}
	return r
}

// HexEscapeNode is \xHH.
type HexEscapeNode struct {
	nodeBase
	hex string
}

func NewHexEscape(hex string) *HexEscapeNode {
	n := &HexEscapeNode{hex: hex}
	n.init(n, nil)
	return n
}

func (n *HexEscapeNode) Hex() string       { return n.hex }
func (n *HexEscapeNode) Char() rune        { return parseRune(n.hex, 16) }
func (n *HexEscapeNode) clone() Node       { return NewHexEscape(n.hex) }
func (n *HexEscapeNode) render(w *writer) { w.str(`\x` + n.hex) }

// UnicodeEscapeNode is \uHHHH.
type UnicodeEscapeNode struct {
	nodeBase
	hex string
}

func NewUnicodeEscape(hex string) *UnicodeEscapeNode {
	n := &UnicodeEscapeNode{hex: hex}
	n.init(n, nil)
	return n
}

func (n *UnicodeEscapeNode) Hex() string       { return n.hex }
func (n *UnicodeEscapeNode) Char() rune        { return parseRune(n.hex, 16) }
func (n *UnicodeEscapeNode) clone() Node       { return NewUnicodeEscape(n.hex) }
func (n *UnicodeEscapeNode) render(w *writer) { w.str(`\u` + n.hex) }

// OctalEscapeNode is a backslash followed by octal digits, e.g. \012.
type OctalEscapeNode struct {
	nodeBase
	octal string
}

func NewOctalEscape(octal string) *OctalEscapeNode {
	n := &OctalEscapeNode{octal: octal}
	n.init(n, nil)
	return n
}

func (n *OctalEscapeNode) Octal() string { return n.octal }

// Char wraps values above 255 into the 8-bit range.
func (n *OctalEscapeNode) Char() rune        { return parseRune(n.octal, 8) & 0xFF }
func (n *OctalEscapeNode) clone() Node       { return NewOctalEscape(n.octal) }
func (n *OctalEscapeNode) render(w *writer) { w.str(`\` + n.octal) }

// ControlCharacterEscapeNode is \cX.
type ControlCharacterEscapeNode struct {
	nodeBase
	letter rune
}

func NewControlCharacterEscape(letter rune) *ControlCharacterEscapeNode {
	n := &ControlCharacterEscapeNode{letter: letter}
	n.init(n, nil)
	return n
}

func (n *ControlCharacterEscapeNode) Letter() rune { return n.letter }

// Char maps either case of the letter onto the control range: \cA and \ca
// are both 0x01.
func (n *ControlCharacterEscapeNode) Char() rune {
	return unicode.ToUpper(n.letter) - '@'
}

func (n *ControlCharacterEscapeNode) clone() Node { return NewControlCharacterEscape(n.letter) }
func (n *ControlCharacterEscapeNode) render(w *writer) {
	w.str(`\c` + string(n.letter))
}

func parseRune(digits string, base int) rune {
	v, err := strconv.ParseInt(digits, base, 32)
	if err != nil {
		return utf8.RuneError
	}
	return rune(v)
}

// BackreferenceNode refers to a capture group by number, e.g. \1.
type BackreferenceNode struct {
	nodeBase
	group int
}

func NewBackreference(group int) *BackreferenceNode {
	n := &BackreferenceNode{group: group}
	n.init(n, nil)
	return n
}

func (n *BackreferenceNode) Group() int        { return n.group }
func (n *BackreferenceNode) clone() Node       { return NewBackreference(n.group) }
func (n *BackreferenceNode) render(w *writer) { w.str(`\` + strconv.Itoa(n.group)) }

// NamedReferenceNode refers to a capture group by name: \k<name>, \k'name',
// or without the k as \<name> and \'name'.
type NamedReferenceNode struct {
	nodeBase
	name      string
	useQuotes bool
	useK      bool
}

func NewNamedReference(name string, useQuotes, useK bool) *NamedReferenceNode {
	n := &NamedReferenceNode{name: name, useQuotes: useQuotes, useK: useK}
	n.init(n, nil)
	return n
}

func (n *NamedReferenceNode) Name() string    { return n.name }
func (n *NamedReferenceNode) UseQuotes() bool { return n.useQuotes }
func (n *NamedReferenceNode) UseK() bool      { return n.useK }

func (n *NamedReferenceNode) clone() Node {
	return NewNamedReference(n.name, n.useQuotes, n.useK)
}

func (n *NamedReferenceNode) render(w *writer) {
	w.str(`\`)
	if n.useK {
		w.str("k")
	}
	if n.useQuotes {
		w.str("'" + n.name + "'")
	} else {
		w.str("<" + n.name + ">")
	}
}

// UnicodeCategoryNode is \p{Name} or, negated, \P{Name}.
type UnicodeCategoryNode struct {
	nodeBase
	category string
	negated  bool
}

func NewUnicodeCategory(category string, negated bool) *UnicodeCategoryNode {
	n := &UnicodeCategoryNode{category: category, negated: negated}
	n.init(n, nil)
	return n
}

func (n *UnicodeCategoryNode) Category() string { return n.category }
func (n *UnicodeCategoryNode) Negated() bool    { return n.negated }

func (n *UnicodeCategoryNode) clone() Node {
	return NewUnicodeCategory(n.category, n.negated)
}

func (n *UnicodeCategoryNode) render(w *writer) {
	p := 'p'
	if n.negated {
		p = 'P'
	}
	w.str(fmt.Sprintf(`\%c{%s}`, p, n.category))
}

// CharacterClassShorthandNode is one of \d \D \w \W \s \S.
type CharacterClassShorthandNode struct {
	nodeBase
	shorthand rune
}

func NewCharacterClassShorthand(shorthand rune) *CharacterClassShorthandNode {
	n := &CharacterClassShorthandNode{shorthand: shorthand}
	n.init(n, nil)
	return n
}

func (n *CharacterClassShorthandNode) Shorthand() rune { return n.shorthand }

func (n *CharacterClassShorthandNode) clone() Node {
	return NewCharacterClassShorthand(n.shorthand)
}

func (n *CharacterClassShorthandNode) render(w *writer) {
	w.str(`\` + string(n.shorthand))
}
