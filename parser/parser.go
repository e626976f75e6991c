// Package parser turns a .NET-dialect regular expression into an ast tree
// whose String() reproduces the pattern byte for byte.
package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"regexast/ast"
	"regexast/internal/escape"
	"regexast/internal/quantifier"
)

// Parser scans one pattern. It is not safe for concurrent use; the trees it
// returns are.
type Parser struct {
	pattern  string
	pos      int
	validate func(pattern string) error
	options  regexp2.RegexOptions

	// captures holds the group numbers defined by the pattern. It is nil on
	// the first pass, which reads every \NN as a backreference.
	captures  map[int]bool
	ambiguous bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithValidator replaces the syntax check run before tokenizing.
func WithValidator(fn func(pattern string) error) Option {
	return func(p *Parser) { p.validate = fn }
}

// WithoutValidation skips the syntax check. Malformed input is then
// reported by the parser's own error kinds.
func WithoutValidation() Option {
	return func(p *Parser) { p.validate = nil }
}

// WithOptions sets the engine options the default check compiles with.
func WithOptions(opts regexp2.RegexOptions) Option {
	return func(p *Parser) { p.options = opts }
}

// New returns a parser for pattern. By default the pattern is checked with
// regexp2 before it is tokenized.
func New(pattern string, opts ...Option) *Parser {
	p := &Parser{pattern: pattern, options: regexp2.None}
	p.validate = func(s string) error { return Validate(s, p.options) }
	for _, o := range opts {
		o(p)
	}
	return p
}

// Validate reports whether the .NET regex engine accepts pattern.
func Validate(pattern string, opts regexp2.RegexOptions) error {
	_, err := regexp2.Compile(pattern, opts)
	return err
}

// Parse is shorthand for New(pattern, opts...).Parse().
func Parse(pattern string, opts ...Option) (ast.Node, error) {
	return New(pattern, opts...).Parse()
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string, opts ...Option) ast.Node {
	n, err := Parse(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return n
}

// Parse returns the tree for the whole pattern: an Alternation of
// Concatenations when the top level has a |, a single Concatenation
// otherwise, and an Empty node for the empty pattern.
func (p *Parser) Parse() (ast.Node, error) {
	if p.validate != nil {
		if err := p.validate(p.pattern); err != nil {
			return nil, rejected(err)
		}
	}
	p.captures, p.ambiguous = nil, false
	root, err := p.parsePattern()
	if err != nil || !p.ambiguous {
		return root, err
	}
	// \NN with N > 9 is a backreference only if that group exists
	p.captures = captureSlots(root)
	return p.parsePattern()
}

func (p *Parser) parsePattern() (ast.Node, error) {
	p.pos = 0
	root, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if p.more() {
		// only an unmatched ) stops the top level early
		return nil, newError(InsufficientOpeningParentheses, p.pos)
	}
	if c, ok := root.(*ast.ConcatenationNode); ok && len(c.ChildNodes()) == 0 {
		return ast.NewEmpty(), nil
	}
	return root, nil
}

func (p *Parser) parseAlternation() (ast.Node, error) {
	var branches []ast.Node
	for {
		concat, err := p.parseConcatenation()
		if err != nil {
			return nil, err
		}
		branches = append(branches, concat)
		if !p.accept('|') {
			break
		}
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return ast.NewAlternation(branches...), nil
}

// parseConcatenation reads items up to the next | or ). Inline comments
// become the prefix of the atom after them. Comments followed by a
// quantifier become the quantifier's prefix, rendered before its operator.
// Trailing ones ride on an Empty node.
func (p *Parser) parseConcatenation() (*ast.ConcatenationNode, error) {
	var items []ast.Node
	var pending *ast.CommentNode
	for p.more() && p.peek() != '|' && p.peek() != ')' {
		if strings.HasPrefix(p.rest(), "(?#") {
			c, err := p.parseComment()
			if err != nil {
				return nil, err
			}
			if pending != nil {
				c.SetPrefix(pending)
			}
			pending = c
			continue
		}

		if p.atQuantifier() {
			// a(?#c)* repeats a; the comment sits before the operator
			if pending == nil || len(items) == 0 {
				return nil, newError(QuantifierAfterNothing, p.pos, p.quantifierText())
			}
			last := items[len(items)-1]
			item, err := p.parseCommentedQuantifier(last, pending)
			if err != nil {
				return nil, err
			}
			items[len(items)-1] = item
			pending = nil
			continue
		}

		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if pending != nil {
			atom.SetPrefix(pending)
			pending = nil
		}
		item, err := p.parseQuantifier(atom, nil)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if pending != nil {
		e := ast.NewEmpty()
		e.SetPrefix(pending)
		items = append(items, e)
	}
	return ast.NewConcatenation(items...), nil
}

// parseCommentedQuantifier applies the quantifier at the cursor to an item
// already read, with comments between the two. A lone ? after a quantifier
// makes it lazy; anything else after a quantifier is nested.
func (p *Parser) parseCommentedQuantifier(last ast.Node, comments *ast.CommentNode) (ast.Node, error) {
	switch q := last.(type) {
	case ast.Quantifier:
		if p.peek() != '?' {
			return nil, newError(NestedQuantifier, p.pos, p.quantifierText())
		}
		p.pos++
		lazy := ast.NewLazy(q)
		lazy.SetPrefix(comments)
		if p.atQuantifier() {
			return nil, newError(NestedQuantifier, p.pos, p.quantifierText())
		}
		return lazy, nil
	case *ast.LazyNode:
		return nil, newError(NestedQuantifier, p.pos, p.quantifierText())
	}
	return p.parseQuantifier(last, comments)
}

func (p *Parser) atQuantifier() bool {
	if !p.more() {
		return false
	}
	switch p.peek() {
	case '*', '+', '?':
		return true
	case '{':
		_, _, ok := quantifier.Scan(p.rest())
		return ok
	}
	return false
}

func (p *Parser) quantifierText() string {
	if _, size, ok := quantifier.Scan(p.rest()); ok {
		return p.rest()[:size]
	}
	return string(p.peek())
}

// parseQuantifier applies the quantifier at the cursor, if any, to atom.
// comments, when set, become the quantifier's prefix.
func (p *Parser) parseQuantifier(atom ast.Node, comments *ast.CommentNode) (ast.Node, error) {
	if !p.atQuantifier() {
		return atom, nil
	}
	var q ast.Quantifier
	switch p.peek() {
	case '*':
		p.pos++
		q = ast.NewQuantifierStar(atom)
	case '+':
		p.pos++
		q = ast.NewQuantifierPlus(atom)
	case '?':
		p.pos++
		q = ast.NewQuantifierQuestionMark(atom)
	case '{':
		start := p.pos
		b, size, _ := quantifier.Scan(p.rest())
		p.pos += size
		var err error
		switch {
		case b.Exact():
			q, err = ast.NewQuantifierN(b.Min, atom)
		case b.Open():
			q, err = ast.NewQuantifierNOrMore(b.Min, atom)
		case b.Reversed():
			return nil, newError(ReversedQuantifierRange, start)
		default:
			q, err = ast.NewQuantifierNM(b.Min, *b.Max, atom)
		}
		if err != nil {
			e := newError(NumberOutOfRange, start)
			e.Err = err
			return nil, e
		}
	}

	if comments != nil {
		q.SetPrefix(comments)
	}
	var node ast.Node = q
	if p.accept('?') {
		node = ast.NewLazy(q)
	}
	if p.atQuantifier() {
		return nil, newError(NestedQuantifier, p.pos, p.quantifierText())
	}
	return node, nil
}

func (p *Parser) parseAtom() (ast.Node, error) {
	switch p.peek() {
	case '(':
		return p.parseGroup()
	case '[':
		return p.parseCharacterClass()
	case '\\':
		return p.parseEscape()
	case '.':
		p.pos++
		return ast.NewAnyCharacter(), nil
	case '^':
		p.pos++
		return ast.NewStartOfLine(), nil
	case '$':
		p.pos++
		return ast.NewEndOfLine(), nil
	}
	return ast.NewCharacter(p.next()), nil
}

func (p *Parser) parseComment() (*ast.CommentNode, error) {
	start := p.pos
	p.pos += len("(?#")
	end := strings.IndexByte(p.rest(), ')')
	if end < 0 {
		return nil, newError(UnterminatedComment, start)
	}
	c := ast.NewComment(p.rest()[:end])
	p.pos += end + 1
	return c, nil
}

// parseGroup reads a parenthesised construct starting at (.
func (p *Parser) parseGroup() (ast.Node, error) {
	start := p.pos
	p.pos++
	if !p.accept('?') {
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		return ast.NewCaptureGroup(body), nil
	}

	switch {
	case p.accept(':'):
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		return ast.NewNonCaptureGroup(body), nil
	case p.accept('>'):
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		return ast.NewAtomicGroup(body), nil
	case p.accept('='):
		return p.parseLookaround(true, true)
	case p.accept('!'):
		return p.parseLookaround(true, false)
	case p.acceptString("<="):
		return p.parseLookaround(false, true)
	case p.acceptString("<!"):
		return p.parseLookaround(false, false)
	case p.peek() == '<' || p.peek() == '\'':
		return p.parseNamedGroup(start)
	case p.peek() == '(':
		return p.parseConditional()
	case p.peek() == '#':
		p.pos = start
		c, err := p.parseComment()
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return p.parseModeModifier(start)
}

// parseBody reads a group's contents and its closing parenthesis.
func (p *Parser) parseBody() (ast.Node, error) {
	body, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if !p.accept(')') {
		return nil, newError(InsufficientClosingParentheses, p.pos)
	}
	return body, nil
}

func (p *Parser) parseLookaround(lookahead, positive bool) (ast.Node, error) {
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return ast.NewLookaroundGroup(lookahead, positive, body), nil
}

// parseNamedGroup handles (?<name>...), (?'name'...) and the balancing
// forms (?<name-other>...), (?<-other>...).
func (p *Parser) parseNamedGroup(start int) (ast.Node, error) {
	quoted := p.peek() == '\''
	closer := byte('>')
	if quoted {
		closer = '\''
	}
	p.pos++
	end := strings.IndexByte(p.rest(), closer)
	if end < 0 {
		return nil, newError(UnrecognizedGroupingConstruct, start)
	}
	name := p.rest()[:end]
	name, balanced, isBalancing := strings.Cut(name, "-")
	if isBalancing {
		if (name != "" && !validName(name)) || !validName(balanced) {
			return nil, newError(UnrecognizedGroupingConstruct, start)
		}
	} else if !validName(name) {
		return nil, newError(UnrecognizedGroupingConstruct, start)
	}
	p.pos += end + 1

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if isBalancing {
		return ast.NewBalancingGroup(name, balanced, quoted, body), nil
	}
	return ast.NewNamedGroup(name, quoted, body), nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// parseConditional reads (?(condition)yes|no) after the (?.
func (p *Parser) parseConditional() (ast.Node, error) {
	cond, err := p.parseGroup()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return ast.NewConditionalGroup(cond.(ast.Group), body), nil
}

func (p *Parser) parseModeModifier(start int) (ast.Node, error) {
	from := p.pos
	for p.more() && strings.ContainsRune("imnsxIMNSX-", p.peek()) {
		p.pos++
	}
	mods := p.pattern[from:p.pos]
	if mods == "" {
		return nil, newError(UnrecognizedGroupingConstruct, start)
	}
	switch {
	case p.accept(')'):
		return ast.NewModeModifierGroup(mods), nil
	case p.accept(':'):
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		return ast.NewModeModifierGroup(mods, body), nil
	}
	return nil, newError(UnrecognizedGroupingConstruct, start)
}

func (p *Parser) parseCharacterClass() (ast.Node, error) {
	start := p.pos
	p.pos++
	negated := p.accept('^')
	var members []ast.Node
	var subtraction *ast.CharacterClassNode
	for first := true; ; first = false {
		if !p.more() {
			return nil, newError(UnterminatedCharacterClass, start)
		}
		if p.peek() == ']' && !first {
			p.pos++
			break
		}
		if subtraction != nil {
			return nil, newError(SubtractionNotLast, p.pos)
		}
		if !first && strings.HasPrefix(p.rest(), "-[") {
			p.pos++
			sub, err := p.parseCharacterClass()
			if err != nil {
				return nil, err
			}
			subtraction = sub.(*ast.CharacterClassNode)
			continue
		}

		member, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}
		if p.atRangeDash() {
			if from, ok := member.(charValued); ok {
				dash := p.pos
				p.pos++
				end, err := p.parseClassMember()
				if err != nil {
					return nil, err
				}
				to, ok := end.(charValued)
				if !ok {
					return nil, newError(BadClassInCharacterRange, dash, end.String())
				}
				if from.Char() > to.Char() {
					return nil, newError(ReversedCharacterRange, dash)
				}
				member = ast.NewCharacterClassRange(member, end)
			}
		}
		members = append(members, member)
	}
	set := ast.NewCharacterClassCharacterSet(members...)
	return ast.NewCharacterClassWithSubtraction(set, subtraction, negated), nil
}

// charValued is implemented by nodes standing for exactly one character.
type charValued interface {
	Char() rune
}

// atRangeDash reports a - that joins two members, as opposed to a literal
// dash before ] or the start of a subtraction.
func (p *Parser) atRangeDash() bool {
	rest := p.rest()
	return len(rest) > 1 && rest[0] == '-' && rest[1] != ']' && rest[1] != '['
}

func (p *Parser) parseClassMember() (ast.Node, error) {
	if p.peek() == '\\' {
		return p.parseClassEscape()
	}
	return ast.NewCharacter(p.next()), nil
}

func (p *Parser) parseEscape() (ast.Node, error) {
	start := p.pos
	tok, err := p.scanEscape()
	if err != nil {
		return nil, err
	}
	p.pos += len(tok.Text)
	switch tok.Kind {
	case escape.Anchor:
		switch tok.Text[1] {
		case 'A':
			return ast.NewStartOfString(), nil
		case 'z':
			return ast.NewEndOfString(), nil
		case 'Z':
			return ast.NewEndOfStringZ(), nil
		case 'G':
			return ast.NewContiguousMatch(), nil
		case 'b':
			return ast.NewWordBoundary(), nil
		default:
			return ast.NewNonWordBoundary(), nil
		}
	case escape.Backreference:
		return p.numberedEscape(tok.Text, start)
	case escape.NamedReference:
		return ast.NewNamedReference(tok.Name(), tok.Quoted(), true), nil
	case escape.BareReference:
		return ast.NewNamedReference(tok.Name(), tok.Quoted(), false), nil
	}
	return p.escapeNode(tok, start)
}

// parseClassEscape reads an escape inside [...], where \b is a backspace,
// digits are octal and references do not exist.
func (p *Parser) parseClassEscape() (ast.Node, error) {
	start := p.pos
	tok, err := p.scanEscape()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case escape.Backreference:
		return p.octalEscape(start)
	case escape.Anchor, escape.NamedReference, escape.BareReference:
		_, size := utf8.DecodeRuneInString(p.rest()[1:])
		text := p.rest()[:1+size]
		p.pos += len(text)
		return p.generic(text, start)
	}
	p.pos += len(tok.Text)
	return p.escapeNode(tok, start)
}

// numberedEscape resolves \N... the way .NET does: a group that exists is
// referenced, a single digit always is, and anything else is read as up to
// three octal digits.
func (p *Parser) numberedEscape(text string, start int) (ast.Node, error) {
	n, err := strconv.Atoi(text[1:])
	if err != nil {
		e := newError(NumberOutOfRange, start)
		e.Err = err
		return nil, e
	}
	if n > 9 && p.captures == nil {
		p.ambiguous = true
	}
	if n <= 9 || p.captures == nil || p.captures[n] {
		return ast.NewBackreference(n), nil
	}
	p.pos = start
	return p.octalEscape(start)
}

// octalEscape reads \ followed by at most three octal digits; digits after
// those are ordinary characters.
func (p *Parser) octalEscape(start int) (ast.Node, error) {
	digits := p.rest()[1:]
	n := 0
	for n < len(digits) && n < 3 && digits[n] >= '0' && digits[n] <= '7' {
		n++
	}
	if n == 0 {
		return nil, newError(UnrecognizedEscape, start, p.rest()[:2])
	}
	p.pos += 1 + n
	return ast.NewOctalEscape(digits[:n]), nil
}

func (p *Parser) scanEscape() (escape.Token, error) {
	if p.pos+1 >= len(p.pattern) {
		return escape.Token{}, newError(UnescapedEndingBackslash, p.pos)
	}
	tok, err := escape.Scan(p.rest())
	if err != nil {
		e := newError(UnrecognizedEscape, p.pos, p.rest()[:2])
		e.Err = err
		return escape.Token{}, e
	}
	return tok, nil
}

func (p *Parser) escapeNode(tok escape.Token, start int) (ast.Node, error) {
	switch tok.Kind {
	case escape.Hex:
		return ast.NewHexEscape(tok.Text[2:]), nil
	case escape.Unicode:
		return ast.NewUnicodeEscape(tok.Text[2:]), nil
	case escape.Control:
		r, _ := utf8.DecodeRuneInString(tok.Text[2:])
		return ast.NewControlCharacterEscape(r), nil
	case escape.Octal:
		return ast.NewOctalEscape(tok.Text[1:]), nil
	case escape.Category:
		return ast.NewUnicodeCategory(tok.Text[3:len(tok.Text)-1], tok.Text[1] == 'P'), nil
	case escape.Shorthand:
		return ast.NewCharacterClassShorthand(rune(tok.Text[1])), nil
	}
	return p.generic(tok.Text, start)
}

// generic accepts a backslash before a metacharacter or one of the letters
// with a fixed meaning. Other word characters are errors, with a more
// specific kind for the prefixes of longer escapes.
func (p *Parser) generic(text string, start int) (ast.Node, error) {
	r, _ := utf8.DecodeRuneInString(text[1:])
	switch r {
	case 'x', 'u':
		return nil, newError(InsufficientHexDigits, start)
	case 'c':
		return nil, newError(MissingControlCharacter, start)
	case 'p', 'P':
		return nil, newError(IncompleteUnicodeCategory, start)
	case 'k':
		return nil, newError(MalformedNamedReference, start)
	}
	if isWordRune(r) && !strings.ContainsRune("abefnrtv", r) {
		return nil, newError(UnrecognizedEscape, start, text)
	}
	return ast.NewEscape(text[1:]), nil
}

func (p *Parser) more() bool   { return p.pos < len(p.pattern) }
func (p *Parser) rest() string { return p.pattern[p.pos:] }

func (p *Parser) peek() rune {
	if !p.more() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(p.rest())
	return r
}

func (p *Parser) next() rune {
	r, w := utf8.DecodeRuneInString(p.rest())
	p.pos += w
	return r
}

func (p *Parser) accept(r rune) bool {
	if p.more() && p.peek() == r {
		p.pos += utf8.RuneLen(r)
		return true
	}
	return false
}

func (p *Parser) acceptString(s string) bool {
	if strings.HasPrefix(p.rest(), s) {
		p.pos += len(s)
		return true
	}
	return false
}
