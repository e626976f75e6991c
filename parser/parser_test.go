package parser

import (
	"errors"
	"strings"
	"testing"

	"regexast/ast"
)

func TestParseConcatenation(t *testing.T) {
	root, err := Parse("abc")
	if err != nil {
		t.Fatal(err)
	}
	c, ok := root.(*ast.ConcatenationNode)
	if !ok {
		t.Fatalf("root is %s", ast.Kind(root))
	}
	kids := c.ChildNodes()
	if len(kids) != 3 {
		t.Fatalf("got %d children", len(kids))
	}
	for i, want := range "abc" {
		ch, ok := kids[i].(*ast.CharacterNode)
		if !ok || ch.Char() != want {
			t.Fatalf("child %d is %s %q", i, ast.Kind(kids[i]), kids[i].String())
		}
	}
	if root.String() != "abc" {
		t.Fatalf("got %q", root.String())
	}
}

func TestParseAlternation(t *testing.T) {
	root, err := Parse("a|b|c")
	if err != nil {
		t.Fatal(err)
	}
	alt, ok := root.(*ast.AlternationNode)
	if !ok {
		t.Fatalf("root is %s", ast.Kind(root))
	}
	branches := alt.ChildNodes()
	if len(branches) != 3 {
		t.Fatalf("got %d branches", len(branches))
	}
	for i, b := range branches {
		c, ok := b.(*ast.ConcatenationNode)
		if !ok || len(c.ChildNodes()) != 1 {
			t.Fatalf("branch %d is %s", i, ast.Kind(b))
		}
	}
}

func TestParseEmpty(t *testing.T) {
	root, err := Parse("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := root.(*ast.EmptyNode); !ok {
		t.Fatalf("root is %s", ast.Kind(root))
	}
}

func TestParseRejected(t *testing.T) {
	_, err := Parse(")")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v", err)
	}
	if perr.Kind != PatternRejected || perr.Offset != -1 {
		t.Fatalf("got kind %v offset %d", perr.Kind, perr.Offset)
	}
	if perr.Message == "" || errors.Unwrap(perr) == nil {
		t.Fatal("checker error not carried")
	}
}

func TestCustomValidator(t *testing.T) {
	refuse := errors.New("refused")
	_, err := Parse("abc", WithValidator(func(string) error { return refuse }))
	if !errors.Is(err, refuse) {
		t.Fatalf("got %v", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Message != "refused" {
		t.Fatalf("got %v", err)
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("no panic")
		}
	}()
	MustParse("(")
}

var validated = []string{
	"abc",
	"a|b|c",
	"a||b",
	"a|",
	"(a)\\1",
	"(?<n>a)\\k<n>",
	"(?'n'a)\\k'n'",
	"[abc]",
	"[^a-z]",
	"[a-z-[aeiou]]",
	"[]a]",
	"[a-]",
	"[\\b\\d-]",
	"[\\x41-\\x5A]",
	"x{05}",
	"a{2,}?",
	"a{1,3}",
	"a*?b+?c??",
	"a{,3}",
	"(?:a|b)*",
	"(?>a+)",
	"(?=a)(?!b)(?<=c)(?<!d)",
	"(?i)a(?-i:b)",
	"(?im-sx)",
	"\\d\\W\\s",
	"\\p{Lu}\\P{L}",
	"\\x41\\u00e9\\cM\\012\\0",
	"\\A\\z\\Z\\G\\b\\B^$",
	"\\.\\*\\t\\n\\e\\\\",
	"a(?#note)b",
	"(?#lead)a",
	"a(?#trail)",
	"(?#one)(?#two)a",
	"(x)(?(1)a|b)",
	"(?(?=a)ab|cd)",
	"(?<open>a)(?<close-open>b)",
	"(?<open>a)(?'-open'b)",
	"(a(b(c)))",
	"()",
	"é+ü",
	".*",
}

func TestRoundTrip(t *testing.T) {
	for _, pattern := range validated {
		root, err := Parse(pattern)
		if err != nil {
			t.Errorf("%q: %v", pattern, err)
			continue
		}
		if got := root.String(); got != pattern {
			t.Errorf("%q: rendered as %q", pattern, got)
		}
	}
}

// unchecked are accepted by the parser but not necessarily by the engine.
var unchecked = []string{
	"\\<n>",
	"\\'n'",
	"{",
	"a{",
	"a{1,2",
	"x{1}{",
	"a(?#c)*",
	"(?(name)a)",
	"\\9",
	"\\123",
	"(a)\\18",
	"a\\\nb",
	"[\\1]",
}

func TestRoundTripWithoutValidation(t *testing.T) {
	for _, pattern := range unchecked {
		root, err := Parse(pattern, WithoutValidation())
		if err != nil {
			t.Errorf("%q: %v", pattern, err)
			continue
		}
		if got := root.String(); got != pattern {
			t.Errorf("%q: rendered as %q", pattern, got)
		}
	}
}

func TestNodeKinds(t *testing.T) {
	tests := []struct {
		pattern string
		path    []int
		kind    string
	}{
		{"(a)", []int{0}, "CaptureGroup"},
		{"(?:a)", []int{0}, "NonCaptureGroup"},
		{"(?<n>a)", []int{0}, "NamedGroup"},
		{"(?<n>a)(?<m-n>b)", []int{1}, "BalancingGroup"},
		{"(?>a)", []int{0}, "AtomicGroup"},
		{"(?<=a)", []int{0}, "LookaroundGroup"},
		{"(a)(?(1)b)", []int{1}, "ConditionalGroup"},
		{"(a)(?(1)b)", []int{1, 0}, "CaptureGroup"},
		{"(?i)", []int{0}, "ModeModifierGroup"},
		{"[a-c]", []int{0}, "CharacterClass"},
		{"[a-c]", []int{0, 0}, "CharacterClassCharacterSet"},
		{"[a-c]", []int{0, 0, 0}, "CharacterClassRange"},
		{"[\\w]", []int{0, 0, 0}, "CharacterClassShorthand"},
		{"[\\1]", []int{0, 0, 0}, "OctalEscape"},
		{"[\\b]", []int{0, 0, 0}, "Escape"},
		{"a*", []int{0}, "QuantifierStar"},
		{"a+", []int{0}, "QuantifierPlus"},
		{"a?", []int{0}, "QuantifierQuestionMark"},
		{"a{2}", []int{0}, "QuantifierN"},
		{"a{2,}", []int{0}, "QuantifierNOrMore"},
		{"a{2,3}", []int{0}, "QuantifierNM"},
		{"a+?", []int{0}, "Lazy"},
		{"a+?", []int{0, 0}, "QuantifierPlus"},
		{".", []int{0}, "AnyCharacter"},
		{"\\x20", []int{0}, "HexEscape"},
		{"\\u0020", []int{0}, "UnicodeEscape"},
		{"\\040", []int{0}, "OctalEscape"},
		{"\\cA", []int{0}, "ControlCharacterEscape"},
		{"(a)\\1", []int{1}, "Backreference"},
		{"(?<n>a)\\k<n>", []int{1}, "NamedReference"},
		{"\\p{L}", []int{0}, "UnicodeCategory"},
		{"\\S", []int{0}, "CharacterClassShorthand"},
		{"\\A", []int{0}, "StartOfString"},
		{"\\z", []int{0}, "EndOfString"},
		{"\\Z", []int{0}, "EndOfStringZ"},
		{"^", []int{0}, "StartOfLine"},
		{"$", []int{0}, "EndOfLine"},
		{"\\b", []int{0}, "WordBoundary"},
		{"\\B", []int{0}, "NonWordBoundary"},
		{"\\G", []int{0}, "ContiguousMatch"},
		{"\\+", []int{0}, "Escape"},
		{"a(?#c)", []int{1}, "Empty"},
	}
	for _, tt := range tests {
		root, err := Parse(tt.pattern)
		if err != nil {
			t.Errorf("%q: %v", tt.pattern, err)
			continue
		}
		n, ok := ast.At(root, tt.path...)
		if !ok {
			t.Errorf("%q: nothing at %v", tt.pattern, tt.path)
			continue
		}
		if got := ast.Kind(n); got != tt.kind {
			t.Errorf("%q at %v: got %s want %s", tt.pattern, tt.path, got, tt.kind)
		}
	}
}

func TestQuantifierCountsKeepDigits(t *testing.T) {
	root := MustParse("x{05}")
	n, _ := ast.At(root, 0)
	q, ok := n.(*ast.QuantifierNNode)
	if !ok {
		t.Fatalf("got %s", ast.Kind(n))
	}
	if q.N() != 5 || q.OriginalN() != "05" {
		t.Fatalf("got n=%d text=%q", q.N(), q.OriginalN())
	}
}

func TestSubtractionClass(t *testing.T) {
	root := MustParse("[abc-[a]]")
	n, _ := ast.At(root, 0)
	class := n.(*ast.CharacterClassNode)
	if class.Negated() {
		t.Fatal("class negated")
	}
	if got := class.CharacterSet().String(); got != "abc" {
		t.Fatalf("set %q", got)
	}
	sub := class.Subtraction()
	if sub == nil || sub.String() != "[a]" {
		t.Fatalf("subtraction %v", sub)
	}
}

func TestCommentsBecomePrefixes(t *testing.T) {
	root := MustParse("a(?#x)(?#y)b")
	kids := root.ChildNodes()
	if len(kids) != 2 {
		t.Fatalf("got %d children", len(kids))
	}
	p := kids[1].Prefix()
	if p == nil || p.Comment() != "y" || p.Prefix() == nil || p.Prefix().Comment() != "x" {
		t.Fatal("comment chain not attached to b")
	}

	trailing := MustParse("a(?#t)").ChildNodes()
	if _, ok := trailing[1].(*ast.EmptyNode); !ok || trailing[1].Prefix().Comment() != "t" {
		t.Fatal("trailing comment not carried by an empty node")
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		pattern string
		kind    ErrorKind
		offset  int
	}{
		{"[abc", UnterminatedCharacterClass, 0},
		{"[", UnterminatedCharacterClass, 0},
		{"(ab", InsufficientClosingParentheses, 3},
		{"ab)", InsufficientOpeningParentheses, 2},
		{"\\k<a", MalformedNamedReference, 0},
		{"*a", QuantifierAfterNothing, 0},
		{"a|+", QuantifierAfterNothing, 2},
		{"(?:{2})", QuantifierAfterNothing, 3},
		{"a**", NestedQuantifier, 2},
		{"a{2}{3}", NestedQuantifier, 4},
		{"a+??", NestedQuantifier, 3},
		{"a\\", UnescapedEndingBackslash, 1},
		{"\\q", UnrecognizedEscape, 0},
		{"\\x4", InsufficientHexDigits, 0},
		{"\\u12", InsufficientHexDigits, 0},
		{"\\c", MissingControlCharacter, 0},
		{"\\c1", MissingControlCharacter, 0},
		{"\\p{L", IncompleteUnicodeCategory, 0},
		{"\\pL", IncompleteUnicodeCategory, 0},
		{"[z-a]", ReversedCharacterRange, 2},
		{"[a-\\d]", BadClassInCharacterRange, 2},
		{"a{3,1}", ReversedQuantifierRange, 1},
		{"(?z)", UnrecognizedGroupingConstruct, 0},
		{"(?<a", UnrecognizedGroupingConstruct, 0},
		{"(?<a b>c)", UnrecognizedGroupingConstruct, 0},
		{"(?#abc", UnterminatedComment, 0},
		{"[a-[b]c]", SubtractionNotLast, 6},
		{"a{99999999999999999999}", NumberOutOfRange, 1},
		{"(?#c)*", QuantifierAfterNothing, 5},
		{"a|(?#c)+", QuantifierAfterNothing, 7},
		{"a*(?#c)+", NestedQuantifier, 7},
		{"a*?(?#c)?", NestedQuantifier, 8},
		{"a*(?#c)??", NestedQuantifier, 8},
		{"(a)\\81", UnrecognizedEscape, 3},
		{"[\\8]", UnrecognizedEscape, 1},
	}
	for _, tt := range tests {
		_, err := Parse(tt.pattern, WithoutValidation())
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("%q: got %v", tt.pattern, err)
			continue
		}
		if perr.Kind != tt.kind || perr.Offset != tt.offset {
			t.Errorf("%q: got %v at %d, want %v at %d", tt.pattern, perr.Kind, perr.Offset, tt.kind, tt.offset)
		}
		if !strings.Contains(perr.Error(), "offset") {
			t.Errorf("%q: message %q", tt.pattern, perr.Error())
		}
	}
}

func TestErrorMessages(t *testing.T) {
	_, err := Parse("a**", WithoutValidation())
	if got := err.Error(); got != "nested quantifier * at offset 2" {
		t.Fatalf("got %q", got)
	}
	_, err = Parse("\\q", WithoutValidation())
	if got := err.Error(); got != `unrecognized escape sequence \q at offset 0` {
		t.Fatalf("got %q", got)
	}
}

// TestSpans checks that every node's span points at its own text inside the
// rendering of the whole tree.
func TestSpans(t *testing.T) {
	for _, pattern := range append(validated, unchecked...) {
		root, err := Parse(pattern, WithoutValidation())
		if err != nil {
			t.Fatalf("%q: %v", pattern, err)
		}
		text := root.String()
		ast.Walk(root, func(n ast.Node) bool {
			start, length := n.Span()
			lead := 0
			if p := n.Prefix(); p != nil {
				lead = len(p.String())
				ps, pl := p.Span()
				if ps+pl != start {
					t.Errorf("%q: prefix of %s ends at %d, node starts at %d", pattern, ast.Kind(n), ps+pl, start)
				}
			}
			switch n.(type) {
			case ast.Quantifier, *ast.LazyNode:
				for _, c := range n.ChildNodes() {
					lead += len(c.String())
				}
			}
			from, to := start-lead, start+length
			if from < 0 || to > len(text) || text[from:to] != n.String() {
				t.Errorf("%q: %s span (%d,%d) does not cover %q", pattern, ast.Kind(n), start, length, n.String())
			}
			return true
		})
	}
}

func TestSiblingSpansAreContiguous(t *testing.T) {
	root := MustParse("ab(?#c)d*e")
	kids := root.ChildNodes()
	pos := 0
	for _, k := range kids {
		s, l := k.Span()
		if p := k.Prefix(); p != nil {
			pos += len(p.String())
		}
		if _, ok := k.(ast.Quantifier); ok {
			pos += len(k.ChildNodes()[0].String())
		}
		if s != pos {
			t.Fatalf("%s starts at %d, want %d", ast.Kind(k), s, pos)
		}
		pos = s + l
	}
	if pos != len(root.String()) {
		t.Fatalf("children end at %d", pos)
	}
}

func TestEditParsedTree(t *testing.T) {
	root := MustParse("a(?#X)bc")
	b, _ := ast.At(root, 1)
	got := root.RemoveNode(b, true)
	if got.String() != "a(?#X)c" {
		t.Fatalf("got %q", got.String())
	}
	c, _ := ast.At(got, 1)
	if c.Prefix() == nil || c.Prefix().Comment() != "X" {
		t.Fatal("prefix not moved to the next sibling")
	}
	if root.String() != "a(?#X)bc" {
		t.Fatal("parsed tree changed")
	}
	reparsed := MustParse(got.String())
	if reparsed.String() != got.String() {
		t.Fatalf("edited tree does not reparse: %q", reparsed.String())
	}
}

func TestCommentBeforeQuantifier(t *testing.T) {
	root := MustParse("xa(?#c)*")
	if root.String() != "xa(?#c)*" {
		t.Fatalf("got %q", root.String())
	}
	kids := root.ChildNodes()
	if len(kids) != 2 {
		t.Fatalf("got %d children", len(kids))
	}
	star, ok := kids[1].(*ast.QuantifierStarNode)
	if !ok {
		t.Fatalf("got %s", ast.Kind(kids[1]))
	}
	a, ok := star.Quantified().(*ast.CharacterNode)
	if !ok || a.Char() != 'a' {
		t.Fatalf("quantified node is %s", ast.Kind(star.Quantified()))
	}
	if star.Prefix() == nil || star.Prefix().Comment() != "c" {
		t.Fatal("comment not carried by the quantifier")
	}
	if s, l := star.Span(); s != 7 || l != 1 {
		t.Fatalf("quantifier span (%d,%d)", s, l)
	}
}

func TestCommentPlacementAroundQuantifiers(t *testing.T) {
	tests := []struct {
		pattern string
		path    []int
		kind    string
		comment string
	}{
		// before the atom: the atom carries it
		{"(?#c)a*", []int{0, 0}, "Character", "c"},
		// between the quantifier and its lazy ?
		{"a*(?#c)?", []int{0}, "Lazy", "c"},
		// between the atom and a lazy quantifier
		{"a(?#c){2}?", []int{0, 0}, "QuantifierN", "c"},
		{"(ab)(?#x)(?#y)+", []int{0}, "QuantifierPlus", "y"},
	}
	for _, tt := range tests {
		root, err := Parse(tt.pattern, WithoutValidation())
		if err != nil {
			t.Errorf("%q: %v", tt.pattern, err)
			continue
		}
		if root.String() != tt.pattern {
			t.Errorf("%q: rendered as %q", tt.pattern, root.String())
		}
		n, ok := ast.At(root, tt.path...)
		if !ok || ast.Kind(n) != tt.kind {
			t.Errorf("%q: nothing of kind %s at %v", tt.pattern, tt.kind, tt.path)
			continue
		}
		if n.Prefix() == nil || n.Prefix().Comment() != tt.comment {
			t.Errorf("%q: %s does not carry comment %q", tt.pattern, tt.kind, tt.comment)
		}
	}
}

func TestNumberedEscapes(t *testing.T) {
	twelve := strings.Repeat("(a)", 12)
	named := "(?<x>a)" + strings.Repeat("(b)", 9)
	tests := []struct {
		pattern string
		path    []int
		kind    string
		text    string
	}{
		{"(a)\\1", []int{1}, "Backreference", "\\1"},
		{"(a)\\12", []int{1}, "OctalEscape", "\\12"},
		{"(a)\\18", []int{1}, "OctalEscape", "\\1"},
		{"(a)\\18", []int{2}, "Character", "8"},
		{"(a)\\1234", []int{1}, "OctalEscape", "\\123"},
		{"(a)\\1234", []int{2}, "Character", "4"},
		{twelve + "\\12", []int{12}, "Backreference", "\\12"},
		{named + "\\10", []int{10}, "Backreference", "\\10"},
		{named + "\\11", []int{10}, "OctalEscape", "\\11"},
		{"[\\789]", []int{0, 0, 0}, "OctalEscape", "\\7"},
		{"[\\789]", []int{0, 0, 1}, "Character", "8"},
		{"[\\789]", []int{0, 0, 2}, "Character", "9"},
		{"[\\1234]", []int{0, 0, 0}, "OctalEscape", "\\123"},
	}
	for _, tt := range tests {
		root, err := Parse(tt.pattern)
		if err != nil {
			t.Errorf("%q: %v", tt.pattern, err)
			continue
		}
		if root.String() != tt.pattern {
			t.Errorf("%q: rendered as %q", tt.pattern, root.String())
		}
		n, ok := ast.At(root, tt.path...)
		if !ok {
			t.Errorf("%q: nothing at %v", tt.pattern, tt.path)
			continue
		}
		if ast.Kind(n) != tt.kind || n.String() != tt.text {
			t.Errorf("%q at %v: got %s %q want %s %q", tt.pattern, tt.path, ast.Kind(n), n.String(), tt.kind, tt.text)
		}
	}

	root := MustParse("[\\789]")
	oct, _ := ast.At(root, 0, 0, 0)
	if got := oct.(*ast.OctalEscapeNode).Char(); got != 7 {
		t.Fatalf("\\7 is %#x", got)
	}
}

func TestEscapedNewline(t *testing.T) {
	root, err := Parse("a\\\nb", WithoutValidation())
	if err != nil {
		t.Fatal(err)
	}
	n, _ := ast.At(root, 1)
	e, ok := n.(*ast.EscapeNode)
	if !ok || e.Char() != '\n' {
		t.Fatalf("got %s %q", ast.Kind(n), n.String())
	}
}
