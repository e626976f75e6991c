// Package quantifier recognises brace quantifiers: {n}, {n,} and {n,m}.
package quantifier

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Brace is a parsed brace quantifier. Counts keep their original digits.
type Brace struct {
	Min   string  `parser:"'{' @Int"`
	Comma bool    `parser:"(@',')?"`
	Max   *string `parser:"(@Int)? '}'"`
}

var braceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[{},]`},
})

var parser = participle.MustBuild[Brace](participle.Lexer(braceLexer))

// Scan parses the quantifier at the start of s and returns it together with
// the number of bytes it covers. ok is false when s does not start with a
// well-formed quantifier, in which case the brace is an ordinary character.
func Scan(s string) (b *Brace, size int, ok bool) {
	if !strings.HasPrefix(s, "{") {
		return nil, 0, false
	}
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return nil, 0, false
	}
	b, err := parser.ParseString("quantifier", s[:end+1])
	if err != nil {
		return nil, 0, false
	}
	return b, end + 1, true
}

// Exact reports the {n} form.
func (b *Brace) Exact() bool { return !b.Comma }

// Open reports the {n,} form.
func (b *Brace) Open() bool { return b.Comma && b.Max == nil }

// Reversed reports {n,m} with n > m.
func (b *Brace) Reversed() bool {
	if b.Max == nil {
		return false
	}
	n, err1 := strconv.Atoi(b.Min)
	m, err2 := strconv.Atoi(*b.Max)
	return err1 == nil && err2 == nil && n > m
}
