// Package escape classifies the backslash sequence at the start of a
// pattern fragment.
package escape

import (
	"errors"
	"unicode/utf8"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type Kind int

const (
	Generic        Kind = iota // \. \n \q ...
	Hex                        // \xHH
	Unicode                    // \uHHHH
	Control                    // \cX
	Octal                      // \0, \07, \012
	Backreference              // \1 .. \99
	NamedReference             // \k<name> \k'name'
	BareReference              // \<name> \'name'
	Category                   // \p{L} \P{L}
	Shorthand                  // \d \D \w \W \s \S
	Anchor                     // \A \z \Z \G \b \B
)

// Token is one recognised escape. Text starts with the backslash.
type Token struct {
	Kind Kind
	Text string
}

// ErrNoEscape is returned when the input does not start with a backslash
// followed by at least one character.
var ErrNoEscape = errors.New("no escape sequence")

var lexer = newLexer()

func newLexer() *lexmachine.Lexer {
	l := lexmachine.NewLexer()
	l.Add([]byte(`\\x[0-9A-Fa-f][0-9A-Fa-f]`), tokAction(Hex))
	l.Add([]byte(`\\u[0-9A-Fa-f][0-9A-Fa-f][0-9A-Fa-f][0-9A-Fa-f]`), tokAction(Unicode))
	l.Add([]byte(`\\c[A-Za-z]`), tokAction(Control))
	l.Add([]byte(`\\0[0-7]?[0-7]?`), tokAction(Octal))
	l.Add([]byte(`\\[1-9][0-9]*`), tokAction(Backreference))
	l.Add([]byte(`\\k<[A-Za-z0-9_]+>`), tokAction(NamedReference))
	l.Add([]byte(`\\k'[A-Za-z0-9_]+'`), tokAction(NamedReference))
	l.Add([]byte(`\\<[A-Za-z0-9_]+>`), tokAction(BareReference))
	l.Add([]byte(`\\'[A-Za-z0-9_]+'`), tokAction(BareReference))
	l.Add([]byte(`\\[pP][{]([A-Za-z0-9_]|-)+[}]`), tokAction(Category))
	l.Add([]byte(`\\[dDwWsS]`), tokAction(Shorthand))
	l.Add([]byte(`\\[AzZGbB]`), tokAction(Anchor))
	l.Add([]byte(`\\.`), tokAction(Generic))
	if err := l.Compile(); err != nil {
		panic(err)
	}
	return l
}

func tokAction(kind Kind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return Token{Kind: kind, Text: string(m.Bytes)}, nil
	}
}

// Scan returns the longest escape at the start of s. A backslash before a
// rune no rule knows is a Generic escape of that rune.
func Scan(s string) (Token, error) {
	if len(s) < 2 || s[0] != '\\' {
		return Token{}, ErrNoEscape
	}
	scanner, err := lexer.Scanner([]byte(s))
	if err != nil {
		return Token{}, err
	}
	tok, err, eos := scanner.Next()
	if eos {
		return Token{}, ErrNoEscape
	}
	t, _ := tok.(Token)
	if err != nil {
		// the DFA's . stops at a newline; any other rune escapes itself
		t = Token{Kind: Generic}
	}
	if t.Kind == Generic {
		// the DFA works on bytes; take the whole escaped rune
		r, _ := utf8.DecodeRuneInString(s[1:])
		t.Text = `\` + string(r)
	}
	return t, nil
}

// Name returns the group name of a NamedReference or BareReference token.
func (t Token) Name() string {
	switch t.Kind {
	case NamedReference:
		return t.Text[3 : len(t.Text)-1]
	case BareReference:
		return t.Text[2 : len(t.Text)-1]
	}
	return ""
}

// Quoted reports whether a reference uses the 'name' form.
func (t Token) Quoted() bool {
	return t.Text[len(t.Text)-1] == '\''
}
