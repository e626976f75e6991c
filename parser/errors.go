package parser

import "fmt"

// ErrorKind identifies a parse failure.
type ErrorKind int

const (
	// PatternRejected means the validity check refused the pattern before
	// tokenizing started. The message is the checker's own.
	PatternRejected ErrorKind = iota
	UnterminatedCharacterClass
	InsufficientClosingParentheses
	InsufficientOpeningParentheses
	MalformedNamedReference
	QuantifierAfterNothing
	NestedQuantifier
	UnescapedEndingBackslash
	UnrecognizedEscape
	InsufficientHexDigits
	MissingControlCharacter
	IncompleteUnicodeCategory
	ReversedCharacterRange
	BadClassInCharacterRange
	ReversedQuantifierRange
	UnrecognizedGroupingConstruct
	UnterminatedComment
	SubtractionNotLast
	NumberOutOfRange
)

var templates = map[ErrorKind]string{
	UnterminatedCharacterClass:     "unterminated [] set",
	InsufficientClosingParentheses: "not enough )'s",
	InsufficientOpeningParentheses: "too many )'s",
	MalformedNamedReference:        `malformed \k<...> named back reference`,
	QuantifierAfterNothing:         "quantifier %s following nothing",
	NestedQuantifier:               "nested quantifier %s",
	UnescapedEndingBackslash:       `illegal \ at end of pattern`,
	UnrecognizedEscape:             `unrecognized escape sequence %s`,
	InsufficientHexDigits:          "insufficient hex digits",
	MissingControlCharacter:        "missing control character",
	IncompleteUnicodeCategory:      `incomplete \p{X} character escape`,
	ReversedCharacterRange:         "[x-y] range in reverse order",
	BadClassInCharacterRange:       "cannot include class %s in character range",
	ReversedQuantifierRange:        "illegal {x,y} with x > y",
	UnrecognizedGroupingConstruct:  "unrecognized grouping construct",
	UnterminatedComment:            "unterminated (?#...) comment",
	SubtractionNotLast:             "a subtraction must be the last element in a character class",
	NumberOutOfRange:               "quantifier or group number out of range",
}

func (k ErrorKind) String() string {
	switch k {
	case PatternRejected:
		return "PatternRejected"
	case UnterminatedCharacterClass:
		return "UnterminatedCharacterClass"
	case InsufficientClosingParentheses:
		return "InsufficientClosingParentheses"
	case InsufficientOpeningParentheses:
		return "InsufficientOpeningParentheses"
	case MalformedNamedReference:
		return "MalformedNamedReference"
	case QuantifierAfterNothing:
		return "QuantifierAfterNothing"
	case NestedQuantifier:
		return "NestedQuantifier"
	case UnescapedEndingBackslash:
		return "UnescapedEndingBackslash"
	case UnrecognizedEscape:
		return "UnrecognizedEscape"
	case InsufficientHexDigits:
		return "InsufficientHexDigits"
	case MissingControlCharacter:
		return "MissingControlCharacter"
	case IncompleteUnicodeCategory:
		return "IncompleteUnicodeCategory"
	case ReversedCharacterRange:
		return "ReversedCharacterRange"
	case BadClassInCharacterRange:
		return "BadClassInCharacterRange"
	case ReversedQuantifierRange:
		return "ReversedQuantifierRange"
	case UnrecognizedGroupingConstruct:
		return "UnrecognizedGroupingConstruct"
	case UnterminatedComment:
		return "UnterminatedComment"
	case SubtractionNotLast:
		return "SubtractionNotLast"
	case NumberOutOfRange:
		return "NumberOutOfRange"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError describes why a pattern could not be turned into a tree.
// Offset is the byte position the problem was found at, or -1 when the
// pattern was rejected as a whole; Message then holds the checker's text.
type ParseError struct {
	Kind    ErrorKind
	Offset  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Kind == PatternRejected {
		return "pattern rejected: " + e.Message
	}
	return fmt.Sprintf("%s at offset %d", e.Message, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newError(kind ErrorKind, offset int, args ...any) *ParseError {
	msg := templates[kind]
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &ParseError{Kind: kind, Offset: offset, Message: msg}
}

func rejected(err error) *ParseError {
	return &ParseError{
		Kind:    PatternRejected,
		Offset:  -1,
		Message: err.Error(),
		Err:     err,
	}
}
