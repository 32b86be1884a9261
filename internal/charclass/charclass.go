// Package charclass classifies characters for word boundary detection.
//
// Every character belongs to exactly one Class. Letters of any script, digits,
// combining marks and underscore are word characters; whitespace is whitespace;
// everything else is a symbol.
package charclass

import "unicode"

// Class is the category of a character for word boundary detection.
type Class int

const (
	Whitespace Class = iota
	Word
	Symbol
)

func (c Class) String() string {
	switch c {
	case Whitespace:
		return "whitespace"
	case Word:
		return "word"
	case Symbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Classify returns the class of r.
func Classify(r rune) Class {
	switch {
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return Whitespace
	case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_':
		return Word
	case unicode.IsSpace(r):
		return Whitespace
	case unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r):
		// Non-ASCII letters, numbers and combining marks stay attached to the word.
		return Word
	default:
		return Symbol
	}
}

// ClassifyOptional classifies a peeked character. A missing character (buffer
// edge) counts as whitespace.
func ClassifyOptional(r rune, ok bool) Class {
	if !ok {
		return Whitespace
	}
	return Classify(r)
}

// IsWhitespace reports whether r is whitespace.
func IsWhitespace(r rune) bool {
	return Classify(r) == Whitespace
}

// Boundary reports whether a word boundary separates two adjacent characters.
type Boundary func(a, b rune) bool

// IsCharacterTypeBoundary is the boundary used by word (iw): any change of class.
func IsCharacterTypeBoundary(a, b rune) bool {
	return Classify(a) != Classify(b)
}

// IsWhitespaceBoundary is the boundary used by WORD (iW): exactly one of the two
// characters is whitespace, so punctuation stays inside the run.
func IsWhitespaceBoundary(a, b rune) bool {
	return IsWhitespace(a) != IsWhitespace(b)
}

// Priority ranks a class for breaking ties when the cursor sits between two
// differently classed characters: word > symbol > whitespace.
func Priority(c Class) int {
	switch c {
	case Word:
		return 2
	case Symbol:
		return 1
	default:
		return 0
	}
}
