package textobject

import (
	"github.com/zjrosen/textobjects/internal/buffer"
	"github.com/zjrosen/textobjects/internal/finder"
)

// Variant selects whether delimiters are part of the selection.
type Variant int

const (
	Inner Variant = iota
	Around
)

func (v Variant) String() string {
	if v == Around {
		return "around"
	}
	return "inner"
}

// Kind is the structural family of a text object. The set of kinds is closed.
type Kind interface {
	resolve(buf buffer.Buffer, pos buffer.Position, v Variant, opts Options) (buffer.Range, bool)
	// Name is a short lowercase name for the kind, used in logs and exports.
	Name() string
}

// WordKind is a run of one character class (word) or of any non-whitespace
// (WORD, when Big is set).
type WordKind struct {
	Big bool
}

// DelimitedKind is the innermost balanced Open/Close pair.
type DelimitedKind struct {
	Open  rune
	Close rune
}

// TagKind is the innermost markup element.
type TagKind struct{}

// ParagraphKind is a run of non-blank lines.
type ParagraphKind struct{}

// IndentKind is a run of lines indented at least as deep as the cursor line.
type IndentKind struct{}

// ArgumentKind is one comma separated argument of the enclosing call or
// object literal.
type ArgumentKind struct{}

// EntireDocumentKind is the whole buffer.
type EntireDocumentKind struct{}

func (k WordKind) Name() string {
	if k.Big {
		return "WORD"
	}
	return "word"
}

func (k WordKind) resolve(buf buffer.Buffer, pos buffer.Position, v Variant, _ Options) (buffer.Range, bool) {
	var r buffer.Range
	if k.Big {
		r = finder.FindInnerWORD(buf, pos)
	} else {
		r = finder.FindInnerWordAtBoundary(buf, pos)
	}
	if v == Around {
		r = finder.AroundBlanks(buf, r)
	}
	return r, true
}

func (k DelimitedKind) Name() string { return string(k.Open) + string(k.Close) }

func (k DelimitedKind) resolve(buf buffer.Buffer, pos buffer.Position, v Variant, opts Options) (buffer.Range, bool) {
	if v == Around {
		return finder.FindAroundBalancedPairs(buf, pos, k.Open, k.Close, opts.MaxScanWidth)
	}
	return finder.FindInsideBalancedPairs(buf, pos, k.Open, k.Close, opts.MaxScanWidth)
}

func (TagKind) Name() string { return "tag" }

func (TagKind) resolve(buf buffer.Buffer, pos buffer.Position, v Variant, opts Options) (buffer.Range, bool) {
	pair, ok := finder.FindMatchingTag(buf, pos, opts.MaxScanWidth)
	if !ok {
		return buffer.Range{}, false
	}
	if v == Around {
		return pair.Outer, true
	}
	return pair.Inner, true
}

func (ParagraphKind) Name() string { return "paragraph" }

func (ParagraphKind) resolve(buf buffer.Buffer, pos buffer.Position, v Variant, _ Options) (buffer.Range, bool) {
	if v == Around {
		return finder.FindAroundParagraph(buf, pos), true
	}
	return finder.FindInnerParagraph(buf, pos), true
}

func (IndentKind) Name() string { return "indent" }

func (IndentKind) resolve(buf buffer.Buffer, pos buffer.Position, _ Variant, _ Options) (buffer.Range, bool) {
	return finder.FindIndentBlock(buf, pos), true
}

func (ArgumentKind) Name() string { return "argument" }

func (ArgumentKind) resolve(buf buffer.Buffer, pos buffer.Position, v Variant, opts Options) (buffer.Range, bool) {
	return finder.FindCurrentArgument(buf, pos, v == Around || opts.IncludeDelimiter, opts.MaxScanWidth)
}

func (EntireDocumentKind) Name() string { return "entire" }

func (EntireDocumentKind) resolve(buf buffer.Buffer, _ buffer.Position, _ Variant, _ Options) (buffer.Range, bool) {
	return buffer.Range{Start: finder.DocumentStart(buf), End: finder.DocumentEnd(buf)}, true
}
