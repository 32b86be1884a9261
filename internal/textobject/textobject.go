// Package textobject is the registry of every text object the engine knows and
// the single entry point hosts use to resolve one.
//
// Each Definition pairs a stable identifier with a Kind and a Variant. The
// table is built once and never mutated, so Resolve is safe to call from any
// number of goroutines as long as the buffer does not change underneath it.
package textobject

import (
	"errors"
	"fmt"

	"github.com/zjrosen/textobjects/internal/buffer"
	"github.com/zjrosen/textobjects/internal/finder"
	"github.com/zjrosen/textobjects/internal/log"
)

// ErrUnknownTextObject is returned when an identifier is not registered.
var ErrUnknownTextObject = errors.New("unknown text object")

// ID is the stable identifier of a text object, such as "inner-word".
type ID string

// Options tune a single resolution.
type Options struct {
	// IncludeDelimiter makes the inner argument object include its adjacent
	// comma, as the around variant does.
	IncludeDelimiter bool
	// MaxScanWidth caps how far pair, tag and argument searches travel from
	// the cursor. Zero means unbounded.
	MaxScanWidth int
}

// DefaultOptions returns the options used when a host supplies none.
func DefaultOptions() Options {
	return Options{MaxScanWidth: finder.DefaultMaxScanWidth}
}

// Definition describes one registered text object.
type Definition struct {
	ID       ID      `json:"id" yaml:"id"`
	Label    string  `json:"label" yaml:"label"`
	Shortcut string  `json:"shortcut" yaml:"shortcut"`
	Kind     Kind    `json:"-" yaml:"-"`
	Variant  Variant `json:"-" yaml:"-"`
}

// Resolve computes the range of the text object at pos. It reports false when
// the structure the object needs (a bracket pair, a tag, an argument list)
// does not enclose pos.
func (d Definition) Resolve(buf buffer.Buffer, pos buffer.Position, opts Options) (buffer.Range, bool) {
	return d.Kind.resolve(buf, pos, d.Variant, opts)
}

var definitions = []Definition{
	{ID: "inner-word", Label: "inner word", Shortcut: "iw", Kind: WordKind{}, Variant: Inner},
	{ID: "around-word", Label: "around word", Shortcut: "aw", Kind: WordKind{}, Variant: Around},
	{ID: "inner-WORD", Label: "inner WORD", Shortcut: "iW", Kind: WordKind{Big: true}, Variant: Inner},
	{ID: "around-WORD", Label: "around WORD", Shortcut: "aW", Kind: WordKind{Big: true}, Variant: Around},

	{ID: "inner-paren", Label: "inner paren () b", Shortcut: "i( ib", Kind: DelimitedKind{'(', ')'}, Variant: Inner},
	{ID: "around-paren", Label: "around paren () b", Shortcut: "a( ab", Kind: DelimitedKind{'(', ')'}, Variant: Around},
	{ID: "inner-brace", Label: "inner brace {} B", Shortcut: "i{ iB", Kind: DelimitedKind{'{', '}'}, Variant: Inner},
	{ID: "around-brace", Label: "around brace {} B", Shortcut: "a{ aB", Kind: DelimitedKind{'{', '}'}, Variant: Around},
	{ID: "inner-bracket", Label: "inner bracket []", Shortcut: "i[ i]", Kind: DelimitedKind{'[', ']'}, Variant: Inner},
	{ID: "around-bracket", Label: "around bracket []", Shortcut: "a[ a]", Kind: DelimitedKind{'[', ']'}, Variant: Around},
	{ID: "inner-angle", Label: "inner angle <>", Shortcut: "i< i>", Kind: DelimitedKind{'<', '>'}, Variant: Inner},
	{ID: "around-angle", Label: "around angle <>", Shortcut: "a< a>", Kind: DelimitedKind{'<', '>'}, Variant: Around},

	{ID: "inner-double-quote", Label: `inner double quote "`, Shortcut: `i"`, Kind: DelimitedKind{'"', '"'}, Variant: Inner},
	{ID: "around-double-quote", Label: `around double quote "`, Shortcut: `a"`, Kind: DelimitedKind{'"', '"'}, Variant: Around},
	{ID: "inner-single-quote", Label: "inner single quote '", Shortcut: "i'", Kind: DelimitedKind{'\'', '\''}, Variant: Inner},
	{ID: "around-single-quote", Label: "around single quote '", Shortcut: "a'", Kind: DelimitedKind{'\'', '\''}, Variant: Around},
	{ID: "inner-backtick", Label: "inner backtick `", Shortcut: "i`", Kind: DelimitedKind{'`', '`'}, Variant: Inner},
	{ID: "around-backtick", Label: "around backtick `", Shortcut: "a`", Kind: DelimitedKind{'`', '`'}, Variant: Around},

	{ID: "inner-tag", Label: "inner tag t", Shortcut: "it", Kind: TagKind{}, Variant: Inner},
	{ID: "around-tag", Label: "around tag t", Shortcut: "at", Kind: TagKind{}, Variant: Around},

	{ID: "inner-paragraph", Label: "inner paragraph p", Shortcut: "ip", Kind: ParagraphKind{}, Variant: Inner},
	{ID: "around-paragraph", Label: "around paragraph p", Shortcut: "ap", Kind: ParagraphKind{}, Variant: Around},

	{ID: "inner-indent", Label: "inner indent i", Shortcut: "ii", Kind: IndentKind{}, Variant: Inner},
	{ID: "around-indent", Label: "around indent i", Shortcut: "ai", Kind: IndentKind{}, Variant: Around},

	{ID: "inner-argument", Label: "inner argument a", Shortcut: "ia", Kind: ArgumentKind{}, Variant: Inner},
	{ID: "around-argument", Label: "around argument a", Shortcut: "aa", Kind: ArgumentKind{}, Variant: Around},

	{ID: "inner-entire", Label: "inner entire document e", Shortcut: "ie", Kind: EntireDocumentKind{}, Variant: Inner},
	{ID: "around-entire", Label: "around entire document e", Shortcut: "ae", Kind: EntireDocumentKind{}, Variant: Around},
}

var byID = func() map[ID]Definition {
	m := make(map[ID]Definition, len(definitions))
	for _, d := range definitions {
		m[d.ID] = d
	}
	return m
}()

// Definitions returns every registered text object in display order.
// The returned slice is a copy.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition registered under id.
func Lookup(id ID) (Definition, error) {
	d, ok := byID[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownTextObject, id)
	}
	return d, nil
}

// Resolve looks up id and resolves it at pos. The boolean is false when the
// text object has no match at pos; the error is only set for an unknown id.
func Resolve(id ID, buf buffer.Buffer, pos buffer.Position, opts Options) (buffer.Range, bool, error) {
	d, err := Lookup(id)
	if err != nil {
		log.Warn(log.CatResolve, "unknown text object", "id", id)
		return buffer.Range{}, false, err
	}

	r, ok := d.Resolve(buf, pos, opts)
	log.Debug(log.CatResolve, "resolved", "id", id, "pos", pos, "found", ok, "range", r)
	return r, ok, nil
}
