package buffer

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/rivo/uniseg"
)

// Buffer is the read-only view of a text buffer that the engine scans.
// Implementations must clamp out-of-range input instead of failing and must not
// change while a resolution call is running.
type Buffer interface {
	// LineCount returns the number of lines. An empty buffer has one line.
	LineCount() int
	// LineText returns the text of a line without its line terminator.
	LineText(line int) string
	// LineEnd returns the position just past the last character of a line.
	LineEnd(line int) Position
	// Len returns the total length in code units, line terminators included.
	Len() int
	// OffsetAt converts a position to an absolute offset, clamping it first.
	OffsetAt(p Position) int
	// PositionAt converts an absolute offset to a position, clamping it first.
	PositionAt(offset int) Position
	// CharAt returns the character that occupies the code unit at offset.
	// Both halves of a surrogate pair report the combined character.
	CharAt(offset int) (rune, bool)
	// Slice returns the text between two offsets.
	Slice(start, end int) string
}

// Document is an immutable in-memory Buffer built from a string.
//
// It recognises "\n" and "\r\n" as line terminators. A "\r" that precedes "\n"
// belongs to the terminator, so LineText never contains it.
type Document struct {
	units      []uint16
	lineStarts []int
	lineLens   []int
}

var _ Buffer = (*Document)(nil)

// NewDocument builds a Document from text.
func NewDocument(text string) *Document {
	units := utf16.Encode([]rune(text))
	d := &Document{units: units, lineStarts: []int{0}}

	for i, u := range units {
		if u != '\n' {
			continue
		}
		start := d.lineStarts[len(d.lineStarts)-1]
		end := i
		if end > start && units[end-1] == '\r' {
			end--
		}
		d.lineLens = append(d.lineLens, end-start)
		d.lineStarts = append(d.lineStarts, i+1)
	}
	d.lineLens = append(d.lineLens, len(units)-d.lineStarts[len(d.lineStarts)-1])

	return d
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// LineText returns the text of a line without its terminator.
// Returns "" for a line index outside the document.
func (d *Document) LineText(line int) string {
	if line < 0 || line >= d.LineCount() {
		return ""
	}
	start := d.lineStarts[line]
	return d.Slice(start, start+d.lineLens[line])
}

// LineEnd returns the position just past the last character of the line.
func (d *Document) LineEnd(line int) Position {
	line = clampInt(line, 0, d.LineCount()-1)
	return Position{Line: line, Column: d.lineLens[line]}
}

// Len returns the document length in code units.
func (d *Document) Len() int {
	return len(d.units)
}

// Validate clamps p to the nearest position that exists in the document.
func (d *Document) Validate(p Position) Position {
	line := clampInt(p.Line, 0, d.LineCount()-1)
	return Position{Line: line, Column: clampInt(p.Column, 0, d.lineLens[line])}
}

// OffsetAt converts a position to an absolute offset.
func (d *Document) OffsetAt(p Position) int {
	p = d.Validate(p)
	return d.lineStarts[p.Line] + p.Column
}

// PositionAt converts an absolute offset to a position. Offsets inside a
// "\r\n" terminator map to the end of that line.
func (d *Document) PositionAt(offset int) Position {
	offset = clampInt(offset, 0, d.Len())
	// Index of the last line starting at or before offset.
	line := sort.Search(len(d.lineStarts), func(i int) bool { return d.lineStarts[i] > offset }) - 1
	col := min(offset-d.lineStarts[line], d.lineLens[line])
	return Position{Line: line, Column: col}
}

// CharAt returns the character at the code unit offset.
func (d *Document) CharAt(offset int) (rune, bool) {
	if offset < 0 || offset >= len(d.units) {
		return 0, false
	}
	u := rune(d.units[offset])
	switch {
	case utf16.IsSurrogate(u) && u < 0xDC00 && offset+1 < len(d.units):
		if r := utf16.DecodeRune(u, rune(d.units[offset+1])); r != unicode.ReplacementChar {
			return r, true
		}
	case utf16.IsSurrogate(u) && u >= 0xDC00 && offset > 0:
		if r := utf16.DecodeRune(rune(d.units[offset-1]), u); r != unicode.ReplacementChar {
			return r, true
		}
	}
	return u, true
}

// Slice returns the text between two offsets, clamped to the document.
func (d *Document) Slice(start, end int) string {
	start = clampInt(start, 0, d.Len())
	end = clampInt(end, 0, d.Len())
	if end <= start {
		return ""
	}
	return string(utf16.Decode(d.units[start:end]))
}

// Text returns the text covered by r.
func (d *Document) Text(r Range) string {
	o := OffsetRangeFromRange(d, r)
	return d.Slice(o.Start, o.End)
}

// String returns the full document text.
func (d *Document) String() string {
	return d.Slice(0, d.Len())
}

// PositionFromGraphemeColumn converts a column counted in grapheme clusters,
// as a terminal user sees it, to a Position. Columns past the end of the line
// clamp to the line end.
func (d *Document) PositionFromGraphemeColumn(line, graphemeCol int) Position {
	line = clampInt(line, 0, d.LineCount()-1)
	text := d.LineText(line)

	var prefix strings.Builder
	state := -1
	for i := 0; i < graphemeCol && len(text) > 0; i++ {
		var cluster string
		cluster, text, _, state = uniseg.StepString(text, state)
		prefix.WriteString(cluster)
	}
	return d.Validate(Position{Line: line, Column: len(utf16.Encode([]rune(prefix.String())))})
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
