// Package finder implements the scanning algorithms behind every text object:
// word boundaries, balanced delimiter pairs, markup tags, paragraph and indent
// blocks, and comma separated arguments.
//
// All functions are pure. They read from a buffer.Buffer, allocate their own
// scratch state and never fail: a missing structure is reported with a false
// second return value.
package finder

import (
	"github.com/zjrosen/textobjects/internal/buffer"
	"github.com/zjrosen/textobjects/internal/charclass"
)

// DefaultMaxScanWidth bounds how far a balanced pair search may travel from
// the cursor in either direction.
const DefaultMaxScanWidth = 100000

// Direction selects the scan direction.
type Direction int

const (
	Before Direction = iota
	After
)

func (d Direction) delta() int {
	if d == Before {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d == Before {
		return "before"
	}
	return "after"
}

// Distance selects how far a word boundary search travels.
type Distance int

const (
	// Nearer stops at the first class change, then skips whitespace.
	Nearer Distance = iota
	// Further expands across the whole run the cursor touches.
	Further
)

// NearerOptions bounds FindNearerOffset.
type NearerOptions struct {
	// WithinLine restricts the search to the line the search starts on.
	WithinLine bool
	// MaxWidth caps the distance from the start offset. Zero means unbounded.
	MaxWidth int
}

// FindNearerOffset walks from offset in dir and returns the first gap whose
// neighbour in dir satisfies pred. For Before the match is the character just
// left of the returned offset, for After the character just right of it.
func FindNearerOffset(buf buffer.Buffer, offset int, pred func(rune) bool, dir Direction, opts NearerOptions) (int, bool) {
	cur := buffer.NewCursorAt(buf, offset)
	offset = cur.Offset()
	delta := dir.delta()

	lo, hi := 0, buf.Len()
	if opts.WithinLine {
		line := buf.PositionAt(offset).Line
		lo = buf.OffsetAt(buffer.Pos(line, 0))
		hi = buf.OffsetAt(buf.LineEnd(line))
	} else if opts.MaxWidth > 0 {
		lo = max(0, offset-opts.MaxWidth)
		hi = min(buf.Len(), offset+opts.MaxWidth)
	}

	for lo <= min(offset, offset+delta) && max(offset, offset+delta) <= hi {
		if ch, ok := cur.Peek(delta); ok && pred(ch) {
			return offset, true
		}
		offset += delta
		cur.MoveTo(offset)
	}
	return 0, false
}

// FindWordBoundary moves cur in dir until isBoundary reports a boundary and
// returns where it stopped. The cursor is passed by value, so the caller's
// cursor is left untouched. With no characters left in dir the start position
// is returned.
func FindWordBoundary(cur buffer.Cursor, dist Distance, dir Direction, isBoundary charclass.Boundary) buffer.Position {
	delta := dir.delta()

	skipWhile := func(cond func(rune) bool) {
		for {
			ch, ok := cur.Peek(delta)
			if !ok || !cond(ch) {
				return
			}
			cur.Move(delta)
		}
	}

	// A missing neighbour at the buffer edge behaves like whitespace.
	prev, ok := cur.Peek(-delta)
	if !ok {
		prev = ' '
	}

	switch {
	case dist == Nearer:
		skipWhile(func(ch rune) bool { return !isBoundary(prev, ch) })
		skipWhile(charclass.IsWhitespace)
	case charclass.IsWhitespace(prev):
		skipWhile(charclass.IsWhitespace)
		if next, ok := cur.Peek(delta); ok {
			skipWhile(func(ch rune) bool { return !isBoundary(next, ch) })
		}
	default:
		skipWhile(func(ch rune) bool { return !isBoundary(prev, ch) })
	}

	return cur.Position()
}

// FindInnerWordAtBoundary returns the word (run of one character class) the
// cursor touches. When the cursor sits between two runs it picks a side by
// class priority, preferring the right on a tie. Between two blanks, or in an
// empty buffer, it returns a zero-width range at pos.
func FindInnerWordAtBoundary(buf buffer.Buffer, pos buffer.Position) buffer.Range {
	cur := buffer.NewCursor(buf, pos)
	pos = cur.Position()

	start := FindWordBoundary(cur, Further, Before, charclass.IsCharacterTypeBoundary)
	end := FindWordBoundary(cur, Further, After, charclass.IsCharacterTypeBoundary)
	if start != end {
		return buffer.Range{Start: start, End: end}
	}

	before, okBefore := cur.Peek(-1)
	after, okAfter := cur.Peek(1)
	if !okBefore && !okAfter {
		return buffer.Range{Start: pos, End: pos}
	}

	prioBefore := charclass.Priority(charclass.ClassifyOptional(before, okBefore))
	prioAfter := charclass.Priority(charclass.ClassifyOptional(after, okAfter))
	if prioBefore == 0 && prioAfter == 0 {
		return buffer.Range{Start: pos, End: pos}
	}

	if prioAfter >= prioBefore {
		next := cur
		next.Move(1)
		return buffer.Range{Start: pos, End: FindWordBoundary(next, Further, After, charclass.IsCharacterTypeBoundary)}
	}
	prev := cur
	prev.Move(-1)
	return buffer.Range{Start: FindWordBoundary(prev, Further, Before, charclass.IsCharacterTypeBoundary), End: pos}
}

// FindInnerWORD returns the whitespace delimited run the cursor touches.
// The range is zero-width when the cursor has nothing to expand over.
func FindInnerWORD(buf buffer.Buffer, pos buffer.Position) buffer.Range {
	cur := buffer.NewCursor(buf, pos)
	return buffer.Range{
		Start: FindWordBoundary(cur, Further, Before, charclass.IsWhitespaceBoundary),
		End:   FindWordBoundary(cur, Further, After, charclass.IsWhitespaceBoundary),
	}
}

// AroundBlanks widens a word range with the blanks (spaces and tabs on the
// same line) that follow it, or with the blanks that precede it when none
// follow. A range that already begins or ends on whitespace is returned as is.
func AroundBlanks(buf buffer.Buffer, r buffer.Range) buffer.Range {
	o := buffer.OffsetRangeFromRange(buf, r)
	if o.Len() == 0 {
		return r
	}
	if isWhitespaceAt(buf, o.Start) || isWhitespaceAt(buf, o.End-1) {
		return r
	}

	end := o.End
	for isBlankAt(buf, end) {
		end++
	}
	if end > o.End {
		return buffer.OffsetRange{Start: o.Start, End: end}.ToRange(buf)
	}

	start := o.Start
	for isBlankAt(buf, start-1) {
		start--
	}
	return buffer.OffsetRange{Start: start, End: o.End}.ToRange(buf)
}

// AdjacentPosition returns the position one code unit away from pos in dir,
// clamped to the buffer.
func AdjacentPosition(buf buffer.Buffer, dir Direction, pos buffer.Position) buffer.Position {
	return buf.PositionAt(buf.OffsetAt(pos) + dir.delta())
}

// DocumentStart returns the first position of the buffer.
func DocumentStart(buffer.Buffer) buffer.Position {
	return buffer.Pos(0, 0)
}

// DocumentEnd returns the end of the last line of the buffer.
func DocumentEnd(buf buffer.Buffer) buffer.Position {
	return buf.LineEnd(buf.LineCount() - 1)
}

func isWhitespaceAt(buf buffer.Buffer, offset int) bool {
	ch, ok := buf.CharAt(offset)
	return ok && charclass.IsWhitespace(ch)
}

func isBlankAt(buf buffer.Buffer, offset int) bool {
	ch, ok := buf.CharAt(offset)
	return ok && (ch == ' ' || ch == '\t')
}
