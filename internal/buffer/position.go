// Package buffer provides the read-only text model the text object engine scans:
// line/column positions, ranges, absolute offsets and a lightweight cursor.
//
// Columns and offsets are measured in UTF-16 code units, the convention used by
// LSP and most editor hosts. A character outside the Basic Multilingual Plane
// therefore occupies two offsets.
package buffer

import "fmt"

// Position is a zero-indexed line and column. Column counts UTF-16 code units
// from the start of the line.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Pos is shorthand for constructing a Position.
func Pos(line, column int) Position {
	return Position{Line: line, Column: column}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// Before returns true if p comes before other in document order.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other in document order.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// Range is a span between two positions with Start <= End in document order.
type Range struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// NewRange returns the range spanning a and b, swapping them if needed so that
// Start never comes after End.
func NewRange(a, b Position) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// IsEmpty returns true for a zero-width range.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if p lies within the range, both ends inclusive.
func (r Range) Contains(p Position) bool {
	return !p.Before(r.Start) && !p.After(r.End)
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// OffsetRange is a span of absolute offsets into the whole buffer with
// Start <= End. It is the working form used while scanning.
type OffsetRange struct {
	Start int
	End   int
}

// NewOffsetRange returns the offset range spanning a and b in ascending order.
func NewOffsetRange(a, b int) OffsetRange {
	if b < a {
		a, b = b, a
	}
	return OffsetRange{Start: a, End: b}
}

// OffsetRangeFromRange converts a Range to offsets using buf.
func OffsetRangeFromRange(buf Buffer, r Range) OffsetRange {
	return NewOffsetRange(buf.OffsetAt(r.Start), buf.OffsetAt(r.End))
}

// Len returns the width of the range in code units.
func (o OffsetRange) Len() int {
	return o.End - o.Start
}

// Contains returns true if offset lies within the range, both ends inclusive.
func (o OffsetRange) Contains(offset int) bool {
	return o.Start <= offset && offset <= o.End
}

// ToRange converts the offsets back into positions using buf.
func (o OffsetRange) ToRange(buf Buffer) Range {
	return Range{Start: buf.PositionAt(o.Start), End: buf.PositionAt(o.End)}
}
