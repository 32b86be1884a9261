package buffer

// Cursor is a position in a Buffer that can be moved and peeked without
// allocating. It sits in the gap between two characters: Peek(-1) is the
// character immediately before it and Peek(1) the character immediately after.
//
// Cursor is a value type. Copying it yields an independent cursor over the same
// buffer, so concurrent resolutions never share scanning state.
type Cursor struct {
	buf    Buffer
	offset int
}

// NewCursor returns a cursor at p, clamped to the buffer.
func NewCursor(buf Buffer, p Position) Cursor {
	return Cursor{buf: buf, offset: buf.OffsetAt(p)}
}

// NewCursorAt returns a cursor at an absolute offset, clamped to the buffer.
func NewCursorAt(buf Buffer, offset int) Cursor {
	return Cursor{buf: buf, offset: clampInt(offset, 0, buf.Len())}
}

// Buffer returns the buffer the cursor reads from.
func (c Cursor) Buffer() Buffer {
	return c.buf
}

// Offset returns the absolute offset of the cursor.
func (c Cursor) Offset() int {
	return c.offset
}

// Position returns the cursor location as a line/column position.
func (c Cursor) Position() Position {
	return c.buf.PositionAt(c.offset)
}

// Len returns the length of the underlying buffer.
func (c Cursor) Len() int {
	return c.buf.Len()
}

// Peek returns the character delta steps away from the cursor. Negative deltas
// look backward (-1 is the previous character), positive deltas look forward
// (1 is the next character). Returns false when the slot is outside the buffer
// or delta is zero.
func (c Cursor) Peek(delta int) (rune, bool) {
	switch {
	case delta < 0:
		return c.buf.CharAt(c.offset + delta)
	case delta > 0:
		return c.buf.CharAt(c.offset + delta - 1)
	}
	return 0, false
}

// Move shifts the cursor by delta code units, clamped to the buffer.
func (c *Cursor) Move(delta int) {
	c.MoveTo(c.offset + delta)
}

// MoveTo places the cursor at an absolute offset, clamped to the buffer.
func (c *Cursor) MoveTo(offset int) {
	c.offset = clampInt(offset, 0, c.buf.Len())
}

// TextByAbsoluteOffset returns the exact text between two absolute offsets.
func (c Cursor) TextByAbsoluteOffset(start, end int) string {
	return c.buf.Slice(start, end)
}
