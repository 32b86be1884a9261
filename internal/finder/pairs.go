package finder

import "github.com/zjrosen/textobjects/internal/buffer"

// FindInsideBalancedPairs returns the inner range of the innermost open/close
// pair enclosing pos: from just after open to just before close. Nested pairs
// between the cursor and a candidate delimiter are skipped. When open equals
// close, as with quotes, the nearest delimiter on each side is used.
//
// maxWidth caps the scan distance from pos in each direction; zero means
// unbounded.
func FindInsideBalancedPairs(buf buffer.Buffer, pos buffer.Position, open, close rune, maxWidth int) (buffer.Range, bool) {
	o, ok := FindInsideBalancedOffsets(buf, buf.OffsetAt(pos), open, close, maxWidth)
	if !ok {
		return buffer.Range{}, false
	}
	return o.ToRange(buf), true
}

// FindAroundBalancedPairs is FindInsideBalancedPairs widened by one position
// on each side, so that both delimiters are included.
func FindAroundBalancedPairs(buf buffer.Buffer, pos buffer.Position, open, close rune, maxWidth int) (buffer.Range, bool) {
	inner, ok := FindInsideBalancedPairs(buf, pos, open, close, maxWidth)
	if !ok {
		return buffer.Range{}, false
	}
	return buffer.Range{
		Start: AdjacentPosition(buf, Before, inner.Start),
		End:   AdjacentPosition(buf, After, inner.End),
	}, true
}

// FindInsideBalancedOffsets is FindInsideBalancedPairs in absolute offsets.
func FindInsideBalancedOffsets(buf buffer.Buffer, offset int, open, close rune, maxWidth int) (buffer.OffsetRange, bool) {
	offset = buffer.NewCursorAt(buf, offset).Offset()

	start, ok := scanBalanced(buf, offset, open, close, Before, maxWidth)
	if !ok {
		return buffer.OffsetRange{}, false
	}
	end, ok := scanBalanced(buf, offset, close, open, After, maxWidth)
	if !ok {
		return buffer.OffsetRange{}, false
	}
	return buffer.OffsetRange{Start: start, End: end}, true
}

// scanBalanced walks from origin in dir looking for target. Every counter
// character passed on the way opens a nested pair that the next target closes
// instead of ending the search.
func scanBalanced(buf buffer.Buffer, origin int, target, counter rune, dir Direction, maxWidth int) (int, bool) {
	cur := buffer.NewCursorAt(buf, origin)
	delta := dir.delta()

	lo, hi := 0, buf.Len()
	if maxWidth > 0 {
		lo = max(0, origin-maxWidth)
		hi = min(buf.Len(), origin+maxWidth)
	}

	depth := 0
	for {
		next := cur.Offset() + delta
		if next < lo || next > hi {
			return 0, false
		}
		ch, ok := cur.Peek(delta)
		if !ok {
			return 0, false
		}
		switch {
		case ch == target && (target == counter || depth == 0):
			return cur.Offset(), true
		case ch == target:
			depth--
		case ch == counter:
			depth++
		}
		cur.Move(delta)
	}
}
