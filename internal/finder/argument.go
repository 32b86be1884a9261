package finder

import "github.com/zjrosen/textobjects/internal/buffer"

// ArgumentRanges describes one comma separated argument. Inner is the trimmed
// argument body. Outer adds one adjacent comma: the trailing one for the first
// argument of several, the leading one for every other argument.
type ArgumentRanges struct {
	Inner buffer.OffsetRange
	Outer buffer.OffsetRange
}

var closerOf = map[rune]rune{'(': ')', '[': ']', '{': '}'}

// FindArgumentContainer returns the inner range of the tightest () or {} pair
// enclosing offset. A paren pair wins a tie.
func FindArgumentContainer(buf buffer.Buffer, offset int, maxWidth int) (buffer.OffsetRange, bool) {
	paren, okParen := FindInsideBalancedOffsets(buf, offset, '(', ')', maxWidth)
	brace, okBrace := FindInsideBalancedOffsets(buf, offset, '{', '}', maxWidth)

	switch {
	case okParen && okBrace:
		if paren.Len() <= brace.Len() {
			return paren, true
		}
		return brace, true
	case okParen:
		return paren, true
	case okBrace:
		return brace, true
	}
	return buffer.OffsetRange{}, false
}

// FindAllArgumentRanges splits the interior of container at top level commas.
// Commas inside quoted strings or nested brackets do not separate arguments.
func FindAllArgumentRanges(buf buffer.Buffer, container buffer.OffsetRange) []ArgumentRanges {
	cur := buffer.NewCursorAt(buf, container.Start)
	end := container.End

	var commas []int
	for cur.Offset() < end {
		ch, _ := cur.Peek(1)

		switch ch {
		case '"', '\'':
			cur.Move(1)
			for cur.Offset() < end {
				c, _ := cur.Peek(1)
				if c == '\\' {
					cur.Move(2)
					continue
				}
				cur.Move(1)
				if c == ch {
					break
				}
			}
			continue
		case '(', '[', '{':
			closer := closerOf[ch]
			depth := 1
			cur.Move(1)
			for cur.Offset() < end && depth > 0 {
				c, _ := cur.Peek(1)
				if c == ch {
					depth++
				} else if c == closer {
					depth--
				}
				cur.Move(1)
			}
			continue
		case ',':
			commas = append(commas, cur.Offset())
		}
		cur.Move(1)
	}

	boundaries := make([]int, 0, len(commas)+2)
	boundaries = append(boundaries, container.Start-1)
	boundaries = append(boundaries, commas...)
	boundaries = append(boundaries, end)

	args := make([]ArgumentRanges, 0, len(boundaries)-1)
	for i := 0; i < len(boundaries)-1; i++ {
		left, right := boundaries[i], boundaries[i+1]

		innerStart, innerEnd := left+1, right
		for innerStart < innerEnd && isWhitespaceAt(buf, innerStart) {
			innerStart++
		}
		for innerEnd > innerStart && isWhitespaceAt(buf, innerEnd-1) {
			innerEnd--
		}

		first, lastArg := i == 0, i == len(boundaries)-2
		outerStart, outerEnd := left+1, innerEnd
		if first && !lastArg {
			outerEnd = right + 1
		} else if !first {
			outerStart = left
		}

		args = append(args, ArgumentRanges{
			Inner: buffer.OffsetRange{Start: innerStart, End: innerEnd},
			Outer: buffer.OffsetRange{Start: outerStart, End: outerEnd},
		})
	}
	return args
}

// FindCurrentArgument returns the argument whose body contains pos, both ends
// inclusive. With includeComma the outer range is returned. It reports false
// outside any container or when pos sits in the blanks between arguments.
func FindCurrentArgument(buf buffer.Buffer, pos buffer.Position, includeComma bool, maxWidth int) (buffer.Range, bool) {
	offset := buf.OffsetAt(pos)
	container, ok := FindArgumentContainer(buf, offset, maxWidth)
	if !ok {
		return buffer.Range{}, false
	}

	for _, arg := range FindAllArgumentRanges(buf, container) {
		if !arg.Inner.Contains(offset) {
			continue
		}
		if includeComma {
			return arg.Outer.ToRange(buf), true
		}
		return arg.Inner.ToRange(buf), true
	}
	return buffer.Range{}, false
}
