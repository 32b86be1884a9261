package finder

import (
	"strings"

	"github.com/zjrosen/textobjects/internal/buffer"
)

// TabWidth is the number of columns a tab counts for when measuring indent.
const TabWidth = 4

// FindInnerParagraph returns the run of non-blank lines containing pos,
// ending at the start of the following line. When the run reaches the last
// line it ends at that line's end instead. On a blank line it returns that
// line and its terminator.
func FindInnerParagraph(buf buffer.Buffer, pos buffer.Position) buffer.Range {
	line := buf.PositionAt(buf.OffsetAt(pos)).Line
	if isBlankLine(buf, line) {
		return blankLineRange(buf, line)
	}

	last := buf.LineCount() - 1
	startLine, endLine := paragraphLines(buf, line)

	end := buf.LineEnd(endLine)
	if endLine < last {
		end = buffer.Pos(endLine+1, 0)
	}
	return buffer.Range{Start: buffer.Pos(startLine, 0), End: end}
}

// FindAroundParagraph is FindInnerParagraph plus the single blank line that
// follows the paragraph, if any.
func FindAroundParagraph(buf buffer.Buffer, pos buffer.Position) buffer.Range {
	line := buf.PositionAt(buf.OffsetAt(pos)).Line
	if isBlankLine(buf, line) {
		return blankLineRange(buf, line)
	}

	last := buf.LineCount() - 1
	startLine, _ := paragraphLines(buf, line)
	start := buffer.Pos(startLine, 0)

	blank, ok := findBlankLine(buf, After, line)
	switch {
	case !ok:
		return buffer.Range{Start: start, End: buf.LineEnd(last)}
	case blank < last:
		return buffer.Range{Start: start, End: buffer.Pos(blank+1, 0)}
	default:
		return buffer.Range{Start: start, End: buffer.Pos(blank, 0)}
	}
}

// FindIndentBlock returns the contiguous lines around pos whose indent is at
// least the indent of the cursor line. The block never crosses a blank line.
func FindIndentBlock(buf buffer.Buffer, pos buffer.Position) buffer.Range {
	line := buf.PositionAt(buf.OffsetAt(pos)).Line
	if isBlankLine(buf, line) {
		return blankLineRange(buf, line)
	}

	last := buf.LineCount() - 1
	base := indentLevel(buf.LineText(line))

	startLine := line
	for startLine > 0 && !isBlankLine(buf, startLine-1) && indentLevel(buf.LineText(startLine-1)) >= base {
		startLine--
	}
	endLine := line
	for endLine < last && !isBlankLine(buf, endLine+1) && indentLevel(buf.LineText(endLine+1)) >= base {
		endLine++
	}

	end := buf.LineEnd(endLine)
	if endLine < last {
		end = buffer.Pos(endLine+1, 0)
	}
	return buffer.Range{Start: buffer.Pos(startLine, 0), End: end}
}

func paragraphLines(buf buffer.Buffer, line int) (int, int) {
	startLine, endLine := 0, buf.LineCount()-1
	if blank, ok := findBlankLine(buf, Before, line); ok {
		startLine = blank + 1
	}
	if blank, ok := findBlankLine(buf, After, line); ok {
		endLine = blank - 1
	}
	return startLine, endLine
}

// blankLineRange covers a single line and its terminator. The last line has
// no terminator, so the range stops at its end.
func blankLineRange(buf buffer.Buffer, line int) buffer.Range {
	if line < buf.LineCount()-1 {
		return buffer.Range{Start: buffer.Pos(line, 0), End: buffer.Pos(line+1, 0)}
	}
	return buffer.Range{Start: buffer.Pos(line, 0), End: buf.LineEnd(line)}
}

func findBlankLine(buf buffer.Buffer, dir Direction, from int) (int, bool) {
	delta := dir.delta()
	for line := from + delta; line >= 0 && line < buf.LineCount(); line += delta {
		if isBlankLine(buf, line) {
			return line, true
		}
	}
	return 0, false
}

func isBlankLine(buf buffer.Buffer, line int) bool {
	return strings.TrimSpace(buf.LineText(line)) == ""
}

func indentLevel(text string) int {
	indent := 0
	for _, ch := range text {
		switch ch {
		case ' ':
			indent++
		case '\t':
			indent += TabWidth
		default:
			return indent
		}
	}
	return indent
}
