package finder

import (
	"regexp"
	"strings"

	"github.com/zjrosen/textobjects/internal/buffer"
)

var tagNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*`)

// TagPair holds the two ranges of a matched element. Inner covers the content
// between the tags, Outer additionally covers both tags.
type TagPair struct {
	Name  string
	Inner buffer.Range
	Outer buffer.Range
}

type tagBounds struct {
	name  string
	start int // offset of '<'
	end   int // offset just past '>'
}

type tagInfo struct {
	name        string
	opening     bool
	selfClosing bool
}

// FindMatchingTag returns the innermost element enclosing pos. Self-closing
// tags are ignored and elements that are opened and closed entirely on one
// side of the cursor are skipped. Both the opening and the closing tag must be
// found.
func FindMatchingTag(buf buffer.Buffer, pos buffer.Position, maxWidth int) (TagPair, bool) {
	open, ok := scanForTag(buf, buf.OffsetAt(pos), Before, "", maxWidth)
	if !ok {
		return TagPair{}, false
	}
	closing, ok := scanForTag(buf, open.end, After, open.name, maxWidth)
	if !ok {
		return TagPair{}, false
	}

	return TagPair{
		Name:  open.name,
		Inner: buffer.OffsetRange{Start: open.end, End: closing.start}.ToRange(buf),
		Outer: buffer.OffsetRange{Start: open.start, End: closing.end}.ToRange(buf),
	}, true
}

// scanForTag walks tag by tag from origin. Scanning backward it tracks the
// closing tags it passes and returns the first opening tag left unmatched.
// Scanning forward it only considers tags named target and returns the first
// closing tag left unmatched.
func scanForTag(buf buffer.Buffer, origin int, dir Direction, target string, maxWidth int) (tagBounds, bool) {
	bracket := func(ch rune) bool { return ch == '>' }
	if dir == After {
		bracket = func(ch rune) bool { return ch == '<' }
	}

	var stack []string
	current := origin
	cur := buffer.NewCursorAt(buf, origin)
	for {
		at, ok := FindNearerOffset(buf, current, bracket, dir, NearerOptions{})
		if !ok {
			return tagBounds{}, false
		}
		current = at + dir.delta()
		cur.MoveTo(current)

		content, ok := FindInsideBalancedOffsets(buf, at+dir.delta(), '<', '>', maxWidth)
		if !ok {
			continue
		}
		info, ok := parseTagContent(strings.TrimSpace(cur.TextByAbsoluteOffset(content.Start, content.End)))
		if !ok || info.selfClosing {
			continue
		}
		bounds := tagBounds{name: info.name, start: content.Start - 1, end: content.End + 1}

		if dir == Before {
			switch {
			case !info.opening:
				stack = append(stack, info.name)
			case len(stack) == 0:
				return bounds, true
			case stack[len(stack)-1] == info.name:
				stack = stack[:len(stack)-1]
			}
			continue
		}

		if info.name != target {
			continue
		}
		switch {
		case info.opening:
			stack = append(stack, info.name)
		case len(stack) == 0:
			return bounds, true
		default:
			stack = stack[:len(stack)-1]
		}
	}
}

// parseTagContent parses the text between '<' and '>'.
func parseTagContent(content string) (tagInfo, bool) {
	if content == "" {
		return tagInfo{}, false
	}

	if rest, ok := strings.CutPrefix(content, "/"); ok {
		name := tagNamePattern.FindString(rest)
		if name == "" {
			return tagInfo{}, false
		}
		return tagInfo{name: name}, true
	}

	body, selfClosing := strings.CutSuffix(content, "/")
	name := tagNamePattern.FindString(body)
	if name == "" {
		return tagInfo{}, false
	}
	return tagInfo{name: name, opening: true, selfClosing: selfClosing}, true
}
