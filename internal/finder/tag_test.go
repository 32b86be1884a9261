package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/textobjects/internal/buffer"
)

func TestFindMatchingTag(t *testing.T) {
	tests := []struct {
		name    string
		content string
		pos     buffer.Position
		inner   string
		outer   string
		tag     string
	}{
		{name: "simple", content: "<div>hello world</div>", pos: buffer.Pos(0, 10), inner: "hello world", outer: "<div>hello world</div>", tag: "div"},
		{name: "nested", content: "<div><span>nested</span></div>", pos: buffer.Pos(0, 12), inner: "nested", outer: "<span>nested</span>", tag: "span"},
		{name: "attributes", content: `<div class="container" id="main">content</div>`, pos: buffer.Pos(0, 35), inner: "content", outer: `<div class="container" id="main">content</div>`, tag: "div"},
		{name: "empty element", content: "<div></div>", pos: buffer.Pos(0, 5), inner: "", outer: "<div></div>", tag: "div"},
		{name: "multiline", content: "<div>\n  <p>paragraph</p>\n</div>", pos: buffer.Pos(1, 5), inner: "paragraph", outer: "<p>paragraph</p>", tag: "p"},
		{name: "skips self-closing", content: "<div><br/><span>content</span></div>", pos: buffer.Pos(0, 18), inner: "content", outer: "<span>content</span>", tag: "span"},
		{name: "skips sibling element", content: "<ul><li>a</li>b</ul>", pos: buffer.Pos(0, 14), inner: "<li>a</li>b", outer: "<ul><li>a</li>b</ul>", tag: "ul"},
		{name: "same name nesting", content: "<div><div>a</div>b</div>", pos: buffer.Pos(0, 17), inner: "<div>a</div>b", outer: "<div><div>a</div>b</div>", tag: "div"},
		{name: "astral attribute", content: "<a title=\"\U0001F600\">x</a>", pos: buffer.Pos(0, 14), inner: "x", outer: "<a title=\"\U0001F600\">x</a>", tag: "a"},
		{name: "hyphenated name", content: "<my-el>x</my-el>", pos: buffer.Pos(0, 7), inner: "x", outer: "<my-el>x</my-el>", tag: "my-el"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := buffer.NewDocument(tc.content)

			pair, ok := FindMatchingTag(d, tc.pos, DefaultMaxScanWidth)
			require.True(t, ok)
			assert.Equal(t, tc.tag, pair.Name)
			assert.Equal(t, tc.inner, d.Text(pair.Inner))
			assert.Equal(t, tc.outer, d.Text(pair.Outer))
		})
	}
}

func TestFindMatchingTag_Absent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		pos     buffer.Position
	}{
		{name: "no tags", content: "plain text", pos: buffer.Pos(0, 3)},
		{name: "missing close", content: "<div>hello", pos: buffer.Pos(0, 7)},
		{name: "missing open", content: "hello</div>", pos: buffer.Pos(0, 2)},
		{name: "only self-closing", content: "a<br/>b", pos: buffer.Pos(0, 6)},
		{name: "invalid name", content: "<1>x</1>", pos: buffer.Pos(0, 3)},
		{name: "empty buffer", content: "", pos: buffer.Pos(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := FindMatchingTag(buffer.NewDocument(tc.content), tc.pos, DefaultMaxScanWidth)
			assert.False(t, ok)
		})
	}
}

func TestParseTagContent(t *testing.T) {
	tests := []struct {
		content string
		want    tagInfo
		ok      bool
	}{
		{content: "div", want: tagInfo{name: "div", opening: true}, ok: true},
		{content: "/div", want: tagInfo{name: "div"}, ok: true},
		{content: "br/", want: tagInfo{name: "br", opening: true, selfClosing: true}, ok: true},
		{content: `a href="x"`, want: tagInfo{name: "a", opening: true}, ok: true},
		{content: "h1", want: tagInfo{name: "h1", opening: true}, ok: true},
		{content: "", ok: false},
		{content: "/", ok: false},
		{content: "9lives", ok: false},
		{content: "!-- comment --", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.content, func(t *testing.T) {
			got, ok := parseTagContent(tc.content)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
