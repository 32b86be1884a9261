package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zjrosen/textobjects/internal/buffer"
)

func TestFindInnerParagraph(t *testing.T) {
	tests := []struct {
		name    string
		content string
		pos     buffer.Position
		want    string
	}{
		{name: "middle paragraph", content: "first paragraph\nstill first\n\nsecond paragraph\nstill second\n\nthird paragraph", pos: buffer.Pos(3, 5), want: "second paragraph\nstill second\n"},
		{name: "first paragraph", content: "first paragraph\nstill first\n\nsecond paragraph", pos: buffer.Pos(0, 0), want: "first paragraph\nstill first\n"},
		{name: "last paragraph", content: "first paragraph\n\nlast paragraph\nstill last", pos: buffer.Pos(2, 5), want: "last paragraph\nstill last"},
		{name: "single line paragraph", content: "first\n\nsingle line\n\nlast", pos: buffer.Pos(2, 3), want: "single line\n"},
		{name: "whole document", content: "line 1\nline 2\nline 3", pos: buffer.Pos(1, 3), want: "line 1\nline 2\nline 3"},
		{name: "blank line", content: "first\n\nsecond", pos: buffer.Pos(1, 0), want: "\n"},
		{name: "whitespace only line is blank", content: "a\n  \t\nb", pos: buffer.Pos(0, 0), want: "a\n"},
		{name: "several blank lines", content: "first\n\n\nsecond", pos: buffer.Pos(0, 0), want: "first\n"},
		{name: "empty document", content: "", pos: buffer.Pos(0, 0), want: ""},
		{name: "blank last line", content: "a\n  ", pos: buffer.Pos(1, 1), want: "  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := buffer.NewDocument(tc.content)
			assert.Equal(t, tc.want, d.Text(FindInnerParagraph(d, tc.pos)))
		})
	}
}

func TestFindAroundParagraph(t *testing.T) {
	tests := []struct {
		name    string
		content string
		pos     buffer.Position
		want    string
	}{
		{name: "middle paragraph", content: "first paragraph\nstill first\n\nsecond paragraph\nstill second\n\nthird paragraph", pos: buffer.Pos(3, 5), want: "second paragraph\nstill second\n\n"},
		{name: "first paragraph", content: "first paragraph\nstill first\n\nsecond paragraph", pos: buffer.Pos(0, 0), want: "first paragraph\nstill first\n\n"},
		{name: "last paragraph", content: "first paragraph\n\nlast paragraph\nstill last", pos: buffer.Pos(2, 5), want: "last paragraph\nstill last"},
		{name: "one trailing blank only", content: "first\n\n\nsecond", pos: buffer.Pos(0, 0), want: "first\n\n"},
		{name: "trailing blank is last line", content: "text\n", pos: buffer.Pos(0, 2), want: "text\n"},
		{name: "empty document", content: "", pos: buffer.Pos(0, 0), want: ""},
		{name: "blank line", content: "\n\n\n", pos: buffer.Pos(1, 0), want: "\n"},
		{name: "single line", content: "single line", pos: buffer.Pos(0, 5), want: "single line"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := buffer.NewDocument(tc.content)
			assert.Equal(t, tc.want, d.Text(FindAroundParagraph(d, tc.pos)))
		})
	}
}

func TestFindIndentBlock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		pos     buffer.Position
		want    string
	}{
		{
			name:    "same indent level",
			content: "function foo() {\n    const a = 1;\n    const b = 2;\n    const c = 3;\n}",
			pos:     buffer.Pos(2, 10),
			want:    "    const a = 1;\n    const b = 2;\n    const c = 3;\n",
		},
		{
			name:    "nested block",
			content: "if (true) {\n    if (nested) {\n        deep1();\n        deep2();\n    }\n}",
			pos:     buffer.Pos(2, 10),
			want:    "        deep1();\n        deep2();\n",
		},
		{
			name:    "stops at blank line",
			content: "    line1\n    line2\n\n    line3\n    line4",
			pos:     buffer.Pos(0, 5),
			want:    "    line1\n    line2\n",
		},
		{
			name:    "stops at lower indent",
			content: "def foo():\n    inner1\n    inner2\nouter",
			pos:     buffer.Pos(1, 5),
			want:    "    inner1\n    inner2\n",
		},
		{
			name:    "single indented line",
			content: "top\n    single\nbottom",
			pos:     buffer.Pos(1, 5),
			want:    "    single\n",
		},
		{
			name:    "blank cursor line",
			content: "line1\n\nline2",
			pos:     buffer.Pos(1, 0),
			want:    "\n",
		},
		{
			name:    "tabs",
			content: "function() {\n\tindented1\n\tindented2\n}",
			pos:     buffer.Pos(1, 5),
			want:    "\tindented1\n\tindented2\n",
		},
		{
			name:    "tab equals four spaces",
			content: "x\n\tone\n    two\n  three",
			pos:     buffer.Pos(2, 5),
			want:    "\tone\n    two\n",
		},
		{
			name:    "includes deeper children",
			content: "class Foo:\n    def bar(self):\n        pass\n    def baz(self):\n        pass",
			pos:     buffer.Pos(1, 5),
			want:    "    def bar(self):\n        pass\n    def baz(self):\n        pass",
		},
		{
			name:    "top level",
			content: "line1\nline2\nline3",
			pos:     buffer.Pos(1, 2),
			want:    "line1\nline2\nline3",
		},
		{
			name:    "empty document",
			content: "",
			pos:     buffer.Pos(0, 0),
			want:    "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := buffer.NewDocument(tc.content)
			assert.Equal(t, tc.want, d.Text(FindIndentBlock(d, tc.pos)))
		})
	}
}

func TestIndentLevel(t *testing.T) {
	assert.Equal(t, 0, indentLevel("abc"))
	assert.Equal(t, 2, indentLevel("  abc"))
	assert.Equal(t, 4, indentLevel("\tabc"))
	assert.Equal(t, 6, indentLevel(" \t x"))
	assert.Equal(t, 3, indentLevel("   "))
}
