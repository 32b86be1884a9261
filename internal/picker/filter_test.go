package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/textobjects/internal/textobject"
)

func allItems() []Item {
	return ItemsFromDefinitions(textobject.Definitions())
}

func ids(items []Item) []textobject.ID {
	out := make([]textobject.ID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestItemsFromDefinitions(t *testing.T) {
	defs := textobject.Definitions()
	items := ItemsFromDefinitions(defs)
	require.Len(t, items, len(defs))
	for i, d := range defs {
		assert.Equal(t, d.ID, items[i].ID)
		assert.Equal(t, d.Label, items[i].Label)
		assert.Equal(t, d.Shortcut, items[i].Shortcut)
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []textobject.ID
	}{
		{name: "exact shortcut", query: "iw", want: []textobject.ID{"inner-word"}},
		{name: "shortcut is case sensitive", query: "iW", want: []textobject.ID{"inner-WORD"}},
		{name: "second shortcut token", query: "ib", want: []textobject.ID{"inner-paren"}},
		{name: "uppercase alias", query: "aB", want: []textobject.ID{"around-brace"}},
		{name: "symbol shortcut", query: "a\"", want: []textobject.ID{"around-double-quote"}},
		{name: "label fallback", query: "paren", want: []textobject.ID{"inner-paren", "around-paren"}},
		{name: "label fallback ignores case", query: "TAG", want: []textobject.ID{"inner-tag", "around-tag"}},
		{
			name:  "label fallback spans words",
			query: "QUOTE",
			want: []textobject.ID{
				"inner-double-quote", "around-double-quote",
				"inner-single-quote", "around-single-quote",
			},
		},
		{name: "indent shortcut", query: "ai", want: []textobject.ID{"around-indent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ids(Filter(allItems(), tt.query)))
		})
	}
}

func TestFilter_PrefixKeepsRegistryOrder(t *testing.T) {
	got := Filter(allItems(), "i")
	require.Len(t, got, 14)
	assert.Equal(t, textobject.ID("inner-word"), got[0].ID)
	assert.Equal(t, textobject.ID("inner-entire"), got[len(got)-1].ID)
	for _, it := range got {
		assert.Contains(t, string(it.ID), "inner-")
	}
}

func TestFilter_EmptyQueryKeepsAll(t *testing.T) {
	items := allItems()
	assert.Equal(t, items, Filter(items, ""))
}

func TestFilter_NoMatch(t *testing.T) {
	assert.Empty(t, Filter(allItems(), "zzz"))
}

func TestFilter_PrefixPhaseWinsOverLabel(t *testing.T) {
	items := []Item{
		{ID: "a", Label: "ip inside the label", Shortcut: "zz"},
		{ID: "b", Label: "other", Shortcut: "ip"},
	}
	assert.Equal(t, []textobject.ID{"b"}, ids(Filter(items, "ip")))
}
