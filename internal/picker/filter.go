// Package picker provides the interactive text object picker: a filterable
// list that lets the user choose a text object when no identifier is given.
package picker

import (
	"strings"

	"github.com/zjrosen/textobjects/internal/textobject"
)

// Item is one selectable entry.
type Item struct {
	ID       textobject.ID
	Label    string // e.g. "inner paren () b"
	Shortcut string // space separated mnemonics, e.g. "i( ib"
}

// ItemsFromDefinitions builds picker items from registry definitions.
func ItemsFromDefinitions(defs []textobject.Definition) []Item {
	items := make([]Item, len(defs))
	for i, d := range defs {
		items[i] = Item{ID: d.ID, Label: d.Label, Shortcut: d.Shortcut}
	}
	return items
}

// Filter narrows items to those matching query in two phases. First, items
// with a shortcut token that starts with query, compared case-sensitively so
// that "iw" and "iW" stay distinct. If nothing matches, items whose label and
// shortcut contain query, ignoring case. An empty query keeps every item.
func Filter(items []Item, query string) []Item {
	if query == "" {
		return items
	}

	var matches []Item
	for _, item := range items {
		for _, s := range strings.Fields(item.Shortcut) {
			if strings.HasPrefix(s, query) {
				matches = append(matches, item)
				break
			}
		}
	}
	if len(matches) > 0 {
		return matches
	}

	q := strings.ToLower(query)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label+" "+item.Shortcut), q) {
			matches = append(matches, item)
		}
	}
	return matches
}
