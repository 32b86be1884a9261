// Package selection applies a text object to a set of editor selections, the
// way a host editor does when the user triggers a text object command.
package selection

import (
	"github.com/sourcegraph/conc/iter"

	"github.com/zjrosen/textobjects/internal/buffer"
	"github.com/zjrosen/textobjects/internal/textobject"
)

// Selection is an editor selection. Active is the end the cursor sits on and
// is where text objects are resolved.
type Selection struct {
	Anchor buffer.Position `json:"anchor" yaml:"anchor"`
	Active buffer.Position `json:"active" yaml:"active"`
}

// At returns a collapsed selection at p.
func At(p buffer.Position) Selection {
	return Selection{Anchor: p, Active: p}
}

// Range returns the selection as an ordered range.
func (s Selection) Range() buffer.Range {
	return buffer.NewRange(s.Anchor, s.Active)
}

// FromRange returns the selection covering r with the cursor at its end.
func FromRange(r buffer.Range) Selection {
	return Selection{Anchor: r.Start, Active: r.End}
}

// Result is the outcome of resolving a text object at one selection.
type Result struct {
	Range buffer.Range
	Found bool
}

// ResolveAll resolves def at the active end of every selection. Selections are
// independent, so they are resolved in parallel; results keep input order.
func ResolveAll(def textobject.Definition, buf buffer.Buffer, sels []Selection, opts textobject.Options) []Result {
	return iter.Map(sels, func(s *Selection) Result {
		r, ok := def.Resolve(buf, s.Active, opts)
		return Result{Range: r, Found: ok}
	})
}

// Apply resolves def at every selection and returns the new selections. A
// selection is replaced only when the text object matched a non-empty range;
// otherwise the original selection is kept.
func Apply(def textobject.Definition, buf buffer.Buffer, sels []Selection, opts textobject.Options) []Selection {
	results := ResolveAll(def, buf, sels, opts)

	out := make([]Selection, len(sels))
	for i, res := range results {
		if res.Found && !res.Range.IsEmpty() {
			out[i] = FromRange(res.Range)
			continue
		}
		out[i] = sels[i]
	}
	return out
}
