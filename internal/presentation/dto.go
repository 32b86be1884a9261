package presentation

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/textobjects/internal/buffer"
	"github.com/zjrosen/textobjects/internal/textobject"
)

// DefinitionDTO is a registry entry for export.
type DefinitionDTO struct {
	ID       string `json:"id" yaml:"id"`
	Label    string `json:"label" yaml:"label"`
	Shortcut string `json:"shortcut" yaml:"shortcut"`
	Kind     string `json:"kind" yaml:"kind"`
	Variant  string `json:"variant" yaml:"variant"`
}

// FromDefinitions converts registry definitions to DTOs.
func FromDefinitions(defs []textobject.Definition) []DefinitionDTO {
	out := make([]DefinitionDTO, len(defs))
	for i, d := range defs {
		out[i] = DefinitionDTO{
			ID:       string(d.ID),
			Label:    d.Label,
			Shortcut: d.Shortcut,
			Kind:     d.Kind.Name(),
			Variant:  d.Variant.String(),
		}
	}
	return out
}

// ResultDTO is the resolution at one requested position. Range is nil when
// the text object has no match there.
type ResultDTO struct {
	Position buffer.Position `json:"position"`
	Range    *buffer.Range   `json:"range"`
	Text     string          `json:"text,omitempty"`
}

// NewResult builds a ResultDTO, copying the matched text out of doc.
func NewResult(doc *buffer.Document, pos buffer.Position, r buffer.Range, found bool) ResultDTO {
	if !found {
		return ResultDTO{Position: pos}
	}
	return ResultDTO{Position: pos, Range: &r, Text: doc.Text(r)}
}

// Preview renders text on one line, escaping line breaks and tabs, truncated
// to width terminal cells. A width of zero or less disables truncation.
func Preview(text string, width int) string {
	s := strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\t", `\t`).Replace(text)
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
