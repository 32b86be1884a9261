// Package presentation renders registry listings and resolution results for
// the command line.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatTable    = "table"
	FormatMarkdown = "markdown"
)

// DefaultPreviewWidth is the preview width used by text output.
const DefaultPreviewWidth = 60

// Formatter handles output formatting
type Formatter struct {
	writer       io.Writer
	previewWidth int
	fullText     bool
	markdown     *Renderer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer:       writer,
		previewWidth: DefaultPreviewWidth,
	}
}

// WithPreviewWidth sets the text preview width; zero disables truncation.
func (f *Formatter) WithPreviewWidth(width int) *Formatter {
	f.previewWidth = width
	return f
}

// WithFullText makes text output print the whole selected text, indented,
// below each range line.
func (f *Formatter) WithFullText(full bool) *Formatter {
	f.fullText = full
	return f
}

// FormatDefinitions writes the registry in the given format.
func (f *Formatter) FormatDefinitions(defs []DefinitionDTO, format string) error {
	switch format {
	case FormatJSON:
		return f.encodeJSON(defs)
	case FormatYAML:
		enc := yaml.NewEncoder(f.writer)
		enc.SetIndent(2)
		if err := enc.Encode(defs); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatTable, "":
		_, err := fmt.Fprintln(f.writer, definitionsTable(defs))
		return err
	case FormatMarkdown:
		if f.markdown == nil {
			r, err := NewRenderer(80)
			if err != nil {
				return fmt.Errorf("creating markdown renderer: %w", err)
			}
			f.markdown = r
		}
		out, err := f.markdown.Render(DefinitionsMarkdown(defs))
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
		_, err = io.WriteString(f.writer, out)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// FormatResults writes resolution results, one per requested position.
// Text output is "start-end<TAB>preview" per line, or "<absent>".
func (f *Formatter) FormatResults(results []ResultDTO, format string) error {
	switch format {
	case FormatJSON:
		return f.encodeJSON(results)
	case FormatText, "":
		for _, res := range results {
			if err := f.writeResultLine(res); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func (f *Formatter) writeResultLine(res ResultDTO) error {
	if res.Range == nil {
		_, err := fmt.Fprintln(f.writer, absent)
		return err
	}
	if !f.fullText {
		_, err := fmt.Fprintln(f.writer, res.Range.String()+"\t"+Preview(res.Text, f.previewWidth))
		return err
	}
	_, err := fmt.Fprintf(f.writer, "%s\n%s\n", res.Range, indent.String(res.Text, 2))
	return err
}

// FormatChanges writes, per position, how the selected text changed between
// two resolutions of the same positions. Same text at a new range is reported
// as moved.
func (f *Formatter) FormatChanges(before, after []ResultDTO) error {
	for i, cur := range after {
		var prev ResultDTO
		if i < len(before) {
			prev = before[i]
		}

		label := absent
		if cur.Range != nil {
			label = cur.Range.String()
		}
		change := "(unchanged)"
		switch {
		case prev.Text != cur.Text || (prev.Range == nil) != (cur.Range == nil):
			change = Preview(SelectionDiff(prev.Text, cur.Text), 0)
		case prev.Range != nil && *prev.Range != *cur.Range:
			change = "(moved from " + prev.Range.String() + ")"
		}
		if _, err := fmt.Fprintln(f.writer, label+"\t"+change); err != nil {
			return err
		}
	}
	return nil
}

const absent = "<absent>"

func (f *Formatter) encodeJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func definitionsTable(defs []DefinitionDTO) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, len(defs))
	for i, d := range defs {
		rows[i] = []string{d.ID, d.Label, d.Shortcut}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "LABEL", "SHORTCUT").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// DefinitionsMarkdown renders the registry as a markdown table.
func DefinitionsMarkdown(defs []DefinitionDTO) string {
	var b strings.Builder
	b.WriteString("# Text objects\n\n")
	b.WriteString("| ID | Label | Shortcut |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, d := range defs {
		fmt.Fprintf(&b, "| `%s` | %s | %s |\n", d.ID, escapeCell(d.Label), codeSpans(d.Shortcut))
	}
	return b.String()
}

// escapeCell escapes characters that would break a markdown table cell.
func escapeCell(s string) string {
	return strings.NewReplacer("|", `\|`, "`", "\\`", "<", `\<`).Replace(s)
}

// codeSpans wraps each space separated shortcut in a code span. Shortcuts
// containing a backtick use a double backtick fence.
func codeSpans(shortcut string) string {
	fields := strings.Fields(shortcut)
	for i, s := range fields {
		if strings.Contains(s, "`") {
			fields[i] = "`` " + s + " ``"
		} else {
			fields[i] = "`" + s + "`"
		}
	}
	return strings.Join(fields, " ")
}
