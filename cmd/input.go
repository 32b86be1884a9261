package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/textobjects/internal/buffer"
	"github.com/zjrosen/textobjects/internal/presentation"
	"github.com/zjrosen/textobjects/internal/selection"
	"github.com/zjrosen/textobjects/internal/textobject"
	"github.com/zjrosen/textobjects/internal/tracing"
)

// readDocument loads path, or reads stdin when path is empty or "-".
func readDocument(path string, stdin io.Reader) (*buffer.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- user supplied document path
	}
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return buffer.NewDocument(string(data)), nil
}

// parsePosition parses a zero-based "LINE:COLUMN" pair.
func parsePosition(s string) (line, col int, err error) {
	ls, cs, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid position %q: want LINE:COLUMN", s)
	}
	line, err = strconv.Atoi(strings.TrimSpace(ls))
	if err != nil || line < 0 {
		return 0, 0, fmt.Errorf("invalid position %q: bad line", s)
	}
	col, err = strconv.Atoi(strings.TrimSpace(cs))
	if err != nil || col < 0 {
		return 0, 0, fmt.Errorf("invalid position %q: bad column", s)
	}
	return line, col, nil
}

// documentPositions parses specs and converts them to valid positions in
// doc. With grapheme set, columns count grapheme clusters instead of UTF-16
// code units.
func documentPositions(doc *buffer.Document, specs []string, grapheme bool) ([]buffer.Position, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one --pos is required")
	}
	out := make([]buffer.Position, len(specs))
	for i, s := range specs {
		line, col, err := parsePosition(s)
		if err != nil {
			return nil, err
		}
		if grapheme {
			out[i] = doc.PositionFromGraphemeColumn(line, col)
		} else {
			out[i] = doc.Validate(buffer.Pos(line, col))
		}
	}
	return out, nil
}

// resolveRequest is one resolution run shared by resolve, pick and watch.
type resolveRequest struct {
	def       textobject.Definition
	doc       *buffer.Document
	positions []buffer.Position
	opts      textobject.Options
}

// resolveResults resolves req at every position inside a trace span.
func resolveResults(ctx context.Context, req resolveRequest) []presentation.ResultDTO {
	_, span := tracing.StartResolve(ctx, provider.Tracer(), string(req.def.ID), len(req.positions))
	defer span.End()

	sels := make([]selection.Selection, len(req.positions))
	for i, p := range req.positions {
		sels[i] = selection.At(p)
	}
	results := selection.ResolveAll(req.def, req.doc, sels, req.opts)

	dtos := make([]presentation.ResultDTO, len(results))
	found := 0
	for i, res := range results {
		dtos[i] = presentation.NewResult(req.doc, req.positions[i], res.Range, res.Found)
		if res.Found {
			found++
		}
	}
	span.SetAttributes(attribute.Int(tracing.AttrFoundCount, found))
	return dtos
}

// resultFormatter builds the formatter selected by the shared flags.
func resultFormatter(w io.Writer, f resolveFlags) *presentation.Formatter {
	return presentation.NewFormatter(w).WithFullText(f.full)
}
