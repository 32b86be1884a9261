package server

import (
	"github.com/zjrosen/textobjects/internal/buffer"
	"github.com/zjrosen/textobjects/internal/selection"
	"github.com/zjrosen/textobjects/internal/textobject"
)

// Methods understood by the server.
const (
	MethodResolve = "resolve"
	MethodApply   = "apply"
	MethodList    = "list"
	MethodFilter  = "filter"
)

// Request is one line read from the client.
type Request struct {
	ID         string `json:"id,omitempty"`
	Method     string `json:"method"`
	TextObject string `json:"text_object,omitempty"`

	// One of Path and Text names the document. Text wins when both are set.
	Path string  `json:"path,omitempty"`
	Text *string `json:"text,omitempty"`

	Positions        []buffer.Position     `json:"positions,omitempty"`
	Selections       []selection.Selection `json:"selections,omitempty"` // apply only
	IncludeDelimiter bool                  `json:"include_delimiter,omitempty"`

	Query string `json:"query,omitempty"` // filter only
}

// Response answers one Request. Ranges has one entry per requested
// position; a null entry means the text object has no match there.
// Selections has one entry per requested selection: the text object's range,
// or the selection unchanged when nothing non-empty matched.
type Response struct {
	ID          string                  `json:"id"`
	Ranges      []*buffer.Range         `json:"ranges,omitempty"`
	Selections  []selection.Selection   `json:"selections,omitempty"`
	Definitions []textobject.Definition `json:"definitions,omitempty"`
	Error       string                  `json:"error,omitempty"`
}
