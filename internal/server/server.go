// Package server answers text object requests over a JSON-lines stream, one
// request object per input line and one response object per output line.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/textobjects/internal/buffer"
	"github.com/zjrosen/textobjects/internal/doccache"
	"github.com/zjrosen/textobjects/internal/log"
	"github.com/zjrosen/textobjects/internal/picker"
	"github.com/zjrosen/textobjects/internal/selection"
	"github.com/zjrosen/textobjects/internal/textobject"
	"github.com/zjrosen/textobjects/internal/tracing"
)

// maxLineSize bounds one request line. Inline documents travel in the line.
const maxLineSize = 64 << 20

var (
	errNoDocument   = errors.New("one of text or path is required")
	errNoPositions  = errors.New("positions are required")
	errNoSelections = errors.New("selections are required")
)

// Server handles requests against a shared document cache.
type Server struct {
	cache  *doccache.Cache
	tracer trace.Tracer
	opts   textobject.Options
	newID  func() string
}

// New creates a server. opts supplies the scan width; IncludeDelimiter is
// taken from each request.
func New(cache *doccache.Cache, tracer trace.Tracer, opts textobject.Options) *Server {
	return &Server{
		cache:  cache,
		tracer: tracer,
		opts:   opts,
		newID:  uuid.NewString,
	}
}

// Serve reads requests from r until EOF or ctx is done, writing one response
// per request to w. A malformed line gets an error response; only read and
// write failures end the loop with an error.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	enc := json.NewEncoder(w)

	log.Info(log.CatServe, "Serving")
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp Response
		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			resp = Response{ID: s.newID(), Error: fmt.Sprintf("invalid request: %v", err)}
			log.Warn(log.CatServe, "invalid request", "error", err)
		} else {
			resp = s.Handle(ctx, req)
		}

		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	log.Info(log.CatServe, "Input closed")
	return nil
}

// Handle answers a single request. Failures are reported in Response.Error.
func (s *Server) Handle(ctx context.Context, req Request) Response {
	if req.ID == "" {
		req.ID = s.newID()
	}

	ctx, span := s.tracer.Start(ctx, tracing.SpanRequest, trace.WithAttributes(
		attribute.String(tracing.AttrRequestID, req.ID),
		attribute.String(tracing.AttrRequestMethod, req.Method),
	))

	resp, err := s.dispatch(ctx, req)
	tracing.EndWithError(span, err)

	resp.ID = req.ID
	if err != nil {
		resp.Error = err.Error()
		log.Debug(log.CatServe, "request failed", "id", req.ID, "method", req.Method, "error", err)
	}
	return resp
}

func (s *Server) dispatch(ctx context.Context, req Request) (Response, error) {
	switch req.Method {
	case MethodResolve:
		return s.resolve(ctx, req)
	case MethodApply:
		return s.apply(ctx, req)
	case MethodList:
		return Response{Definitions: textobject.Definitions()}, nil
	case MethodFilter:
		return s.filter(req), nil
	default:
		return Response{}, fmt.Errorf("unknown method %q", req.Method)
	}
}

func (s *Server) resolve(ctx context.Context, req Request) (Response, error) {
	def, err := textobject.Lookup(textobject.ID(req.TextObject))
	if err != nil {
		return Response{}, err
	}
	if len(req.Positions) == 0 {
		return Response{}, errNoPositions
	}

	doc, err := s.document(ctx, req)
	if err != nil {
		return Response{}, err
	}

	sels := make([]selection.Selection, len(req.Positions))
	for i, p := range req.Positions {
		sels[i] = selection.At(doc.Validate(p))
	}

	opts := s.opts
	opts.IncludeDelimiter = req.IncludeDelimiter

	_, span := tracing.StartResolve(ctx, s.tracer, string(def.ID), len(sels))
	results := selection.ResolveAll(def, doc, sels, opts)

	resp := Response{Ranges: make([]*buffer.Range, len(results))}
	found := 0
	for i, res := range results {
		if res.Found {
			r := res.Range
			resp.Ranges[i] = &r
			found++
		}
	}
	span.SetAttributes(attribute.Int(tracing.AttrFoundCount, found))
	tracing.EndWithError(span, nil)

	return resp, nil
}

func (s *Server) apply(ctx context.Context, req Request) (Response, error) {
	def, err := textobject.Lookup(textobject.ID(req.TextObject))
	if err != nil {
		return Response{}, err
	}
	if len(req.Selections) == 0 {
		return Response{}, errNoSelections
	}

	doc, err := s.document(ctx, req)
	if err != nil {
		return Response{}, err
	}

	sels := make([]selection.Selection, len(req.Selections))
	for i, sel := range req.Selections {
		sels[i] = selection.Selection{Anchor: doc.Validate(sel.Anchor), Active: doc.Validate(sel.Active)}
	}

	opts := s.opts
	opts.IncludeDelimiter = req.IncludeDelimiter

	_, span := tracing.StartResolve(ctx, s.tracer, string(def.ID), len(sels))
	out := selection.Apply(def, doc, sels, opts)
	tracing.EndWithError(span, nil)

	return Response{Selections: out}, nil
}

func (s *Server) document(ctx context.Context, req Request) (*buffer.Document, error) {
	if req.Text != nil {
		return buffer.NewDocument(*req.Text), nil
	}
	if req.Path == "" {
		return nil, errNoDocument
	}

	_, span := s.tracer.Start(ctx, tracing.SpanLoadDocument, trace.WithAttributes(
		attribute.String(tracing.AttrDocumentPath, req.Path),
	))
	doc, hit, err := s.cache.Load(ctx, req.Path)
	if err == nil {
		span.SetAttributes(
			attribute.Bool(tracing.AttrCacheHit, hit),
			attribute.Int(tracing.AttrDocumentLength, doc.Len()),
		)
	}
	tracing.EndWithError(span, err)
	return doc, err
}

func (s *Server) filter(req Request) Response {
	matches := picker.Filter(picker.ItemsFromDefinitions(textobject.Definitions()), req.Query)

	defs := make([]textobject.Definition, 0, len(matches))
	for _, item := range matches {
		// Lookup cannot fail for ids taken from the registry.
		if def, err := textobject.Lookup(item.ID); err == nil {
			defs = append(defs, def)
		}
	}
	return Response{Definitions: defs}
}
