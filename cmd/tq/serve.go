package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"go.lsp.dev/jsonrpc2"

	model "github.com/tracelens/trace-model/go-model"
	"github.com/tracelens/trace-model/go-model/memtrace"
	"github.com/tracelens/trace-model/go-model/path"
	"github.com/tracelens/trace-model/go-model/span"
)

type ServeConfig struct {
	*MainConfig
	Serve *cli.Command
}

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		cfg.Serve.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: serve takes no arguments", cli.ErrUsage)
	}
	// stdin/stdout carry the RPC stream, so the trace must come from a
	// file.
	if cfg.File == "" || cfg.File == "-" {
		return fmt.Errorf("%w: serve requires -f <trace-file>", cli.ErrUsage)
	}
	tr, err := cfg.loadTrace(cc)
	if err != nil {
		return err
	}
	ctx := context.Background()
	stream := jsonrpc2.NewStream(&stdioReadWriteCloser{
		read:  os.Stdin,
		write: os.Stdout,
	})
	srv := &server{trace: tr}
	conn := jsonrpc2.NewConn(stream)
	conn.Go(ctx, srv.handle)
	<-conn.Done()
	return nil
}

type stdioReadWriteCloser struct {
	read  io.Reader
	write io.Writer
}

func (s *stdioReadWriteCloser) Read(p []byte) (n int, err error) {
	return s.read.Read(p)
}

func (s *stdioReadWriteCloser) Write(p []byte) (n int, err error) {
	return s.write.Write(p)
}

func (s *stdioReadWriteCloser) Close() error {
	return nil
}

type server struct {
	trace *memtrace.Trace
}

type queryParams struct {
	Query string `json:"query"`
	Span  string `json:"span,omitempty"`
}

type edgeParams struct {
	queryParams
	Path string `json:"path"`
	Snap int64  `json:"snap"`
}

type valueResult struct {
	Path   string `json:"path"`
	Span   string `json:"span"`
	Object string `json:"object,omitempty"`
	Value  any    `json:"value,omitempty"`
}

type attrResult struct {
	Name     string `json:"name"`
	Schema   string `json:"schema"`
	Required bool   `json:"required,omitempty"`
	Fixed    bool   `json:"fixed,omitempty"`
	Hidden   bool   `json:"hidden,omitempty"`
}

func (s *server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	result, err := s.dispatch(req)
	return reply(ctx, result, err)
}

func (s *server) dispatch(req jsonrpc2.Request) (any, error) {
	switch req.Method() {
	case "model/paths":
		q, sp, err := s.queryOf(req)
		if err != nil {
			return nil, err
		}
		out := []string{}
		for vp := range q.Paths(s.trace, sp) {
			out = append(out, vp.KeyPath().String())
		}
		return out, nil
	case "model/objects":
		q, sp, err := s.queryOf(req)
		if err != nil {
			return nil, err
		}
		out := []string{}
		for obj := range q.Objects(s.trace, sp) {
			out = append(out, obj.CanonicalPath().String())
		}
		return out, nil
	case "model/values":
		q, sp, err := s.queryOf(req)
		if err != nil {
			return nil, err
		}
		out := []valueResult{}
		for v := range q.Values(s.trace, sp) {
			out = append(out, valueResultOf(v))
		}
		return out, nil
	case "model/schemas":
		q, _, err := s.queryOf(req)
		if err != nil {
			return nil, err
		}
		out := []string{}
		for _, sch := range q.Schemas(s.trace) {
			out = append(out, sch.Name)
		}
		return out, nil
	case "model/attributes":
		q, _, err := s.queryOf(req)
		if err != nil {
			return nil, err
		}
		out := []attrResult{}
		for _, as := range q.Attributes(s.trace) {
			out = append(out, attrResult{
				Name:     as.Name,
				Schema:   as.Schema,
				Required: as.Required,
				Fixed:    as.Fixed,
				Hidden:   as.Hidden,
			})
		}
		return out, nil
	case "model/includes", "model/involves":
		var params edgeParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return nil, fmt.Errorf("%w: %w", jsonrpc2.ErrInvalidParams, err)
		}
		q, sp, err := s.query(params.queryParams)
		if err != nil {
			return nil, err
		}
		kp, err := path.ParseKeyPath(params.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", jsonrpc2.ErrInvalidParams, err)
		}
		v, err := findEdge(s.trace, kp, params.Snap)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", jsonrpc2.ErrInvalidParams, err)
		}
		if req.Method() == "model/includes" {
			return q.Includes(sp, v), nil
		}
		return q.Involves(sp, v), nil
	}
	return nil, jsonrpc2.ErrMethodNotFound
}

func (s *server) queryOf(req jsonrpc2.Request) (model.Query, span.Span, error) {
	var params queryParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return model.Empty, span.Empty, fmt.Errorf("%w: %w", jsonrpc2.ErrInvalidParams, err)
	}
	return s.query(params)
}

func (s *server) query(params queryParams) (model.Query, span.Span, error) {
	q, err := model.Parse(params.Query)
	if err != nil {
		return model.Empty, span.Empty, fmt.Errorf("%w: %w", jsonrpc2.ErrInvalidParams, err)
	}
	spText := params.Span
	if spText == "" {
		spText = "all"
	}
	sp, err := parseSpan(spText)
	if err != nil {
		return model.Empty, span.Empty, fmt.Errorf("%w: invalid span %q", jsonrpc2.ErrInvalidParams, params.Span)
	}
	return q, sp, nil
}

func valueResultOf(v model.Value) valueResult {
	res := valueResult{Span: v.Span().String()}
	if parent := v.Parent(); parent != nil {
		res.Path = parent.CanonicalPath().Extend(v.EntryKey()).String()
	}
	if obj, ok := v.Child().Object(); ok {
		res.Object = obj.CanonicalPath().String()
	} else if prim, ok := v.Child().Primitive(); ok {
		res.Value = prim
	}
	return res
}
