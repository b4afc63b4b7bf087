package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/vk/gitgraphgo/internal/broadcast"
	"github.com/vk/gitgraphgo/internal/ctxlog"
	"github.com/vk/gitgraphgo/internal/gitgraph"
	"github.com/vk/gitgraphgo/internal/gitgraphdb"
	"github.com/vk/gitgraphgo/internal/metrics"
	"github.com/vk/gitgraphgo/internal/model"
	"github.com/vk/gitgraphgo/internal/parser"
)

var (
	// ErrParse marks failures to turn source text into a syntax tree.
	ErrParse = errors.New("parse failed")
	// ErrPopulate marks failures reported by a sink during normalization.
	ErrPopulate = errors.New("normalization failed")
	// ErrUnknownOutput is returned for an output mode or encoding outside
	// the supported set.
	ErrUnknownOutput = errors.New("unknown output")
)

// Output modes and encodings.
const (
	ModeCalls    = "calls"
	ModeState    = "state"
	EncodingJSON = "json"
	EncodingYAML = "yaml"
)

// Source is one document to normalize.
type Source struct {
	Text     []byte
	Format   string
	Filename string
}

// Result holds what a normalization pass produced.
type Result struct {
	Calls []gitgraph.Call
	State gitgraphdb.State
}

// Parse decodes src into a syntax tree.
func (a *App) Parse(ctx context.Context, src Source) (*model.Graph, error) {
	reg, err := parser.Default(src.Format, src.Filename)
	if err != nil {
		return nil, err
	}
	g, err := reg.Parse(ctx, model.DiagramKind, src.Text)
	if err != nil {
		a.metrics.ParseError(src.Format)
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return g, nil
}

// Normalize parses src and replays it into a fresh graph database, a call
// recorder and, when publishing is configured, the socket.io broadcaster.
func (a *App) Normalize(ctx context.Context, src Source) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	g, err := a.Parse(ctx, src)
	if err != nil {
		return nil, err
	}

	db := gitgraphdb.New(gitgraphdb.WithMainBranch(
		a.config.GitGraph.MainBranchName,
		a.config.GitGraph.MainBranchOrder,
	))
	rec := &gitgraph.Recorder{}
	sinks := []gitgraph.Sink{rec, db}

	pub, err := a.publisherFor(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect publisher: %w", err)
	}
	var bs *broadcast.Sink
	if pub != nil {
		bs = broadcast.NewSink(pub)
		sinks = append(sinks, bs)
	}

	sink := metrics.InstrumentSink(gitgraph.Tee(sinks...), a.metrics)
	if err := gitgraph.Populate(ctx, g, sink, gitgraph.WithUnknownHandler(a.metrics.UnknownStatement)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPopulate, err)
	}
	// Title setters cannot fail, so a publish error from them is only held.
	if bs != nil && bs.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrPopulate, bs.Err())
	}

	logger.Info("Git graph normalized.", "calls", len(rec.Calls), "commits", len(db.Commits()))
	return &Result{Calls: rec.Calls, State: db.State()}, nil
}

// CheckOutput reports whether mode and encoding name a supported output.
// Check it before Normalize: a pass publishes as it runs.
func CheckOutput(mode, encoding string) error {
	switch mode {
	case ModeCalls, ModeState:
	default:
		return fmt.Errorf("%w mode %q", ErrUnknownOutput, mode)
	}
	switch encoding {
	case EncodingJSON, EncodingYAML:
	default:
		return fmt.Errorf("%w encoding %q", ErrUnknownOutput, encoding)
	}
	return nil
}

// Encode serializes the part of r selected by mode. Commit types are written
// by name ("NORMAL", "MERGE"), not by numeric code.
func Encode(r *Result, mode, encoding string) ([]byte, error) {
	if err := CheckOutput(mode, encoding); err != nil {
		return nil, err
	}
	var v any = r.State
	if mode == ModeCalls {
		calls := r.Calls
		if calls == nil {
			calls = []gitgraph.Call{}
		}
		v = calls
	}
	if encoding == EncodingJSON {
		return yaml.MarshalWithOptions(v, yaml.JSON())
	}
	return yaml.Marshal(v)
}
