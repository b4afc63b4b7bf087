package gitgraph

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/gitgraphgo/internal/ctxlog"
	"github.com/vk/gitgraphgo/internal/diagram"
	"github.com/vk/gitgraphgo/internal/model"
)

// ErrUnknownCommitType is returned when a commit or merge carries a type tag
// outside the closed set. Decoders reject such documents, so reaching it means
// a decoder let an invalid tree through.
var ErrUnknownCommitType = errors.New("unknown commit type")

// Option configures a Populate call.
type Option func(*options)

type options struct {
	onUnknown func(kind string)
}

// WithUnknownHandler registers fn to be called, after logging, for every
// statement whose kind is not recognized.
func WithUnknownHandler(fn func(kind string)) Option {
	return func(o *options) { o.onUnknown = fn }
}

// Populate replays g against sink. See the package documentation for the
// statement mapping.
func Populate(ctx context.Context, g *model.Graph, sink Sink, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Populating git graph.", "statements", len(g.Statements))

	diagram.PopulateCommon(diagram.Common{
		Title:    g.Title,
		AccTitle: g.AccTitle,
		AccDescr: g.AccDescr,
	}, sink)

	if g.Direction != nil {
		if err := sink.SetDirection(*g.Direction); err != nil {
			return fmt.Errorf("setting direction %q: %w", *g.Direction, err)
		}
	}

	skipped := 0
	for i, stmt := range g.Statements {
		handled, err := dispatch(stmt, sink)
		if err != nil {
			return fmt.Errorf("statement %d (%s): %w", i, stmt.Kind(), err)
		}
		if handled {
			continue
		}

		var kind string
		if stmt != nil {
			kind = stmt.Kind()
		}
		if kind == "" {
			kind = "<nil>"
		}
		logger.Warn("Unknown statement type, skipping.", "index", i, "type", kind)
		skipped++
		if o.onUnknown != nil {
			o.onUnknown(kind)
		}
	}

	logger.Debug("Git graph populated.", "applied", len(g.Statements)-skipped, "skipped", skipped)
	return nil
}

// dispatch forwards stmt to the matching sink method. It reports false for
// statements it does not recognize.
func dispatch(stmt model.Statement, sink Sink) (bool, error) {
	switch s := stmt.(type) {
	case *model.Commit:
		return true, populateCommit(s, sink)
	case *model.Branch:
		return true, populateBranch(s, sink)
	case *model.Merge:
		return true, populateMerge(s, sink)
	case *model.Checkout:
		return true, sink.Checkout(s.Branch)
	case *model.CherryPicking:
		return true, populateCherryPicking(s, sink)
	default:
		return false, nil
	}
}

func populateCommit(c *model.Commit, sink Sink) error {
	typ := Normal
	if c.Type != nil {
		var err error
		if typ, err = ParseCommitType(*c.Type); err != nil {
			return err
		}
	}
	return sink.Commit(valueOr(c.Message, ""), c.ID, typ, c.Tags)
}

func populateBranch(b *model.Branch, sink Sink) error {
	return sink.Branch(b.Name, valueOr(b.Order, 0))
}

func populateMerge(m *model.Merge, sink Sink) error {
	var typ *CommitType
	if m.Type != nil {
		t, err := ParseCommitType(*m.Type)
		if err != nil {
			return err
		}
		typ = &t
	}
	return sink.Merge(m.Branch, valueOr(m.ID, ""), typ, m.Tags)
}

func populateCherryPicking(c *model.CherryPicking, sink Sink) error {
	tags := c.Tags
	if len(tags) == 0 {
		tags = nil
	}
	return sink.CherryPick(c.ID, "", tags, c.Parent)
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
