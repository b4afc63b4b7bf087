// Package parser is the entry point from raw diagram text to a model.Graph.
// A Registry maps diagram kinds to Parsers; callers ask for a kind and get
// the parsed tree or the parser's error untouched.
package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/gitgraphgo/internal/ctxlog"
	"github.com/vk/gitgraphgo/internal/model"
)

// ErrUnknownDiagram is returned when no parser is registered for a kind.
var ErrUnknownDiagram = errors.New("no parser registered for diagram kind")

// ErrUnknownFormat is returned for a source format no decoder handles.
var ErrUnknownFormat = errors.New("unknown source format")

// Source formats understood by the shipped decoders.
const (
	FormatHCL  = "hcl"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Parser turns source text into a parsed git graph.
type Parser interface {
	Parse(ctx context.Context, src []byte) (*model.Graph, error)
}

// Func adapts a function to the Parser interface.
type Func func(ctx context.Context, src []byte) (*model.Graph, error)

func (f Func) Parse(ctx context.Context, src []byte) (*model.Graph, error) {
	return f(ctx, src)
}

// Registry maps diagram kinds to parsers. It is not safe for concurrent
// registration; register everything before the first Parse.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register binds p to kind. Registering a kind twice is a programming error
// and panics.
func (r *Registry) Register(kind string, p Parser) {
	if _, exists := r.parsers[kind]; exists {
		panic(fmt.Sprintf("parser for diagram kind '%s' already registered", kind))
	}
	slog.Debug("Registering parser.", "kind", kind)
	r.parsers[kind] = p
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Parse parses text with the parser registered for kind.
func (r *Registry) Parse(ctx context.Context, kind string, text []byte) (*model.Graph, error) {
	p, ok := r.parsers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDiagram, kind)
	}
	ctxlog.FromContext(ctx).Debug("Parsing diagram.", "kind", kind, "bytes", len(text))
	return p.Parse(ctx, text)
}

// FormatFromPath guesses the source format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: cannot infer format from %q", ErrUnknownFormat, path)
	}
}
