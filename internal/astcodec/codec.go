// Package astcodec reads and writes the serialized form of a git graph syntax
// tree, as emitted by the external grammar: a root object with a `statements`
// array whose entries carry a `$type` discriminant.
//
//	{"$type": "GitGraph", "dir": "LR", "statements": [
//	  {"$type": "Commit", "id": "1", "message": "init"},
//	  {"$type": "Branch", "name": "develop", "order": 1}
//	]}
//
// JSON documents are read as YAML flow syntax, so one decoder serves both.
package astcodec

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/vk/gitgraphgo/internal/ctxlog"
	"github.com/vk/gitgraphgo/internal/model"
)

// RootType is the discriminant of the document root.
const RootType = "GitGraph"

// Formats accepted by Encode.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnsupportedFormat is returned by Encode for formats other than json and yaml.
var ErrUnsupportedFormat = errors.New("unsupported encoding format")

// document is the wire shape of the root node.
type document struct {
	Type       string      `yaml:"$type,omitempty" validate:"omitempty,eq=GitGraph"`
	Dir        *string     `yaml:"dir,omitempty"`
	Title      *string     `yaml:"title,omitempty"`
	AccTitle   *string     `yaml:"accTitle,omitempty"`
	AccDescr   *string     `yaml:"accDescr,omitempty"`
	Statements []statement `yaml:"statements"`
}

// statement is the union of every statement's fields. Which ones are
// meaningful depends on Type.
type statement struct {
	Type    string    `yaml:"$type"`
	ID      *string   `yaml:"id,omitempty"`
	Message *string   `yaml:"message,omitempty"`
	Name    *string   `yaml:"name,omitempty"`
	Branch  *string   `yaml:"branch,omitempty"`
	Order   *int      `yaml:"order,omitempty"`
	Kind    *string   `yaml:"type,omitempty"`
	Tags    *[]string `yaml:"tags,omitempty"`
	Parent  *string   `yaml:"parent,omitempty"`
}

// Codec decodes and encodes serialized syntax trees.
type Codec struct {
	validate *validator.Validate
}

// New creates a Codec.
func New() *Codec {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Codec{validate: v}
}

// Parse implements parser.Parser.
func (c *Codec) Parse(ctx context.Context, src []byte) (*model.Graph, error) {
	return c.Decode(ctx, src)
}

// Decode reads a JSON or YAML document.
func (c *Codec) Decode(ctx context.Context, src []byte) (*model.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("AST decoder started.", "bytes", len(src))

	var doc document
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode syntax tree: %w", err)
	}
	if err := c.validate.StructCtx(ctx, doc); err != nil {
		return nil, fmt.Errorf("invalid syntax tree root: %w", err)
	}

	g := &model.Graph{
		Direction:  doc.Dir,
		Title:      doc.Title,
		AccTitle:   doc.AccTitle,
		AccDescr:   doc.AccDescr,
		Statements: make([]model.Statement, 0, len(doc.Statements)),
	}
	for i, raw := range doc.Statements {
		stmt, err := c.toStatement(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("statement %d (%s): %w", i, raw.Type, err)
		}
		g.Statements = append(g.Statements, stmt)
	}

	logger.Debug("AST decoding complete.", "statements", len(g.Statements))
	return g, nil
}

// Encode writes g in the given format.
func (c *Codec) Encode(g *model.Graph, format string) ([]byte, error) {
	doc := document{
		Type:       RootType,
		Dir:        g.Direction,
		Title:      g.Title,
		AccTitle:   g.AccTitle,
		AccDescr:   g.AccDescr,
		Statements: make([]statement, 0, len(g.Statements)),
	}
	for _, s := range g.Statements {
		doc.Statements = append(doc.Statements, fromStatement(s))
	}

	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatJSON:
		return yaml.MarshalWithOptions(doc, yaml.JSON())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
