// Package hcladapter decodes git graph documents written in HCL native syntax
// into the format-agnostic model.
//
// A document is a flat list of blocks, replayed in source order:
//
//	direction = "LR"
//	title     = "Release flow"
//
//	commit { id = "1" }
//	branch "develop" { order = 1 }
//	checkout "develop" {}
//	commit {
//	  id   = "2"
//	  type = "HIGHLIGHT"
//	  tags = ["v1"]
//	}
//	checkout "main" {}
//	merge "develop" { id = "m1" }
//	cherry_pick "2" { parent = "1" }
//
// Block types the decoder does not know are kept as model.Unknown so that the
// normalizer can report and skip them.
package hcladapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/gitgraphgo/internal/ctxlog"
	"github.com/vk/gitgraphgo/internal/model"
)

// DefaultFilename is used in diagnostics when the source has no file name.
const DefaultFilename = "gitgraph.hcl"

// Parser is the HCL implementation of parser.Parser.
type Parser struct {
	// Filename is reported in diagnostics.
	Filename string
}

// NewParser creates a new HCL git graph parser.
func NewParser(filename string) *Parser {
	if filename == "" {
		filename = DefaultFilename
	}
	return &Parser{Filename: filename}
}

// rootAttributes are the attributes accepted at the top level of a document.
var rootAttributes = map[string]func(*model.Graph, *string){
	"direction": func(g *model.Graph, v *string) { g.Direction = v },
	"title":     func(g *model.Graph, v *string) { g.Title = v },
	"acc_title": func(g *model.Graph, v *string) { g.AccTitle = v },
	"acc_descr": func(g *model.Graph, v *string) { g.AccDescr = v },
}

// Parse decodes src into a model.Graph. Syntax errors and schema violations
// are returned as hcl.Diagnostics wrapped in the error.
func (p *Parser) Parse(ctx context.Context, src []byte) (*model.Graph, error) {
	logger := ctxlog.FromContext(ctx).With("file", p.Filename)
	logger.Debug("HCL decoder started.", "bytes", len(src))

	file, diags := hclparse.NewParser().ParseHCL(src, p.Filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL document %s: %w", p.Filename, diags)
	}

	// ParseHCL always produces a native syntax body; the syntax tree keeps the
	// blocks in source order, which the generic hcl.Body API does not promise.
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected HCL body type %T in %s", file.Body, p.Filename)
	}

	g := &model.Graph{}
	diags = append(diags, decodeRootAttributes(body, g)...)

	for _, block := range body.Blocks {
		stmt, blockDiags := translateBlock(block)
		diags = append(diags, blockDiags...)
		if stmt == nil {
			continue
		}
		if unknown, isUnknown := stmt.(*model.Unknown); isUnknown {
			logger.Debug("Keeping unrecognized block.", "type", unknown.Type, "range", block.DefRange().String())
		}
		g.Statements = append(g.Statements, stmt)
	}

	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL document %s: %w", p.Filename, diags)
	}

	logger.Debug("HCL decoding complete.", "statements", len(g.Statements), "has_direction", g.Direction != nil)
	return g, nil
}

// decodeRootAttributes fills the graph-level fields and rejects unknown
// top-level attributes.
func decodeRootAttributes(body *hclsyntax.Body, g *model.Graph) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for name, attr := range body.Attributes {
		set, ok := rootAttributes[name]
		if !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported argument",
				Detail:   fmt.Sprintf("An argument named %q is not expected at the top level of a git graph document.", name),
				Subject:  attr.NameRange.Ptr(),
			})
			continue
		}
		v, attrDiags := decodeString(attr.AsHCLAttribute())
		diags = append(diags, attrDiags...)
		if !attrDiags.HasErrors() {
			set(g, &v)
		}
	}
	return diags
}
