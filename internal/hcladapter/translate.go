// This file translates individual HCL blocks into model statements. Every
// recognized block type has a spec listing its labels and its body schema;
// hcl enforces the required attributes and rejects unexpected ones.

package hcladapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/gitgraphgo/internal/model"
)

type blockSpec struct {
	labels    []string
	schema    *hcl.BodySchema
	translate func(labels []string, attrs hcl.Attributes) (model.Statement, hcl.Diagnostics)
}

var blockSpecs = map[string]*blockSpec{
	"commit": {
		schema: &hcl.BodySchema{Attributes: []hcl.AttributeSchema{
			{Name: "id", Required: true},
			{Name: "message"},
			{Name: "type"},
			{Name: "tags"},
		}},
		translate: translateCommit,
	},
	"branch": {
		labels: []string{"name"},
		schema: &hcl.BodySchema{Attributes: []hcl.AttributeSchema{
			{Name: "order"},
		}},
		translate: translateBranch,
	},
	"merge": {
		labels: []string{"branch"},
		schema: &hcl.BodySchema{Attributes: []hcl.AttributeSchema{
			{Name: "id"},
			{Name: "type"},
			{Name: "tags"},
		}},
		translate: translateMerge,
	},
	"checkout": {
		labels: []string{"branch"},
		schema: &hcl.BodySchema{},
		translate: func(labels []string, _ hcl.Attributes) (model.Statement, hcl.Diagnostics) {
			return &model.Checkout{Branch: labels[0]}, nil
		},
	},
	"cherry_pick": {
		labels: []string{"id"},
		schema: &hcl.BodySchema{Attributes: []hcl.AttributeSchema{
			{Name: "parent", Required: true},
			{Name: "tags"},
		}},
		translate: translateCherryPick,
	},
}

// translateBlock converts one block. Unknown block types yield model.Unknown
// and no diagnostics; a nil statement means the block was invalid.
func translateBlock(block *hclsyntax.Block) (model.Statement, hcl.Diagnostics) {
	spec, ok := blockSpecs[block.Type]
	if !ok {
		return &model.Unknown{Type: block.Type}, nil
	}

	if len(block.Labels) != len(spec.labels) {
		return nil, hcl.Diagnostics{labelDiagnostic(block, spec)}
	}

	content, diags := block.Body.Content(spec.schema)
	if diags.HasErrors() {
		return nil, diags
	}

	stmt, moreDiags := spec.translate(block.Labels, content.Attributes)
	diags = append(diags, moreDiags...)
	if diags.HasErrors() {
		return nil, diags
	}
	return stmt, diags
}

func labelDiagnostic(block *hclsyntax.Block, spec *blockSpec) *hcl.Diagnostic {
	if len(spec.labels) == 0 {
		return &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Extraneous label for %s", block.Type),
			Detail:   fmt.Sprintf("A %s block takes no labels.", block.Type),
			Subject:  block.DefRange().Ptr(),
		}
	}
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf("Wrong number of labels for %s", block.Type),
		Detail:   fmt.Sprintf("A %s block takes exactly %d label(s): %v.", block.Type, len(spec.labels), spec.labels),
		Subject:  block.DefRange().Ptr(),
	}
}

func translateCommit(_ []string, attrs hcl.Attributes) (model.Statement, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	c := &model.Commit{}

	id, d := decodeString(attrs["id"])
	diags = append(diags, d...)
	c.ID = id

	c.Message, d = decodeOptionalString(attrs["message"])
	diags = append(diags, d...)
	c.Type, d = decodeCommitType(attrs["type"])
	diags = append(diags, d...)
	c.Tags, d = decodeTags(attrs["tags"])
	diags = append(diags, d...)

	return c, diags
}

func translateBranch(labels []string, attrs hcl.Attributes) (model.Statement, hcl.Diagnostics) {
	order, diags := decodeOptionalInt(attrs["order"])
	return &model.Branch{Name: labels[0], Order: order}, diags
}

func translateMerge(labels []string, attrs hcl.Attributes) (model.Statement, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	m := &model.Merge{Branch: labels[0]}

	var d hcl.Diagnostics
	m.ID, d = decodeOptionalString(attrs["id"])
	diags = append(diags, d...)
	m.Type, d = decodeCommitType(attrs["type"])
	diags = append(diags, d...)
	m.Tags, d = decodeTags(attrs["tags"])
	diags = append(diags, d...)

	return m, diags
}

func translateCherryPick(labels []string, attrs hcl.Attributes) (model.Statement, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	c := &model.CherryPicking{ID: labels[0]}

	parent, d := decodeString(attrs["parent"])
	diags = append(diags, d...)
	c.Parent = parent

	c.Tags, d = decodeTags(attrs["tags"])
	diags = append(diags, d...)

	return c, diags
}
