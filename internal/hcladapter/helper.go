package hcladapter

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/gitgraphgo/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Attribute expressions are evaluated without an EvalContext: documents are
// plain data, so variables and function calls are rejected by hcl itself.

func decodeString(attr *hcl.Attribute) (string, hcl.Diagnostics) {
	var s string
	diags := gohcl.DecodeExpression(attr.Expr, nil, &s)
	return s, diags
}

func decodeOptionalString(attr *hcl.Attribute) (*string, hcl.Diagnostics) {
	if attr == nil {
		return nil, nil
	}
	s, diags := decodeString(attr)
	if diags.HasErrors() {
		return nil, diags
	}
	return &s, diags
}

func decodeOptionalInt(attr *hcl.Attribute) (*int, hcl.Diagnostics) {
	if attr == nil {
		return nil, nil
	}
	var i int
	diags := gohcl.DecodeExpression(attr.Expr, nil, &i)
	if diags.HasErrors() {
		return nil, diags
	}
	return &i, diags
}

// decodeCommitType decodes an optional `type` attribute and checks it against
// the closed set of commit types.
func decodeCommitType(attr *hcl.Attribute) (*string, hcl.Diagnostics) {
	tag, diags := decodeOptionalString(attr)
	if tag == nil || diags.HasErrors() {
		return tag, diags
	}
	if !model.IsCommitType(*tag) {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid commit type",
			Detail:   fmt.Sprintf("The type %q is not valid. Supported types are: %s.", *tag, strings.Join(model.CommitTypes, ", ")),
			Subject:  attr.Expr.Range().Ptr(),
		})
	}
	return tag, diags
}

// decodeTags decodes an optional `tags` attribute. An absent or null
// attribute yields nil; `tags = []` yields a non-nil empty slice.
func decodeTags(attr *hcl.Attribute) ([]string, hcl.Diagnostics) {
	if attr == nil {
		return nil, nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, diags
	}

	list, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid tags",
			Detail:   fmt.Sprintf("The tags attribute must be a list of strings: %s.", err),
			Subject:  attr.Expr.Range().Ptr(),
		})
	}
	if !list.IsWhollyKnown() {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid tags",
			Detail:   "The tags attribute must be known when the document is read.",
			Subject:  attr.Expr.Range().Ptr(),
		})
	}

	tags := make([]string, 0, list.LengthInt())
	for it := list.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		if ev.IsNull() {
			return nil, append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid tags",
				Detail:   "The tags list must not contain null values.",
				Subject:  attr.Expr.Range().Ptr(),
			})
		}
		var tag string
		if err := gocty.FromCtyValue(ev, &tag); err != nil {
			return nil, append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid tags",
				Detail:   err.Error(),
				Subject:  attr.Expr.Range().Ptr(),
			})
		}
		tags = append(tags, tag)
	}
	return tags, diags
}
