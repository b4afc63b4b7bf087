package astcodec

import (
	"context"

	"github.com/vk/gitgraphgo/internal/model"
)

// Per-kind views of a statement, used only for validation.

type commitFields struct {
	ID   *string `yaml:"id" validate:"required"`
	Type *string `yaml:"type" validate:"omitempty,oneof=NORMAL REVERSE HIGHLIGHT"`
}

type branchFields struct {
	Name *string `yaml:"name" validate:"required"`
}

type mergeFields struct {
	Branch *string `yaml:"branch" validate:"required"`
	Type   *string `yaml:"type" validate:"omitempty,oneof=NORMAL REVERSE HIGHLIGHT"`
}

type checkoutFields struct {
	Branch *string `yaml:"branch" validate:"required"`
}

type cherryPickFields struct {
	ID     *string `yaml:"id" validate:"required"`
	Parent *string `yaml:"parent" validate:"required"`
}

func (c *Codec) toStatement(ctx context.Context, s statement) (model.Statement, error) {
	switch s.Type {
	case model.KindCommit:
		if err := c.validate.StructCtx(ctx, commitFields{ID: s.ID, Type: s.Kind}); err != nil {
			return nil, err
		}
		return &model.Commit{ID: *s.ID, Message: s.Message, Type: s.Kind, Tags: tags(s.Tags)}, nil

	case model.KindBranch:
		if err := c.validate.StructCtx(ctx, branchFields{Name: s.Name}); err != nil {
			return nil, err
		}
		return &model.Branch{Name: *s.Name, Order: s.Order}, nil

	case model.KindMerge:
		if err := c.validate.StructCtx(ctx, mergeFields{Branch: s.Branch, Type: s.Kind}); err != nil {
			return nil, err
		}
		return &model.Merge{Branch: *s.Branch, ID: s.ID, Type: s.Kind, Tags: tags(s.Tags)}, nil

	case model.KindCheckout:
		if err := c.validate.StructCtx(ctx, checkoutFields{Branch: s.Branch}); err != nil {
			return nil, err
		}
		return &model.Checkout{Branch: *s.Branch}, nil

	case model.KindCherryPicking:
		if err := c.validate.StructCtx(ctx, cherryPickFields{ID: s.ID, Parent: s.Parent}); err != nil {
			return nil, err
		}
		return &model.CherryPicking{ID: *s.ID, Tags: tags(s.Tags), Parent: *s.Parent}, nil

	default:
		return &model.Unknown{Type: s.Type}, nil
	}
}

func tags(p *[]string) []string {
	if p == nil {
		return nil
	}
	if *p == nil {
		return []string{}
	}
	return *p
}

func tagsPtr(t []string) *[]string {
	if t == nil {
		return nil
	}
	return &t
}

func fromStatement(s model.Statement) statement {
	switch v := s.(type) {
	case *model.Commit:
		return statement{Type: model.KindCommit, ID: &v.ID, Message: v.Message, Kind: v.Type, Tags: tagsPtr(v.Tags)}
	case *model.Branch:
		return statement{Type: model.KindBranch, Name: &v.Name, Order: v.Order}
	case *model.Merge:
		return statement{Type: model.KindMerge, Branch: &v.Branch, ID: v.ID, Kind: v.Type, Tags: tagsPtr(v.Tags)}
	case *model.Checkout:
		return statement{Type: model.KindCheckout, Branch: &v.Branch}
	case *model.CherryPicking:
		return statement{Type: model.KindCherryPicking, ID: &v.ID, Tags: tagsPtr(v.Tags), Parent: &v.Parent}
	default:
		return statement{Type: s.Kind()}
	}
}
