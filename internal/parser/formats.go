package parser

import (
	"fmt"

	"github.com/vk/gitgraphgo/internal/astcodec"
	"github.com/vk/gitgraphgo/internal/hcladapter"
	"github.com/vk/gitgraphgo/internal/model"
)

// ForFormat returns the decoder for a source format. filename only affects
// HCL diagnostics; an empty name falls back to the decoder's default.
func ForFormat(format, filename string) (Parser, error) {
	switch format {
	case FormatHCL:
		return hcladapter.NewParser(filename), nil
	case FormatJSON, FormatYAML:
		return astcodec.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Default builds a registry with the git graph kind bound to the decoder for
// format.
func Default(format, filename string) (*Registry, error) {
	p, err := ForFormat(format, filename)
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	r.Register(model.DiagramKind, p)
	return r, nil
}
