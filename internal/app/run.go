package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/gitgraphgo/internal/astcodec"
	"github.com/vk/gitgraphgo/internal/parser"
)

// readSource loads the document at path, or from stdin when path is empty
// or "-". The format comes from the configuration, or else from the file
// extension.
func (a *App) readSource(path string, stdin io.Reader) (Source, error) {
	src := Source{Format: a.config.Input.Format, Filename: path}

	var err error
	if path == "" || path == "-" {
		src.Filename = "<stdin>"
		if src.Format == "" {
			return src, fmt.Errorf("%w: --format is required when reading from stdin", parser.ErrUnknownFormat)
		}
		src.Text, err = io.ReadAll(stdin)
	} else {
		if src.Format == "" {
			if src.Format, err = parser.FormatFromPath(path); err != nil {
				return src, err
			}
		}
		src.Text, err = os.ReadFile(path)
	}
	if err != nil {
		return src, fmt.Errorf("failed to read %s: %w", src.Filename, err)
	}
	return src, nil
}

// RunNormalize normalizes one document and writes the configured output.
func (a *App) RunNormalize(ctx context.Context, path string, stdin io.Reader) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.RunNormalize started.", "path", path)

	if err := CheckOutput(a.config.Output.Mode, a.config.Output.Encoding); err != nil {
		return err
	}
	src, err := a.readSource(path, stdin)
	if err != nil {
		return err
	}
	res, err := a.Normalize(ctx, src)
	if err != nil {
		return err
	}
	out, err := Encode(res, a.config.Output.Mode, a.config.Output.Encoding)
	if err != nil {
		return err
	}
	_, err = a.outW.Write(out)
	return err
}

// RunConvert re-encodes the syntax tree of one document as JSON or YAML.
func (a *App) RunConvert(ctx context.Context, path string, stdin io.Reader, to string) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.RunConvert started.", "path", path, "to", to)

	src, err := a.readSource(path, stdin)
	if err != nil {
		return err
	}
	g, err := a.Parse(ctx, src)
	if err != nil {
		return err
	}
	out, err := astcodec.New().Encode(g, to)
	if err != nil {
		return err
	}
	_, err = a.outW.Write(out)
	return err
}
