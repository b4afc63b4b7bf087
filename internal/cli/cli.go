package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/vk/gitgraphgo/internal/app"
	"github.com/vk/gitgraphgo/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// Streams are the process streams commands read from and write to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// flagKeys maps flag names to the configuration keys they override.
var flagKeys = map[string]string{
	"log-level":   "log.level",
	"log-format":  "log.format",
	"format":      "input.format",
	"output":      "output.mode",
	"encoding":    "output.encoding",
	"publish-url": "publish.url",
	"main-branch": "gitgraph.main_branch_name",
	"addr":        "server.addr",
}

// Execute runs the command line args against streams.
func Execute(ctx context.Context, args []string, streams Streams) error {
	root := NewRootCommand(streams)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the gitgraphgo command tree.
func NewRootCommand(streams Streams) *cobra.Command {
	root := &cobra.Command{
		Use:   "gitgraphgo",
		Short: "Normalize git graph documents into an ordered stream of graph operations",
		Long: `gitgraphgo reads git graph documents (HCL, or a JSON/YAML syntax tree),
replays them against an in-memory git graph and reports the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to a YAML configuration file.")
	pf.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")

	root.AddCommand(
		normalizeCmd(streams),
		convertCmd(streams),
		serveCmd(streams),
	)
	return root
}

// maxArgs is cobra.MaximumNArgs reported as a usage error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// loadConfig merges the config file, the environment and every flag the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, usageError(err)
	}

	overrides := make(map[string]any)
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}

	cfg, err := config.Load(config.Options{Path: path, Overrides: overrides})
	if err != nil {
		return nil, usageError(err)
	}
	return cfg, nil
}

func newApp(cmd *cobra.Command, streams Streams) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.NewApp(streams.Out, streams.Err, cfg), nil
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
