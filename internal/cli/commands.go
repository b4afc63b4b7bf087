package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func normalizeCmd(streams Streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize [FILE|-]",
		Short: "Replay a document and print the sink calls or the resulting graph",
		Long: `Parse a git graph document and replay its statements against an in-memory
git graph. With --output calls the ordered sink calls are printed; with
--output state the final graph is printed. Commit types are written by name
(NORMAL, REVERSE, HIGHLIGHT, MERGE, CHERRY_PICK) rather than by numeric code,
and absent arguments are written as null. Reads stdin when FILE is "-" or
omitted, in which case --format is required.`,
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, streams)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.RunNormalize(cmd.Context(), inputArg(args), streams.In)
		},
	}

	f := cmd.Flags()
	f.String("format", "", "Source format: hcl, json or yaml. Inferred from the file extension when empty.")
	f.String("output", "calls", "What to print: 'calls' or 'state'.")
	f.String("encoding", "json", "Output encoding: 'json' or 'yaml'.")
	f.String("publish-url", "", "Also publish every sink call to this socket.io server.")
	f.String("main-branch", "main", "Name of the branch a graph starts on.")
	return cmd
}

func convertCmd(streams Streams) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "convert [FILE|-]",
		Short: "Re-encode a document's syntax tree as JSON or YAML",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to != "json" && to != "yaml" {
				return usageError(fmt.Errorf("invalid --to %q: must be 'json' or 'yaml'", to))
			}
			a, err := newApp(cmd, streams)
			if err != nil {
				return err
			}
			return a.RunConvert(cmd.Context(), inputArg(args), streams.In, to)
		},
	}

	cmd.Flags().String("format", "", "Source format: hcl, json or yaml. Inferred from the file extension when empty.")
	cmd.Flags().StringVar(&to, "to", "yaml", "Target encoding: 'json' or 'yaml'.")
	return cmd
}

func serveCmd(streams Streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the normalizer over HTTP",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, streams)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Serve(ctx)
		},
	}

	cmd.Flags().String("addr", ":8080", "Address to listen on.")
	cmd.Flags().String("publish-url", "", "Also publish every sink call to this socket.io server.")
	return cmd
}
