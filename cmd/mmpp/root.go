package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mackerel-hq/mmpp/pkg/cli"
	exprErrors "mackerel-hq/mmpp/pkg/expr/errors"
)

var (
	// Global flags
	globalOpts appOptions

	// current is built before any command that needs it runs
	current *app
)

var rootCmd = &cobra.Command{
	Use:   "mmpp",
	Short: "mmpp - metric expression parser and pretty-printer",
	Long: `mmpp parses metric expressions such as

  avg(group(host(h1, loadavg5), host(h2, loadavg5)))

and prints them in a canonical, deterministically indented form.

Without a subcommand, mmpp reads one expression from stdin and writes the
canonical form to stdout. On error it prints the message to stderr and exits 1.`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Neither needs a configuration
		if cmd == versionCmd || cmd == completionCmd {
			return nil
		}
		a, err := newApp(globalOpts, cmd.ErrOrStderr())
		if err != nil {
			return cli.NewCommandError(cmd.Name(), err)
		}
		current = a
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := current.context(cmd.Context(), "format")
		return runStdin(ctx, current, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// runStdin formats the single expression on in.
func runStdin(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	ctx = withStdinSource(ctx)

	src, err := readAll(in)
	if err != nil {
		return err
	}

	formatted, err := a.formatter.Format(stdinSource, src)
	if err != nil {
		a.logger.DebugContext(ctx, "format failed", "type", exprErrors.TypeOf(err))
		return err
	}

	_, err = fmt.Fprintln(out, formatted)
	return err
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if current != nil {
		// Metrics are written whether or not the command succeeded
		if cerr := current.close(); cerr != nil {
			reportError(os.Stderr, cerr)
		}
	}
	if cli.ShouldReport(err) {
		reportError(os.Stderr, err)
	}
	return cli.ExitCode(err)
}

// reportError prints err, whose message may already end in a newline.
func reportError(w io.Writer, err error) {
	msg := err.Error()
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(w, msg)
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&globalOpts.configPath, "config", "c", "", "config file path (defaults and MMPP_* environment variables when empty)")
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&globalOpts.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile (enables metrics)")
}
