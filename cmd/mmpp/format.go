package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mackerel-hq/mmpp/pkg/cli"
	"mackerel-hq/mmpp/pkg/telemetry/logging"
	"mackerel-hq/mmpp/pkg/telemetry/metrics"
)

// fmtOptions are the fmt command flags.
type fmtOptions struct {
	write bool
	list  bool
	check bool
}

var fmtFlags fmtOptions

var fmtCmd = &cobra.Command{
	Use:   "fmt [paths...]",
	Short: "Format expression files",
	Long: `Format metric expression files into canonical form.

Directories are walked recursively for files with the configured extensions
(.graph and .mmpp by default). Without paths, fmt reads stdin.

By default the formatted expressions are printed to stdout. A file's
canonical content is the formatted expression followed by one newline.

Examples:
  # Rewrite every expression file below graphs/
  mmpp fmt -w graphs/

  # List files whose formatting differs
  mmpp fmt -l graphs/

  # Exit non-zero if any file is not canonical (for CI)
  mmpp fmt --check graphs/ dashboards/cpu.graph`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := current.context(cmd.Context(), "fmt")
		streams := streams{in: cmd.InOrStdin(), out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
		return runFmt(ctx, current, streams, args, fmtFlags)
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtFlags.write, "write", "w", false, "write result to the source file instead of stdout")
	fmtCmd.Flags().BoolVarP(&fmtFlags.list, "list", "l", false, "list files whose formatting differs")
	fmtCmd.Flags().BoolVar(&fmtFlags.check, "check", false, "exit with status 1 if any file is not canonical")
}

// streams are the standard streams of a command.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func runFmt(ctx context.Context, a *app, s streams, paths []string, opts fmtOptions) error {
	if len(paths) == 0 {
		return fmtStdin(ctx, a, s, opts)
	}

	targets, err := a.loader.Collect(paths...)
	if err != nil {
		return cli.NewCommandError("fmt", err)
	}
	if len(targets) == 0 {
		a.logger.WarnContext(ctx, "no expression files found", "paths", paths)
		return nil
	}

	failed, differs := 0, 0
	for _, path := range targets {
		fileCtx := logging.WithSource(ctx, path)

		res, err := a.loader.Format(path)
		if err != nil {
			failed++
			a.metrics.RecordFile("fmt", metrics.ResultError)
			reportError(s.err, err)
			continue
		}

		changed := res.Changed()
		if changed {
			differs++
		}

		if opts.list && changed {
			fmt.Fprintln(s.out, path)
		}

		if opts.write {
			written, err := a.loader.Write(res)
			if err != nil {
				failed++
				a.metrics.RecordFile("fmt", metrics.ResultError)
				reportError(s.err, err)
				continue
			}
			if written {
				a.logger.InfoContext(fileCtx, "reformatted expression file")
			}
		} else if !opts.list && !opts.check {
			fmt.Fprint(s.out, res.Content())
		}

		if changed {
			a.metrics.RecordFile("fmt", metrics.ResultReformatted)
		} else {
			a.metrics.RecordFile("fmt", metrics.ResultUnchanged)
		}
		a.logger.DebugContext(fileCtx, "formatted expression file", "changed", changed)
	}

	a.logger.InfoContext(ctx, "fmt finished", "files", len(targets), "differ", differs, "failed", failed)

	if failed > 0 || (opts.check && differs > 0) {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

func fmtStdin(ctx context.Context, a *app, s streams, opts fmtOptions) error {
	if opts.write {
		return cli.NewConfigError("write", "cannot write to stdin; pass file or directory paths")
	}

	ctx = withStdinSource(ctx)
	src, err := readAll(s.in)
	if err != nil {
		return err
	}

	canonical, formatted, err := a.formatter.IsCanonical(stdinSource, src)
	if err != nil {
		a.metrics.RecordFile("fmt", metrics.ResultError)
		return err
	}
	a.logger.DebugContext(ctx, "formatted stdin", "changed", !canonical)

	if canonical {
		a.metrics.RecordFile("fmt", metrics.ResultUnchanged)
	} else {
		a.metrics.RecordFile("fmt", metrics.ResultReformatted)
	}

	if opts.list || opts.check {
		if opts.list && !canonical {
			fmt.Fprintln(s.out, stdinSource)
		}
		if opts.check && !canonical {
			return &cli.ExitError{Code: 1}
		}
		return nil
	}

	_, err = fmt.Fprintln(s.out, formatted)
	return err
}
