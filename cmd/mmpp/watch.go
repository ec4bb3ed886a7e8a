package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"mackerel-hq/mmpp/pkg/cli"
	"mackerel-hq/mmpp/pkg/config"
	"mackerel-hq/mmpp/pkg/watch"
)

// watchOptions are the watch command flags.
type watchOptions struct {
	dir         string
	metricsAddr string
	skipInitial bool
}

var watchFlags watchOptions

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep expression files canonical as they change",
	Long: `Watch a directory and rewrite changed expression files into canonical form.

Files that do not parse are left untouched and the error is logged. Changes
are debounced (format.debounce_interval). When --config names a file, it is
watched too and reloaded on change. The command stops on SIGINT or SIGTERM.

Examples:
  # Watch graphs/ and log what is rewritten
  mmpp watch --dir graphs/ -v

  # Also serve Prometheus metrics
  mmpp watch --dir graphs/ --metrics-addr :9464`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := current.context(cmd.Context(), "watch")
		return runWatch(ctx, current, watchFlags)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.dir, "dir", "d", "", "directory of expression files to watch")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address at /metrics")
	watchCmd.Flags().BoolVar(&watchFlags.skipInitial, "skip-initial", false, "do not format existing files before watching")
	_ = watchCmd.MarkFlagRequired("dir")
}

func runWatch(ctx context.Context, a *app, opts watchOptions) error {
	if opts.dir == "" {
		return cli.NewConfigError("dir", "--dir must be specified")
	}

	// Serving metrics implies recording them
	if opts.metricsAddr != "" {
		a.metrics.Enable()
	}

	reformatter := watch.NewReformatter(a.loader, a.logger, a.metrics)

	if !opts.skipInitial {
		existing, err := a.loader.Collect(opts.dir)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		reformatter.Handle(ctx, existing)
	}

	fw, err := watch.NewFileWatcher(&watch.Config{
		Path:             opts.dir,
		DebounceInterval: a.cfg.Format.DebounceInterval,
		Extensions:       a.cfg.Format.Extensions,
		IncludeHidden:    a.cfg.Format.IncludeHidden,
	}, a.logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	fw.OnEvent(func(_ string, op fsnotify.Op) {
		a.metrics.RecordWatchEvent(op.String())
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 3)
	go func() {
		errCh <- fw.Watch(ctx, reformatter.Handle)
	}()

	if a.configPath != "" {
		cw, err := watch.NewFileWatcher(&watch.Config{
			Path:             a.configPath,
			DebounceInterval: a.cfg.Format.DebounceInterval,
		}, a.logger)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		go func() {
			errCh <- cw.Watch(ctx, func(ctx context.Context, _ []string) {
				reloadConfig(ctx, a, reformatter)
			})
		}()
	}

	if opts.metricsAddr != "" {
		srv := &http.Server{Addr: opts.metricsAddr, Handler: metricsMux(a), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			a.logger.InfoContext(ctx, "serving metrics", "addr", opts.metricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
				return
			}
			errCh <- nil
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// The first component to stop ends the command
	var firstErr error
	select {
	case <-ctx.Done():
	case firstErr = <-errCh:
	}
	cancel()

	stats := reformatter.Stats()
	a.logger.InfoContext(ctx, "watch stopped",
		"reformatted", stats.Reformatted,
		"unchanged", stats.Unchanged,
		"failed", stats.Failed,
	)

	if firstErr != nil {
		return cli.NewCommandError("watch", firstErr)
	}
	return nil
}

// reloadConfig re-reads the configuration file and, on success, swaps in a
// loader built from it. Watched extensions only change on restart.
func reloadConfig(ctx context.Context, a *app, r *watch.Reformatter) {
	if err := config.ReloadConfig(a.configPath); err != nil {
		a.logger.ErrorContext(ctx, "configuration reload failed; keeping previous configuration", "error", err)
		return
	}

	a.apply(config.GetConfig())
	r.SetLoader(a.loader)
	a.logger.InfoContext(ctx, "configuration reloaded", "config", a.configPath)
}

func metricsMux(a *app) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	return mux
}
