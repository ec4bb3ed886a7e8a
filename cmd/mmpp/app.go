package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"mackerel-hq/mmpp/pkg/config"
	"mackerel-hq/mmpp/pkg/expr"
	"mackerel-hq/mmpp/pkg/files"
	"mackerel-hq/mmpp/pkg/telemetry/logging"
	"mackerel-hq/mmpp/pkg/telemetry/metrics"
)

// app holds what every command needs for one invocation.
type app struct {
	runID      string
	configPath string
	cfg        *config.Config
	logger     *logging.Logger
	metrics    *metrics.Collector
	formatter  *expr.Formatter
	loader     *files.Loader
}

// appOptions are the global flags.
type appOptions struct {
	configPath  string
	verbose     bool
	metricsFile string
}

// newApp loads the configuration (file, defaults, environment) and builds
// the logger, metrics collector, formatter and file loader from it.
func newApp(opts appOptions, stderr io.Writer) (*app, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.metricsFile != "" {
		cfg.Telemetry.Metrics.Enabled = true
		cfg.Telemetry.Metrics.TextfilePath = opts.metricsFile
	}
	config.SetConfig(cfg)

	logger, err := logging.FromConfig(cfg.Telemetry.Logging, stderr, opts.verbose)
	if err != nil {
		return nil, err
	}

	a := &app{
		runID:      uuid.NewString(),
		configPath: opts.configPath,
		logger:     logger,
		metrics:    metrics.NewCollector(&cfg.Telemetry.Metrics, nil),
	}
	a.apply(cfg)

	logger.Debug("configuration loaded",
		"run_id", a.runID,
		"config", opts.configPath,
		"max_depth", cfg.Parser.MaxDepth,
		"extensions", cfg.Format.Extensions,
		"metrics", cfg.Telemetry.Metrics.Enabled,
	)
	return a, nil
}

// apply (re)builds the formatter and loader from cfg. The metrics and
// logging settings are fixed for the life of the process.
func (a *app) apply(cfg *config.Config) {
	a.cfg = cfg
	a.formatter = expr.NewFormatter(expr.Options{
		MaxDepth:      cfg.Parser.MaxDepth,
		MaxInputBytes: cfg.Parser.MaxInputBytes,
	}).WithObserver(a.metrics)
	a.loader = files.NewLoader(files.ConfigFrom(cfg), a.formatter)
}

// context tags ctx with the run ID and command name for logging.
func (a *app) context(ctx context.Context, command string) context.Context {
	ctx = logging.WithRunID(ctx, a.runID)
	return logging.WithCommand(ctx, command)
}

// close writes the metrics textfile when metrics are enabled.
func (a *app) close() error {
	if err := a.metrics.Flush(); err != nil {
		return fmt.Errorf("failed to flush metrics: %w", err)
	}
	return nil
}
