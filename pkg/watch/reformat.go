package watch

import (
	"context"
	"sync"

	"mackerel-hq/mmpp/pkg/files"
	"mackerel-hq/mmpp/pkg/telemetry/logging"
	"mackerel-hq/mmpp/pkg/telemetry/metrics"
)

// Recorder counts handled files.
type Recorder interface {
	RecordFile(command, result string)
}

// Stats summarises the files a Reformatter has handled.
type Stats struct {
	Reformatted int
	Unchanged   int
	Failed      int
}

// Reformatter rewrites changed expression files into canonical form.
// A file that does not parse is left untouched and its error is logged.
type Reformatter struct {
	loader   *files.Loader
	logger   *logging.Logger
	recorder Recorder

	mu    sync.Mutex
	stats Stats
}

// NewReformatter creates a reformatter. recorder may be nil.
func NewReformatter(loader *files.Loader, logger *logging.Logger, recorder Recorder) *Reformatter {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Reformatter{
		loader:   loader,
		logger:   logger,
		recorder: recorder,
	}
}

// Handle reformats paths. It has the ChangeFunc signature.
func (r *Reformatter) Handle(ctx context.Context, paths []string) {
	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		r.record(r.handleOne(logging.WithSource(ctx, path), path))
	}
}

// SetLoader replaces the loader, e.g. after a configuration reload.
// Batches already running finish with the old one.
func (r *Reformatter) SetLoader(loader *files.Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loader = loader
}

func (r *Reformatter) handleOne(ctx context.Context, path string) string {
	r.mu.Lock()
	loader := r.loader
	r.mu.Unlock()

	res, err := loader.Format(path)
	if err != nil {
		r.logger.WarnContext(ctx, "expression not reformatted", "error", err)
		return metrics.ResultError
	}

	written, err := loader.Write(res)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to rewrite expression file", "error", err)
		return metrics.ResultError
	}
	if written {
		r.logger.InfoContext(ctx, "reformatted expression file")
		return metrics.ResultReformatted
	}

	r.logger.DebugContext(ctx, "expression file already canonical")
	return metrics.ResultUnchanged
}

func (r *Reformatter) record(result string) {
	r.mu.Lock()
	switch result {
	case metrics.ResultReformatted:
		r.stats.Reformatted++
	case metrics.ResultUnchanged:
		r.stats.Unchanged++
	default:
		r.stats.Failed++
	}
	r.mu.Unlock()

	if r.recorder != nil {
		r.recorder.RecordFile("watch", result)
	}
}

// Stats returns the counts so far.
func (r *Reformatter) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}
