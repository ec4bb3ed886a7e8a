// Package logging provides structured logging for mmpp.
//
// The package wraps log/slog with JSON, text and console formats and the
// usual four levels. Output goes to stderr by default; stdout belongs to
// formatted expressions.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//
//	ctx = logging.WithRunID(ctx, uuid.NewString())
//	ctx = logging.WithCommand(ctx, "fmt")
//	ctx = logging.WithSource(ctx, "graphs/cpu.graph")
//	logger.InfoContext(ctx, "formatted file", "changed", true)
//
// The *Context methods and WithContext add run_id, command and source when
// the context carries them.
package logging
