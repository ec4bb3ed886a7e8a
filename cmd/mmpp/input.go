package main

import (
	"context"
	"io"

	"mackerel-hq/mmpp/pkg/expr/ast"
	exprErrors "mackerel-hq/mmpp/pkg/expr/errors"
	"mackerel-hq/mmpp/pkg/telemetry/logging"
)

// stdinSource names standard input in error locations and logs.
const stdinSource = "<stdin>"

func withStdinSource(ctx context.Context) context.Context {
	return logging.WithSource(ctx, stdinSource)
}

// readAll reads standard input. Failures are io errors.
func readAll(in io.Reader) (string, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return "", exprErrors.New(exprErrors.ErrorTypeIO, ast.Location{Source: stdinSource}, "failed to read input: %v", err)
	}
	return string(data), nil
}
