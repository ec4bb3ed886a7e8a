package main

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mackerel-hq/mmpp/pkg/cli"
	"mackerel-hq/mmpp/pkg/config"
	"mackerel-hq/mmpp/pkg/watch"
)

func waitForContent(t *testing.T, path, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(path); err == nil && string(data) == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	data, _ := os.ReadFile(path)
	t.Fatalf("%s never reached expected content\nwant:\n%s\ngot:\n%s", path, want, data)
}

func TestRunWatch(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Format.DebounceInterval = 20 * time.Millisecond
	dir := copyTestdata(t, "valid.graph", "messy.graph")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, a, watchOptions{dir: dir})
	}()

	// Existing files are formatted first
	waitForContent(t, filepath.Join(dir, "messy.graph"), messyCanonical)

	// Give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	added := filepath.Join(dir, "added.graph")
	if err := os.WriteFile(added, []byte("avg(host(a,b))"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	waitForContent(t, added, "avg(host(a, b))\n")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runWatch() returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch() did not stop after cancel")
	}
}

func TestRunWatch_MetricsAddr(t *testing.T) {
	a := newTestApp(t)
	if a.metrics.Enabled() {
		t.Fatal("metrics should be disabled by default")
	}
	dir := copyTestdata(t, "messy.graph")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, a, watchOptions{dir: dir, metricsAddr: "127.0.0.1:0"})
	}()

	waitForContent(t, filepath.Join(dir, "messy.graph"), messyCanonical)

	srv := httptest.NewServer(metricsMux(a))
	defer srv.Close()

	want := `mmpp_expr_files_total{command="watch",result="reformatted"} 1`
	var body string
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := srv.Client().Get(srv.URL + "/metrics")
		if err != nil {
			t.Fatalf("GET /metrics failed: %v", err)
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("failed to read body: %v", err)
		}
		body = string(data)
		if strings.Contains(body, want) {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if !strings.Contains(body, want) {
		t.Errorf("metrics output missing %q:\n%s", want, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runWatch() returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch() did not stop after cancel")
	}
}

func TestRunWatch_Options(t *testing.T) {
	a := newTestApp(t)

	err := runWatch(context.Background(), a, watchOptions{})
	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigError without --dir, got %T: %v", err, err)
	}

	err = runWatch(context.Background(), a, watchOptions{dir: filepath.Join(t.TempDir(), "missing")})
	var cmdErr *cli.CommandError
	if !errors.As(err, &cmdErr) {
		t.Errorf("expected CommandError for missing directory, got %T: %v", err, err)
	}
}

func TestRunWatch_SkipInitial(t *testing.T) {
	a := newTestApp(t)
	dir := copyTestdata(t, "messy.graph")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, a, watchOptions{dir: dir, skipInitial: true})
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("runWatch() failed: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "messy.graph"))
	if string(data) == messyCanonical {
		t.Error("--skip-initial still formatted the existing file")
	}
}

func TestReloadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mmpp.yaml")
	if err := os.WriteFile(path, []byte("parser:\n  max_depth: 8\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	a := newTestAppWith(t, appOptions{configPath: path})
	r := watch.NewReformatter(a.loader, a.logger, a.metrics)
	before := a.loader

	if err := os.WriteFile(path, []byte("parser:\n  max_depth: 2\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}
	reloadConfig(context.Background(), a, r)

	if a.cfg.Parser.MaxDepth != 2 || config.GetConfig().Parser.MaxDepth != 2 {
		t.Fatalf("expected max depth 2 after reload, got %d", a.cfg.Parser.MaxDepth)
	}
	if a.loader == before {
		t.Error("reload did not rebuild the loader")
	}

	// A broken file keeps the previous configuration
	if err := os.WriteFile(path, []byte("parser: [\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}
	kept := a.cfg
	reloadConfig(context.Background(), a, r)

	if a.cfg != kept || config.GetConfig() != kept {
		t.Error("failed reload replaced the configuration")
	}
}

func TestMetricsMux(t *testing.T) {
	a := newTestAppWith(t, appOptions{metricsFile: filepath.Join(t.TempDir(), "mmpp.prom")})
	if _, err := a.formatter.Format("", "host(a, b)"); err != nil {
		t.Fatalf("Format() failed: %v", err)
	}

	srv := httptest.NewServer(metricsMux(a))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "mmpp_expr_parses_total") {
		t.Errorf("metrics output missing parse counter:\n%s", body)
	}
}
