//go:build sqlite

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"genalg/internal/stats"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	origWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	workdir := t.TempDir()
	if err := os.Chdir(workdir); err != nil {
		t.Fatalf("chdir tempdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origWD)
	})
	return workdir
}

func TestSQLiteRunThenInspect(t *testing.T) {
	workdir := chdirTemp(t)
	dbPath := filepath.Join(workdir, "genalg.db")
	ctx := context.Background()

	if _, err := captureStdout(t, func() error {
		return run(ctx, []string{
			"run",
			"-store", "sqlite",
			"-db-path", dbPath,
			"-length", "16",
			"-pop", "20",
			"-gens", "50",
			"-seed", "11",
			"-run-id", "cli-run",
		})
	}); err != nil {
		t.Fatalf("run command: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected sqlite db at %s: %v", dbPath, err)
	}

	out, err := captureStdout(t, func() error {
		return run(ctx, []string{"runs", "-store", "sqlite", "-db-path", dbPath})
	})
	if err != nil {
		t.Fatalf("runs command: %v", err)
	}
	if !strings.Contains(out, "run_id=cli-run") {
		t.Fatalf("expected persisted run in list: %q", out)
	}

	out, err = captureStdout(t, func() error {
		return run(ctx, []string{"fitness", "-store", "sqlite", "-db-path", dbPath, "-latest", "-limit", "1"})
	})
	if err != nil {
		t.Fatalf("fitness command: %v", err)
	}
	if strings.Count(out, "generation=") != 1 {
		t.Fatalf("expected one fitness line: %q", out)
	}

	out, err = captureStdout(t, func() error {
		return run(ctx, []string{"diagnostics", "-store", "sqlite", "-db-path", dbPath, "-run-id", "cli-run"})
	})
	if err != nil {
		t.Fatalf("diagnostics command: %v", err)
	}
	if !strings.Contains(out, "generation=1 ") {
		t.Fatalf("expected first generation diagnostics: %q", out)
	}

	out, err = captureStdout(t, func() error {
		return run(ctx, []string{"export", "-store", "sqlite", "-db-path", dbPath, "-latest", "-out", "out"})
	})
	if err != nil {
		t.Fatalf("export command: %v", err)
	}
	if !strings.Contains(out, "exported run_id=cli-run") {
		t.Fatalf("unexpected export output: %q", out)
	}
	for _, file := range []string{stats.ConfigFile, stats.FitnessHistoryFile, stats.DiagnosticsFile, stats.FitnessPlotFile} {
		path := filepath.Join("out", "cli-run", file)
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected artifact %s: %v", path, err)
		}
	}
}

func TestSQLiteRunCommandWithConfigFile(t *testing.T) {
	workdir := chdirTemp(t)
	dbPath := filepath.Join(workdir, "genalg.db")
	configPath := filepath.Join(workdir, "run.json")
	if err := os.WriteFile(configPath, []byte(`{"objective": "hiff", "chromosome_length": 16, "population_size": 20, "generations": 40}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := captureStdout(t, func() error {
		return run(context.Background(), []string{
			"run",
			"-store", "sqlite",
			"-db-path", dbPath,
			"-config", configPath,
			"-gens", "10",
			"-run-id", "from-config",
		})
	}); err != nil {
		t.Fatalf("run command: %v", err)
	}

	out, err := captureStdout(t, func() error {
		return run(context.Background(), []string{"runs", "-store", "sqlite", "-db-path", dbPath, "-json"})
	})
	if err != nil {
		t.Fatalf("runs command: %v", err)
	}
	if !strings.Contains(out, `"objective": "hiff"`) || !strings.Contains(out, `"max_generations": 10`) {
		t.Fatalf("expected config and flag overrides in persisted run: %q", out)
	}
}
