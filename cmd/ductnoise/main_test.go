package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ductnoise/internal/report"
)

const cliNetwork = `
name: lobby
elements:
  - id: fan
    kind: fan
    air_flow: 900
    pressure: 200
  - id: split
    kind: t_junction
    section: {type: round, diameter: 250}
    air_flow: 900
    right: {section: {type: round, diameter: 160}, air_flow: 450}
    left: {section: {type: round, diameter: 160}, air_flow: 450}
`

// isolate points config discovery at an empty temp directory
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DUCTNOISE_CONFIG", "")
	t.Setenv("DUCTNOISE_LOG_LEVEL", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))

	oldWd, _ := os.Getwd()
	os.Chdir(dir)
	t.Cleanup(func() { os.Chdir(oldWd) })
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	outputFormat, showSpectra, outputFile, watchDebounce = "", false, "", 0
	configPath, dbPath, noArchive, logLevel = "", "", false, ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestCalcArchivesAndShows(t *testing.T) {
	dir := isolate(t)
	network := filepath.Join(dir, "lobby.yaml")
	if err := os.WriteFile(network, []byte(cliNetwork), 0644); err != nil {
		t.Fatal(err)
	}
	db := filepath.Join(dir, "runs.db")

	out, err := execute(t, "calc", "--db", db, "-o", "json", network)
	if err != nil {
		t.Fatalf("calc failed: %v", err)
	}

	var rep report.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("calc output is not a JSON report: %v\n%s", err, out)
	}
	if rep.Network != "lobby" || len(rep.Results) != 4 {
		t.Fatalf("unexpected report %s with %d results", rep.Network, len(rep.Results))
	}

	out, err = execute(t, "runs", "list", "--db", db)
	if err != nil {
		t.Fatalf("runs list failed: %v", err)
	}
	if !strings.Contains(out, rep.ID[:8]) || !strings.Contains(out, "lobby") {
		t.Errorf("expected the run in the listing:\n%s", out)
	}

	out, err = execute(t, "runs", "show", "--db", db, rep.ID[:8])
	if err != nil {
		t.Fatalf("runs show failed: %v", err)
	}
	if !strings.Contains(out, "Network: lobby") || !strings.Contains(out, "split.left") {
		t.Errorf("expected the text report:\n%s", out)
	}

	if _, err := execute(t, "runs", "delete", "--db", db, rep.ID); err != nil {
		t.Fatalf("runs delete failed: %v", err)
	}
	if _, err := execute(t, "runs", "show", "--db", db, rep.ID); err == nil {
		t.Error("expected the deleted run to be gone")
	}
}

func TestCalcWithoutArchive(t *testing.T) {
	dir := isolate(t)
	network := filepath.Join(dir, "lobby.yaml")
	if err := os.WriteFile(network, []byte(cliNetwork), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "calc", "--no-archive", network)
	if err != nil {
		t.Fatalf("calc failed: %v", err)
	}
	if !strings.Contains(out, "Network: lobby") {
		t.Errorf("expected a text report:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "ductnoise.db")); !os.IsNotExist(err) {
		t.Error("expected no archive database")
	}

	if _, err := execute(t, "runs", "list", "--no-archive"); err == nil {
		t.Error("expected an error listing runs without an archive")
	}
}

func TestWatchPrintsSavesAndFailures(t *testing.T) {
	dir := isolate(t)
	good := filepath.Join(dir, "lobby.yaml")
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(good, []byte(cliNetwork), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(broken, []byte("elements:\n  - {id: x, kind: boiler}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	db := filepath.Join(dir, "runs.db")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(time.Second, cancel)

	out, err := executeContext(t, ctx, "watch", "--db", db, "--debounce", "50ms", good, broken)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}

	for _, want := range []string{"Network: lobby", "saved run ", "failed " + broken} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in the watch output:\n%s", want, out)
		}
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "ductnoise.yaml")

	if _, err := execute(t, "config", "init", "--path", path); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := execute(t, "config", "init", "--path", path); err == nil {
		t.Error("expected init to refuse overwriting")
	}
	initForce = false

	out, err := execute(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "Config: "+path) {
		t.Errorf("expected the working directory config to be used:\n%s", out)
	}
}
