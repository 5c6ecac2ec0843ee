package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with the given arguments and returns the
// combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeTestConfig writes a minimal config into a temp dir and returns its
// path. HOME is redirected so default-path resolution stays inside the test.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("HOME", base)
	t.Setenv("XDG_CONFIG_HOME", "")

	path := filepath.Join(base, "chaptersaw.toml")
	content := fmt.Sprintf("[paths]\nstaging_dir = %q\n", filepath.Join(base, "staging"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q does not contain %q", output, want)
	}
}

func TestRootCommandListsSubcommands(t *testing.T) {
	cmd := newRootCommand()
	want := []string{"extract", "chapters", "tracks", "set-default", "parse", "clean", "config"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing subcommand %q", name)
		}
	}
}

func TestParseCommandTable(t *testing.T) {
	out, err := runCLI(t, "parse", "Show.Name.S01E05.720p.BluRay.x264-GROUP.mkv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	requireContains(t, out, "Show Name")
	requireContains(t, out, "S01E05")
	requireContains(t, out, "720p")
}

func TestParseCommandJSON(t *testing.T) {
	out, err := runCLI(t, "parse", "--format", "json", "Movie.Title.2019.1080p.WEB-DL.mkv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	requireContains(t, out, `"title": "Movie Title"`)
	requireContains(t, out, `"year": 2019`)
}

func TestParseCommandRejectsUnknownFormat(t *testing.T) {
	_, err := runCLI(t, "parse", "--format", "xml", "a.mkv")
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Fatalf("err = %v, want unsupported format error", err)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	writeTestConfig(t)
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	_, err = runCLI(t, "config", "init", "--path", target)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("second init err = %v, want already-exists error", err)
	}
}

func TestCleanCommandReportsEmptyStaging(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runCLI(t, "--config", cfgPath, "clean")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	requireContains(t, out, "Removed 0 stale run(s)")
}

func TestExtractRequiresInputs(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := runCLI(t, "--config", cfgPath, "extract")
	if err == nil {
		t.Fatal("expected an error without inputs")
	}
}

func TestExtractRejectsKeywordAndRegexTogether(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := runCLI(t, "--config", cfgPath, "extract", "-i", "a.mkv", "-k", "intro", "-e", "op.*")
	if err == nil || !strings.Contains(err.Error(), "keyword") {
		t.Fatalf("err = %v, want mutual exclusion error", err)
	}
}
