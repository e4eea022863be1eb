package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// executeCommand runs the root command with args and returns what it wrote to
// stdout and stderr. An empty configuration file is passed so that a
// .portfolio.yaml in the working or home directory does not leak into tests,
// unless args already name one.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	hasConfig := false
	for _, a := range args {
		if a == "-c" || a == "--config" {
			hasConfig = true
		}
	}
	if !hasConfig {
		empty := filepath.Join(t.TempDir(), "empty.yaml")
		writeTestFile(t, empty, "{}\n")
		args = append(args, "--config", empty)
	}

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// writeTraceFile writes a minimal trace with the given window range (µs),
// number of events and resource contents.
func writeTraceFile(t *testing.T, path string, rangeUs float64, events int, contents ...string) {
	t.Helper()

	evs := make([]map[string]any, 0, events)
	for i := range events {
		evs = append(evs, map[string]any{"name": "RunTask", "ts": float64(1000 * (i + 1)), "ph": "X"})
	}
	resources := make([]map[string]any, 0, len(contents))
	for _, c := range contents {
		resources = append(resources, map[string]any{"url": "https://x.test/a.js", "mimeType": "text/javascript", "content": c})
	}

	doc := map[string]any{
		"metadata": map[string]any{
			"startTime": "2026-01-26T10:12:09.000Z",
			"modifications": map[string]any{
				"initialBreadcrumb": map[string]any{
					"window": map[string]any{"min": 0, "max": rangeUs, "range": rangeUs},
				},
			},
			"resources": resources,
		},
		"traceEvents": evs,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, path, string(data))
}
