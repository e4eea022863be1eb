package trace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// traceDoc builds a minimal trace document. A nil resources slice omits
// metadata.resources entirely.
func traceDoc(rangeUs float64, events []map[string]any, resources []map[string]any) map[string]any {
	metadata := map[string]any{
		"startTime": "2026-01-26T10:12:09.000Z",
		"modifications": map[string]any{
			"initialBreadcrumb": map[string]any{
				"window": map[string]any{"min": 0, "max": rangeUs, "range": rangeUs},
			},
		},
	}
	if resources != nil {
		metadata["resources"] = resources
	}
	if events == nil {
		events = []map[string]any{}
	}
	return map[string]any{
		"metadata":    metadata,
		"traceEvents": events,
	}
}

// writeTrace writes doc as JSON into dir/name and returns the path.
func writeTrace(t *testing.T, dir, name string, doc map[string]any) string {
	t.Helper()

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to marshal trace: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write trace: %v", err)
	}
	return path
}

func namedEvents(names ...string) []map[string]any {
	events := make([]map[string]any, 0, len(names))
	for i, n := range names {
		events = append(events, map[string]any{"name": n, "ts": float64(1000 * (i + 1)), "ph": "I"})
	}
	return events
}
