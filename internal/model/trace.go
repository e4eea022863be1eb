package model

import "encoding/json"

// Trace is a typed view of a browser performance-trace file.
// Only the fields the comparator reads are decoded; everything else in the
// file is ignored.
type Trace struct {
	// Metadata holds the recording metadata written by the browser.
	Metadata TraceMetadata `json:"metadata"`

	// TraceEvents is the raw event list. It is nil when the key is absent
	// and non-nil (possibly empty) when present.
	TraceEvents []TraceEvent `json:"traceEvents"`

	// Path is the file the trace was read from. Set by the loader.
	Path string `json:"-"`

	// FileSize is the on-disk size of the trace file in bytes. Set by the loader.
	FileSize int64 `json:"-"`
}

// TraceMetadata is the "metadata" object of a trace file.
type TraceMetadata struct {
	// StartTime is copied verbatim into the comparison output.
	StartTime json.RawMessage `json:"startTime,omitempty"`

	Modifications *TraceModifications `json:"modifications,omitempty"`

	// Resources lists the documents captured with the recording.
	Resources []TraceResource `json:"resources,omitempty"`
}

// TraceModifications is "metadata.modifications".
type TraceModifications struct {
	InitialBreadcrumb *TraceBreadcrumb `json:"initialBreadcrumb,omitempty"`
}

// TraceBreadcrumb is "metadata.modifications.initialBreadcrumb".
type TraceBreadcrumb struct {
	Window *TraceWindow `json:"window,omitempty"`
}

// TraceWindow is the visible time window of the recording, in microseconds.
type TraceWindow struct {
	Min   float64  `json:"min"`
	Max   float64  `json:"max"`
	Range *float64 `json:"range,omitempty"`
}

// TraceResource is one captured resource. Content is nil when the
// recording did not embed the resource body.
type TraceResource struct {
	URL      string  `json:"url,omitempty"`
	MimeType string  `json:"mimeType,omitempty"`
	Content  *string `json:"content,omitempty"`
}

// TraceEvent is a single entry of "traceEvents".
type TraceEvent struct {
	Name string  `json:"name"`
	Cat  string  `json:"cat,omitempty"`
	Ph   string  `json:"ph,omitempty"`
	Ts   float64 `json:"ts"`
	Dur  float64 `json:"dur,omitempty"`
}

// Range returns the total duration of the recording in microseconds and
// whether the trace carried it.
func (t *Trace) Range() (float64, bool) {
	m := t.Metadata.Modifications
	if m == nil || m.InitialBreadcrumb == nil || m.InitialBreadcrumb.Window == nil {
		return 0, false
	}
	r := m.InitialBreadcrumb.Window.Range
	if r == nil {
		return 0, false
	}
	return *r, true
}

// EventCount returns the number of trace events.
func (t *Trace) EventCount() int {
	return len(t.TraceEvents)
}

// ResourceCount returns the number of captured resources. A trace without
// "metadata.resources" has zero resources.
func (t *Trace) ResourceCount() int {
	return len(t.Metadata.Resources)
}

// ResourceBytes sums the content length of every resource that embeds a
// body. Resources without content are skipped.
func (t *Trace) ResourceBytes() int64 {
	var total int64
	for _, r := range t.Metadata.Resources {
		if r.Content != nil && *r.Content != "" {
			total += int64(len(*r.Content))
		}
	}
	return total
}
