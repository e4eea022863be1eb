package model

import (
	"encoding/json"
	"math"
)

// TraceSummary is the before/after comparison of two traces.
// It is built once per comparator run and never mutated afterwards.
//
// The exported JSON shape is the analysis-data.json document. Fields tagged
// `json:"-"` are only used by the console, Markdown and Excel reports.
type TraceSummary struct {
	Duration   DurationSummary  `json:"duration"`
	Events     EventSummary     `json:"events"`
	Resources  ResourceSummary  `json:"resources"`
	FileSize   FileSizeSummary  `json:"fileSize"`
	Timestamps TimestampSummary `json:"timestamps"`

	// BeforePath and AfterPath are the compared files.
	BeforePath string `json:"-"`
	AfterPath  string `json:"-"`

	// BeforeResourceBytes and AfterResourceBytes are the unrounded resource
	// content totals.
	BeforeResourceBytes int64 `json:"-"`
	AfterResourceBytes  int64 `json:"-"`

	// BeforeFileBytes and AfterFileBytes are the on-disk trace sizes.
	BeforeFileBytes int64 `json:"-"`
	AfterFileBytes  int64 `json:"-"`

	// BeforeVitals and AfterVitals hold the Web Vitals events found in each trace.
	BeforeVitals WebVitals `json:"-"`
	AfterVitals  WebVitals `json:"-"`
}

// Percent is a percentage change such as (before - after) / before * 100.
// NaN and infinities encode as JSON null and null decodes as NaN.
type Percent float64

// IsFinite reports whether p is neither NaN nor infinite.
func (p Percent) IsFinite() bool {
	return !math.IsNaN(float64(p)) && !math.IsInf(float64(p), 0)
}

// MarshalJSON implements json.Marshaler.
func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.IsFinite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Percent) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Percent(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = Percent(f)
	return nil
}

// DurationSummary compares the recording window. Before and After are in
// microseconds.
type DurationSummary struct {
	Before      float64 `json:"before"`
	After       float64 `json:"after"`
	BeforeMs    float64 `json:"beforeMs"`
	AfterMs     float64 `json:"afterMs"`
	Improvement Percent `json:"improvement"`
}

// EventSummary compares the number of trace events.
type EventSummary struct {
	Before    int     `json:"before"`
	After     int     `json:"after"`
	Reduction Percent `json:"reduction"`
}

// ResourceSummary compares captured resources and their content size.
type ResourceSummary struct {
	Before        int     `json:"before"`
	After         int     `json:"after"`
	BeforeSizeKB  float64 `json:"beforeSizeKB"`
	AfterSizeKB   float64 `json:"afterSizeKB"`
	SizeReduction Percent `json:"sizeReduction"`
}

// FileSizeSummary compares the trace files on disk.
type FileSizeSummary struct {
	BeforeMB  float64 `json:"beforeMB"`
	AfterMB   float64 `json:"afterMB"`
	Reduction Percent `json:"reduction"`
}

// TimestampSummary carries each trace's metadata.startTime verbatim.
type TimestampSummary struct {
	Before json.RawMessage `json:"before,omitempty"`
	After  json.RawMessage `json:"after,omitempty"`
}

// WebVitals are the named performance events located in a trace.
type WebVitals struct {
	// FCP is the first "firstContentfulPaint" event, if any.
	FCP *TraceEvent

	// LCP is the first event whose name contains "largestContentfulPaint", if any.
	LCP *TraceEvent

	// LayoutShifts is the number of "LayoutShift" events.
	LayoutShifts int
}

// NonFinite returns the names of percentage fields that are NaN or infinite.
// Only the resource size metric guards a zero baseline; the others surface
// here when the "before" trace reports zero.
func (s *TraceSummary) NonFinite() []string {
	var names []string
	check := func(name string, v Percent) {
		if !v.IsFinite() {
			names = append(names, name)
		}
	}
	check("duration.improvement", s.Duration.Improvement)
	check("events.reduction", s.Events.Reduction)
	check("resources.sizeReduction", s.Resources.SizeReduction)
	check("fileSize.reduction", s.FileSize.Reduction)
	return names
}
