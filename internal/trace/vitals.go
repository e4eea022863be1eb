package trace

import (
	"strings"

	"github.com/marcosnunesmbs/portfolio/internal/model"
)

// Event names searched for when locating Web Vitals.
const (
	EventFirstContentfulPaint   = "firstContentfulPaint"
	EventLargestContentfulPaint = "largestContentfulPaint"
	EventLayoutShift            = "LayoutShift"
)

// FindEvents returns every event named exactly name, in trace order.
func FindEvents(t *model.Trace, name string) []model.TraceEvent {
	var events []model.TraceEvent
	for _, e := range t.TraceEvents {
		if e.Name == name {
			events = append(events, e)
		}
	}
	return events
}

// FindWebVitals locates the first FCP event, the first event whose name
// contains the LCP marker (candidates are named e.g.
// "largestContentfulPaint::Candidate") and counts layout shifts.
func FindWebVitals(t *model.Trace) model.WebVitals {
	var v model.WebVitals
	for i := range t.TraceEvents {
		e := &t.TraceEvents[i]
		switch {
		case e.Name == EventFirstContentfulPaint:
			if v.FCP == nil {
				fcp := *e
				v.FCP = &fcp
			}
		case e.Name == EventLayoutShift:
			v.LayoutShifts++
		case e.Name != "" && strings.Contains(e.Name, EventLargestContentfulPaint):
			if v.LCP == nil {
				lcp := *e
				v.LCP = &lcp
			}
		}
	}
	return v
}
