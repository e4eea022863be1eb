package trace

import "errors"

var (
	// ErrMalformed is returned when a trace file is not a JSON object.
	ErrMalformed = errors.New("malformed trace file")

	// ErrMissingRange is returned when a trace has no
	// metadata.modifications.initialBreadcrumb.window.range value.
	ErrMissingRange = errors.New("trace has no metadata.modifications.initialBreadcrumb.window.range")

	// ErrMissingEvents is returned when a trace has no traceEvents array.
	ErrMissingEvents = errors.New("trace has no traceEvents array")
)
