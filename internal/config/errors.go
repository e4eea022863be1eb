package config

import "errors"

// Configuration validation errors.
// These errors are returned by the Validate methods so callers can use
// errors.Is() for programmatic handling.
var (
	// ErrNoTracePaths is returned when the before or after trace path is empty.
	ErrNoTracePaths = errors.New("no trace paths: both --before and --after are required")

	// ErrNoAnalysisFile is returned when the analysis output path is empty.
	ErrNoAnalysisFile = errors.New("no analysis output file specified")

	// ErrNoPairs is returned when batch mode is requested without pairs.
	ErrNoPairs = errors.New("batch mode requires trace.pairs in the configuration file")

	// ErrInvalidConcurrency is returned when the batch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid batch concurrency: must be positive")

	// ErrNoSiteOutput is returned when the rendered page path is empty.
	ErrNoSiteOutput = errors.New("no site output file specified")

	// ErrInvalidServerAddr is returned when the listen address is not host:port.
	ErrInvalidServerAddr = errors.New("invalid server address: expected [host]:port")
)
