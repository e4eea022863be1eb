// Package config provides configuration structures and utilities for the
// portfolio CLI. It defines the defaults for the trace comparator and the
// site renderer, the optional .portfolio.yaml file, and the XDG directories
// used for persistent data.
package config
