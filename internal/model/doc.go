// Package model defines the data structures shared by the portfolio renderer
// and the trace comparator.
//
// This package contains the following main types:
//   - Portfolio: the skill, certification and project lists rendered into the page
//   - Trace: a typed view of a browser performance-trace file
//   - TraceSummary: the derived before/after comparison of two traces
//
// Models are plain values. Renderers, loaders and writers live in their own
// packages and only depend on this one, which keeps the import graph acyclic.
package model
