// Package content provides the skill, certification and project lists shown
// on the portfolio page.
//
// The default lists are embedded in the binary. A YAML file with the same
// layout can replace them at runtime; lists missing from that file are empty,
// not defaulted.
package content
