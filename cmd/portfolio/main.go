// Package main provides the entry point for the portfolio CLI.
//
// portfolio renders the personal portfolio page from its skill, certification
// and project lists, and compares browser performance traces recorded before
// and after a change to that page.
//
// Usage:
//
//	portfolio render
//	portfolio serve --watch --data portfolio.yaml
//	portfolio compare --before old.json --after new.json
//
// See --help for all available options.
package main

// main is the entry point for portfolio.
func main() {
	Execute()
}
