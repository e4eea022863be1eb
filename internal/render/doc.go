// Package render populates the portfolio page template with the skill,
// certification and project lists.
//
// The template is parsed into a DOM with golang.org/x/net/html. For each list
// whose container element (found by id) exists, one node per entry is
// appended in list order. Missing containers are skipped without error and
// entry fields are not validated.
package render
