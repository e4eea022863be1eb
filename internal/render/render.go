package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/marcosnunesmbs/portfolio/internal/model"
	"golang.org/x/net/html"
)

// Container element ids in the page template.
const (
	CertificationsContainer = "certifications-container"
	SkillsContainer         = "skills-container"
	ProjectsContainer       = "projects-container"
)

//go:embed templates/index.html
var defaultTemplate []byte

// Result reports what Render appended.
type Result struct {
	Certifications int
	Skills         int
	Projects       int

	// Skipped lists the container ids that were not found, in render order.
	Skipped []string
}

// Total returns the number of appended nodes.
func (r Result) Total() int {
	return r.Certifications + r.Skills + r.Projects
}

// DefaultTemplate returns the embedded page template.
func DefaultTemplate() io.Reader {
	return bytes.NewReader(defaultTemplate)
}

// OpenTemplate opens the template at path, or the embedded template when path
// is empty.
func OpenTemplate(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(DefaultTemplate()), nil
	}
	f, err := os.Open(path) //nolint:gosec // User-provided template path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	return f, nil
}

// Render appends the portfolio entries to their containers in doc.
func Render(doc *html.Node, p *model.Portfolio) Result {
	var res Result
	if p == nil {
		p = &model.Portfolio{}
	}

	if c := FindByID(doc, CertificationsContainer); c != nil {
		for _, e := range p.Certifications {
			c.AppendChild(certificationNode(e))
		}
		res.Certifications = len(p.Certifications)
	} else {
		res.Skipped = append(res.Skipped, CertificationsContainer)
	}

	if c := FindByID(doc, SkillsContainer); c != nil {
		for _, e := range p.Skills {
			c.AppendChild(skillNode(e))
		}
		res.Skills = len(p.Skills)
	} else {
		res.Skipped = append(res.Skipped, SkillsContainer)
	}

	if c := FindByID(doc, ProjectsContainer); c != nil {
		for _, e := range p.Projects {
			c.AppendChild(projectNode(e))
		}
		res.Projects = len(p.Projects)
	} else {
		res.Skipped = append(res.Skipped, ProjectsContainer)
	}

	return res
}

// Page parses tmpl, renders p into it and writes the resulting HTML to w.
func Page(w io.Writer, tmpl io.Reader, p *model.Portfolio) (Result, error) {
	doc, err := html.Parse(tmpl)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse template: %w", err)
	}

	res := Render(doc, p)

	if err := html.Render(w, doc); err != nil {
		return res, fmt.Errorf("failed to write page: %w", err)
	}
	return res, nil
}

// WriteFile renders the page into path, creating parent directories.
// The file is only written when rendering succeeds.
func WriteFile(path string, tmpl io.Reader, p *model.Portfolio) (Result, error) {
	var buf bytes.Buffer
	res, err := Page(&buf, tmpl, p)
	if err != nil {
		return res, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return res, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil { //nolint:gosec // Public web page
		return res, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return res, nil
}

// FindByID returns the first element in document order whose id attribute
// equals id, or nil.
func FindByID(n *html.Node, id string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
