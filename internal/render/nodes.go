package render

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/marcosnunesmbs/portfolio/internal/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSS classes of the generated nodes.
const (
	certificationClass = "w-20 h-20 md:w-32 md:h-32 transform transition-all duration-300 hover:w-36 hover:h-36"
	skillClassFormat   = "w-12 h-12 md:w-20 md:h-20 hover:bg-gray-800 %s text-2xl md:text-3xl hover:text-4xl " +
		"transform transition-all duration-200 rounded-lg p-2 md:p-6 hover:p-4 text-center flex items-center justify-center relative group"
	skillImageClass  = "w-8 h-auto md:w-12 md:h-auto"
	skillIconFormat  = "fa-brands %s text-white"
	tooltipClass     = "absolute bottom-full mb-2 hidden group-hover:block px-2 py-1 bg-gray-900 text-white text-xs rounded shadow-lg whitespace-nowrap z-50 font-sans tracking-wide pointer-events-none select-none"
	projectCardClass = "w-full lg:w-1/2 xl:w-1/4 p-4 mb-2"
	projectColClass  = "flex flex-col items-center"
	projectImgClass  = "w-full h-12 md:h-12 md:w-full mb-2"
	projectNameClass = "text-lg font-bold text-center"
	projectDescClass = "mt-2 text-center text-sm font-light md:px-14"

	// invertClass turns monochrome SVG logos white on the dark background.
	invertClass = "brightness-0 invert"
)

// element creates a detached element node.
func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// imageAttrs returns src and alt followed by the optional dimension and
// loading attributes that are set.
func imageAttrs(src, alt string, width, height int, loading string) []html.Attribute {
	attrs := []html.Attribute{attr("src", src), attr("alt", alt)}
	if width > 0 {
		attrs = append(attrs, attr("width", strconv.Itoa(width)))
	}
	if height > 0 {
		attrs = append(attrs, attr("height", strconv.Itoa(height)))
	}
	if loading != "" {
		attrs = append(attrs, attr("loading", loading))
	}
	return attrs
}

// isSVG reports whether the image URL points to an SVG file.
func isSVG(src string) bool {
	p := src
	if u, err := url.Parse(src); err == nil {
		p = u.Path
	}
	return strings.EqualFold(path.Ext(p), ".svg")
}

func imageClass(base, src string) string {
	if isSVG(src) {
		return base + " " + invertClass
	}
	return base
}

func certificationNode(c model.CertificationEntry) *html.Node {
	attrs := imageAttrs(c.ImgSrc, c.Alt, c.Width, c.Height, c.Loading)
	attrs = append(attrs, attr("class", certificationClass))
	return element("img", attrs...)
}

func skillNode(s model.SkillEntry) *html.Node {
	tile := element("div", attr("class", fmt.Sprintf(skillClassFormat, s.Color)))

	if s.HasImage() {
		attrs := imageAttrs(s.Image, "icon "+s.Name, s.Width, s.Height, s.Loading)
		attrs = append(attrs, attr("class", imageClass(skillImageClass, s.Image)))
		tile.AppendChild(element("img", attrs...))
	} else {
		tile.AppendChild(element("i", attr("class", fmt.Sprintf(skillIconFormat, s.Icon))))
	}

	tooltip := element("div", attr("class", tooltipClass))
	tooltip.AppendChild(text(s.Name))
	tile.AppendChild(tooltip)

	return tile
}

func projectNode(p model.ProjectEntry) *html.Node {
	card := element("div", attr("class", projectCardClass))
	col := element("div", attr("class", projectColClass))
	card.AppendChild(col)

	link := element("a", attr("href", p.URL), attr("target", "_blank"))
	imgAttrs := imageAttrs(p.ImgSrc, p.Alt, p.Width, p.Height, p.Loading)
	imgAttrs = append(imgAttrs, attr("class", imageClass(projectImgClass, p.ImgSrc)))
	link.AppendChild(element("img", imgAttrs...))
	col.AppendChild(link)

	name := element("h3", attr("class", projectNameClass))
	name.AppendChild(text(p.Name))
	col.AppendChild(name)

	desc := element("p", attr("class", projectDescClass))
	for _, n := range descriptionNodes(desc, p.Description) {
		desc.AppendChild(n)
	}
	col.AppendChild(desc)

	return card
}

// descriptionNodes parses a project description as an HTML fragment in the
// context of its <p> parent so embedded links become real elements.
// Unparseable input is kept as plain text.
func descriptionNodes(parent *html.Node, description string) []*html.Node {
	nodes, err := html.ParseFragment(strings.NewReader(description), parent)
	if err != nil {
		return []*html.Node{text(description)}
	}
	return nodes
}
