package model

// SkillEntry is a single technology shown in the skills grid.
// Duplicates are legal; entries are rendered in list order.
type SkillEntry struct {
	// Name is shown in the hover tooltip and the image alt text.
	Name string `yaml:"name" json:"name"`

	// Icon is an icon-font class (e.g. "fa-docker") used when Image is empty.
	Icon string `yaml:"icon,omitempty" json:"icon,omitempty"`

	// Image is an optional logo URL that takes precedence over Icon.
	Image string `yaml:"image,omitempty" json:"image,omitempty"`

	// Color is the background utility class of the tile.
	Color string `yaml:"color" json:"color"`

	Width   int    `yaml:"width,omitempty" json:"width,omitempty"`
	Height  int    `yaml:"height,omitempty" json:"height,omitempty"`
	Loading string `yaml:"loading,omitempty" json:"loading,omitempty"`
}

// HasImage reports whether the skill is drawn with a logo image rather than
// an icon-font glyph.
func (s SkillEntry) HasImage() bool {
	return s.Image != ""
}

// CertificationEntry is a certification badge.
type CertificationEntry struct {
	Name    string `yaml:"name" json:"name"`
	ImgSrc  string `yaml:"imgSrc" json:"imgSrc"`
	Alt     string `yaml:"alt" json:"alt"`
	Width   int    `yaml:"width,omitempty" json:"width,omitempty"`
	Height  int    `yaml:"height,omitempty" json:"height,omitempty"`
	Loading string `yaml:"loading,omitempty" json:"loading,omitempty"`
}

// ProjectEntry is a project card linking to an external site.
type ProjectEntry struct {
	Name   string `yaml:"name" json:"name"`
	URL    string `yaml:"url" json:"url"`
	ImgSrc string `yaml:"imgSrc" json:"imgSrc"`
	Alt    string `yaml:"alt" json:"alt"`

	// Description is free text and may embed raw HTML markup.
	Description string `yaml:"description" json:"description"`

	Width   int    `yaml:"width,omitempty" json:"width,omitempty"`
	Height  int    `yaml:"height,omitempty" json:"height,omitempty"`
	Loading string `yaml:"loading,omitempty" json:"loading,omitempty"`
}

// Portfolio holds the three ordered lists rendered into the page.
// It is loaded once and treated as read-only afterwards.
type Portfolio struct {
	Certifications []CertificationEntry `yaml:"certifications" json:"certifications"`
	Skills         []SkillEntry         `yaml:"skills" json:"skills"`
	Projects       []ProjectEntry       `yaml:"projects" json:"projects"`
}

// Len returns the total number of entries across all lists.
func (p *Portfolio) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Certifications) + len(p.Skills) + len(p.Projects)
}
