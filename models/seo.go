package models

// SEO is the head metadata of one landing page variant
type SEO struct {
	Title       string
	Description string
	SiteName    string // og:site_name, the variant's brand
	Canonical   string
	Image       string // absolute URL of the social preview image
	ThemeColor  string // browser UI color, the variant's scroll start color
	NoIndex     bool   // keep non-production deployments out of search results
}

// NewSEO returns the metadata for a page with the given title and description
func NewSEO(title, description string) *SEO {
	return &SEO{Title: title, Description: description}
}

func (s *SEO) WithSiteName(name string) *SEO {
	s.SiteName = name
	return s
}

func (s *SEO) WithCanonical(url string) *SEO {
	s.Canonical = url
	return s
}

func (s *SEO) WithImage(imageURL string) *SEO {
	s.Image = imageURL
	return s
}

func (s *SEO) WithThemeColor(color string) *SEO {
	s.ThemeColor = color
	return s
}

func (s *SEO) WithNoIndex() *SEO {
	s.NoIndex = true
	return s
}

// Robots is the robots meta directive
func (s *SEO) Robots() string {
	if s.NoIndex {
		return "noindex, nofollow"
	}
	return "index, follow"
}

// TwitterCard picks the large card only when there is an image to show
func (s *SEO) TwitterCard() string {
	if s.Image != "" {
		return "summary_large_image"
	}
	return "summary"
}
