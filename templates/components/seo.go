package components

import (
	"context"
	"io"

	"color_robotics_site/models"

	"github.com/a-h/templ"
)

// SEOHead renders the title, description, robots, canonical, Open Graph and Twitter tags
func SEOHead(seo *models.SEO) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		if seo == nil {
			return nil
		}
		w := NewWriter(out)

		w.Raw("<title>")
		w.Text(seo.Title)
		w.Raw("</title>")
		meta(w, "name", "description", seo.Description)
		meta(w, "name", "robots", seo.Robots())
		meta(w, "name", "theme-color", seo.ThemeColor)
		if seo.Canonical != "" {
			w.Raw(`<link rel="canonical"`)
			w.URLAttr("href", seo.Canonical)
			w.Raw(">")
			meta(w, "property", "og:url", seo.Canonical)
		}

		meta(w, "property", "og:type", "website")
		meta(w, "property", "og:site_name", seo.SiteName)
		meta(w, "property", "og:title", seo.Title)
		meta(w, "property", "og:description", seo.Description)
		meta(w, "property", "og:image", seo.Image)
		meta(w, "name", "twitter:card", seo.TwitterCard())
		meta(w, "name", "twitter:title", seo.Title)
		meta(w, "name", "twitter:description", seo.Description)
		meta(w, "name", "twitter:image", seo.Image)

		return w.Err()
	})
}

func meta(w *Writer, key, name, content string) {
	if content == "" {
		return
	}
	w.Raw("<meta")
	w.Attr(key, name)
	w.Attr("content", content)
	w.Raw(">")
}
