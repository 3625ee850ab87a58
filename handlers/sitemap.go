package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"

	"color_robotics_site/config"

	"github.com/labstack/echo/v4"
)

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float32 `xml:"priority,omitempty"`
}

type SitemapURLSet struct {
	XMLName string       `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// GetSitemapHandler lists the landing page of every variant
func GetSitemapHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	baseURL := cfg.AppURL

	urls := []SitemapURL{
		{Loc: baseURL + "/", ChangeFreq: "weekly", Priority: 1.0},
	}
	if site.Registry != nil {
		defaultKey := site.Registry.Default().Key
		for _, key := range site.Registry.Keys() {
			if key == defaultKey {
				continue
			}
			v, err := site.Registry.Get(key)
			if err != nil {
				continue
			}
			urls = append(urls, SitemapURL{
				Loc:        baseURL + variantPath(v),
				ChangeFreq: "monthly",
				Priority:   0.8,
			})
		}
	}

	urlSet := SitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXML)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(c.Response().Writer)
	encoder.Indent("", "  ")
	return encoder.Encode(urlSet)
}

// RobotsHandler allows crawling in production only
func RobotsHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	if cfg.IsProduction() {
		b.WriteString("Allow: /\n")
		b.WriteString("Disallow: /contact/\n")
		b.WriteString("Disallow: /htmx/\n")
	} else {
		b.WriteString("Disallow: /\n")
	}
	b.WriteString("\nSitemap: " + cfg.AppURL + "/sitemap.xml\n")

	return c.String(http.StatusOK, b.String())
}
