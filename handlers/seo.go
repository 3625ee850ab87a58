package handlers

import (
	"net/url"

	"color_robotics_site/config"
	"color_robotics_site/models"
	"color_robotics_site/services/variants"
)

const ogImagePath = "/static/images/og-image.png"

// variantPath is the public path of a variant's landing page
func variantPath(v *variants.Variant) string {
	if site.Registry != nil && site.Registry.Default().Key == v.Key {
		return "/"
	}
	return "/v/" + url.PathEscape(v.Key)
}

// GetSEO returns the SEO configuration for a variant's landing page
func GetSEO(cfg *config.Config, v *variants.Variant) *models.SEO {
	seo := models.NewSEO(v.Title, v.Description).
		WithSiteName(v.Brand).
		WithCanonical(cfg.AppURL + variantPath(v)).
		WithImage(cfg.AppURL + ogImagePath).
		WithThemeColor(v.Theme.Start().CSS())

	if !cfg.IsProduction() {
		seo.WithNoIndex()
	}
	return seo
}
