package handlers

import (
	"net/http"

	"color_robotics_site/config"
	"color_robotics_site/middleware"
	"color_robotics_site/templates/pages"

	"github.com/labstack/echo/v4"
)

// LandingHandler renders the landing page of the variant resolved for the request
func LandingHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	v := middleware.GetVariant(c)
	if v == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Page not found")
	}

	component := pages.Landing(pages.LandingData{
		Layout: pages.LayoutData{
			SEO:              GetSEO(cfg, v),
			Variant:          v,
			TurnstileSiteKey: cfg.TurnstileSiteKey,
		},
		Form: newFormData(c, cfg, v),
	})
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return component.Render(c.Request().Context(), c.Response().Writer)
}
