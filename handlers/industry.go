package handlers

import (
	"net/http"

	"color_robotics_site/middleware"
	"color_robotics_site/templates/partials"

	"github.com/labstack/echo/v4"
)

// IndustryTabHandler returns the industry tabs with the requested tab active
func IndustryTabHandler(c echo.Context) error {
	v := middleware.GetVariant(c)
	if v == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Page not found")
	}

	industry, ok := v.Industry(c.Param("tab"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Industry not found")
	}
	return renderPartial(c, http.StatusOK, partials.IndustryTabs(v, industry))
}
