package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ThemeHandler serves a variant's scroll theme as JSON (GET /theme/:file, file is <variant>.json)
func ThemeHandler(c echo.Context) error {
	key, ok := strings.CutSuffix(c.Param("file"), ".json")
	if !ok || key == "" || site.Registry == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Theme not found")
	}

	v, err := site.Registry.Get(key)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Theme not found")
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=300")
	return c.JSON(http.StatusOK, v.ThemePayload())
}
