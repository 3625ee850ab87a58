package handlers

import (
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// isHTMX reports whether the request was issued by htmx
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// renderPartial writes an HTML fragment with the given status code
func renderPartial(c echo.Context, code int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return component.Render(c.Request().Context(), c.Response().Writer)
}
