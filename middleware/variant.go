package middleware

import (
	"context"
	"net/http"
	"time"

	"color_robotics_site/config"
	"color_robotics_site/services/variants"

	"github.com/labstack/echo/v4"
)

const (
	variantCookieName = "variant"
	variantContextKey = "variant"
)

// VariantContextKey carries the resolved variant in the request context (for Templ)
const VariantContextKey contextKey = "variant"

// Variant middleware resolves which landing page variant serves the request.
// Priority:
// 1. Route param ":variant" (404 when unknown)
// 2. Query param "v" (sets cookie)
// 3. Cookie "variant"
// 4. Registry default
func Variant(registry *variants.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var v *variants.Variant

			if key := c.Param("variant"); key != "" {
				found, err := registry.Get(key)
				if err != nil {
					return echo.NewHTTPError(http.StatusNotFound, "Page not found")
				}
				v = found
			} else if key := c.QueryParam("v"); key != "" {
				if found, err := registry.Get(key); err == nil {
					v = found
					SetVariantCookie(c, found.Key)
				}
			}

			if v == nil {
				if cookie, err := c.Cookie(variantCookieName); err == nil {
					if found, err := registry.Get(cookie.Value); err == nil {
						v = found
					}
				}
			}

			if v == nil {
				v = registry.Default()
			}

			c.Set(variantContextKey, v)
			ctx := context.WithValue(c.Request().Context(), VariantContextKey, v)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// SetVariantCookie remembers the campaign variant for later visits
func SetVariantCookie(c echo.Context, key string) {
	cfg, ok := c.Get("config").(*config.Config)

	cookie := new(http.Cookie)
	cookie.Name = variantCookieName
	cookie.Value = key
	cookie.Expires = time.Now().Add(30 * 24 * time.Hour)
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteLaxMode

	if ok && cfg.IsProduction() {
		cookie.Secure = true
	}

	c.SetCookie(cookie)
}

// GetVariant returns the variant resolved for this request, nil outside the middleware
func GetVariant(c echo.Context) *variants.Variant {
	if v, ok := c.Get(variantContextKey).(*variants.Variant); ok {
		return v
	}
	return nil
}

// VariantFromContext is GetVariant for templ components
func VariantFromContext(ctx context.Context) *variants.Variant {
	if v, ok := ctx.Value(VariantContextKey).(*variants.Variant); ok {
		return v
	}
	return nil
}
