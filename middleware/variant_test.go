package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"color_robotics_site/config"
	"color_robotics_site/services/variants"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *variants.Registry {
	registry, err := variants.NewRegistry("", "color-robotics")
	require.NoError(t, err)
	return registry
}

func runVariant(t *testing.T, registry *variants.Registry, req *http.Request, params ...string) (echo.Context, *httptest.ResponseRecorder, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("config", &config.Config{Environment: "production"})
	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}

	handler := Variant(registry)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, rec, handler(c)
}

func TestVariant(t *testing.T) {
	registry := newTestRegistry(t)

	t.Run("PriorityRouteParam", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v/command-center?v=meeting-request", nil)
		c, rec, err := runVariant(t, registry, req, "variant", "command-center")
		assert.NoError(t, err)
		assert.Equal(t, "command-center", GetVariant(c).Key)
		assert.Equal(t, "command-center", VariantFromContext(c.Request().Context()).Key)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("UnknownRouteParam", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v/nope", nil)
		_, _, err := runVariant(t, registry, req, "variant", "nope")
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})

	t.Run("PriorityQueryParam", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?v=meeting-request", nil)
		c, rec, err := runVariant(t, registry, req)
		assert.NoError(t, err)
		assert.Equal(t, "meeting-request", GetVariant(c).Key)

		found := false
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == "variant" {
				assert.Equal(t, "meeting-request", cookie.Value)
				assert.True(t, cookie.Secure)
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("PriorityCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "variant", Value: "command-center"})
		c, _, err := runVariant(t, registry, req)
		assert.NoError(t, err)
		assert.Equal(t, "command-center", GetVariant(c).Key)
	})

	t.Run("UnknownQueryFallsBackToCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?v=nope", nil)
		req.AddCookie(&http.Cookie{Name: "variant", Value: "meeting-request"})
		c, _, err := runVariant(t, registry, req)
		assert.NoError(t, err)
		assert.Equal(t, "meeting-request", GetVariant(c).Key)
	})

	t.Run("Default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "variant", Value: "stale"})
		c, _, err := runVariant(t, registry, req)
		assert.NoError(t, err)
		assert.Equal(t, "color-robotics", GetVariant(c).Key)
	})
}

func TestGetVariantMissing(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Nil(t, GetVariant(c))
	assert.Nil(t, VariantFromContext(c.Request().Context()))
}
