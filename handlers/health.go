package handlers

import (
	"context"
	"net/http"
	"time"

	"color_robotics_site/db"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports database reachability and in-memory state sizes
func HealthHandler(c echo.Context) error {
	resp := map[string]interface{}{"status": "ok"}
	code := http.StatusOK

	if db.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.Logger().Errorf("Health check database ping failed: %v", err)
			resp["status"] = "degraded"
			resp["database"] = "unreachable"
			code = http.StatusServiceUnavailable
		} else {
			resp["database"] = "ok"
		}
	}
	if site.Registry != nil {
		resp["variants"] = len(site.Registry.Keys())
	}
	if site.Tracker != nil {
		resp["tracked_submissions"] = site.Tracker.Len()
	}

	return c.JSON(code, resp)
}
