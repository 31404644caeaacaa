package echomw

import (
	"github.com/labstack/echo/v4"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

func RouteAccessLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		defer LogRouteAccess(c, tl.Info1, "Route accessed", palette.Green)
		LogRouteAccess(c, tl.Info, "Accessing route", palette.Blue)
		return next(c)
	}
}

// Log route access; health checks only show up at verbose level.
func LogRouteAccess(c echo.Context, logLevel tl.LogLevel, actionName string, colorizer palette.Colorizer) {
	if c.Path() == "/healthz" {
		logLevel = tl.Verbose
		colorizer = palette.CyanDim
	}
	tl.Log(
		logLevel, colorizer, "%s: Method='%s', Path='%s', Status=%v, ClientIP='%s'",
		actionName, c.Request().Method, c.Path(), c.Response().Status, c.RealIP(),
	)
}
