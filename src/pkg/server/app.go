// Package server exposes report compilation over HTTP.
package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	echomw "donation-report/src/pkg/echo-middleware"
	"donation-report/src/pkg/report"
	"donation-report/src/pkg/sink"
)

const HeaderReportID = "X-Report-ID"

/*
NewApp wires the routes:

	GET  /healthz
	POST /v1/reports   bundle JSON in, application/pdf out; ?section= for a single section

/v1 is rate limited per client IP and requires a bearer token.
*/
func NewApp(compiler *report.Compiler, cfg echomw.Config) *echo.Echo {
	app := echo.New()
	app.HideBanner = true
	app.HidePort = true

	app.Use(echomw.RouteAccessLoggerMiddleware)
	if cfg.BodyLimit != "" {
		app.Use(middleware.BodyLimit(cfg.BodyLimit))
	}

	app.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	v1 := app.Group("/v1", echomw.RateLimiterMiddleware, echomw.RequireBearerToken)
	v1.POST("/reports", reportHandler(compiler))

	return app
}

/*
reportHandler answers 400 for an unreadable document or an unknown
?section=, and 422 for a malformed record (bad date, negative amount,
unknown direction). Without ?section= the full report is returned.
*/
func reportHandler(compiler *report.Compiler) echo.HandlerFunc {
	return func(c echo.Context) error {
		var section report.Section
		rawSection := c.QueryParam("section")
		if rawSection != "" {
			parsed, e := report.ParseSection(rawSection)
			if e != nil {
				tl.Log(tl.Warning, palette.Yellow, "Rejected section '%s' from '%s': '%s'", rawSection, c.RealIP(), e)
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown section"})
			}
			section = parsed
		}

		bundle, sections, e := report.ParseBundle(c.Request().Body)
		if e != nil {
			tl.Log(tl.Warning, palette.Yellow, "Rejected bundle from '%s': '%s'", c.RealIP(), e)
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid bundle"})
		}

		e = bundle.Prepare(sections)
		if e != nil {
			tl.Log(tl.Warning, palette.Yellow, "Malformed record in bundle for year '%s': '%s'", bundle.ReportYear, e)
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "report could not be generated"})
		}

		var buffer sink.Buffer
		if section == "" {
			e = compiler.GenerateFullReport(c.Request().Context(), bundle, &buffer)
		} else {
			e = compiler.GenerateSectionReport(c.Request().Context(), section, bundle, &buffer)
		}
		if e != nil {
			tl.Log(tl.Warning, palette.Yellow, "Report for year '%s' failed: '%s'", bundle.ReportYear, e)
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "report could not be generated"})
		}

		name, document := buffer.Document()
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
		c.Response().Header().Set(HeaderReportID, reportID(name))
		return c.Blob(http.StatusOK, "application/pdf", document)
	}
}

// reportID is the short id DocumentName embeds before ".pdf".
func reportID(name string) string {
	trimmed := strings.TrimSuffix(name, ".pdf")
	index := strings.LastIndex(trimmed, "-")
	if index < 0 {
		return trimmed
	}
	return trimmed[index+1:]
}

// Run serves app on the configured address until it fails.
func Run(app *echo.Echo, cfg echomw.Config) (e *xerr.Error) {
	address := fmt.Sprintf("%s:%d", cfg.Address, cfg.Port)
	tl.Log(tl.Notice, palette.GreenBold, "Listening on '%s'", address)

	err := app.Start(address)
	if err != nil && err != http.ErrServerClosed {
		return xerr.NewError(err, "report server stopped", address)
	}
	return nil
}
