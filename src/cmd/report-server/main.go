package main

import (
	"flag"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/config"
	echomw "donation-report/src/pkg/echo-middleware"
	"donation-report/src/pkg/imagefetch"
	"donation-report/src/pkg/report"
	"donation-report/src/pkg/server"
)

/*
Serve report compilation over HTTP.

POST a bundle JSON to /v1/reports with "Authorization: Bearer $REPORT_API_BEARER_TOKEN"
and the PDF comes back in the response.
*/
func main() {
	configPath := flag.String("config", "./cfg/config.json", "Path to the JSON config file")
	port := flag.Int("port", 0, "Port to listen on (default from config)")

	flag.Parse()
	config.InitializeConfig(*configPath)

	missing := config.CheckIfEnvVarsPresent(echomw.EnvReportBearerToken)
	if len(missing) > 0 {
		tl.Log(tl.Warning, palette.YellowBold, "Every /v1 request will be %s until %s is set", "rejected", echomw.EnvReportBearerToken)
	}

	serverCfg := config.Cfg.Server
	if *port != 0 {
		serverCfg.Port = *port
	}

	fetcher := imagefetch.NewFetcher(config.Cfg.Fetch)
	compiler := report.NewCompiler(fetcher, config.Cfg.Report)
	app := server.NewApp(compiler, serverCfg)

	e := server.Run(app, serverCfg)
	e.QuitIf(xerr.ErrorTypeError)
}
