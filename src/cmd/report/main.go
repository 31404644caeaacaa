package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/config"
	"donation-report/src/pkg/email"
	"donation-report/src/pkg/imagefetch"
	"donation-report/src/pkg/report"
	"donation-report/src/pkg/sink"
	"donation-report/src/pkg/util"
)

/*
Compile a bundle JSON file into the donation report PDF.

With -section only that section is printed, without the cover.
The PDF is saved to -o (or -dir with a generated name), optionally opened in
the desktop viewer and optionally mailed.
*/
func main() {
	configPath := flag.String("config", "./cfg/config.json", "Path to the JSON config file")
	bundlePath := flag.String("bundle", "", "Path to the bundle JSON file")
	outputPath := flag.String("o", "", "Output PDF path (default: <dir>/donation-report-<year>-<id>.pdf)")
	outputDir := flag.String("dir", "./out", "Directory for the generated PDF when -o is not set")
	openViewer := flag.Bool("open", false, "Open the PDF in the desktop viewer once written")
	sendEmail := flag.Bool("email", false, "Mail the PDF; without it the email is only logged")
	provider := flag.String("provider", "", "Email provider: ses, mailgun or sendgrid (default from config)")
	sender := flag.String("sender", "", "Sender's address (default from config)")
	recipient := flag.String("recipient", "", "Comma separated recipient addresses; no email when empty")
	sectionName := flag.String("section", "", "Print a single section: fund-sources, transactions, budget or charts (default: full report)")

	flag.Parse()
	config.InitializeConfig(*configPath)

	util.RequiredFlag(bundlePath, "bundle")
	util.EnsureFlags()

	var section report.Section
	if *sectionName != "" {
		parsed, e := report.ParseSection(*sectionName)
		e.QuitIf(xerr.ErrorTypeError)
		section = parsed
	}

	bundle, e := report.LoadBundle(*bundlePath)
	e.QuitIf(xerr.ErrorTypeError)

	fetcher := imagefetch.NewFetcher(config.Cfg.Fetch)
	compiler := report.NewCompiler(fetcher, config.Cfg.Report)
	compiler.AutoPrint = *openViewer

	file := sink.File{Dir: *outputDir, Path: *outputPath}
	var targets sink.Fanout
	var viewer *sink.Viewer
	if *openViewer {
		viewer = &sink.Viewer{File: file}
		targets = append(targets, viewer)
	} else {
		targets = append(targets, &file)
	}

	if strings.TrimSpace(*recipient) != "" {
		mailSink := reportEmailSink(*provider, *sender, *recipient, *sendEmail)
		targets = append(targets, mailSink)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if section == "" {
		tl.Log(tl.Notice, palette.BlueBold, "Compiling donation report for '%s' from '%s'", bundle.ReportYear, *bundlePath)
		e = compiler.GenerateFullReport(ctx, bundle, targets)
	} else {
		tl.Log(tl.Notice, palette.BlueBold, "Printing section '%s' for '%s' from '%s'", section, bundle.ReportYear, *bundlePath)
		e = compiler.GenerateSectionReport(ctx, section, bundle, targets)
	}
	e.QuitIf(xerr.ErrorTypeError)

	written := file.Written()
	if viewer != nil {
		written = viewer.File.Written()
	}
	tl.Log(tl.Info1, palette.Green, "Saved report to '%s'", written)
}

// reportEmailSink resolves flags against the email config; flags win.
func reportEmailSink(providerFlag, senderFlag, recipients string, send bool) *email.ReportSink {
	if providerFlag == "" {
		providerFlag = email.Cfg.Provider
	}
	provider, e := email.ParseProvider(providerFlag)
	e.QuitIf(xerr.ErrorTypeError)

	if senderFlag == "" {
		senderFlag = email.Cfg.Sender
	}
	if send {
		config.CheckIfEnvVarsPresent(provider.EnvVars()...)
	}

	return &email.ReportSink{
		Provider:   provider,
		Sender:     senderFlag,
		Recipients: strings.Split(recipients, ","),
		Subject:    email.Cfg.Subject,
		Text:       email.Cfg.BodyText,
		SendEmails: send,
	}
}
