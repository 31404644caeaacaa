// in case you need to create an entrypoint with multiple subprograms
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/config"
	"donation-report/src/pkg/email"
	"donation-report/src/pkg/util"
)

/*
Pick provider and use it to send a test email to admin/specified address.
Optionally attach an already generated report PDF.
*/
func testProvider(subprogram string, flags []string) {
	// common flags
	subprogramCmd := flag.NewFlagSet(subprogram, flag.ExitOnError)
	configPath := subprogramCmd.String("config", "./cfg/config.json", "Path to the JSON config file")

	// custom flags
	provider := subprogramCmd.String("provider", "mailgun", "Provider to use when sending emails")
	senderAddress := subprogramCmd.String("sender", "", "Sender's address")
	recipientAddress := subprogramCmd.String("recipient", "", "Recipient's address")
	subject := subprogramCmd.String("subject", "Test subject", "Subject of an email")
	emailHtmlFilePath := subprogramCmd.String("html", "", "Html body of an email (optional)")
	emailText := subprogramCmd.String("text", "Test email from donation-report.", "Text body of an email")
	attachmentPath := subprogramCmd.String("attachment", "", "PDF to attach, e.g. a generated report (optional)")
	dryRun := subprogramCmd.Bool("dry-run", false, "Only log the email")

	// parse and init config
	xerr.QuitIfError(subprogramCmd.Parse(flags), "Unable to subprogramCmd.Parse")
	config.InitializeConfig(*configPath)

	util.RequiredFlag(senderAddress, "sender")
	util.RequiredFlag(recipientAddress, "recipient")
	util.RequiredFlag(provider, "provider")
	util.EnsureFlags()

	parsedProvider, e := email.ParseProvider(*provider)
	e.QuitIf("error")
	config.CheckIfEnvVarsPresent(parsedProvider.EnvVars()...)

	recipientAddresses := strings.Split(*recipientAddress, ",")

	htmlContent := ""
	if *emailHtmlFilePath != "" {
		htmlFileContentBytes, err := os.ReadFile(*emailHtmlFilePath)
		xerr.QuitIfError(err, fmt.Sprintf("Unable to read file '%s'", *emailHtmlFilePath))
		tl.Log(tl.Verbose, palette.BlueDim, "Full Email:\n```\n%s\n```", htmlFileContentBytes)
		htmlContent = string(htmlFileContentBytes)
	}

	var attachments []email.Attachment
	if *attachmentPath != "" {
		document, err := os.ReadFile(*attachmentPath)
		xerr.QuitIfError(err, fmt.Sprintf("Unable to read file '%s'", *attachmentPath))
		attachments = append(attachments, email.Attachment{
			Filename:    filepath.Base(*attachmentPath),
			ContentType: "application/pdf",
			Data:        document,
		})
	}

	// send email here
	sendEmails := !*dryRun
	e = email.SendMessage(parsedProvider, &sendEmails, *senderAddress, recipientAddresses, *subject, *emailText, htmlContent, attachments)
	e.QuitIf("error")
}

func main() {
	// Check if there are enough arguments
	if len(os.Args) < 2 {
		tl.Log(tl.Error, palette.Red, "Usage: %s", "go run src/cmd/send-email/main.go test-provider [flags]")
		os.Exit(1)
	}
	subprogram := os.Args[1]
	flags := os.Args[2:]

	// Switch subprogram based on the first argument
	switch subprogram {
	case "test-provider":
		testProvider(subprogram, flags)
	default:
		tl.Log(tl.Error, palette.Red, "Unknown subprogram: %s", subprogram)
		os.Exit(1)
	}
}
