package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/mailgun/mailgun-go/v4"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
SendMessage sends one message through provider.

With sendEmails set to false the message is only logged, which keeps test
runs and dry runs from reaching a real inbox.
*/
func SendMessage(
	provider Provider, sendEmails *bool,
	sender string, recipients []string, subject string,
	text string, html string, attachments []Attachment,
) (e *xerr.Error) {
	m := message{
		Sender:      strings.TrimSpace(sender),
		Recipients:  cleanRecipients(recipients),
		Subject:     subject,
		Text:        text,
		HTML:        html,
		Attachments: attachments,
	}
	if m.Sender == "" || len(m.Recipients) == 0 {
		return xerr.NewError(fmt.Errorf("sender '%s', %d recipients", m.Sender, len(m.Recipients)), "email needs a sender and a recipient", subject)
	}

	if sendEmails == nil || !*sendEmails {
		tl.Log(
			tl.Notice, palette.Yellow, "Not sending '%s' to %s via %s (%v attachments): %s",
			subject, strings.Join(m.Recipients, ", "), provider, len(attachments), "sending disabled",
		)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(Cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	tl.Log(tl.Info, palette.Blue, "Sending '%s' to %s via %s", subject, strings.Join(m.Recipients, ", "), provider)
	switch provider {
	case ProviderSES:
		e = sendSES(ctx, m)
	case ProviderMailgun:
		e = sendMailgun(ctx, m)
	case ProviderSendGrid:
		e = sendSendGrid(ctx, m)
	default:
		_, e = ParseProvider(string(provider))
	}
	if e != nil {
		return e
	}

	tl.Log(tl.Info1, palette.Green, "Sent '%s' via %s", subject, provider)
	return nil
}

func cleanRecipients(recipients []string) (cleaned []string) {
	for _, recipient := range recipients {
		recipient = strings.TrimSpace(recipient)
		if recipient != "" {
			cleaned = append(cleaned, recipient)
		}
	}
	return cleaned
}

func sendSES(ctx context.Context, m message) (e *xerr.Error) {
	_, e = requireEnv(ProviderSES.EnvVars()...)
	if e != nil {
		return e
	}

	raw, e := buildRawMessage(m, time.Now())
	if e != nil {
		return e
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return xerr.NewError(err, "load AWS configuration", nil)
	}
	client := sesv2.NewFromConfig(awsConfig)
	output, err := client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.Sender),
		Destination:      &sestypes.Destination{ToAddresses: m.Recipients},
		Content:          &sestypes.EmailContent{Raw: &sestypes.RawMessage{Data: raw}},
	})
	if err != nil {
		return xerr.NewError(err, "send email via SES", m.Subject)
	}

	tl.Log(tl.Verbose, palette.CyanDim, "SES message id '%s'", aws.ToString(output.MessageId))
	return nil
}

func sendMailgun(ctx context.Context, m message) (e *xerr.Error) {
	env, e := requireEnv(ProviderMailgun.EnvVars()...)
	if e != nil {
		return e
	}

	mg := mailgun.NewMailgun(env["MAILGUN_DOMAIN"], env["MAILGUN_API_KEY"])
	if Cfg.MailgunAPIBase != "" {
		mg.SetAPIBase(Cfg.MailgunAPIBase)
	}

	mgMessage := mg.NewMessage(m.Sender, m.Subject, m.Text, m.Recipients...)
	if m.HTML != "" {
		mgMessage.SetHtml(m.HTML)
	}
	for _, attachment := range m.Attachments {
		mgMessage.AddBufferAttachment(attachment.Filename, attachment.Data)
	}

	response, id, err := mg.Send(ctx, mgMessage)
	if err != nil {
		return xerr.NewError(err, "send email via Mailgun", m.Subject)
	}

	tl.Log(tl.Verbose, palette.CyanDim, "Mailgun accepted message '%s': %s", id, response)
	return nil
}

func sendSendGrid(ctx context.Context, m message) (e *xerr.Error) {
	env, e := requireEnv(ProviderSendGrid.EnvVars()...)
	if e != nil {
		return e
	}

	sgMessage := mail.NewV3Mail()
	sgMessage.SetFrom(mail.NewEmail("", m.Sender))
	sgMessage.Subject = m.Subject

	personalization := mail.NewPersonalization()
	for _, recipient := range m.Recipients {
		personalization.AddTos(mail.NewEmail("", recipient))
	}
	sgMessage.AddPersonalizations(personalization)

	sgMessage.AddContent(mail.NewContent("text/plain", m.Text))
	if m.HTML != "" {
		sgMessage.AddContent(mail.NewContent("text/html", m.HTML))
	}
	for _, attachment := range m.Attachments {
		sgAttachment := mail.NewAttachment()
		sgAttachment.SetContent(base64.StdEncoding.EncodeToString(attachment.Data))
		sgAttachment.SetType(attachment.ContentType)
		sgAttachment.SetFilename(attachment.Filename)
		sgAttachment.SetDisposition("attachment")
		sgMessage.AddAttachment(sgAttachment)
	}

	client := sendgrid.NewSendClient(env["SENDGRID_API_KEY"])
	response, err := client.SendWithContext(ctx, sgMessage)
	if err != nil {
		return xerr.NewError(err, "send email via SendGrid", m.Subject)
	}
	if response.StatusCode >= 300 {
		return xerr.NewError(fmt.Errorf("status is %d", response.StatusCode), "SendGrid refused email", response.Body)
	}

	tl.Log(tl.Verbose, palette.CyanDim, "SendGrid answered %v", response.StatusCode)
	return nil
}
